package response

import (
	"encoding/json"
	"net/http"
)

// SuccessBody is the success envelope. Message and Data are omitted when
// empty, matching clients that key off "status".
type SuccessBody struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// WriteJSON writes v as JSON with the given status code.
// It sets Content-Type to application/json; charset=utf-8 if not already set.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Success writes {"status":"success", ...} with the given status code.
func Success(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, SuccessBody{Status: "success", Message: message, Data: data})
}

// OK writes a 200 success envelope carrying only data.
func OK(w http.ResponseWriter, data any) {
	Success(w, http.StatusOK, "", data)
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, message string, data any) {
	Success(w, http.StatusCreated, message, data)
}
