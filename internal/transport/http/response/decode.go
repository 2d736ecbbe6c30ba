package response

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/novachat/nova-chat-server/internal/domain"
)

// DecodeJSON enforces the JSON content type and decodes the body into dst.
// Trailing data after the first JSON value is rejected.
func DecodeJSON(r *http.Request, dst any) error {
	ct := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil || mediaType != "application/json" {
		return domain.ErrInvalidContentType()
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return domain.ErrInvalidJSON(err)
	}

	// Disallow trailing data: {}{}
	if err := dec.Decode(&struct{}{}); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return domain.ErrInvalidJSON(err)
	}
	return domain.ErrInvalidJSON(errors.New("multiple JSON values"))
}
