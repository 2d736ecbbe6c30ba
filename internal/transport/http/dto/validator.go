// Package dto carries the wire request/response shapes. Requests validate
// themselves; handlers never see an unvalidated body.
package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/novachat/nova-chat-server/internal/validation"
)

// validate is shared; validator instances cache struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// login_format: 3-50 chars of [A-Za-z0-9_]
	_ = v.RegisterValidation("login_format", func(fl validator.FieldLevel) bool {
		return validation.LoginValid(fl.Field().String())
	})

	return v
}
