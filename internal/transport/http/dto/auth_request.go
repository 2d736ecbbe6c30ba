package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/novachat/nova-chat-server/internal/domain"
)

// Password strength is deliberately not validated here: the registration
// flow answers LOGIN_EXISTS for a taken login before judging the password,
// so the strength check lives in the service after the uniqueness lookup.
type RegisterRequest struct {
	Login    string `json:"login" validate:"required,login_format"`
	Password string `json:"password" validate:"required"`
}

func (r *RegisterRequest) Validate() error {
	if missing := missingOf(map[string]string{"login": r.Login, "password": r.Password}); missing != "" {
		return domain.ErrMissingFields(missing)
	}
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].StructField() == "Login" {
			return domain.ErrInvalidLogin()
		}
		return domain.ErrInvalidJSON(err)
	}
	return nil
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if missing := missingOf(map[string]string{"login": r.Login, "password": r.Password}); missing != "" {
		return domain.ErrMissingFields(missing)
	}
	return nil
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshRequest) Validate() error {
	if r.RefreshToken == "" {
		return domain.ErrMissingToken()
	}
	return nil
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *LogoutRequest) Validate() error {
	if r.RefreshToken == "" {
		return domain.ErrMissingToken()
	}
	return nil
}

type PasswordChangeRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r *PasswordChangeRequest) Validate() error {
	if missing := missingOf(map[string]string{"old_password": r.OldPassword, "new_password": r.NewPassword}); missing != "" {
		return domain.ErrMissingFields(missing)
	}
	return nil
}

// missingOf returns the names of empty fields in a stable order.
func missingOf(fields map[string]string) string {
	order := []string{"login", "password", "old_password", "new_password", "to_login", "message"}
	var missing []string
	for _, name := range order {
		if v, ok := fields[name]; ok && v == "" {
			missing = append(missing, name)
		}
	}
	return strings.Join(missing, ", ")
}
