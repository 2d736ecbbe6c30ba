package domain

import (
	"time"

	"github.com/novachat/nova-chat-server/internal/validation"
)

// User is the persisted account entity. PasswordHash never leaves the server;
// JSON views are built from ID and Login only.
type User struct {
	ID           string
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}

// Valid reports whether the persisted-user invariants hold.
func (u User) Valid() bool {
	return validation.UUIDValid(u.ID) &&
		validation.LoginValid(u.Login) &&
		u.PasswordHash != ""
}
