package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the back-office user aggregate. Password holds the bcrypt hash;
// PlainPassword is transient request state and must be erased before the
// record reaches the store.
type User struct {
	ID            uuid.UUID
	Username      string `validate:"required,min=3,max=30"`
	Password      string `validate:"-"`
	PlainPassword string `validate:"omitempty,min=5,max=4096,nefield=Username"`
	Email         string `validate:"required,email"`
	Roles         []string
	FirstName     string `validate:"required,min=2,max=80"`
	LastName      string `validate:"required,min=2,max=80"`
	Job           string `validate:"omitempty,max=160"`
	Description   string `validate:"omitempty,max=4000"`
	CreationTime  time.Time
}

// EraseCredentials clears the transient plain password.
func (u *User) EraseCredentials() {
	u.PlainPassword = ""
}

// Session is the minimal user projection stored alongside a bearer token.
// Nothing beyond these three fields may ever be cached for a session.
type Session struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
}

// Session returns the session projection for this user.
func (u *User) Session() Session {
	return Session{ID: u.ID, Username: u.Username, PasswordHash: u.Password}
}
