package entity

import (
	"time"

	"github.com/google/uuid"
)

// APIToken is an opaque bearer credential minted at login. Tokens are never
// mutated; expiry is enforced at authentication time against CreatedAt.
type APIToken struct {
	ID        int64
	Hash      string
	CreatedAt time.Time
	UserID    uuid.UUID
}
