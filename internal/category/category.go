package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrForbidden = errors.New("category belongs to another user")
)

// Category labels transactions. Default categories are global (no
// owner); users may add their own on top.
type Category struct {
	ID        uuid.UUID
	UserID    *uuid.UUID // nil for global defaults
	Name      string
	Icon      string
	IsDefault bool
	CreatedAt time.Time
}
