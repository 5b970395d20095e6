package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("budget not found")

// Budget is a per-user, per-category spending limit. The store does not
// enforce uniqueness per (user, category); consumers tolerate
// duplicates deterministically (last created wins).
type Budget struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Category  string
	Limit     decimal.Decimal
	CreatedAt time.Time
}
