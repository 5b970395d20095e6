package paymentmethod

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("payment method not found")
	ErrForbidden = errors.New("payment method belongs to another user")
)

// PaymentMethod is a card or account the user pays with; it labels
// manually entered expenses.
type PaymentMethod struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Bank      string
	CardType  string
	Last4     string
	Icon      string
	CreatedAt time.Time
}
