package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avoronov/moneta/internal/transaction"
)

type transactionResponse struct {
	ID            uuid.UUID          `json:"id"`
	Amount        decimal.Decimal    `json:"amount"`
	Kind          transaction.Kind   `json:"kind"`
	Source        transaction.Source `json:"source"`
	Category      string             `json:"category,omitempty"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	Description   string             `json:"description,omitempty"`
	Date          time.Time          `json:"date"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     *time.Time         `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID,
		Amount:        tx.Amount,
		Kind:          tx.Kind,
		Source:        tx.Source,
		Category:      tx.Category,
		PaymentMethod: tx.PaymentMethod,
		Description:   tx.Description,
		Date:          tx.Date,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
