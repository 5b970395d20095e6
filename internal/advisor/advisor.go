// Package advisor turns the current month's spending breakdown into
// short, personalized saving tips via a text-generation model.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avoronov/moneta/internal/analytics"
	"github.com/avoronov/moneta/internal/money"
	"github.com/avoronov/moneta/internal/transaction"
)

// ErrNoExpenses means there is nothing this month to advise on.
var ErrNoExpenses = errors.New("no expenses to analyze")

//go:generate mockgen -source=advisor.go -destination=advisor_mock.go -package=advisor

// TextGenerator produces a completion for a prompt. Implementations
// wrap a hosted model API.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type TransactionFetcher interface {
	FetchUnified(ctx context.Context, userID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type Service struct {
	generator    TextGenerator
	transactions TransactionFetcher
	now          func() time.Time
}

func NewService(generator TextGenerator, transactions TransactionFetcher) *Service {
	return &Service{
		generator:    generator,
		transactions: transactions,
		now:          time.Now,
	}
}

const systemPrompt = "You are a personal finance assistant. Give short, practical advice."

// Tips summarizes the current month's expenses by category and asks
// the model for three short recommendations, one per returned line.
func (s *Service) Tips(ctx context.Context, userID uuid.UUID) ([]string, error) {
	monthStart := analytics.MonthStart(s.now())
	expenseKind := transaction.KindExpense

	txs, err := s.transactions.FetchUnified(ctx, userID, transaction.ListFilter{
		Kind:  &expenseKind,
		Since: &monthStart,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching expenses for tips: %w", err)
	}

	stats := analytics.ByCategory(txs)
	if len(stats) == 0 {
		return nil, ErrNoExpenses
	}

	total := decimal.Zero
	for _, stat := range stats {
		total = total.Add(stat.Amount)
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "My expenses this month total %s.\n", money.Round(total))
	sb.WriteString("Breakdown by category:\n")

	for _, stat := range stats {
		fmt.Fprintf(&sb, "- %s: %s\n", stat.Category, stat.Amount)
	}

	sb.WriteString("\nAnalyze my spending and suggest 3 short tips to improve my financial habits. Focus on the largest categories.")

	answer, err := s.generator.Generate(ctx, systemPrompt, sb.String())
	if err != nil {
		return nil, fmt.Errorf("generating tips: %w", err)
	}

	var tips []string

	for _, line := range strings.Split(answer, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tips = append(tips, line)
		}
	}

	if len(tips) == 0 {
		tips = []string{"No tips available right now."}
	}

	return tips, nil
}
