package banksync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// ProviderAccount is the provider's view of a bank account.
type ProviderAccount struct {
	AccountID        string
	Name             string
	OfficialName     string
	Type             string
	Subtype          string
	Mask             string
	CurrentBalance   decimal.Decimal
	AvailableBalance decimal.Decimal
	CurrencyCode     string
}

// ProviderTransaction is a raw bank transaction as reported by the
// provider. Amount keeps the provider's sign convention: positive for
// money leaving the account.
type ProviderTransaction struct {
	TransactionID  string
	Name           string
	Amount         decimal.Decimal
	Date           time.Time
	Categories     []string
	PaymentChannel string
	CurrencyCode   string
	Pending        bool
}

// ItemCredentials is the long-lived credential pair returned by a
// public-token exchange.
type ItemCredentials struct {
	AccessToken string
	ItemID      string
}

//go:generate mockgen -source=client.go -destination=client_mock.go -package=banksync

// Client talks to the bank aggregation provider.
type Client interface {
	CreateLinkToken(ctx context.Context, clientUserID string) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (ItemCredentials, error)
	GetAccounts(ctx context.Context, accessToken string) ([]ProviderAccount, error)
	GetTransactions(ctx context.Context, accessToken, providerAccountID string, start, end time.Time) ([]ProviderTransaction, error)
}

const (
	sandboxHost    = "https://sandbox.plaid.com"
	productionHost = "https://production.plaid.com"
)

// HTTPClient implements Client against the provider's JSON API.
type HTTPClient struct {
	client      *http.Client
	host        string
	clientID    string
	secret      string
	productName string
}

func NewHTTPClient(environment, clientID, secret string) *HTTPClient {
	host := productionHost
	if environment == "sandbox" {
		host = sandboxHost
	}

	return &HTTPClient{
		client:      &http.Client{Timeout: 30 * time.Second},
		host:        host,
		clientID:    clientID,
		secret:      secret,
		productName: "moneta",
	}
}

func (c *HTTPClient) CreateLinkToken(ctx context.Context, clientUserID string) (string, error) {
	body := map[string]any{
		"user":          map[string]string{"client_user_id": clientUserID},
		"client_name":   c.productName,
		"products":      []string{"transactions"},
		"country_codes": []string{"US", "CA"},
		"language":      "en",
	}

	var resp struct {
		LinkToken string `json:"link_token"`
	}

	if err := c.post(ctx, "/link/token/create", body, &resp); err != nil {
		return "", fmt.Errorf("creating link token: %w", err)
	}

	return resp.LinkToken, nil
}

func (c *HTTPClient) ExchangePublicToken(ctx context.Context, publicToken string) (ItemCredentials, error) {
	body := map[string]any{"public_token": publicToken}

	var resp struct {
		AccessToken string `json:"access_token"`
		ItemID      string `json:"item_id"`
	}

	if err := c.post(ctx, "/item/public_token/exchange", body, &resp); err != nil {
		return ItemCredentials{}, fmt.Errorf("exchanging public token: %w", err)
	}

	return ItemCredentials{AccessToken: resp.AccessToken, ItemID: resp.ItemID}, nil
}

func (c *HTTPClient) GetAccounts(ctx context.Context, accessToken string) ([]ProviderAccount, error) {
	body := map[string]any{"access_token": accessToken}

	var resp struct {
		Accounts []struct {
			AccountID    string  `json:"account_id"`
			Name         string  `json:"name"`
			OfficialName *string `json:"official_name"`
			Type         string  `json:"type"`
			Subtype      *string `json:"subtype"`
			Mask         *string `json:"mask"`
			Balances     struct {
				Current         decimal.Decimal `json:"current"`
				Available       decimal.Decimal `json:"available"`
				ISOCurrencyCode *string         `json:"iso_currency_code"`
			} `json:"balances"`
		} `json:"accounts"`
	}

	if err := c.post(ctx, "/accounts/get", body, &resp); err != nil {
		return nil, fmt.Errorf("fetching accounts: %w", err)
	}

	accounts := make([]ProviderAccount, 0, len(resp.Accounts))

	for _, a := range resp.Accounts {
		accounts = append(accounts, ProviderAccount{
			AccountID:        a.AccountID,
			Name:             a.Name,
			OfficialName:     deref(a.OfficialName),
			Type:             a.Type,
			Subtype:          deref(a.Subtype),
			Mask:             deref(a.Mask),
			CurrentBalance:   a.Balances.Current,
			AvailableBalance: a.Balances.Available,
			CurrencyCode:     deref(a.Balances.ISOCurrencyCode),
		})
	}

	return accounts, nil
}

func (c *HTTPClient) GetTransactions(ctx context.Context, accessToken, providerAccountID string, start, end time.Time) ([]ProviderTransaction, error) {
	body := map[string]any{
		"access_token": accessToken,
		"start_date":   start.UTC().Format("2006-01-02"),
		"end_date":     end.UTC().Format("2006-01-02"),
		"options":      map[string]any{"account_ids": []string{providerAccountID}},
	}

	var resp struct {
		Transactions []struct {
			TransactionID   string          `json:"transaction_id"`
			Name            string          `json:"name"`
			Amount          decimal.Decimal `json:"amount"`
			Date            string          `json:"date"`
			Category        []string        `json:"category"`
			PaymentChannel  *string         `json:"payment_channel"`
			ISOCurrencyCode *string         `json:"iso_currency_code"`
			Pending         bool            `json:"pending"`
		} `json:"transactions"`
	}

	if err := c.post(ctx, "/transactions/get", body, &resp); err != nil {
		return nil, fmt.Errorf("fetching transactions: %w", err)
	}

	transactions := make([]ProviderTransaction, 0, len(resp.Transactions))

	for _, t := range resp.Transactions {
		date, err := time.ParseInLocation("2006-01-02", t.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parsing transaction date %q: %w", t.Date, err)
		}

		transactions = append(transactions, ProviderTransaction{
			TransactionID:  t.TransactionID,
			Name:           t.Name,
			Amount:         t.Amount,
			Date:           date,
			Categories:     t.Category,
			PaymentChannel: deref(t.PaymentChannel),
			CurrencyCode:   deref(t.ISOCurrencyCode),
			Pending:        t.Pending,
		})
	}

	return transactions, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, body map[string]any, out any) error {
	body["client_id"] = c.clientID
	body["secret"] = c.secret

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, path, msg)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
