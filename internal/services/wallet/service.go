// Package wallet wraps the gateway's wallet endpoints.
package wallet

import (
	"context"
	"time"

	"github.com/afrikabal/gateway-go/internal/gateway"
	"github.com/afrikabal/gateway-go/pkg/apierr"
)

type Service struct {
	client *gateway.Client
}

func NewService(client *gateway.Client) *Service {
	return &Service{client: client}
}

// Balance is the wallet's current state.
type Balance struct {
	Available float64 `json:"available"`
	Pending   float64 `json:"pending"`
	Currency  string  `json:"currency"`
}

// Transaction is one wallet ledger entry.
type Transaction struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TransferPayload moves funds to another wallet.
type TransferPayload struct {
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Note      string  `json:"note,omitempty"`
}

// WithdrawPayload moves funds out to an external channel.
type WithdrawPayload struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Destination string  `json:"destination"`
}

// DepositPayload funds the wallet from an external source.
type DepositPayload struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Method   string  `json:"method"`
}

// GetBalance returns the wallet's current balance.
func (s *Service) GetBalance(ctx context.Context) (*Balance, error) {
	var env gateway.Envelope
	if err := s.client.Get(ctx, "/wallet/balance", &env); err != nil {
		return nil, apierr.FromErr(err)
	}

	var balance Balance
	if err := env.Decode(&balance); err != nil {
		return nil, apierr.FromErr(err)
	}
	return &balance, nil
}

// Transfer sends funds to another wallet.
func (s *Service) Transfer(ctx context.Context, payload TransferPayload) (*Transaction, error) {
	return s.post(ctx, "/wallet/transfer", payload)
}

// GetTransactions lists the wallet's ledger entries.
func (s *Service) GetTransactions(ctx context.Context) ([]Transaction, error) {
	var env gateway.Envelope
	if err := s.client.Get(ctx, "/wallet/transactions", &env); err != nil {
		return nil, apierr.FromErr(err)
	}

	var transactions []Transaction
	if err := env.Decode(&transactions); err != nil {
		return nil, apierr.FromErr(err)
	}
	return transactions, nil
}

// Withdraw moves funds out of the wallet.
func (s *Service) Withdraw(ctx context.Context, payload WithdrawPayload) (*Transaction, error) {
	return s.post(ctx, "/wallet/withdraw", payload)
}

// Deposit funds the wallet.
func (s *Service) Deposit(ctx context.Context, payload DepositPayload) (*Transaction, error) {
	return s.post(ctx, "/wallet/deposit", payload)
}

func (s *Service) post(ctx context.Context, path string, payload any) (*Transaction, error) {
	var env gateway.Envelope
	if err := s.client.Post(ctx, path, payload, &env); err != nil {
		return nil, apierr.FromErr(err)
	}

	var tx Transaction
	if err := env.Decode(&tx); err != nil {
		return nil, apierr.FromErr(err)
	}
	return &tx, nil
}
