package wallet

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/afrikabal/gateway-go/internal/backendtest"
	"github.com/afrikabal/gateway-go/internal/config"
	"github.com/afrikabal/gateway-go/internal/gateway"
	"github.com/afrikabal/gateway-go/internal/session"
	"github.com/afrikabal/gateway-go/pkg/apierr"
)

func newTestService(t *testing.T, backend *backendtest.Gateway, store session.Store) *Service {
	t.Helper()

	cfg := &config.Config{
		Environment: "development",
		UserAgent:   "gateway-go-test/1.0",
		Gateway: config.GatewayConfig{
			DevBaseURL: backend.URL(),
			Timeout:    5 * time.Second,
		},
	}
	return NewService(gateway.NewClient(cfg, store))
}

func TestGetBalance(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.Stub(http.MethodGet, "/wallet/balance", http.StatusOK,
		`{"data":{"available":1050.75,"pending":200,"currency":"RWF"}}`)

	svc := newTestService(t, backend, session.NewMemoryStore())

	balance, err := svc.GetBalance(context.Background())
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if balance.Available != 1050.75 {
		t.Errorf("Got available %v, want 1050.75", balance.Available)
	}
	if balance.Currency != "RWF" {
		t.Errorf("Got currency %q, want RWF", balance.Currency)
	}
}

func TestTransfer(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.Stub(http.MethodPost, "/wallet/transfer", http.StatusOK,
		`{"data":{"id":"tx-1","type":"transfer","amount":50,"currency":"RWF","status":"completed"}}`)

	svc := newTestService(t, backend, session.NewMemoryStore())

	tx, err := svc.Transfer(context.Background(), TransferPayload{
		Recipient: "coop-42",
		Amount:    50,
		Currency:  "RWF",
	})
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if tx.ID != "tx-1" || tx.Status != "completed" {
		t.Errorf("Got transaction %+v, want tx-1 completed", tx)
	}
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.Stub(http.MethodPost, "/wallet/transfer", http.StatusUnprocessableEntity,
		`{"message":"insufficient funds"}`)

	svc := newTestService(t, backend, session.NewMemoryStore())

	_, err := svc.Transfer(context.Background(), TransferPayload{Recipient: "coop-42", Amount: 1e9, Currency: "RWF"})
	if !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if apiErr := apierr.FromErr(err); apiErr.Message != "insufficient funds" {
		t.Errorf("Got message %q, want server-supplied message", apiErr.Message)
	}
}

func TestGetTransactions(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.Stub(http.MethodGet, "/wallet/transactions", http.StatusOK,
		`{"data":[{"id":"tx-1","type":"deposit","amount":100},{"id":"tx-2","type":"withdraw","amount":25}]}`)

	svc := newTestService(t, backend, session.NewMemoryStore())

	txs, err := svc.GetTransactions(context.Background())
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("Got %d transactions, want 2", len(txs))
	}
	if txs[0].ID != "tx-1" || txs[1].ID != "tx-2" {
		t.Errorf("Got transactions %+v in wrong order", txs)
	}
}

// Two independent reads racing each other must each succeed or fail on their
// own; a failure on one path must not disturb the other's session state
// beyond the shared 401 clear.
func TestConcurrentReadsAreIndependent(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.Stub(http.MethodGet, "/wallet/balance", http.StatusOK,
		`{"data":{"available":10,"currency":"RWF"}}`)
	backend.Stub(http.MethodGet, "/wallet/transactions", http.StatusInternalServerError, nil)

	store := session.NewMemoryStore()
	seeded := session.Session{AccessToken: "token", RefreshToken: "refresh", ExpiresAt: time.Now().Add(time.Hour)}
	if err := store.Save(context.Background(), seeded); err != nil {
		t.Fatalf("Failed to seed session: %v", err)
	}
	svc := newTestService(t, backend, store)

	var wg sync.WaitGroup
	var balanceErr, txErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, balanceErr = svc.GetBalance(context.Background())
	}()
	go func() {
		defer wg.Done()
		_, txErr = svc.GetTransactions(context.Background())
	}()
	wg.Wait()

	if balanceErr != nil {
		t.Errorf("Balance read should succeed, got %v", balanceErr)
	}
	if !apierr.IsKind(txErr, apierr.KindServer) {
		t.Errorf("Transactions read should fail with server error, got %v", txErr)
	}

	// A 500 is not a 401: the session must survive.
	sess, _ := store.Load(context.Background())
	if sess.AccessToken != "token" {
		t.Errorf("Session disturbed by concurrent failure: %+v", sess)
	}
}
