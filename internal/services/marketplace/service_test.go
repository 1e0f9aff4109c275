package marketplace

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/afrikabal/gateway-go/internal/backendtest"
	"github.com/afrikabal/gateway-go/internal/config"
	"github.com/afrikabal/gateway-go/internal/gateway"
	"github.com/afrikabal/gateway-go/internal/session"
)

func newTestService(t *testing.T, backend *backendtest.Gateway) *Service {
	t.Helper()

	cfg := &config.Config{
		Environment: "development",
		UserAgent:   "gateway-go-test/1.0",
		Gateway: config.GatewayConfig{
			DevBaseURL: backend.URL(),
			Timeout:    5 * time.Second,
		},
	}
	return NewService(gateway.NewClient(cfg, session.NewMemoryStore()))
}

func TestGetListings(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.Stub(http.MethodGet, "/marketplace/listings", http.StatusOK,
		`{"data":[{"id":"l-1","commodity":"maize","price_per_unit":320,"currency":"KES"}]}`)

	svc := newTestService(t, backend)

	listings, err := svc.GetListings(context.Background())
	if err != nil {
		t.Fatalf("GetListings failed: %v", err)
	}
	if len(listings) != 1 || listings[0].Commodity != "maize" {
		t.Errorf("Got listings %+v, want one maize listing", listings)
	}
}

func TestSearchListingsEscapesQuery(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()

	var gotQuery string
	backend.StubFunc(http.MethodGet, "/marketplace/listings/search", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"data":[]}`))
	})

	svc := newTestService(t, backend)

	if _, err := svc.SearchListings(context.Background(), "green beans & peas"); err != nil {
		t.Fatalf("SearchListings failed: %v", err)
	}
	if gotQuery != "green beans & peas" {
		t.Errorf("Got query %q, want the raw search text round-tripped", gotQuery)
	}
}

func TestUpdateListing(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.Stub(http.MethodPut, "/marketplace/listings/l-1", http.StatusOK,
		`{"data":{"id":"l-1","commodity":"maize","price_per_unit":340}}`)

	svc := newTestService(t, backend)

	listing, err := svc.UpdateListing(context.Background(), "l-1", ListingPayload{
		Commodity:    "maize",
		PricePerUnit: 340,
	})
	if err != nil {
		t.Fatalf("UpdateListing failed: %v", err)
	}
	if listing.PricePerUnit != 340 {
		t.Errorf("Got price %v, want 340", listing.PricePerUnit)
	}
}
