// Package marketplace wraps the gateway's commodity listing endpoints.
package marketplace

import (
	"context"
	"fmt"
	"net/url"
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

// Listing is one commodity offer on the marketplace.
type Listing struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Commodity    string    `json:"commodity"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	PricePerUnit float64   `json:"price_per_unit"`
	Currency     string    `json:"currency"`
	Location     string    `json:"location"`
	TraderID     string    `json:"trader_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListingPayload carries a new or updated listing.
type ListingPayload struct {
	Title        string  `json:"title"`
	Commodity    string  `json:"commodity"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"price_per_unit"`
	Currency     string  `json:"currency"`
	Location     string  `json:"location"`
}

// GetListings returns every active listing.
func (s *Service) GetListings(ctx context.Context) ([]Listing, error) {
	return s.list(ctx, "/marketplace/listings")
}

// AddListing publishes a new listing.
func (s *Service) AddListing(ctx context.Context, payload ListingPayload) (*Listing, error) {
	var env gateway.Envelope
	if err := s.client.Post(ctx, "/marketplace/listings", payload, &env); err != nil {
		return nil, apierr.FromErr(err)
	}
	return decodeListing(&env)
}

// GetListingByID fetches one listing.
func (s *Service) GetListingByID(ctx context.Context, id string) (*Listing, error) {
	var env gateway.Envelope
	if err := s.client.Get(ctx, fmt.Sprintf("/marketplace/listings/%s", id), &env); err != nil {
		return nil, apierr.FromErr(err)
	}
	return decodeListing(&env)
}

// UpdateListing replaces an existing listing.
func (s *Service) UpdateListing(ctx context.Context, id string, payload ListingPayload) (*Listing, error) {
	var env gateway.Envelope
	if err := s.client.Put(ctx, fmt.Sprintf("/marketplace/listings/%s", id), payload, &env); err != nil {
		return nil, apierr.FromErr(err)
	}
	return decodeListing(&env)
}

// SearchListings queries listings by free text.
func (s *Service) SearchListings(ctx context.Context, query string) ([]Listing, error) {
	return s.list(ctx, fmt.Sprintf("/marketplace/listings/search?q=%s", url.QueryEscape(query)))
}

func (s *Service) list(ctx context.Context, path string) ([]Listing, error) {
	var env gateway.Envelope
	if err := s.client.Get(ctx, path, &env); err != nil {
		return nil, apierr.FromErr(err)
	}

	var listings []Listing
	if err := env.Decode(&listings); err != nil {
		return nil, apierr.FromErr(err)
	}
	return listings, nil
}

func decodeListing(env *gateway.Envelope) (*Listing, error) {
	var listing Listing
	if err := env.Decode(&listing); err != nil {
		return nil, apierr.FromErr(err)
	}
	return &listing, nil
}
