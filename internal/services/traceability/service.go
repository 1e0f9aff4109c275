// Package traceability wraps the gateway's produce batch tracking endpoints.
package traceability

import (
	"context"
	"fmt"
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

// Record tracks one produce batch from origin through the supply chain.
type Record struct {
	BatchID   string    `json:"batch_id"`
	Commodity string    `json:"commodity"`
	Origin    string    `json:"origin"`
	Stage     string    `json:"stage"`
	Handler   string    `json:"handler"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordPayload carries a new or updated batch record.
type RecordPayload struct {
	BatchID   string `json:"batch_id"`
	Commodity string `json:"commodity"`
	Origin    string `json:"origin"`
	Stage     string `json:"stage"`
	Handler   string `json:"handler"`
}

// GetData fetches the tracking record for one batch.
func (s *Service) GetData(ctx context.Context, batchID string) (*Record, error) {
	var env gateway.Envelope
	if err := s.client.Get(ctx, fmt.Sprintf("/traceability/%s", batchID), &env); err != nil {
		return nil, apierr.FromErr(err)
	}
	return decodeRecord(&env)
}

// AddRecord registers a new batch.
func (s *Service) AddRecord(ctx context.Context, payload RecordPayload) (*Record, error) {
	var env gateway.Envelope
	if err := s.client.Post(ctx, "/traceability", payload, &env); err != nil {
		return nil, apierr.FromErr(err)
	}
	return decodeRecord(&env)
}

// UpdateRecord advances a batch through the supply chain.
func (s *Service) UpdateRecord(ctx context.Context, batchID string, payload RecordPayload) (*Record, error) {
	var env gateway.Envelope
	if err := s.client.Put(ctx, fmt.Sprintf("/traceability/%s", batchID), payload, &env); err != nil {
		return nil, apierr.FromErr(err)
	}
	return decodeRecord(&env)
}

func decodeRecord(env *gateway.Envelope) (*Record, error) {
	var record Record
	if err := env.Decode(&record); err != nil {
		return nil, apierr.FromErr(err)
	}
	return &record, nil
}
