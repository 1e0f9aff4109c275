// Package country wraps the gateway's country reference endpoint.
package country

import (
	"context"

	"github.com/afrikabal/gateway-go/internal/gateway"
	"github.com/afrikabal/gateway-go/pkg/apierr"
)

type Service struct {
	client *gateway.Client
}

func NewService(client *gateway.Client) *Service {
	return &Service{client: client}
}

type Country struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	DialCode string `json:"dial_code"`
	Currency string `json:"currency"`
}

// GetAllCountries lists the countries the marketplace operates in.
func (s *Service) GetAllCountries(ctx context.Context) ([]Country, error) {
	var env gateway.Envelope
	if err := s.client.Get(ctx, "/country", &env); err != nil {
		return nil, apierr.FromErr(err)
	}

	var countries []Country
	if err := env.Decode(&countries); err != nil {
		return nil, apierr.FromErr(err)
	}
	return countries, nil
}
