// Package clientinfo resolves the caller's public IP address and coarse
// location via two public lookup services. These calls bypass the gateway
// client: they hit third-party hosts and never carry credentials.
package clientinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/afrikabal/gateway-go/internal/config"
)

const lookupTimeout = 10 * time.Second

type Service struct {
	client       *http.Client
	ipLookupURL  string
	geoLookupURL string
	userAgent    string
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		client:       &http.Client{Timeout: lookupTimeout},
		ipLookupURL:  cfg.ClientInfo.IPLookupURL,
		geoLookupURL: cfg.ClientInfo.GeoLookupURL,
		userAgent:    cfg.UserAgent,
	}
}

// Details describes the calling client, attached to audit-sensitive
// operations such as login.
type Details struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	Location  string `json:"location"`
}

// GetClientDetails resolves the caller's IP, then its location from that IP.
// The second lookup only runs after the first succeeds. Lookup failures
// never propagate; the operation resolves to Unknown placeholders instead.
func (s *Service) GetClientDetails(ctx context.Context) Details {
	fallback := Details{
		IPAddress: "Unknown",
		UserAgent: s.userAgent,
		Location:  "Unknown",
	}

	ip, err := s.lookupIP(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("IP lookup failed, using fallback client details")
		return fallback
	}

	location, err := s.lookupLocation(ctx, ip)
	if err != nil {
		log.Warn().Err(err).Str("ip", ip).Msg("Geolocation lookup failed, using fallback client details")
		return fallback
	}

	return Details{
		IPAddress: ip,
		UserAgent: s.userAgent,
		Location:  location,
	}
}

func (s *Service) lookupIP(ctx context.Context) (string, error) {
	var resp struct {
		IP string `json:"ip"`
	}
	if err := s.getJSON(ctx, s.ipLookupURL, &resp); err != nil {
		return "", err
	}
	if resp.IP == "" {
		return "", fmt.Errorf("IP lookup returned empty address")
	}
	return resp.IP, nil
}

func (s *Service) lookupLocation(ctx context.Context, ip string) (string, error) {
	var resp struct {
		City    string `json:"city"`
		Country string `json:"country"`
	}
	if err := s.getJSON(ctx, fmt.Sprintf("%s/%s", s.geoLookupURL, ip), &resp); err != nil {
		return "", err
	}
	if resp.City == "" && resp.Country == "" {
		return "", fmt.Errorf("geolocation lookup returned no location")
	}
	if resp.City == "" {
		return resp.Country, nil
	}
	return fmt.Sprintf("%s, %s", resp.City, resp.Country), nil
}

func (s *Service) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lookup returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
