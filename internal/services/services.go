// Package services wires every domain service to one shared gateway client
// and session store.
package services

import (
	"github.com/rs/zerolog/log"

	"github.com/afrikabal/gateway-go/internal/config"
	"github.com/afrikabal/gateway-go/internal/gateway"
	"github.com/afrikabal/gateway-go/internal/infrastructure/redis"
	"github.com/afrikabal/gateway-go/internal/services/admin"
	"github.com/afrikabal/gateway-go/internal/services/auth"
	"github.com/afrikabal/gateway-go/internal/services/clientinfo"
	"github.com/afrikabal/gateway-go/internal/services/country"
	"github.com/afrikabal/gateway-go/internal/services/files"
	"github.com/afrikabal/gateway-go/internal/services/kyc"
	"github.com/afrikabal/gateway-go/internal/services/marketplace"
	"github.com/afrikabal/gateway-go/internal/services/traceability"
	"github.com/afrikabal/gateway-go/internal/services/wallet"
	"github.com/afrikabal/gateway-go/internal/session"
)

type Services struct {
	adminService        *admin.Service
	authService         *auth.Service
	clientInfoService   *clientinfo.Service
	countryService      *country.Service
	filesService        *files.Service
	kycService          *kyc.Service
	marketplaceService  *marketplace.Service
	traceabilityService *traceability.Service
	walletService       *wallet.Service

	sessions session.Store
	client   *gateway.Client
}

// InitializeServices builds the session store, gateway client, and every
// domain service. Redis is optional; without it sessions stay in memory.
func InitializeServices(cfg *config.Config) *Services {
	log.Info().Str("environment", cfg.Environment).Msg("Initializing gateway services")

	redisService := redis.NewService(cfg.Redis)
	sessions := session.NewStore(redisService, cfg.Session.TTL)
	client := gateway.NewClient(cfg, sessions)

	return &Services{
		adminService:        admin.NewService(client),
		authService:         auth.NewService(client, sessions),
		clientInfoService:   clientinfo.NewService(cfg),
		countryService:      country.NewService(client),
		filesService:        files.NewService(client),
		kycService:          kyc.NewService(client),
		marketplaceService:  marketplace.NewService(client),
		traceabilityService: traceability.NewService(client),
		walletService:       wallet.NewService(client),
		sessions:            sessions,
		client:              client,
	}
}

func (s *Services) Admin() *admin.Service               { return s.adminService }
func (s *Services) Auth() *auth.Service                 { return s.authService }
func (s *Services) ClientInfo() *clientinfo.Service     { return s.clientInfoService }
func (s *Services) Country() *country.Service           { return s.countryService }
func (s *Services) Files() *files.Service               { return s.filesService }
func (s *Services) Kyc() *kyc.Service                   { return s.kycService }
func (s *Services) Marketplace() *marketplace.Service   { return s.marketplaceService }
func (s *Services) Traceability() *traceability.Service { return s.traceabilityService }
func (s *Services) Wallet() *wallet.Service             { return s.walletService }
func (s *Services) Sessions() session.Store             { return s.sessions }
