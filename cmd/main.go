package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/afrikabal/gateway-go/internal/config"
	"github.com/afrikabal/gateway-go/internal/services"
	"github.com/afrikabal/gateway-go/internal/services/auth"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg := config.MustLoad(*configPath)
	svc := services.InitializeServices(cfg)

	ctx := context.Background()

	email := os.Getenv("AFRIKABAL_EMAIL")
	password := os.Getenv("AFRIKABAL_PASSWORD")
	if email == "" || password == "" {
		log.Fatal().Msg("AFRIKABAL_EMAIL and AFRIKABAL_PASSWORD must be set")
	}

	details := svc.ClientInfo().GetClientDetails(ctx)
	log.Info().
		Str("ip", details.IPAddress).
		Str("location", details.Location).
		Msg("Resolved client details")

	if _, err := svc.Auth().Login(ctx, auth.LoginPayload{Email: email, Password: password}); err != nil {
		log.Fatal().Err(err).Msg("Login failed")
	}
	log.Info().Str("email", email).Msg("Logged in")

	balance, err := svc.Wallet().GetBalance(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch wallet balance")
	}
	log.Info().
		Float64("available", balance.Available).
		Float64("pending", balance.Pending).
		Str("currency", balance.Currency).
		Msg("Wallet balance")

	countries, err := svc.Country().GetAllCountries(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch countries")
	}
	log.Info().Int("count", len(countries)).Msg("Fetched countries")

	if err := svc.Auth().Logout(ctx); err != nil {
		log.Warn().Err(err).Msg("Logout failed")
	}
}
