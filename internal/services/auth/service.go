// Package auth wraps the gateway's authentication endpoints. Login is the
// only operation that writes to the session store; a cleared or absent
// session is handled by the gateway client itself.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/afrikabal/gateway-go/internal/gateway"
	"github.com/afrikabal/gateway-go/internal/session"
	"github.com/afrikabal/gateway-go/pkg/apierr"
)

type Service struct {
	client   *gateway.Client
	sessions session.Store
	validate *validator.Validate
}

func NewService(client *gateway.Client, sessions session.Store) *Service {
	return &Service{
		client:   client,
		sessions: sessions,
		validate: validator.New(),
	}
}

// LoginPayload carries the credentials for a login attempt.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterPayload carries a new account registration.
type RegisterPayload struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin cooperative farmer trader"`
	Country  string `json:"country" validate:"required"`
}

// ResetPasswordPayload carries a password reset completion.
type ResetPasswordPayload struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// OtpPayload carries a one-time-passcode validation attempt.
type OtpPayload struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

// LoginData is the payload the gateway returns on a successful login.
type LoginData struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int64           `json:"expires_in"`
	User         json.RawMessage `json:"user"`
}

// Login authenticates against the gateway and persists the resulting
// session before returning. Nothing is written on failure.
func (s *Service) Login(ctx context.Context, payload LoginPayload) (*LoginData, error) {
	if err := s.validate.Struct(payload); err != nil {
		return nil, apierr.New(apierr.KindValidation, validationMessage(err))
	}

	var resp struct {
		Data *LoginData `json:"data"`
	}
	if err := s.client.Post(ctx, "/auth/login", payload, &resp); err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Login request failed")
		return nil, apierr.FromErr(err)
	}

	if resp.Data == nil || resp.Data.AccessToken == "" {
		return nil, apierr.New(apierr.KindUnknown, "Unable to log in. Please try again.")
	}

	sess := session.New(resp.Data.AccessToken, resp.Data.RefreshToken, resp.Data.ExpiresIn, resp.Data.User)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, apierr.FromErr(fmt.Errorf("failed to persist session: %w", err))
	}

	return resp.Data, nil
}

// Register creates a new account. The caller still has to log in afterwards.
func (s *Service) Register(ctx context.Context, payload RegisterPayload) (json.RawMessage, error) {
	if err := s.validate.Struct(payload); err != nil {
		return nil, apierr.New(apierr.KindValidation, validationMessage(err))
	}

	var env gateway.Envelope
	if err := s.client.Post(ctx, "/auth/register", payload, &env); err != nil {
		return nil, apierr.FromErr(err)
	}
	return env.Data, nil
}

// Logout tells the gateway to revoke the session, then clears the local
// store. The local clear happens even when the revoke call fails; a dead
// backend must not leave credentials behind.
func (s *Service) Logout(ctx context.Context) error {
	reqErr := s.client.Post(ctx, "/auth/logout", nil, nil)

	if err := s.sessions.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to clear session on logout")
		return apierr.FromErr(err)
	}

	if reqErr != nil {
		// A 401 means the session was already dead server-side; treat the
		// logout as successful.
		if apierr.IsKind(reqErr, apierr.KindAuth) {
			return nil
		}
		return apierr.FromErr(reqErr)
	}
	return nil
}

// RequestPasswordReset asks the gateway to send a reset link.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	if err := s.client.Post(ctx, "/auth/forgot-password", payload, nil); err != nil {
		return apierr.FromErr(err)
	}
	return nil
}

// ResetPassword completes a password reset with the emailed token.
func (s *Service) ResetPassword(ctx context.Context, payload ResetPasswordPayload) error {
	if err := s.validate.Struct(payload); err != nil {
		return apierr.New(apierr.KindValidation, validationMessage(err))
	}
	if err := s.client.Post(ctx, "/auth/reset-password", payload, nil); err != nil {
		return apierr.FromErr(err)
	}
	return nil
}

// CheckUsername reports whether a username is still available.
func (s *Service) CheckUsername(ctx context.Context, username string) (bool, error) {
	payload := map[string]string{"username": username}

	var resp struct {
		Data struct {
			Available bool `json:"available"`
		} `json:"data"`
	}
	if err := s.client.Post(ctx, "/user/check-username", payload, &resp); err != nil {
		return false, apierr.FromErr(err)
	}
	return resp.Data.Available, nil
}

// ValidateOtp verifies a one-time passcode.
func (s *Service) ValidateOtp(ctx context.Context, payload OtpPayload) error {
	if err := s.validate.Struct(payload); err != nil {
		return apierr.New(apierr.KindValidation, validationMessage(err))
	}
	if err := s.client.Post(ctx, "/otp-verification/validate", payload, nil); err != nil {
		return apierr.FromErr(err)
	}
	return nil
}

// ResendOtp requests a fresh one-time passcode.
func (s *Service) ResendOtp(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	if err := s.client.Post(ctx, "/otp-verification/resend-otp", payload, nil); err != nil {
		return apierr.FromErr(err)
	}
	return nil
}

// validationMessage flattens a validator error into a single message; the
// raw field errors stay out of the public contract.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("%s failed %s validation", strings.ToLower(fe.Field()), fe.Tag())
	}
	return err.Error()
}
