package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/afrikabal/gateway-go/internal/backendtest"
	"github.com/afrikabal/gateway-go/internal/config"
	"github.com/afrikabal/gateway-go/internal/gateway"
	"github.com/afrikabal/gateway-go/internal/session"
	"github.com/afrikabal/gateway-go/pkg/apierr"
)

func newTestService(t *testing.T, backend *backendtest.Gateway) (*Service, session.Store) {
	t.Helper()

	cfg := &config.Config{
		Environment: "development",
		UserAgent:   "gateway-go-test/1.0",
		Gateway: config.GatewayConfig{
			DevBaseURL: backend.URL(),
			Timeout:    5 * time.Second,
		},
	}
	store := session.NewMemoryStore()
	client := gateway.NewClient(cfg, store)
	return NewService(client, store), store
}

func TestLogin_Success(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.Stub(http.MethodPost, "/auth/login", http.StatusOK, `{
		"data": {
			"access_token": "access-abc",
			"refresh_token": "refresh-def",
			"expires_in": 3600,
			"user": {"id": "u-1", "role": "farmer"}
		}
	}`)

	svc, store := newTestService(t, backend)
	before := time.Now()

	data, err := svc.Login(context.Background(), LoginPayload{
		Email:    "farmer@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)
	require.Equal(t, "access-abc", data.AccessToken)

	sess, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "access-abc", sess.AccessToken)
	require.Equal(t, "refresh-def", sess.RefreshToken)
	require.JSONEq(t, `{"id":"u-1","role":"farmer"}`, string(sess.User))
	require.True(t, sess.ExpiresAt.After(before), "expiry must be after the call time")
}

func TestLogin_MissingDataRejectsWithoutWriting(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.Stub(http.MethodPost, "/auth/login", http.StatusOK, `{"message":"ok"}`)

	svc, store := newTestService(t, backend)

	_, err := svc.Login(context.Background(), LoginPayload{
		Email:    "farmer@example.com",
		Password: "secret-pass",
	})
	require.Error(t, err)

	sess, loadErr := store.Load(context.Background())
	require.NoError(t, loadErr)
	require.True(t, sess.IsZero(), "nothing may be written on a malformed login response")
}

func TestLogin_InvalidPayloadSkipsNetwork(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()

	svc, _ := newTestService(t, backend)

	_, err := svc.Login(context.Background(), LoginPayload{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	require.True(t, apierr.IsKind(err, apierr.KindValidation))
	require.Empty(t, backend.Requests(), "validation failures must not reach the gateway")
}

func TestLogin_ServerRejection(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.Stub(http.MethodPost, "/auth/login", http.StatusUnauthorized, `{"message":"bad credentials"}`)

	svc, store := newTestService(t, backend)

	_, err := svc.Login(context.Background(), LoginPayload{
		Email:    "farmer@example.com",
		Password: "wrong-pass",
	})
	require.True(t, apierr.IsKind(err, apierr.KindAuth))
	require.EqualError(t, apierr.FromErr(err), "auth (401): bad credentials")

	sess, _ := store.Load(context.Background())
	require.True(t, sess.IsZero())
}

func TestLogout_ClearsSessionEvenWhenRequestFails(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.Stub(http.MethodPost, "/auth/logout", http.StatusInternalServerError, `{"message":"revoke failed"}`)

	svc, store := newTestService(t, backend)
	require.NoError(t, store.Save(context.Background(), session.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	}))

	err := svc.Logout(context.Background())
	require.True(t, apierr.IsKind(err, apierr.KindServer))

	sess, _ := store.Load(context.Background())
	require.True(t, sess.IsZero(), "logout must clear the full session regardless of the revoke outcome")
}

func TestLogout_TreatsExpiredSessionAsSuccess(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.Stub(http.MethodPost, "/auth/logout", http.StatusUnauthorized, nil)

	svc, store := newTestService(t, backend)
	require.NoError(t, store.Save(context.Background(), session.Session{AccessToken: "stale"}))

	require.NoError(t, svc.Logout(context.Background()))

	sess, _ := store.Load(context.Background())
	require.True(t, sess.IsZero())
}

func TestCheckUsername(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.Stub(http.MethodPost, "/user/check-username", http.StatusOK, `{"data":{"available":true}}`)

	svc, _ := newTestService(t, backend)

	available, err := svc.CheckUsername(context.Background(), "wanjiku")
	require.NoError(t, err)
	require.True(t, available)
}

func TestValidateOtp_BadCode(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()

	svc, _ := newTestService(t, backend)

	err := svc.ValidateOtp(context.Background(), OtpPayload{Email: "farmer@example.com", Code: "12"})
	require.True(t, apierr.IsKind(err, apierr.KindValidation))
}

func TestRegister_Success(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.Stub(http.MethodPost, "/auth/register", http.StatusOK, `{"data":{"id":"u-9"}}`)

	svc, store := newTestService(t, backend)

	data, err := svc.Register(context.Background(), RegisterPayload{
		Username: "wanjiku",
		Email:    "wanjiku@example.com",
		Password: "long-enough-pass",
		Role:     "trader",
		Country:  "KE",
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"u-9"}`, string(data))

	// Registration never logs the user in.
	sess, _ := store.Load(context.Background())
	require.True(t, sess.IsZero())
}
