package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp *time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{"sub": "user-1"}
	if exp != nil {
		claims["exp"] = exp.Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func TestTokenExpiry(t *testing.T) {
	t.Run("token with exp claim", func(t *testing.T) {
		exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
		got, ok := TokenExpiry(signedToken(t, &exp))

		if !ok {
			t.Fatal("Expected expiry to be found")
		}
		if !got.Equal(exp) {
			t.Errorf("Got expiry %v, want %v", got, exp)
		}
	})

	t.Run("token without exp claim", func(t *testing.T) {
		_, ok := TokenExpiry(signedToken(t, nil))
		if ok {
			t.Error("Expected no expiry for token without exp claim")
		}
	})

	t.Run("opaque token", func(t *testing.T) {
		_, ok := TokenExpiry("not-a-jwt")
		if ok {
			t.Error("Expected no expiry for opaque token")
		}
	})

	t.Run("session expiry falls back to exp claim", func(t *testing.T) {
		exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
		sess := New(signedToken(t, &exp), "refresh", 0, nil)

		if !sess.ExpiresAt.Equal(exp) {
			t.Errorf("Got session expiry %v, want %v", sess.ExpiresAt, exp)
		}
	})
}
