package session

import (
	"encoding/json"
	"time"
)

// Session holds the authenticated user's credentials and profile. It is
// either fully populated or absent; partial sessions are never persisted.
type Session struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresAt    time.Time       `json:"expires_at"`
	User         json.RawMessage `json:"user"`
}

// IsZero reports whether no session is present.
func (s Session) IsZero() bool {
	return s.AccessToken == "" && s.RefreshToken == "" && s.ExpiresAt.IsZero() && len(s.User) == 0
}

// Expired reports whether the session's access token is past its expiry.
// A session without a known expiry is treated as live.
func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// New builds a Session from a login response. The expiry is derived from
// expiresIn seconds when given; otherwise it falls back to the access
// token's exp claim, when the token is a parseable JWT.
func New(accessToken, refreshToken string, expiresIn int64, user json.RawMessage) Session {
	sess := Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}

	if expiresIn > 0 {
		sess.ExpiresAt = time.Now().Add(time.Duration(expiresIn) * time.Second)
	} else if exp, ok := TokenExpiry(accessToken); ok {
		sess.ExpiresAt = exp
	}

	return sess
}
