// Package admin wraps the gateway's user administration endpoints.
package admin

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

// User is one managed account as the admin endpoints report it.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// GetAllUsers lists every account.
func (s *Service) GetAllUsers(ctx context.Context) ([]User, error) {
	var env gateway.Envelope
	if err := s.client.Get(ctx, "/admin/users", &env); err != nil {
		return nil, apierr.FromErr(err)
	}

	var users []User
	if err := env.Decode(&users); err != nil {
		return nil, apierr.FromErr(err)
	}
	return users, nil
}

// DeleteUser removes an account by ID.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("/admin/users/%s", userID), nil); err != nil {
		return apierr.FromErr(err)
	}
	return nil
}
