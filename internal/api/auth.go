package api

import (
	"context"
	"fmt"

	"github.com/syrianarchive/archivectl/internal/model"
	"github.com/syrianarchive/archivectl/internal/session"
)

// AuthService handles login, logout and the session lifecycle.
type AuthService struct {
	client *Client
}

// LoginResponse is the /auth/login/ payload.
type LoginResponse struct {
	Access  string     `json:"access"`
	Refresh string     `json:"refresh"`
	User    model.User `json:"user"`
}

// Login authenticates with username/password and persists the resulting
// token pair and identity. A banned account surfaces as a permission error
// with the server's message.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, validationError("username and password required")
	}

	var resp LoginResponse
	err := s.client.PostPublic(ctx, "/auth/login/", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	sess := session.Session{
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
		UserID:       resp.User.ID,
		Role:         resp.User.Role,
	}
	if err := s.client.Store().Save(sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return &resp.User, nil
}

// Logout destroys the local session. The documented design has no server-side
// invalidation endpoint; the refresh token simply expires.
func (s *AuthService) Logout() error {
	return s.client.Store().Clear()
}

// Session returns the current session, if any.
func (s *AuthService) Session() (session.Session, bool) {
	return s.client.Store().Current()
}
