package api

import (
	"context"
	"net/http"

	"querydesk/pkg/querytypes"
)

// Register creates a new account and returns the created user profile.
// Registration does not issue a credential; callers log in afterwards.
func (c *Client) Register(ctx context.Context, req querytypes.RegisterRequest) (*querytypes.User, error) {
	var user querytypes.User
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges username/password credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp querytypes.TokenResponse
	req := querytypes.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// CurrentUser resolves the stored credential to a user profile.
func (c *Client) CurrentUser(ctx context.Context) (*querytypes.User, error) {
	var user querytypes.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
