package api

import (
	"context"
	gohttp "net/http"

	"github.com/shashiranjanraj/dokon/app/models"
)

// authResponse is the login/register envelope: the user plus a bearer token
// (the backend also sets a session cookie; both are carried).
type authResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Register creates an account and signs the session in. The returned token
// is stored on the client.
func (c *Client) Register(ctx context.Context, in models.RegisterInput) (models.User, error) {
	resp, err := c.call(ctx, gohttp.MethodPost, "auth", "/auth/register", in, nil)
	if err != nil {
		return models.User{}, err
	}

	var out authResponse
	if err := resp.JSON(&out); err != nil {
		return models.User{}, &Error{Kind: KindServer, Message: "malformed auth response", err: err}
	}
	c.SetToken(out.Token)
	return out.User, nil
}

// Login authenticates and stores the returned bearer token on the client.
func (c *Client) Login(ctx context.Context, in models.LoginInput) (models.User, error) {
	resp, err := c.call(ctx, gohttp.MethodPost, "auth", "/auth/login", in, nil)
	if err != nil {
		return models.User{}, err
	}

	var out authResponse
	if err := resp.JSON(&out); err != nil {
		return models.User{}, &Error{Kind: KindServer, Message: "malformed auth response", err: err}
	}
	c.SetToken(out.Token)
	return out.User, nil
}

// Me is the "who am I" check used to recover a session on app start.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	resp, err := c.call(ctx, gohttp.MethodGet, "users", "/users/me", nil, nil)
	if err != nil {
		return models.User{}, err
	}
	return decodeObject[models.User](resp, "user")
}

// UpdateMe applies a partial profile update.
func (c *Client) UpdateMe(ctx context.Context, in models.ProfileInput) (models.User, error) {
	resp, err := c.call(ctx, gohttp.MethodPut, "users", "/users/me", in, nil)
	if err != nil {
		return models.User{}, err
	}
	return decodeObject[models.User](resp, "user")
}

// Logout invalidates the remote session. The caller clears local state
// regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.call(ctx, gohttp.MethodPost, "auth", "/auth/logout", nil, nil)
	return err
}
