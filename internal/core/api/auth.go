package api

import (
	"context"
	"net/http"
)

type credentials struct {
	Username string `json:"username"`
	Pin      string `json:"pin"`
}

type userPayload struct {
	Username string `json:"username"`
}

// Signup creates an account and returns the signed-in username.
func (c *Client) Signup(ctx context.Context, username, pin string) (string, error) {
	var payload userPayload
	if err := c.post(ctx, "/api/signup", credentials{Username: username, Pin: pin}, &payload); err != nil {
		return "", err
	}
	return payload.Username, nil
}

// Login authenticates and returns the signed-in username.
func (c *Client) Login(ctx context.Context, username, pin string) (string, error) {
	var payload userPayload
	if err := c.post(ctx, "/api/login", credentials{Username: username, Pin: pin}, &payload); err != nil {
		return "", err
	}
	return payload.Username, nil
}

// Logout drops the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/logout", nil, nil)
}

// CheckAuth probes whether the stored credential is still valid. A 401
// here is the normal logged-out answer and does not fire the
// unauthorized hook.
func (c *Client) CheckAuth(ctx context.Context) (string, error) {
	var payload userPayload
	if err := c.do(ctx, http.MethodGet, "/api/check_auth", nil, &payload, true); err != nil {
		return "", err
	}
	return payload.Username, nil
}

// ChangePIN replaces the account PIN.
func (c *Client) ChangePIN(ctx context.Context, oldPIN, newPIN string) error {
	body := map[string]string{"old_pin": oldPIN, "new_pin": newPIN}
	return c.put(ctx, "/api/pin", body, nil)
}

// Profile fetches the free-form profile note the assistant is primed with.
func (c *Client) Profile(ctx context.Context) (string, error) {
	var payload struct {
		ProfileInfo string `json:"profile_info"`
	}
	if err := c.get(ctx, "/api/profile", &payload); err != nil {
		return "", err
	}
	return payload.ProfileInfo, nil
}

// SaveProfile stores the profile note.
func (c *Client) SaveProfile(ctx context.Context, info string) error {
	return c.post(ctx, "/api/profile", map[string]string{"profile_info": info}, nil)
}
