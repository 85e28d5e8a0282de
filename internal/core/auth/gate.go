// Package auth holds the client's authentication state and runs the
// code-collection flows for signup and PIN changes.
package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/bigsister-app/bigsister/internal/core/api"
	"github.com/bigsister-app/bigsister/internal/core/confirm"
	"github.com/bigsister-app/bigsister/internal/core/models"
	"github.com/bigsister-app/bigsister/internal/core/session"
)

// Gate wraps the auth endpoints and owns the signed-in username. Any
// 401 from the service (outside the auth probe) forces a logout: local
// state is dropped and the registered hook moves the UI back to the
// unauthenticated view.
type Gate struct {
	client   *api.Client
	prompt   *confirm.Prompt
	sessions *session.Store

	mu       sync.Mutex
	username string
	onLogout func()
}

// NewGate wires the gate to the client's unauthorized hook.
func NewGate(client *api.Client, prompt *confirm.Prompt, sessions *session.Store) *Gate {
	g := &Gate{client: client, prompt: prompt, sessions: sessions}
	client.OnUnauthorized(g.forceLogout)
	return g
}

// OnForcedLogout registers the hook run when credentials are rejected
// mid-session.
func (g *Gate) OnForcedLogout(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onLogout = fn
}

// Username returns the signed-in username, if any.
func (g *Gate) Username() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.username, g.username != ""
}

// CheckAuth probes the stored credential and restores the signed-in
// state when it is still valid.
func (g *Gate) CheckAuth(ctx context.Context) (string, error) {
	username, err := g.client.CheckAuth(ctx)
	if err != nil {
		return "", err
	}
	g.mu.Lock()
	g.username = username
	g.mu.Unlock()
	return username, nil
}

// Login authenticates with an existing account.
func (g *Gate) Login(ctx context.Context, username, pin string) error {
	if username == "" || pin == "" {
		return &models.ValidationError{Field: "login", Reason: "username and PIN are required"}
	}
	name, err := g.client.Login(ctx, username, pin)
	if err != nil {
		return err
	}
	g.mu.Lock()
	g.username = name
	g.mu.Unlock()
	return nil
}

// Signup creates an account. The PIN is collected twice through the
// confirmation prompt; both requests are non-cancellable because
// abandoning a first-time PIN setup would leave the account unusable.
func (g *Gate) Signup(ctx context.Context, username string, acceptedTOS bool) error {
	if !acceptedTOS {
		return &models.ValidationError{Field: "terms", Reason: "you must agree to the terms of service"}
	}
	if len(username) < 3 {
		return &models.ValidationError{Field: "username", Reason: "must be at least 3 characters"}
	}

	pin, err := g.prompt.Collect(confirm.Request{
		Title:       "Set Your Account PIN",
		Prompt:      "Create a 4-digit PIN for your new account.",
		SubmitLabel: "Set PIN",
		Cancellable: false,
	})
	if err != nil {
		return fmt.Errorf("collect PIN: %w", err)
	}
	confirmed, err := g.prompt.Collect(confirm.Request{
		Title:       "Confirm PIN",
		Prompt:      "Please enter the PIN again to confirm.",
		SubmitLabel: "Confirm",
		Cancellable: false,
	})
	if err != nil {
		return fmt.Errorf("confirm PIN: %w", err)
	}
	if pin != confirmed {
		return &models.ValidationError{Field: "pin", Reason: "PINs did not match"}
	}

	name, err := g.client.Signup(ctx, username, pin)
	if err != nil {
		return err
	}
	g.mu.Lock()
	g.username = name
	g.mu.Unlock()
	return nil
}

// Logout drops the server session and all local state.
func (g *Gate) Logout(ctx context.Context) error {
	err := g.client.Logout(ctx)
	g.reset()
	return err
}

// ChangePIN collects a new PIN twice through the confirmation prompt
// (cancellable: the account already has a working PIN) and submits the
// change.
func (g *Gate) ChangePIN(ctx context.Context, oldPIN string) error {
	if oldPIN == "" {
		return &models.ValidationError{Field: "old_pin", Reason: "current PIN is required"}
	}

	newPIN, err := g.prompt.Collect(confirm.Request{
		Title:       "Change PIN",
		Prompt:      "Enter your new 4-digit PIN.",
		SubmitLabel: "Continue",
		Cancellable: true,
	})
	if err != nil {
		return err
	}
	confirmed, err := g.prompt.Collect(confirm.Request{
		Title:       "Confirm New PIN",
		Prompt:      "Please enter the new PIN again.",
		SubmitLabel: "Change PIN",
		Cancellable: true,
	})
	if err != nil {
		return err
	}
	if newPIN != confirmed {
		return &models.ValidationError{Field: "pin", Reason: "PINs did not match"}
	}

	return g.client.ChangePIN(ctx, oldPIN, newPIN)
}

func (g *Gate) forceLogout() {
	g.reset()
	g.mu.Lock()
	hook := g.onLogout
	g.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func (g *Gate) reset() {
	g.mu.Lock()
	g.username = ""
	g.mu.Unlock()
	if g.sessions != nil {
		g.sessions.Reset()
	}
}
