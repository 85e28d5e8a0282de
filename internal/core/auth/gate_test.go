package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bigsister-app/bigsister/internal/core/api"
	"github.com/bigsister-app/bigsister/internal/core/confirm"
	"github.com/bigsister-app/bigsister/internal/core/models"
)

type authService struct {
	mux       *http.ServeMux
	signups   atomic.Int64
	pinPuts   atomic.Int64
	rejectAll atomic.Bool
}

func newAuthService() *authService {
	s := &authService{mux: http.NewServeMux()}
	writeUser := func(w http.ResponseWriter, name string) {
		json.NewEncoder(w).Encode(map[string]string{"username": name})
	}
	s.mux.HandleFunc("POST /api/signup", func(w http.ResponseWriter, r *http.Request) {
		s.signups.Add(1)
		var body struct{ Username string }
		json.NewDecoder(r.Body).Decode(&body)
		writeUser(w, body.Username)
	})
	s.mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string
			Pin      string
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Pin != "1234" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid username or PIN"})
			return
		}
		writeUser(w, body.Username)
	})
	s.mux.HandleFunc("POST /api/logout", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	s.mux.HandleFunc("GET /api/check_auth", func(w http.ResponseWriter, r *http.Request) {
		if s.rejectAll.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeUser(w, "maya")
	})
	s.mux.HandleFunc("PUT /api/pin", func(w http.ResponseWriter, r *http.Request) {
		s.pinPuts.Add(1)
		var body struct {
			OldPin string `json:"old_pin"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.OldPin != "1234" {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "Current PIN is incorrect"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	s.mux.HandleFunc("GET /api/sessions", func(w http.ResponseWriter, r *http.Request) {
		if s.rejectAll.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Not authenticated"})
			return
		}
		json.NewEncoder(w).Encode([]any{})
	})
	return s
}

func newTestGate(t *testing.T) (*Gate, *confirm.Prompt, *authService) {
	t.Helper()
	svc := newAuthService()
	srv := httptest.NewServer(svc.mux)
	t.Cleanup(srv.Close)
	client, err := api.New(srv.URL)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	prompt := confirm.New()
	return NewGate(client, prompt, nil), prompt, svc
}

// answerPrompts feeds codes to the prompt as requests appear.
func answerPrompts(t *testing.T, prompt *confirm.Prompt, codes ...string) {
	t.Helper()
	go func() {
		for _, code := range codes {
			deadline := time.Now().Add(2 * time.Second)
			for {
				if _, ok := prompt.Outstanding(); ok {
					break
				}
				if time.Now().After(deadline) {
					return
				}
				time.Sleep(time.Millisecond)
			}
			prompt.Submit(code)
			// Let Collect consume the result before the next request.
			for {
				if _, ok := prompt.Outstanding(); !ok {
					break
				}
				time.Sleep(time.Millisecond)
			}
		}
	}()
}

func TestSignupCollectsMatchingPINs(t *testing.T) {
	gate, prompt, svc := newTestGate(t)
	answerPrompts(t, prompt, "4321", "4321")

	if err := gate.Signup(context.Background(), "maya", true); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if got := svc.signups.Load(); got != 1 {
		t.Errorf("signup requests = %d, want 1", got)
	}
	if name, ok := gate.Username(); !ok || name != "maya" {
		t.Errorf("Username() = %q, %v", name, ok)
	}
}

func TestSignupMismatchedPINs(t *testing.T) {
	gate, prompt, svc := newTestGate(t)
	answerPrompts(t, prompt, "4321", "9999")

	err := gate.Signup(context.Background(), "maya", true)
	var verr *models.ValidationError
	if !errors.As(err, &verr) || verr.Field != "pin" {
		t.Fatalf("Signup err = %v, want pin validation error", err)
	}
	if got := svc.signups.Load(); got != 0 {
		t.Errorf("signup requests = %d, want 0", got)
	}
}

func TestSignupValidatesBeforePrompting(t *testing.T) {
	gate, prompt, _ := newTestGate(t)

	err := gate.Signup(context.Background(), "ab", true)
	var verr *models.ValidationError
	if !errors.As(err, &verr) || verr.Field != "username" {
		t.Fatalf("short username err = %v", err)
	}
	err = gate.Signup(context.Background(), "maya", false)
	if !errors.As(err, &verr) || verr.Field != "terms" {
		t.Fatalf("unaccepted terms err = %v", err)
	}
	if _, ok := prompt.Outstanding(); ok {
		t.Error("validation failure should not open a code request")
	}
}

func TestLoginAndLogout(t *testing.T) {
	gate, _, _ := newTestGate(t)
	ctx := context.Background()

	if err := gate.Login(ctx, "maya", "0000"); err == nil {
		t.Fatal("wrong PIN should fail")
	}
	if err := gate.Login(ctx, "maya", "1234"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if name, ok := gate.Username(); !ok || name != "maya" {
		t.Fatalf("Username() = %q, %v", name, ok)
	}
	if err := gate.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok := gate.Username(); ok {
		t.Error("username should be cleared after logout")
	}
}

func TestCheckAuthRestoresSession(t *testing.T) {
	gate, _, _ := newTestGate(t)
	name, err := gate.CheckAuth(context.Background())
	if err != nil {
		t.Fatalf("CheckAuth: %v", err)
	}
	if name != "maya" {
		t.Errorf("name = %q", name)
	}
	if got, ok := gate.Username(); !ok || got != "maya" {
		t.Errorf("Username() = %q, %v", got, ok)
	}
}

func TestChangePIN(t *testing.T) {
	gate, prompt, svc := newTestGate(t)
	answerPrompts(t, prompt, "5678", "5678")

	if err := gate.ChangePIN(context.Background(), "1234"); err != nil {
		t.Fatalf("ChangePIN: %v", err)
	}
	if got := svc.pinPuts.Load(); got != 1 {
		t.Errorf("pin requests = %d, want 1", got)
	}
}

func TestChangePINCancelled(t *testing.T) {
	gate, prompt, svc := newTestGate(t)
	go func() {
		for {
			if _, ok := prompt.Outstanding(); ok {
				prompt.Cancel()
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()

	err := gate.ChangePIN(context.Background(), "1234")
	if !errors.Is(err, confirm.ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	if got := svc.pinPuts.Load(); got != 0 {
		t.Errorf("pin requests = %d, want 0", got)
	}
}

func TestUnauthorizedForcesLogout(t *testing.T) {
	svc := newAuthService()
	srv := httptest.NewServer(svc.mux)
	t.Cleanup(srv.Close)
	client, err := api.New(srv.URL)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	prompt := confirm.New()
	gate := NewGate(client, prompt, nil)

	loggedOut := make(chan struct{}, 1)
	gate.OnForcedLogout(func() { loggedOut <- struct{}{} })

	if _, err := gate.CheckAuth(context.Background()); err != nil {
		t.Fatalf("CheckAuth: %v", err)
	}
	svc.rejectAll.Store(true)
	if _, err := client.ListSessions(context.Background()); !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}

	select {
	case <-loggedOut:
	case <-time.After(time.Second):
		t.Fatal("forced-logout hook never fired")
	}
	if _, ok := gate.Username(); ok {
		t.Error("username should be cleared after 401")
	}
}
