// Package api implements the JSON-over-HTTP client for the BigSister
// service. All requests carry the session cookie; a 401 on any endpoint
// except the auth check fires the registered unauthorized hook so the
// caller can force a logout.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/bigsister-app/bigsister/internal/core/models"
)

const (
	// DefaultTimeout bounds every request; there is no streaming endpoint.
	DefaultTimeout = 30 * time.Second

	// maxResponseSize caps response bodies to keep a misbehaving server
	// from exhausting memory.
	maxResponseSize = 4 * 1024 * 1024
)

// ErrUnauthorized indicates the server rejected the session credentials.
var ErrUnauthorized = errors.New("not authenticated")

// RemoteError is a non-success status from the service.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (HTTP %d)", e.Status)
}

// Client talks to the BigSister service.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	onUnauthorized func()
}

// New creates a client for the given base URL. The cookie jar holds the
// session credential set by login/signup.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: DefaultTimeout,
		},
	}, nil
}

// OnUnauthorized registers the hook invoked when any request other than
// the auth check comes back 401. At most one hook may be registered.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// do issues one JSON request. out may be nil when the response body is
// irrelevant. The authCheck flag suppresses the unauthorized hook for
// the /check_auth probe, which is expected to 401 when logged out.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authCheck bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if !authCheck && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{Status: resp.StatusCode, Message: errorMessage(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, false)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, false)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out, false)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, false)
}

// errorMessage pulls the {"error": "..."} field out of a failure body.
func errorMessage(data []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.Error
}

// Seed is the context a new session is created from: either the answers
// of the check-in quiz or a reflection context built from a journal
// entry. Exactly one side should be set.
type Seed struct {
	QuizAnswers       []string `json:"quiz_answers,omitempty"`
	ReflectionContext string   `json:"reflection_context,omitempty"`
}

// sessionPayload is the wire form of a session summary.
type sessionPayload struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	CreatedAt      time.Time       `json:"created_at"`
	IsActive       bool            `json:"is_active"`
	InitialMessage *models.Message `json:"initial_message,omitempty"`
}

func (p sessionPayload) toModel() models.Session {
	s := models.Session{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		IsActive:  p.IsActive,
	}
	if p.InitialMessage != nil {
		s.Messages = []models.Message{*p.InitialMessage}
	}
	return s
}

// ListSessions fetches all session summaries, newest first.
func (c *Client) ListSessions(ctx context.Context) ([]models.Session, error) {
	var payload []sessionPayload
	if err := c.get(ctx, "/api/sessions", &payload); err != nil {
		return nil, err
	}
	sessions := make([]models.Session, 0, len(payload))
	for _, p := range payload {
		sessions = append(sessions, p.toModel())
	}
	return sessions, nil
}

// CreateSession starts a new session from the given seed. The server
// responds with the session and its seeded greeting message; the client
// never fabricates the greeting locally.
func (c *Client) CreateSession(ctx context.Context, seed Seed) (models.Session, error) {
	var payload sessionPayload
	if err := c.post(ctx, "/api/sessions", seed, &payload); err != nil {
		return models.Session{}, err
	}
	return payload.toModel(), nil
}

// RenameSession changes a session's display name.
func (c *Client) RenameSession(ctx context.Context, id, name string) error {
	return c.put(ctx, "/api/sessions/"+id, map[string]string{"name": name}, nil)
}

// DeleteSession permanently removes a session and its messages.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/sessions/"+id)
}

// SessionMessages fetches the authoritative message history of a session.
func (c *Client) SessionMessages(ctx context.Context, id string) ([]models.Message, error) {
	var messages []models.Message
	if err := c.get(ctx, "/api/sessions/"+id+"/messages", &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Chat sends a user message within a session and returns the reply text.
func (c *Client) Chat(ctx context.Context, sessionID, message string) (string, error) {
	body := map[string]string{"message": message, "session_id": sessionID}
	var payload struct {
		Reply string `json:"reply"`
	}
	if err := c.post(ctx, "/api/chat", body, &payload); err != nil {
		return "", err
	}
	return payload.Reply, nil
}
