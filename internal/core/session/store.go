// Package session owns the client's view of chat sessions: a local
// cache of summaries and message histories kept in sync with the
// authoritative remote store, plus the current-session pointer.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bigsister-app/bigsister/internal/core/api"
	"github.com/bigsister-app/bigsister/internal/core/models"
)

// ErrNoSuchSession is returned for operations on an id the cache does
// not know.
var ErrNoSuchSession = errors.New("no such session")

// Store caches sessions and talks to the remote service. The local
// cache is mutated only after the corresponding remote call succeeds,
// so a failed operation leaves the user free to retry from a consistent
// state. Operations on the same session id are serialized.
type Store struct {
	client *api.Client

	mu        sync.Mutex
	sessions  []models.Session
	currentID string

	opsMu sync.Mutex
	ops   map[string]*sync.Mutex
}

// NewStore creates an empty store backed by client.
func NewStore(client *api.Client) *Store {
	return &Store{
		client: client,
		ops:    make(map[string]*sync.Mutex),
	}
}

// sessionLock returns the per-id mutex, creating it on first use.
// A slow rename and a fast delete on the same session must not race.
func (s *Store) sessionLock(id string) *sync.Mutex {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	if m, ok := s.ops[id]; ok {
		return m
	}
	m := &sync.Mutex{}
	s.ops[id] = m
	return m
}

// List fetches session summaries from the service and replaces the
// cached summaries. Message histories already loaded for sessions that
// still exist are carried over.
func (s *Store) List(ctx context.Context) ([]models.Session, error) {
	fetched, err := s.client.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	loaded := make(map[string][]models.Message, len(s.sessions))
	for _, cached := range s.sessions {
		if len(cached.Messages) > 0 {
			loaded[cached.ID] = cached.Messages
		}
	}
	for i := range fetched {
		if msgs, ok := loaded[fetched[i].ID]; ok && len(fetched[i].Messages) == 0 {
			fetched[i].Messages = msgs
		}
	}
	s.sessions = fetched
	if s.currentID != "" && s.indexLocked(s.currentID) < 0 {
		s.currentID = ""
	}
	return s.snapshotLocked(), nil
}

// Sessions returns a copy of the cached summaries.
func (s *Store) Sessions() []models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Create starts a new session from seed. The server supplies the
// session id and the seeded greeting message. On success the new
// session becomes current.
func (s *Store) Create(ctx context.Context, seed api.Seed) (models.Session, error) {
	created, err := s.client.CreateSession(ctx, seed)
	if err != nil {
		return models.Session{}, fmt.Errorf("create session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append([]models.Session{created}, s.sessions...)
	s.currentID = created.ID
	return created, nil
}

// Rename changes a session's name remotely, then in the cache. On
// failure the cache is untouched.
func (s *Store) Rename(ctx context.Context, id, name string) error {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	if err := s.client.RenameSession(ctx, id, name); err != nil {
		return fmt.Errorf("rename session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		s.sessions[i].Name = name
	}
	return nil
}

// Delete removes a session remotely, then from the cache. If the
// deleted session was current, the pointer is cleared.
func (s *Store) Delete(ctx context.Context, id string) error {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	if err := s.client.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
	}
	if s.currentID == id {
		s.currentID = ""
	}
	return nil
}

// LoadMessages fetches the authoritative history for id and replaces —
// never merges — the cached sequence, so optimistic appends that failed
// silently cannot leave the cache diverged. On success id becomes the
// current session.
func (s *Store) LoadMessages(ctx context.Context, id string) ([]models.Message, error) {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	messages, err := s.client.SessionMessages(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		s.sessions[i].Messages = messages
	}
	s.currentID = id
	return append([]models.Message(nil), messages...), nil
}

// AppendLocal appends a message to the cached history without a remote
// call. This is the optimistic-update path used while a send is in
// flight; the next LoadMessages replaces it with the server's version.
func (s *Store) AppendLocal(id string, msg models.Message) error {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return ErrNoSuchSession
	}
	s.sessions[i].Messages = append(s.sessions[i].Messages, msg)
	return nil
}

// CurrentID returns the current session id, or "" when none is selected.
func (s *Store) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// Current returns the current session, if one is selected.
func (s *Store) Current() (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(s.currentID); i >= 0 {
		return s.copyLocked(i), true
	}
	return models.Session{}, false
}

// Get returns the cached session with the given id.
func (s *Store) Get(id string) (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.copyLocked(i), true
	}
	return models.Session{}, false
}

// Reset drops all cached state. Called on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = nil
	s.currentID = ""
}

func (s *Store) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) copyLocked(i int) models.Session {
	c := s.sessions[i]
	c.Messages = append([]models.Message(nil), c.Messages...)
	return c
}

func (s *Store) snapshotLocked() []models.Session {
	out := make([]models.Session, len(s.sessions))
	for i := range s.sessions {
		out[i] = s.copyLocked(i)
	}
	return out
}
