package session

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// TokenKey is the secure storage key holding the bearer token.
const TokenKey = "access_token"

// Store is the client session shared by every screen. It holds the signed-in
// user, the record handed from a list screen to an edit screen, and the
// per-topic refresh subscriptions.
type Store struct {
	storage SecureStorage

	mu       sync.RWMutex
	token    string
	userName string
	editData any

	subMu  sync.Mutex
	nextID int
	subs   map[string]map[int]func(topic string)
}

func New(storage SecureStorage) *Store {
	return &Store{
		storage: storage,
		subs:    make(map[string]map[int]func(string)),
	}
}

// Restore loads a previously persisted token. It reports whether one was found.
func (s *Store) Restore() (bool, error) {
	token, ok, err := s.storage.Get(TokenKey)
	if err != nil {
		return false, fmt.Errorf("restore session: %w", err)
	}
	if !ok || token == "" {
		return false, nil
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return true, nil
}

// Token satisfies apiclient.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) UserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userName
}

func (s *Store) IsLoggedIn() bool {
	return s.Token() != ""
}

// SignIn persists token before exposing it, so a failed write leaves the
// session signed out.
func (s *Store) SignIn(token, userName string) error {
	if token == "" {
		return fmt.Errorf("sign in: empty token")
	}
	if err := s.storage.Set(TokenKey, token); err != nil {
		return fmt.Errorf("sign in: persist token: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.userName = userName
	s.mu.Unlock()
	logrus.WithField("userName", userName).Info("Signed in")
	return nil
}

// SignOut removes the persisted token and clears all in-memory state. The
// in-memory state is cleared even if the storage delete fails.
func (s *Store) SignOut() error {
	err := s.storage.Delete(TokenKey)
	s.mu.Lock()
	s.token = ""
	s.userName = ""
	s.editData = nil
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	logrus.Info("Signed out")
	return nil
}

func (s *Store) SetEditData(v any) {
	s.mu.Lock()
	s.editData = v
	s.mu.Unlock()
}

func (s *Store) EditData() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editData
}

func (s *Store) ClearEditData() {
	s.SetEditData(nil)
}

// Subscribe registers fn to run on every Publish of topic. The returned
// function removes the subscription; calling it twice is harmless.
func (s *Store) Subscribe(topic string, fn func(topic string)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextID++
	id := s.nextID
	if s.subs[topic] == nil {
		s.subs[topic] = make(map[int]func(string))
	}
	s.subs[topic][id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs[topic], id)
		if len(s.subs[topic]) == 0 {
			delete(s.subs, topic)
		}
	}
}

// Publish notifies every subscriber of topic. Callbacks run synchronously
// outside the lock, so they may subscribe or publish themselves.
func (s *Store) Publish(topic string) {
	s.subMu.Lock()
	fns := make([]func(string), 0, len(s.subs[topic]))
	for _, fn := range s.subs[topic] {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(topic)
	}
}
