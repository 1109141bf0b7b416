// Package session keeps per-user wallet sessions in process memory.
// There is no persistence: records live for the lifetime of the process
// and are created lazily on first interaction.
package session

import (
	"fmt"
	"sync"

	"github.com/m3rciful/walletbot/internal/i18n"
)

// Placeholder deposit addresses assigned to every new session.
// Real custody is out of scope; these mirror the demo wallet.
const (
	PlaceholderETHAddress = "0x..."
	PlaceholderTONAddress = "EQ..."
)

// Session stores locale preference and placeholder wallet data for one user.
// Addresses are fixed at creation and balances are never mutated here.
type Session struct {
	// Locale is empty until the user explicitly picks a language.
	Locale    i18n.Locale
	Addresses map[string]string
	Balances  map[string]float64
}

func newSession() *Session {
	return &Session{
		Addresses: map[string]string{
			"ETH": PlaceholderETHAddress,
			"TON": PlaceholderTONAddress,
		},
		Balances: map[string]float64{
			"ETH": 0,
			"TON": 0,
		},
	}
}

func (s *Session) snapshot() Session {
	out := Session{
		Locale:    s.Locale,
		Addresses: make(map[string]string, len(s.Addresses)),
		Balances:  make(map[string]float64, len(s.Balances)),
	}
	for k, v := range s.Addresses {
		out.Addresses[k] = v
	}
	for k, v := range s.Balances {
		out.Balances[k] = v
	}
	return out
}

// Store is an in-memory session registry keyed by Telegram user id.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
	}
}

// GetOrCreate returns a snapshot of the user's session, creating it with
// defaults on first call. Calling twice with the same id never creates a
// second record.
func (s *Store) GetOrCreate(userID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = newSession()
		s.sessions[userID] = sess
	}
	return sess.snapshot()
}

// Get returns a snapshot of the user's session if it exists.
func (s *Store) Get(userID int64) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return Session{}, false
	}
	return sess.snapshot(), true
}

// SetLocale sets the locale on an existing or newly created session.
// An unsupported locale is a configuration error, not user input.
func (s *Store) SetLocale(userID int64, loc i18n.Locale) error {
	if _, ok := i18n.Parse(string(loc)); !ok {
		return fmt.Errorf("session: unsupported locale %q", loc)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = newSession()
		s.sessions[userID] = sess
	}
	sess.Locale = loc
	return nil
}

// Len reports the number of live sessions, for diagnostics.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
