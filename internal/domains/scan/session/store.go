package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("scan session not found")

	// ErrSessionUnavailable - session đã paired hoặc đã kết thúc.
	// Sessions là single-use: một desktop, một phone, một lần.
	ErrSessionUnavailable = errors.New("scan session unavailable")
)

// State của một scan session
type State int

const (
	// StateIdle - desktop đã mở, chờ phone
	StateIdle State = iota
	// StatePaired - phone đã join
	StatePaired
	// StateEnded - một bên disconnect hoặc janitor sweep
	StateEnded
)

// Session - pairing record giữa desktop và phone
type Session struct {
	ID        string
	State     State
	CreatedAt time.Time
	PairedAt  time.Time
}

// Store quản lý lifecycle của scan sessions
type Store interface {
	// Create opens a new Idle session with a random ID
	Create(ctx context.Context) (*Session, error)

	// Get returns a snapshot of the session
	Get(ctx context.Context, id string) (*Session, error)

	// BindPhone transitions Idle -> Paired
	// Returns: ErrSessionNotFound / ErrSessionUnavailable
	BindPhone(ctx context.Context, id string) error

	// End transitions sang Ended. Idempotent.
	End(ctx context.Context, id string) error

	// SweepIdle ends Idle sessions created trước cutoff
	// Returns: IDs của sessions vừa bị end
	SweepIdle(ctx context.Context, cutoff time.Time) ([]string, error)
}

// MemoryStore - in-process Store. Sessions gắn với websocket
// connections trên chính instance này nên không cần shared storage.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

// Create implements Store.Create
func (s *MemoryStore) Create(_ context.Context) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{
		ID:        uuid.NewString(),
		State:     StateIdle,
		CreatedAt: time.Now().UTC(),
	}
	s.sessions[sess.ID] = sess

	snapshot := *sess
	return &snapshot, nil
}

// Get implements Store.Get
func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	snapshot := *sess
	return &snapshot, nil
}

// BindPhone implements Store.BindPhone
func (s *MemoryStore) BindPhone(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if sess.State != StateIdle {
		return ErrSessionUnavailable
	}

	sess.State = StatePaired
	sess.PairedAt = time.Now().UTC()
	return nil
}

// End implements Store.End
func (s *MemoryStore) End(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}

	sess.State = StateEnded
	// Ended sessions không bao giờ được reuse - xoá luôn
	delete(s.sessions, id)
	return nil
}

// SweepIdle implements Store.SweepIdle
func (s *MemoryStore) SweepIdle(_ context.Context, cutoff time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var swept []string
	for id, sess := range s.sessions {
		if sess.State == StateIdle && sess.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
			swept = append(swept, id)
		}
	}

	return swept, nil
}
