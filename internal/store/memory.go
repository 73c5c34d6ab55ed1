package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush/mentor-sessions/backend/internal/models"
)

// MemoryStore keeps users and sessions in process. It serves the memory
// store driver and tests; ids have the same shape as MongoDB ids.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]models.User
	byEmail  map[string]string
	sessions map[string]models.Session
	order    []string // insertion order of session ids
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]models.User),
		byEmail:  make(map[string]string),
		sessions: make(map[string]models.Session),
	}
}

func (m *MemoryStore) CreateUser(ctx context.Context, email, hashedPassword string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[email]; ok {
		return nil, ErrDuplicateEmail
	}
	u := models.User{
		ID:        primitive.NewObjectID().Hex(),
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: time.Now().UTC(),
	}
	m.users[u.ID] = u
	m.byEmail[email] = u.ID
	return &u, nil
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	u := m.users[id]
	return &u, nil
}

func (m *MemoryStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[strings.ToLower(id)]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *MemoryStore) Create(ctx context.Context, sess *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	sess.ID = primitive.NewObjectID().Hex()
	sess.CreatedAt = now
	sess.UpdatedAt = now
	m.sessions[sess.ID] = *sess
	m.order = append(m.order, sess.ID)
	return nil
}

func (m *MemoryStore) ListByOwner(ctx context.Context, userID string) ([]models.Session, error) {
	return m.filter(func(s models.Session) bool { return s.UserID == userID }), nil
}

func (m *MemoryStore) ListPublished(ctx context.Context) ([]models.Session, error) {
	return m.filter(func(s models.Session) bool { return s.Status == models.StatusPublished }), nil
}

func (m *MemoryStore) filter(keep func(models.Session) bool) []models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Session, 0)
	for _, id := range m.order {
		if s := m.sessions[id]; keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func (m *MemoryStore) Update(ctx context.Context, userID, id string, u models.SessionUpdate) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[strings.ToLower(id)]
	if !ok || s.UserID != userID {
		return nil, ErrNotFound
	}
	u.Apply(&s)
	s.UpdatedAt = time.Now().UTC()
	m.sessions[s.ID] = s
	return &s, nil
}

func (m *MemoryStore) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id = strings.ToLower(id)
	s, ok := m.sessions[id]
	if !ok || s.UserID != userID {
		return ErrNotFound
	}
	delete(m.sessions, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
