// Package repotest provides an in-memory users repo for service and handler tests
package repotest

import (
	"context"
	"sync"
	"time"

	"wildwatch/internal/core/gate"
	"wildwatch/internal/modkit/repokit"
	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/services/subscribers/domain"
	"wildwatch/internal/services/subscribers/repo"

	"github.com/google/uuid"
)

// Memory is a goroutine-safe Repo
type Memory struct {
	mu    sync.Mutex
	users []domain.User

	// Err, when set, fails every call
	Err error
	// SkipTakenCheck makes TakenField report nothing so the insert-time constraint path is exercised
	SkipTakenCheck bool
}

// NewMemory returns an empty Memory
func NewMemory() *Memory { return &Memory{} }

// Binder binds every Queryer to m
func (m *Memory) Binder() repokit.Binder[repo.Repo] {
	return repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return m })
}

// Seed stores u as is; an empty ID gets a uuid
func (m *Memory) Seed(u domain.User) domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	m.users = append(m.users, u)
	return u
}

// Snapshot returns the user with id, ok false when missing
func (m *Memory) Snapshot(id string) (domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return domain.User{}, false
	}
	return m.users[i], true
}

func (m *Memory) index(id string) int {
	for i, u := range m.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// Create implements repo.Repo
func (m *Memory) Create(_ context.Context, in domain.NewUser) (domain.User, error) {
	if m.Err != nil {
		return domain.User{}, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == in.Username {
			return domain.User{}, perr.WithField(perr.DuplicateKeyf("insert user"), "username")
		}
		if u.Email == in.Email {
			return domain.User{}, perr.WithField(perr.DuplicateKeyf("insert user"), "email")
		}
	}
	now := time.Now().UTC()
	u := domain.User{
		ID: uuid.NewString(), Username: in.Username, Name: in.Name, Surname: in.Surname,
		Email: in.Email, PhoneNumber: in.PhoneNumber, Notifications: in.Notifications,
		AlertFrequency: in.AlertFrequency, IsSubscribed: true, CreatedAt: now, UpdatedAt: now,
	}
	m.users = append(m.users, u)
	return u, nil
}

// TakenField implements repo.Repo
func (m *Memory) TakenField(_ context.Context, username, email string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.SkipTakenCheck {
		return "", nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	field := ""
	for _, u := range m.users {
		if u.Username == username {
			return "username", nil
		}
		if u.Email == email {
			field = "email"
		}
	}
	return field, nil
}

// Get implements repo.Repo
func (m *Memory) Get(_ context.Context, id string) (domain.User, error) {
	if m.Err != nil {
		return domain.User{}, m.Err
	}
	if u, ok := m.Snapshot(id); ok {
		return u, nil
	}
	return domain.User{}, perr.NotFoundf("User not found")
}

// List implements repo.Repo
func (m *Memory) List(_ context.Context, f domain.ListFilter) ([]domain.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		if f.AnyChannel && !u.Notifications.Any() {
			continue
		}
		if f.SubscribedOnly && !u.IsSubscribed {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// FindByUsernameOrPhone implements repo.Repo
func (m *Memory) FindByUsernameOrPhone(_ context.Context, username, phone string) (domain.User, error) {
	if m.Err != nil {
		return domain.User{}, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if (username != "" && u.Username == username) || (phone != "" && u.PhoneNumber == phone) {
			return u, nil
		}
	}
	return domain.User{}, perr.NotFoundf("User not found")
}

// Delete implements repo.Repo
func (m *Memory) Delete(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return perr.NotFoundf("User not found")
	}
	m.users = append(m.users[:i], m.users[i+1:]...)
	return nil
}

// SetSubscribed implements repo.Repo
func (m *Memory) SetSubscribed(_ context.Context, id string, subscribed bool) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return perr.NotFoundf("User not found")
	}
	m.users[i].IsSubscribed = subscribed
	return nil
}

// UpdateSettings implements repo.Repo
func (m *Memory) UpdateSettings(_ context.Context, id string, n domain.Notifications, freq int) (domain.User, error) {
	if m.Err != nil {
		return domain.User{}, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return domain.User{}, perr.NotFoundf("User not found")
	}
	m.users[i].Notifications = n
	m.users[i].AlertFrequency = freq
	return m.users[i], nil
}

// Claim implements repo.Repo with the same rule as the SQL statement
func (m *Memory) Claim(_ context.Context, id string, now time.Time) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 || !m.users[i].IsSubscribed {
		return false, nil
	}
	u := &m.users[i]
	if !gate.ShouldNotify(u.AlertFrequency, u.LastNotifiedAt, now) {
		return false, nil
	}
	stamp := now
	u.LastNotifiedAt = &stamp
	return true, nil
}

var _ repo.Repo = (*Memory)(nil)
