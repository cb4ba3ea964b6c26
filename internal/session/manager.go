// Package session is the application context handed to everything that
// reads or changes who is logged in. It replaces a process-global "current
// user" with an explicit object.
package session

import (
	"context"
	"fmt"

	"github.com/kaamwala/kaamwala_be/internal/logger"
	"github.com/kaamwala/kaamwala_be/internal/models"
	"github.com/kaamwala/kaamwala_be/internal/realtime"
	"github.com/kaamwala/kaamwala_be/internal/store"
)

type Notifier interface {
	NotifyAuthChanged(clientID string)
	Subscribe(fn func(realtime.AuthEvent)) func()
}

type Manager struct {
	Store    store.Store
	Notifier Notifier
}

func NewManager(st store.Store, n Notifier) *Manager {
	return &Manager{Store: st, Notifier: n}
}

// Current returns nil when clientID is logged out.
func (m *Manager) Current(ctx context.Context, clientID string) (*models.Session, error) {
	s, err := m.Store.Session(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	return s, nil
}

// Establish replaces the session of clientID and notifies subscribers.
func (m *Manager) Establish(ctx context.Context, clientID string, s models.Session) error {
	s.LoggedIn = true
	if err := m.Store.SetSession(ctx, clientID, s); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	logger.Debug("session established", "client", clientID, "role", s.Role)
	m.Notifier.NotifyAuthChanged(clientID)
	return nil
}

func (m *Manager) Clear(ctx context.Context, clientID string) error {
	if err := m.Store.ClearSession(ctx, clientID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	logger.Debug("session cleared", "client", clientID)
	m.Notifier.NotifyAuthChanged(clientID)
	return nil
}

// OnAuthChanged subscribes to session changes of every client context.
func (m *Manager) OnAuthChanged(fn func(realtime.AuthEvent)) func() {
	return m.Notifier.Subscribe(fn)
}
