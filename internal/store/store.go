package store

import (
	"context"

	"github.com/spriteforge/autopaint/internal/store/model"
)

// Repository is the main contract for the data layer.
type Repository interface {
	Sessions() SessionRepository

	Close() error
}

type SessionRepository interface {
	// Log stores a finished generation session.
	Log(ctx context.Context, session *model.Session) error
	// GetRecent returns the last N sessions, newest first.
	GetRecent(ctx context.Context, limit int) ([]model.Session, error)
}
