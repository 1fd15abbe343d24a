package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/cardshow/deal-engine/pkg/session"
)

// Storage defines the persistence interface for player sessions.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Session operations
	SaveSession(ctx context.Context, id uuid.UUID, s *session.Session) error
	// LoadSession retrieves a session by UUID.
	// Returns nil if the session doesn't exist.
	LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}
