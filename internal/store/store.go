// Package store persists session snapshots so a session survives a restart
// of the server or a move to another instance.
package store

import (
	"context"
	"errors"

	"github.com/benbeisheim/clickchess-backend/internal/model"
)

var ErrNotFound = errors.New("session not found in store")

type Store interface {
	Save(ctx context.Context, state model.SessionState) error
	// Load returns ErrNotFound when no snapshot exists for id.
	Load(ctx context.Context, id string) (model.SessionState, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
