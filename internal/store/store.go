// Package store persists finished research for signed-in users.
package store

import (
	"context"
	"errors"

	"github.com/arqiv-labs/research-pipeline/internal/model"
)

// ErrAlreadySaved reports a duplicate (user_id, topic, category, depth)
// save attempt. Callers surface it as "already saved", not a failure.
var ErrAlreadySaved = errors.New("research already saved")

// ErrNotFound reports a lookup miss.
var ErrNotFound = errors.New("saved research not found")

// Store is the persistence interface for saved research.
type Store interface {
	// Save inserts a record, returning ErrAlreadySaved when the user
	// already saved this (topic, category, depth) combination.
	Save(ctx context.Context, rec model.SavedResearch) (*model.SavedResearch, error)

	// ListByUser returns a user's saved research, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]model.SavedResearch, error)

	// Get returns one record by id.
	Get(ctx context.Context, id string) (*model.SavedResearch, error)

	// Delete removes one record owned by the user.
	Delete(ctx context.Context, userID, id string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
