package settings

import (
	"context"
)

// Repository defines the interface for settings persistence
type Repository interface {
	// FindAll returns every setting ordered by key
	FindAll(ctx context.Context) ([]Setting, error)

	// FindByKey finds one setting
	FindByKey(ctx context.Context, key string) (*Setting, error)

	// Upsert creates or replaces one setting
	Upsert(ctx context.Context, s *Setting) error

	// UpsertAll creates or replaces several settings in one transaction
	UpsertAll(ctx context.Context, settings []Setting) error
}
