package prefs

import (
	"context"
)

// Repository stores string preferences by key.
type Repository interface {
	// Get returns common.ErrorNotFound when key has never been set.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
}
