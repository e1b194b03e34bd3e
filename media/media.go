// Package media stores uploaded binary objects and hands back public URLs.
package media

import (
	"context"
	"errors"
)

var (
	ErrEmptyPayload = errors.New("media: empty payload")
	ErrMissingName  = errors.New("media: file name required")
)

// Store saves a named payload and returns its public URL.
type Store interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}
