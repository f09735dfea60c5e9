// Package kv holds the key-value backends the blog collection can live in.
// Every backend stores one opaque string per key; the blog layer above
// reads and rewrites the whole value on every operation.
package kv

import (
	"context"
	"io"
)

// Backend is the get/set capability the post store needs. A missing key is
// reported as ok == false with a nil error.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
}

// Close releases backend resources when the backend holds any.
func Close(b Backend) error {
	if c, ok := b.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
