// Package media uploads product and portfolio images to the hosted media store.
package media

import "context"

// Store is the object store images are hosted on
type Store interface {
	// Put uploads data under key and returns its public URL
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete removes the object under key
	Delete(ctx context.Context, key string) error
	// URLFor returns the public URL of key
	URLFor(key string) string
	// KeyFromURL returns the key of a URL served by the store, or false when
	// the URL is hosted elsewhere
	KeyFromURL(url string) (string, bool)
}
