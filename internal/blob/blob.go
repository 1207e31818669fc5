// Package blob defines the upload-intake boundary: an opaque object store
// keyed by path that hands back a stable, dereferenceable URL.
package blob

import (
	"context"
	"io"
)

// Store is the object storage contract. Implementations must not report
// success until the object is durably accepted; callers treat the returned
// URL as the moment the upload became real.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader) (url string, err error)
}
