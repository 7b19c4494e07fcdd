package media

import (
	"context"
	"io"
)

// Asset kinds, matching the media host's resource types.
const (
	KindRaw   = "raw"
	KindImage = "image"
)

// Asset is a stored file on the media host.
type Asset struct {
	PublicID string
	URL      string
}

// Uploader abstracts the media host so handlers and tests never touch the
// SDK directly.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, publicID, kind string) (Asset, error)
	Destroy(ctx context.Context, publicID, kind string) error
}
