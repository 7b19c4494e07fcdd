package media

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary implements Uploader against the Cloudinary upload API.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(url, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, publicID, kind string) (Asset, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       c.folder,
		ResourceType: kind,
	})
	if err != nil {
		return Asset{}, fmt.Errorf("media upload: %w", err)
	}
	return Asset{PublicID: res.PublicID, URL: res.SecureURL}, nil
}

func (c *Cloudinary) Destroy(ctx context.Context, publicID, kind string) error {
	_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: kind,
	})
	if err != nil {
		return fmt.Errorf("media destroy: %w", err)
	}
	return nil
}
