package handlers

import (
	"mime/multipart"

	"github.com/pbdsce/Zenith-sub000/dto"
)

// fileFromForm opens a multipart file header into the transport-agnostic
// shape the services take. Caller closes via the returned func.
func fileFromForm(fh *multipart.FileHeader) (*dto.FileUpload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &dto.FileUpload{
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     f,
	}, func() { f.Close() }, nil
}
