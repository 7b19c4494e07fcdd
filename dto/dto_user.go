package dto

// ProfileUpdateInput carries a partial multipart update. Pointer fields
// distinguish "absent" from "set to empty".
type ProfileUpdateInput struct {
	Name     *string
	Age      *int
	Gender   *string
	College  *string
	Bio      *string
	LinkedIn *string

	Resume *FileUpload
	Avatar *FileUpload
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}
