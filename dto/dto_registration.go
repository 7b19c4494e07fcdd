package dto

import "io"

// FileUpload is a parsed multipart file, decoupled from fasthttp's form
// types so services can be exercised without an HTTP request.
type FileUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Content     io.Reader
}

// RegistrationInput carries the multipart registration form.
type RegistrationInput struct {
	Name         string
	Email        string
	Phone        string
	Age          int
	Gender       string
	College      string
	Bio          string
	LinkedIn     string
	Referral     string
	Password     string
	CaptchaToken string
	RemoteIP     string

	Resume *FileUpload
	Avatar *FileUpload
}

// RegisteredUser is the partial user object returned on success.
type RegisteredUser struct {
	ID        string `json:"id"`
	BatchID   string `json:"batchId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	College   string `json:"college,omitempty"`
	Status    string `json:"status"`
	ResumeURL string `json:"resumeUrl,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
