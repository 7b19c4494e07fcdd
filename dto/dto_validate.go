package dto

// StepValidationRequest mirrors one page of the signup wizard.
type StepValidationRequest struct {
	Step     string `json:"step"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
	Age      int    `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Bio      string `json:"bio,omitempty"`
	College  string `json:"college,omitempty"`
	Referral string `json:"referral,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

type StepValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}
