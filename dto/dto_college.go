package dto

type CollegeUpsertRequest struct {
	Name string `json:"name"`
}
