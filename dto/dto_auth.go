package dto

import "github.com/pbdsce/Zenith-sub000/model"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}
