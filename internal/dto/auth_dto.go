package dto

type PINLoginRequest struct {
	PIN string `json:"pin"`
}

type UserResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	DisplayColor string `json:"display_color"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
