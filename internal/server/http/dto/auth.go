package dto

// LoginRequest carries the owner password.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse returns the issued admin token.
type LoginResponse struct {
	Token string `json:"token"`
}
