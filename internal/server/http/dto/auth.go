package dto

// LoginRequest carries the owner password.
type LoginRequest struct {
	Password string `json:"password"`
}

// TokenResponse returns an issued owner token.
type TokenResponse struct {
	Token string `json:"token"`
}
