package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Program  string `json:"program,omitempty"`
	Year     int    `json:"year,omitempty"`
	Semester string `json:"semester,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenSignInRequest carries an identity token issued by the external
// provider. Email/profile fields are optional overrides applied only when the
// user record is created on first sign-in.
type TokenSignInRequest struct {
	IdentityToken string `json:"identity_token"`
	Email         string `json:"email,omitempty"`
	Program       string `json:"program,omitempty"`
	Year          int    `json:"year,omitempty"`
	Semester      string `json:"semester,omitempty"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Program  string    `json:"program"`
	Year     int       `json:"year"`
	Semester string    `json:"semester"`
	IsSSO    bool      `json:"is_sso"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
