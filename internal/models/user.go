package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account held by the auth stub.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// AuthRequest is the body of POST /api/auth.
type AuthRequest struct {
	Username string `json:"username" binding:"required,min=4,max=64"`
	Password string `json:"password" binding:"required,min=4,max=64"`
}

// AuthResponse is returned on a successful login or registration.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
