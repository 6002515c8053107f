package dto

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest represents admin credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"team@agency.test"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
}

// LoginResponse carries the bearer token for the admin session
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Admin     AdminResponse `json:"admin"`
}

// AdminResponse represents an admin user
type AdminResponse struct {
	ID    uuid.UUID `json:"adminId"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}
