package dto

import (
	"time"

	"jobboard_backend/internal/models"
)

// RegisterRequest - signup payload
type RegisterRequest struct {
	FirstName     string          `json:"first_name" binding:"required,min=2,max=50"`
	LastName      string          `json:"last_name" binding:"required,min=2,max=50"`
	Email         string          `json:"email" binding:"required,email"`
	Password      string          `json:"password" binding:"required,min=8"`
	RecoveryEmail string          `json:"recovery_email,omitempty" binding:"omitempty,email"`
	MobileNumber  string          `json:"mobile_number,omitempty" binding:"omitempty,e164"`
	DOB           *time.Time      `json:"dob,omitempty"`
	Role          models.UserRole `json:"role,omitempty" binding:"omitempty,oneof=User Company_HR"`
}

// LoginRequest - the login field accepts email, recovery email or mobile number
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest - token refresh payload
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest - logout payload
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// VerifyEmailRequest - email confirmation with the mailed code
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=4,numeric"`
}

// ResendVerificationRequest - requests a fresh confirmation code by email
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPasswordRequest - requests a reset code by email
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest - resets password with the mailed code
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=4,numeric"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UpdatePasswordRequest - authenticated password change
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// AuthResponse - token pair plus the authenticated user
type AuthResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}
