package dto

import (
	"time"

	"jobboard_backend/internal/models"
)

// UserDTO - user as returned to its own account
type UserDTO struct {
	ID             string            `json:"id"`
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	FullName       string            `json:"full_name"`
	Email          string            `json:"email"`
	RecoveryEmail  string            `json:"recovery_email,omitempty"`
	MobileNumber   string            `json:"mobile_number,omitempty"`
	DOB            *time.Time        `json:"dob,omitempty"`
	Role           models.UserRole   `json:"role"`
	Status         models.UserStatus `json:"status"`
	EmailConfirmed bool              `json:"email_confirmed"`
	CreatedAt      time.Time         `json:"created_at"`
}

// PublicUserDTO - user as visible to other accounts
type PublicUserDTO struct {
	ID           string          `json:"id"`
	FullName     string          `json:"full_name"`
	MobileNumber string          `json:"mobile_number,omitempty"`
	Role         models.UserRole `json:"role"`
}

// UpdateAccountRequest - partial account update; nil fields are untouched
type UpdateAccountRequest struct {
	FirstName     *string    `json:"first_name,omitempty" binding:"omitempty,min=2,max=50"`
	LastName      *string    `json:"last_name,omitempty" binding:"omitempty,min=2,max=50"`
	Email         *string    `json:"email,omitempty" binding:"omitempty,email"`
	RecoveryEmail *string    `json:"recovery_email,omitempty" binding:"omitempty,email"`
	MobileNumber  *string    `json:"mobile_number,omitempty" binding:"omitempty,e164"`
	DOB           *time.Time `json:"dob,omitempty"`
}

// RecoveryEmailAccountsResponse - accounts sharing one recovery email
type RecoveryEmailAccountsResponse struct {
	RecoveryEmail string          `json:"recovery_email"`
	Accounts      []PublicUserDTO `json:"accounts"`
}

func UserToDTO(user *models.User) UserDTO {
	dto := UserDTO{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		FullName:       user.FullName(),
		Email:          user.Email,
		RecoveryEmail:  user.RecoveryEmail,
		DOB:            user.DOB,
		Role:           user.Role,
		Status:         user.Status,
		EmailConfirmed: user.EmailConfirmed,
		CreatedAt:      user.CreatedAt,
	}
	if user.MobileNumber != nil {
		dto.MobileNumber = *user.MobileNumber
	}
	return dto
}

func UserToPublicDTO(user *models.User) PublicUserDTO {
	dto := PublicUserDTO{
		ID:       user.ID,
		FullName: user.FullName(),
		Role:     user.Role,
	}
	if user.MobileNumber != nil {
		dto.MobileNumber = *user.MobileNumber
	}
	return dto
}
