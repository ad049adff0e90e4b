package models

import "time"

type User struct {
	BaseModel
	FirstName     string     `gorm:"not null" json:"first_name"`
	LastName      string     `gorm:"not null" json:"last_name"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"not null" json:"-"`
	RecoveryEmail string     `gorm:"index" json:"recovery_email,omitempty"`
	MobileNumber  *string    `gorm:"uniqueIndex" json:"mobile_number,omitempty"`
	DOB           *time.Time `json:"dob,omitempty"`
	Role          UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status        UserStatus `gorm:"type:varchar(10);default:'offline'" json:"status"`

	EmailConfirmed bool `gorm:"default:false" json:"email_confirmed"`

	// At most one OTP is outstanding per user. A non-empty code means an OTP
	// is pending; both columns are cleared on successful verification.
	OTPCode      string     `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

// FullName is used when rendering notification emails.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasOTP reports whether an OTP is currently outstanding.
func (u *User) HasOTP() bool {
	return u.OTPCode != "" && u.OTPExpiresAt != nil
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
