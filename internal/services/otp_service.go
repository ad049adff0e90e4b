package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"jobboard_backend/internal/config"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Clock abstracts time so expiry logic is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// CodeSource produces one-time codes.
type CodeSource interface {
	Code() (string, error)
}

type randomCodeSource struct{}

// Code returns a uniformly random 4-digit code in [1000, 9999].
func (randomCodeSource) Code() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}

// OTPService manages the one-time-code lifecycle: a fresh code is mailed
// and stored with an expiry; verification consumes it at most once.
type OTPService interface {
	Issue(db *gorm.DB, user *models.User, template string) error
	Verify(db *gorm.DB, user *models.User, code string) error
}

type OTPServiceImpl struct {
	userRepo  repositories.UserRepository
	mailer    email.Provider
	templates *email.TemplateManager
	clock     Clock
	codes     CodeSource
	ttl       time.Duration
}

func NewOTPService(userRepo repositories.UserRepository, mailer email.Provider, templates *email.TemplateManager) OTPService {
	cfg := config.GetConfig()
	return &OTPServiceImpl{
		userRepo:  userRepo,
		mailer:    mailer,
		templates: templates,
		clock:     systemClock{},
		codes:     randomCodeSource{},
		ttl:       time.Duration(cfg.OTP.TTLMinutes) * time.Minute,
	}
}

// Issue mails a fresh code to the user and persists it with its expiry.
// The code is stored only after the mail goes out: a delivery failure
// leaves the previous code (if any) untouched, so the user never holds
// a code that was stored but never delivered.
//
// Issuing while an unexpired code is outstanding overwrites it; only the
// latest code is ever valid.
func (s *OTPServiceImpl) Issue(db *gorm.DB, user *models.User, template string) error {
	code, err := s.codes.Code()
	if err != nil {
		return apperrors.InternalError(err)
	}
	expiresAt := s.clock.Now().Add(s.ttl)

	body, err := s.templates.Render(template, email.TemplateData{
		"FullName": user.FullName(),
		"Code":     code,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	msg := &email.Email{
		To:       []string{user.Email},
		Subject:  otpSubject(template),
		HTMLBody: body,
	}
	if err := s.mailer.Send(msg); err != nil {
		logger.WithError(err).Error("OTP email delivery failed", "user_id", user.ID)
		return apperrors.ErrDeliveryFailure(err)
	}

	if err := s.userRepo.SaveOTP(db, user.ID, code, expiresAt); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Verify consumes the user's outstanding code. Wrong code, missing code
// and expired code all fail with the same error so a caller cannot probe
// which case occurred. A successful verify clears the code; a second
// attempt with the same code fails.
func (s *OTPServiceImpl) Verify(db *gorm.DB, user *models.User, code string) error {
	if !user.HasOTP() {
		return apperrors.ErrInvalidOrExpiredOTP
	}
	if s.clock.Now().After(*user.OTPExpiresAt) {
		// Expired codes are cleared eagerly; the sweep worker catches
		// whatever nobody tries to verify.
		if err := s.userRepo.ClearOTP(db, user.ID); err != nil {
			return apperrors.InternalError(err)
		}
		return apperrors.ErrInvalidOrExpiredOTP
	}
	if user.OTPCode != code {
		return apperrors.ErrInvalidOrExpiredOTP
	}

	if err := s.userRepo.ClearOTP(db, user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	user.OTPCode = ""
	user.OTPExpiresAt = nil
	return nil
}

func otpSubject(template string) string {
	switch template {
	case email.TemplateResetPassword:
		return "Reset your password"
	default:
		return "Confirm your email"
	}
}
