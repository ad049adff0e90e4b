package services

import (
	"errors"
	"time"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// txRunner wraps a unit of work in a transaction. Production uses
// gorm's Transaction; tests substitute a passthrough.
type txRunner func(db *gorm.DB, fn func(tx *gorm.DB) error) error

func gormTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.Transaction(fn)
}

type UserService interface {
	Signup(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserDTO, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	RefreshToken(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error)
	VerifyEmail(db *gorm.DB, req *dto.VerifyEmailRequest) error
	ResendVerification(db *gorm.DB, req *dto.ResendVerificationRequest) error
	ForgotPassword(db *gorm.DB, req *dto.ForgotPasswordRequest) error
	ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error
	UpdatePassword(db *gorm.DB, userID string, req *dto.UpdatePasswordRequest) error
	UpdateAccount(db *gorm.DB, userID string, req *dto.UpdateAccountRequest) (*dto.UserDTO, error)
	GetMe(db *gorm.DB, userID string) (*dto.UserDTO, error)
	GetByID(db *gorm.DB, userID string) (*dto.PublicUserDTO, error)
	FindByRecoveryEmail(db *gorm.DB, recoveryEmail string) (*dto.RecoveryEmailAccountsResponse, error)
	DeleteAccount(db *gorm.DB, userID string) error
}

type UserServiceImpl struct {
	userRepo        repositories.UserRepository
	companyRepo     repositories.CompanyRepository
	jobRepo         repositories.JobRepository
	applicationRepo repositories.ApplicationRepository
	otp             OTPService
	runTx           txRunner
}

func NewUserService(
	userRepo repositories.UserRepository,
	companyRepo repositories.CompanyRepository,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	otp OTPService,
) UserService {
	return &UserServiceImpl{
		userRepo:        userRepo,
		companyRepo:     companyRepo,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		otp:             otp,
		runTx:           gormTransaction,
	}
}

// Signup creates an unconfirmed account and mails a confirmation code.
// Account creation succeeds even when the mail bounces; the user can
// request a fresh code via the resend-verification endpoint.
func (s *UserServiceImpl) Signup(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserDTO, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	role := req.Role
	if role == "" {
		role = models.UserRoleUser
	}
	if !models.ValidRole(role) || role == models.UserRoleAdmin {
		return nil, apperrors.ErrInvalidUserRole
	}

	user := &models.User{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		PasswordHash:  hash,
		RecoveryEmail: req.RecoveryEmail,
		DOB:           req.DOB,
		Role:          role,
		Status:        models.UserStatusOffline,
	}
	if req.MobileNumber != "" {
		user.MobileNumber = &req.MobileNumber
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.otp.Issue(db, user, email.TemplateVerifyEmail); err != nil {
		logger.WithError(err).Warn("confirmation email not sent on signup", "user_id", user.ID)
	}

	out := dto.UserToDTO(user)
	return &out, nil
}

// Login authenticates by email, recovery email or mobile number.
func (s *UserServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByLogin(db, req.Login)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.EmailConfirmed {
		return nil, apperrors.ErrEmailNotConfirmed
	}

	if err := s.userRepo.UpdateStatus(db, user.ID, models.UserStatusOnline); err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.Status = models.UserStatusOnline

	return s.issueTokens(db, user)
}

func (s *UserServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) RefreshToken(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(db, refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(db, refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// Rotate: the presented token is spent.
	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.issueTokens(db, user)
}

// VerifyEmail consumes the confirmation code and marks the email confirmed.
func (s *UserServiceImpl) VerifyEmail(db *gorm.DB, req *dto.VerifyEmailRequest) error {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidOrExpiredOTP
		}
		return apperrors.InternalError(err)
	}

	if err := s.otp.Verify(db, user, req.OTP); err != nil {
		return err
	}
	if err := s.userRepo.ConfirmEmail(db, user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ResendVerification mails a fresh confirmation code for an unconfirmed
// account. Unknown and already-confirmed addresses get the same success
// response so registration state cannot be probed.
func (s *UserServiceImpl) ResendVerification(db *gorm.DB, req *dto.ResendVerificationRequest) error {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.Info("verification resend requested for unknown email")
			return nil
		}
		return apperrors.InternalError(err)
	}
	if user.EmailConfirmed {
		return nil
	}
	return s.otp.Issue(db, user, email.TemplateVerifyEmail)
}

// ForgotPassword mails a reset code. An unknown email gets the same
// success response so addresses cannot be enumerated.
func (s *UserServiceImpl) ForgotPassword(db *gorm.DB, req *dto.ForgotPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.Info("password reset requested for unknown email")
			return nil
		}
		return apperrors.InternalError(err)
	}
	return s.otp.Issue(db, user, email.TemplateResetPassword)
}

// ResetPassword consumes the reset code and installs the new password.
// All of the user's refresh tokens are revoked.
func (s *UserServiceImpl) ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidOrExpiredOTP
		}
		return apperrors.InternalError(err)
	}

	if err := s.otp.Verify(db, user, req.OTP); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, user.ID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.DeleteUserRefreshTokens(db, user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) UpdatePassword(db *gorm.DB, userID string, req *dto.UpdatePasswordRequest) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return handleUserError(err)
	}
	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrWrongCurrentPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, userID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) UpdateAccount(db *gorm.DB, userID string, req *dto.UpdateAccountRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil && *req.Email != user.Email {
		user.Email = *req.Email
		// A changed address has to be confirmed again.
		user.EmailConfirmed = false
	}
	if req.RecoveryEmail != nil {
		user.RecoveryEmail = *req.RecoveryEmail
	}
	if req.MobileNumber != nil {
		user.MobileNumber = req.MobileNumber
	}
	if req.DOB != nil {
		user.DOB = req.DOB
	}

	if err := s.userRepo.Update(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !user.EmailConfirmed {
		if err := s.otp.Issue(db, user, email.TemplateVerifyEmail); err != nil {
			logger.WithError(err).Warn("confirmation email not sent on email change", "user_id", userID)
		}
	}

	out := dto.UserToDTO(user)
	return &out, nil
}

func (s *UserServiceImpl) GetMe(db *gorm.DB, userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	out := dto.UserToDTO(user)
	return &out, nil
}

func (s *UserServiceImpl) GetByID(db *gorm.DB, userID string) (*dto.PublicUserDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	out := dto.UserToPublicDTO(user)
	return &out, nil
}

func (s *UserServiceImpl) FindByRecoveryEmail(db *gorm.DB, recoveryEmail string) (*dto.RecoveryEmailAccountsResponse, error) {
	users, err := s.userRepo.FindByRecoveryEmail(db, recoveryEmail)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	accounts := make([]dto.PublicUserDTO, 0, len(users))
	for i := range users {
		accounts = append(accounts, dto.UserToPublicDTO(&users[i]))
	}
	return &dto.RecoveryEmailAccountsResponse{
		RecoveryEmail: recoveryEmail,
		Accounts:      accounts,
	}, nil
}

// DeleteAccount removes the user and everything it owns, children before
// parents, in one transaction: the user's own applications first, then -
// if the user runs a company - that company's applications, jobs and the
// company row, and finally the refresh tokens and the user itself.
func (s *UserServiceImpl) DeleteAccount(db *gorm.DB, userID string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return handleUserError(err)
	}

	return s.runTx(db, func(tx *gorm.DB) error {
		if err := s.applicationRepo.DeleteByApplicant(tx, userID); err != nil {
			return apperrors.InternalError(err)
		}

		if user.Role == models.UserRoleCompanyHR {
			company, err := s.companyRepo.FindByHR(tx, userID)
			if err != nil && !errors.Is(err, repositories.ErrCompanyNotFound) {
				return apperrors.InternalError(err)
			}
			if company != nil {
				jobIDs, err := s.jobRepo.FindIDsByOwner(tx, userID)
				if err != nil {
					return apperrors.InternalError(err)
				}
				if err := s.applicationRepo.DeleteByJobIDs(tx, jobIDs); err != nil {
					return apperrors.InternalError(err)
				}
				if err := s.jobRepo.DeleteByIDs(tx, jobIDs); err != nil {
					return apperrors.InternalError(err)
				}
				if err := s.companyRepo.Delete(tx, company.ID); err != nil {
					return apperrors.InternalError(err)
				}
			}
		}

		if err := s.userRepo.DeleteUserRefreshTokens(tx, userID); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.userRepo.Delete(tx, userID); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
}

func (s *UserServiceImpl) issueTokens(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	cfg := config.GetConfig()
	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Duration(cfg.JWT.RefreshTTLDays) * 24 * time.Hour),
	}
	if err := s.userRepo.CreateRefreshToken(db, refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		User:         dto.UserToDTO(user),
	}, nil
}

func handleUserError(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}
