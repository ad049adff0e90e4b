package services

import (
	"errors"
	"testing"
	"time"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubOTP satisfies OTPService without mail or codes.
type stubOTP struct {
	issued   int
	issueErr error
	verifyOK bool
}

func (s *stubOTP) Issue(_ *gorm.DB, _ *models.User, _ string) error {
	if s.issueErr != nil {
		return s.issueErr
	}
	s.issued++
	return nil
}

func (s *stubOTP) Verify(_ *gorm.DB, _ *models.User, _ string) error {
	if !s.verifyOK {
		return apperrors.ErrInvalidOrExpiredOTP
	}
	return nil
}

type userFixture struct {
	svc          *UserServiceImpl
	users        *fakeUserRepo
	companies    *fakeCompanyRepo
	jobs         *fakeJobRepo
	applications *fakeApplicationRepo
	otp          *stubOTP
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	f := &userFixture{
		users:        newFakeUserRepo(),
		companies:    newFakeCompanyRepo(),
		jobs:         newFakeJobRepo(),
		applications: newFakeApplicationRepo(),
		otp:          &stubOTP{verifyOK: true},
	}
	f.svc = &UserServiceImpl{
		userRepo:        f.users,
		companyRepo:     f.companies,
		jobRepo:         f.jobs,
		applicationRepo: f.applications,
		otp:             f.otp,
		runTx:           passthroughTx,
	}
	return f
}

func (f *userFixture) seedUser(t *testing.T, emailAddr string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	return f.users.add(&models.User{
		FirstName:      "Test",
		LastName:       "User",
		Email:          emailAddr,
		PasswordHash:   hash,
		Role:           role,
		Status:         models.UserStatusOffline,
		EmailConfirmed: true,
	})
}

func TestSignupCreatesUnconfirmedUserAndMailsCode(t *testing.T) {
	f := newUserFixture(t)

	user, err := f.svc.Signup(nil, &dto.RegisterRequest{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Password:  "password123",
	})
	require.NoError(t, err)
	assert.False(t, user.EmailConfirmed)
	assert.Equal(t, models.UserRoleUser, user.Role)
	assert.Equal(t, 1, f.otp.issued)
}

func TestSignupRecoversFromMailFailureViaResend(t *testing.T) {
	f := newUserFixture(t)
	f.otp.issueErr = apperrors.ErrDeliveryFailure(errors.New("smtp down"))

	user, err := f.svc.Signup(nil, &dto.RegisterRequest{
		FirstName: "Frank",
		LastName:  "Late",
		Email:     "frank@example.com",
		Password:  "password123",
	})
	require.NoError(t, err)
	assert.False(t, user.EmailConfirmed)
	assert.Equal(t, 0, f.otp.issued)

	// Mail is back up: the account must still be reachable.
	f.otp.issueErr = nil
	require.NoError(t, f.svc.ResendVerification(nil, &dto.ResendVerificationRequest{Email: "frank@example.com"}))
	assert.Equal(t, 1, f.otp.issued)

	require.NoError(t, f.svc.VerifyEmail(nil, &dto.VerifyEmailRequest{Email: "frank@example.com", OTP: "1234"}))

	resp, err := f.svc.Login(nil, &dto.LoginRequest{Login: "frank@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestResendVerificationUnknownOrConfirmedEmail(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser(t, "grace@example.com", models.UserRoleUser)

	require.NoError(t, f.svc.ResendVerification(nil, &dto.ResendVerificationRequest{Email: "nobody@example.com"}))
	require.NoError(t, f.svc.ResendVerification(nil, &dto.ResendVerificationRequest{Email: "grace@example.com"}))
	assert.Equal(t, 0, f.otp.issued)
}

func TestResendVerificationSurfacesDeliveryFailure(t *testing.T) {
	f := newUserFixture(t)
	user := f.seedUser(t, "henry@example.com", models.UserRoleUser)
	user.EmailConfirmed = false
	f.otp.issueErr = apperrors.ErrDeliveryFailure(errors.New("smtp down"))

	err := f.svc.ResendVerification(nil, &dto.ResendVerificationRequest{Email: "henry@example.com"})
	assert.Equal(t, f.otp.issueErr, err)
}

func TestSignupRejectsAdminRole(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.svc.Signup(nil, &dto.RegisterRequest{
		FirstName: "Eve",
		LastName:  "Admin",
		Email:     "eve@example.com",
		Password:  "password123",
		Role:      models.UserRoleAdmin,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestLoginRequiresConfirmedEmail(t *testing.T) {
	f := newUserFixture(t)
	user := f.seedUser(t, "bob@example.com", models.UserRoleUser)
	user.EmailConfirmed = false

	_, err := f.svc.Login(nil, &dto.LoginRequest{Login: "bob@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrEmailNotConfirmed)
}

func TestLoginByRecoveryEmailAndMobile(t *testing.T) {
	f := newUserFixture(t)
	user := f.seedUser(t, "carol@example.com", models.UserRoleUser)
	user.RecoveryEmail = "backup@example.com"
	mobile := "+77001234567"
	user.MobileNumber = &mobile

	for _, login := range []string{"carol@example.com", "backup@example.com", "+77001234567"} {
		resp, err := f.svc.Login(nil, &dto.LoginRequest{Login: login, Password: "password123"})
		require.NoError(t, err, "login via %q", login)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, models.UserStatusOnline, resp.User.Status)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser(t, "dave@example.com", models.UserRoleUser)

	_, err := f.svc.Login(nil, &dto.LoginRequest{Login: "dave@example.com", Password: "not-it"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestVerifyEmailConfirms(t *testing.T) {
	f := newUserFixture(t)
	user := f.seedUser(t, "erin@example.com", models.UserRoleUser)
	user.EmailConfirmed = false

	err := f.svc.VerifyEmail(nil, &dto.VerifyEmailRequest{Email: "erin@example.com", OTP: "1234"})
	require.NoError(t, err)

	stored, _ := f.users.FindByID(nil, user.ID)
	assert.True(t, stored.EmailConfirmed)
}

func TestVerifyEmailUnknownAddressLooksLikeBadCode(t *testing.T) {
	f := newUserFixture(t)

	err := f.svc.VerifyEmail(nil, &dto.VerifyEmailRequest{Email: "ghost@example.com", OTP: "1234"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpiredOTP)
}

func TestResetPasswordRevokesSessions(t *testing.T) {
	f := newUserFixture(t)
	user := f.seedUser(t, "frank@example.com", models.UserRoleUser)
	f.users.CreateRefreshToken(nil, &models.RefreshToken{
		UserID:    user.ID,
		Token:     "old-session",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	err := f.svc.ResetPassword(nil, &dto.ResetPasswordRequest{
		Email:       "frank@example.com",
		OTP:         "1234",
		NewPassword: "new-password-1",
	})
	require.NoError(t, err)

	stored, _ := f.users.FindByID(nil, user.ID)
	assert.True(t, auth.CheckPasswordHash("new-password-1", stored.PasswordHash))
	assert.Empty(t, f.users.tokens)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	f := newUserFixture(t)

	err := f.svc.ForgotPassword(nil, &dto.ForgotPasswordRequest{Email: "nobody@example.com"})
	assert.NoError(t, err)
	assert.Zero(t, f.otp.issued)
}

func TestUpdateAccountEmailChangeResetsConfirmation(t *testing.T) {
	f := newUserFixture(t)
	user := f.seedUser(t, "grace@example.com", models.UserRoleUser)

	newEmail := "grace.new@example.com"
	updated, err := f.svc.UpdateAccount(nil, user.ID, &dto.UpdateAccountRequest{Email: &newEmail})
	require.NoError(t, err)

	assert.Equal(t, newEmail, updated.Email)
	assert.False(t, updated.EmailConfirmed)
	assert.Equal(t, 1, f.otp.issued)
}

func TestDeleteAccountPlainUser(t *testing.T) {
	f := newUserFixture(t)
	applicant := f.seedUser(t, "henry@example.com", models.UserRoleUser)
	hr := f.seedUser(t, "hr@example.com", models.UserRoleCompanyHR)

	company := f.companies.add(&models.Company{CompanyName: "Acme", CompanyHR: hr.ID})
	job := f.jobs.add(&models.Job{JobTitle: "Backend Dev", AddedBy: hr.ID})
	f.applications.add(&models.Application{JobID: job.ID, UserID: applicant.ID})
	f.users.CreateRefreshToken(nil, &models.RefreshToken{
		UserID: applicant.ID, Token: "sess", ExpiresAt: time.Now().Add(time.Hour),
	})

	require.NoError(t, f.svc.DeleteAccount(nil, applicant.ID))

	_, err := f.users.FindByID(nil, applicant.ID)
	assert.Error(t, err)
	assert.Empty(t, f.applications.applications)
	assert.Empty(t, f.users.tokens)

	// The employer side is untouched.
	_, err = f.companies.FindByID(nil, company.ID)
	assert.NoError(t, err)
	_, err = f.jobs.FindByID(nil, job.ID)
	assert.NoError(t, err)
}

func TestDeleteAccountHRCascades(t *testing.T) {
	f := newUserFixture(t)
	hr := f.seedUser(t, "hr@example.com", models.UserRoleCompanyHR)
	applicant := f.seedUser(t, "ivan@example.com", models.UserRoleUser)

	company := f.companies.add(&models.Company{CompanyName: "Acme", CompanyHR: hr.ID})
	job1 := f.jobs.add(&models.Job{JobTitle: "Backend Dev", AddedBy: hr.ID})
	job2 := f.jobs.add(&models.Job{JobTitle: "Frontend Dev", AddedBy: hr.ID})
	f.applications.add(&models.Application{JobID: job1.ID, UserID: applicant.ID})
	f.applications.add(&models.Application{JobID: job2.ID, UserID: applicant.ID})

	require.NoError(t, f.svc.DeleteAccount(nil, hr.ID))

	// Everything the HR owned is gone, children before parents.
	assert.Empty(t, f.applications.applications)
	assert.Empty(t, f.jobs.jobs)
	_, err := f.companies.FindByID(nil, company.ID)
	assert.Error(t, err)
	_, err = f.users.FindByID(nil, hr.ID)
	assert.Error(t, err)

	// The applicant's account survives.
	_, err = f.users.FindByID(nil, applicant.ID)
	assert.NoError(t, err)
}

func TestDeleteAccountHRWithoutCompany(t *testing.T) {
	f := newUserFixture(t)
	hr := f.seedUser(t, "hr@example.com", models.UserRoleCompanyHR)

	require.NoError(t, f.svc.DeleteAccount(nil, hr.ID))

	_, err := f.users.FindByID(nil, hr.ID)
	assert.Error(t, err)
}

func TestDeleteAccountUnknownUser(t *testing.T) {
	f := newUserFixture(t)

	err := f.svc.DeleteAccount(nil, uuid.NewString())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestFindByRecoveryEmailListsAccounts(t *testing.T) {
	f := newUserFixture(t)
	a := f.seedUser(t, "one@example.com", models.UserRoleUser)
	b := f.seedUser(t, "two@example.com", models.UserRoleUser)
	a.RecoveryEmail = "family@example.com"
	b.RecoveryEmail = "family@example.com"
	f.seedUser(t, "three@example.com", models.UserRoleUser)

	resp, err := f.svc.FindByRecoveryEmail(nil, "family@example.com")
	require.NoError(t, err)
	assert.Len(t, resp.Accounts, 2)
	assert.Equal(t, "family@example.com", resp.RecoveryEmail)
}

func TestRefreshTokenRotates(t *testing.T) {
	f := newUserFixture(t)
	user := f.seedUser(t, "kate@example.com", models.UserRoleUser)
	f.users.CreateRefreshToken(nil, &models.RefreshToken{
		UserID: user.ID, Token: "first", ExpiresAt: time.Now().Add(time.Hour),
	})

	resp, err := f.svc.RefreshToken(nil, "first")
	require.NoError(t, err)
	assert.NotEqual(t, "first", resp.RefreshToken)

	// The spent token no longer works.
	_, err = f.svc.RefreshToken(nil, "first")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestRefreshTokenExpired(t *testing.T) {
	f := newUserFixture(t)
	user := f.seedUser(t, "leo@example.com", models.UserRoleUser)
	f.users.CreateRefreshToken(nil, &models.RefreshToken{
		UserID: user.ID, Token: "stale", ExpiresAt: time.Now().Add(-time.Hour),
	})

	_, err := f.svc.RefreshToken(nil, "stale")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
