package apperrors

import (
	"net/http"
)

// Factories for wrapping repository-level errors.

// ErrNotFound converts a missing-record error into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a duplicate-record error into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrDeliveryFailure wraps a failed email send. The OTP issuance path returns
// this when the notification cannot be dispatched.
func ErrDeliveryFailure(err error) *AppError {
	return Wrap(err, CodeDeliveryFailure, "email", "Failed to send email", http.StatusInternalServerError)
}

// Predefined errors for the auth and OTP flows.

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid login credentials",
	http.StatusUnauthorized,
)

var ErrEmailNotConfirmed = New(
	CodeForbidden,
	"auth",
	"Email not verified. Please verify your email first.",
	http.StatusForbidden,
)

// ErrInvalidOrExpiredOTP is deliberately a single undifferentiated message:
// the caller must not learn whether the code was wrong, missing, or expired.
var ErrInvalidOrExpiredOTP = New(
	CodeInvalidOTP,
	"otp",
	"Invalid or expired OTP",
	http.StatusBadRequest,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

var ErrWrongCurrentPassword = New(
	CodeInvalidCredentials,
	"auth",
	"Current password is incorrect",
	http.StatusBadRequest,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

// Predefined errors for companies and jobs.

var ErrCompanyAlreadyOwned = New(
	CodeConflict,
	"company",
	"You already own a company",
	http.StatusConflict,
)

var ErrNotCompanyOwner = New(
	CodeForbidden,
	"company",
	"Only the company HR may perform this action",
	http.StatusForbidden,
)

var ErrNotJobOwner = New(
	CodeForbidden,
	"job",
	"Only the user who added this job may modify it",
	http.StatusForbidden,
)

// Predefined errors for resume uploads.

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
