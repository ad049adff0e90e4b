package services

import (
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/storage"
)

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	UserService        UserService
	CompanyService     CompanyService
	JobService         JobService
	ApplicationService ApplicationService
	OTPService         OTPService
	EmailProvider      email.Provider
	Storage            storage.Storage
}
