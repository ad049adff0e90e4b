package services

import (
	"errors"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CompanyService interface {
	Create(db *gorm.DB, hrUserID string, req *dto.CreateCompanyRequest) (*dto.CompanyDTO, error)
	Update(db *gorm.DB, hrUserID, companyID string, req *dto.UpdateCompanyRequest) (*dto.CompanyDTO, error)
	GetWithJobs(db *gorm.DB, companyID string) (*dto.CompanyWithJobsResponse, error)
	SearchByName(db *gorm.DB, name string) ([]dto.CompanyDTO, error)
	Delete(db *gorm.DB, hrUserID, companyID string) error
}

type CompanyServiceImpl struct {
	companyRepo     repositories.CompanyRepository
	userRepo        repositories.UserRepository
	jobRepo         repositories.JobRepository
	applicationRepo repositories.ApplicationRepository
	runTx           txRunner
}

func NewCompanyService(
	companyRepo repositories.CompanyRepository,
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
) CompanyService {
	return &CompanyServiceImpl{
		companyRepo:     companyRepo,
		userRepo:        userRepo,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		runTx:           gormTransaction,
	}
}

// Create registers a company for the calling HR account. One company per
// HR: a second registration fails.
func (s *CompanyServiceImpl) Create(db *gorm.DB, hrUserID string, req *dto.CreateCompanyRequest) (*dto.CompanyDTO, error) {
	user, err := s.userRepo.FindByID(db, hrUserID)
	if err != nil {
		return nil, handleUserError(err)
	}
	if user.Role != models.UserRoleCompanyHR {
		return nil, apperrors.ErrInvalidUserRole
	}

	existing, err := s.companyRepo.FindByHR(db, hrUserID)
	if err != nil && !errors.Is(err, repositories.ErrCompanyNotFound) {
		return nil, apperrors.InternalError(err)
	}
	if existing != nil {
		return nil, apperrors.ErrCompanyAlreadyOwned
	}

	company := &models.Company{
		CompanyName:       req.CompanyName,
		Description:       req.Description,
		Industry:          req.Industry,
		Address:           req.Address,
		NumberOfEmployees: req.NumberOfEmployees,
		CompanyEmail:      req.CompanyEmail,
		CompanyHR:         hrUserID,
	}
	if err := s.companyRepo.Create(db, company); err != nil {
		if errors.Is(err, repositories.ErrCompanyAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	out := dto.CompanyToDTO(company)
	return &out, nil
}

func (s *CompanyServiceImpl) Update(db *gorm.DB, hrUserID, companyID string, req *dto.UpdateCompanyRequest) (*dto.CompanyDTO, error) {
	company, err := s.ownedCompany(db, hrUserID, companyID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		company.CompanyName = *req.CompanyName
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Industry != nil {
		company.Industry = *req.Industry
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.NumberOfEmployees != nil {
		company.NumberOfEmployees = *req.NumberOfEmployees
	}
	if req.CompanyEmail != nil {
		company.CompanyEmail = *req.CompanyEmail
	}

	if err := s.companyRepo.Update(db, company); err != nil {
		if errors.Is(err, repositories.ErrCompanyAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	out := dto.CompanyToDTO(company)
	return &out, nil
}

func (s *CompanyServiceImpl) GetWithJobs(db *gorm.DB, companyID string) (*dto.CompanyWithJobsResponse, error) {
	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		return nil, handleCompanyError(err)
	}

	jobs, err := s.jobRepo.FindByOwner(db, company.CompanyHR)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	jobDTOs := make([]dto.JobDTO, 0, len(jobs))
	for i := range jobs {
		jobDTOs = append(jobDTOs, dto.JobToDTO(&jobs[i]))
	}

	return &dto.CompanyWithJobsResponse{
		Company: dto.CompanyToDTO(company),
		Jobs:    jobDTOs,
	}, nil
}

func (s *CompanyServiceImpl) SearchByName(db *gorm.DB, name string) ([]dto.CompanyDTO, error) {
	companies, err := s.companyRepo.SearchByName(db, name)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.CompanyDTO, 0, len(companies))
	for i := range companies {
		out = append(out, dto.CompanyToDTO(&companies[i]))
	}
	return out, nil
}

// Delete removes the company and everything under it, children before
// parents: applications on its jobs, then the jobs, then the company.
// The owning HR is demoted back to a plain user. Only the owning HR may
// delete; a failed ownership check mutates nothing.
func (s *CompanyServiceImpl) Delete(db *gorm.DB, hrUserID, companyID string) error {
	company, err := s.ownedCompany(db, hrUserID, companyID)
	if err != nil {
		return err
	}

	return s.runTx(db, func(tx *gorm.DB) error {
		jobIDs, err := s.jobRepo.FindIDsByOwner(tx, hrUserID)
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
		if err := s.userRepo.UpdateRole(tx, hrUserID, models.UserRoleUser); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
}

// ownedCompany loads the company and enforces that hrUserID owns it.
func (s *CompanyServiceImpl) ownedCompany(db *gorm.DB, hrUserID, companyID string) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		return nil, handleCompanyError(err)
	}
	if company.CompanyHR != hrUserID {
		return nil, apperrors.ErrNotCompanyOwner
	}
	return company, nil
}

func handleCompanyError(err error) error {
	if errors.Is(err, repositories.ErrCompanyNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}
