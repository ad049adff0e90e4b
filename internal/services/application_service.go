package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"jobboard_backend/internal/config"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/storage"
	"jobboard_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationService interface {
	Apply(ctx context.Context, db *gorm.DB, userID, jobID string, req *dto.ApplyRequest, resume *multipart.FileHeader) (*dto.ApplicationDTO, error)
	ListForCompanyOnDay(db *gorm.DB, hrUserID, companyID string, day time.Time) (*dto.CompanyApplicationsResponse, error)
	ResumeURL(ctx context.Context, db *gorm.DB, requesterID, applicationID string) (string, error)
}

type ApplicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
	companyRepo     repositories.CompanyRepository
	userRepo        repositories.UserRepository
	storage         storage.Storage
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	companyRepo repositories.CompanyRepository,
	userRepo repositories.UserRepository,
	store storage.Storage,
) ApplicationService {
	return &ApplicationServiceImpl{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		companyRepo:     companyRepo,
		userRepo:        userRepo,
		storage:         store,
	}
}

// Apply submits an application with a PDF resume. HR accounts cannot
// apply, and a user applies to a given job at most once.
func (s *ApplicationServiceImpl) Apply(ctx context.Context, db *gorm.DB, userID, jobID string, req *dto.ApplyRequest, resume *multipart.FileHeader) (*dto.ApplicationDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	if user.Role != models.UserRoleUser {
		return nil, apperrors.ErrInvalidUserRole
	}

	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, handleJobError(err)
	}

	exists, err := s.applicationRepo.ExistsForJobAndUser(db, jobID, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyExists(errors.New("application already submitted for this job"))
	}

	resumePath, err := s.storeResume(ctx, userID, resume)
	if err != nil {
		return nil, err
	}

	application := &models.Application{
		JobID:          job.ID,
		UserID:         userID,
		UserTechSkills: req.UserTechSkills,
		UserSoftSkills: req.UserSoftSkills,
		UserResume:     resumePath,
	}
	if err := s.applicationRepo.Create(db, application); err != nil {
		// The resume is already stored; drop it so failed applications
		// do not leave orphan files behind.
		_ = s.storage.Delete(ctx, resumePath)
		return nil, apperrors.InternalError(err)
	}

	out := dto.ApplicationToDTO(application)
	return &out, nil
}

// ListForCompanyOnDay returns the applications received on a single
// calendar day across all of a company's jobs, with applicant info.
// Only the owning HR may ask.
func (s *ApplicationServiceImpl) ListForCompanyOnDay(db *gorm.DB, hrUserID, companyID string, day time.Time) (*dto.CompanyApplicationsResponse, error) {
	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		return nil, handleCompanyError(err)
	}
	if company.CompanyHR != hrUserID {
		return nil, apperrors.ErrNotCompanyOwner
	}

	jobIDs, err := s.jobRepo.FindIDsByOwner(db, company.CompanyHR)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24 * time.Hour)

	applications, err := s.applicationRepo.FindByJobsWithinRange(db, jobIDs, from, to)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	applicants := make(map[string]*dto.PublicUserDTO)
	out := make([]dto.ApplicationWithApplicantDTO, 0, len(applications))
	for i := range applications {
		applicantID := applications[i].UserID
		if _, seen := applicants[applicantID]; !seen {
			applicants[applicantID] = nil
			if applicant, err := s.userRepo.FindByID(db, applicantID); err == nil {
				a := dto.UserToPublicDTO(applicant)
				applicants[applicantID] = &a
			}
		}
		out = append(out, dto.ApplicationWithApplicantDTO{
			ApplicationDTO: dto.ApplicationToDTO(&applications[i]),
			Applicant:      applicants[applicantID],
		})
	}

	return &dto.CompanyApplicationsResponse{
		CompanyID:    companyID,
		Date:         from.Format("2006-01-02"),
		Total:        len(out),
		Applications: out,
	}, nil
}

// ResumeURL returns a short-lived signed URL for an application's resume.
// The applicant and the job's owning HR may fetch it.
func (s *ApplicationServiceImpl) ResumeURL(ctx context.Context, db *gorm.DB, requesterID, applicationID string) (string, error) {
	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return "", apperrors.ErrNotFound(err)
		}
		return "", apperrors.InternalError(err)
	}

	if application.UserID != requesterID {
		job, err := s.jobRepo.FindByID(db, application.JobID)
		if err != nil {
			return "", handleJobError(err)
		}
		if job.AddedBy != requesterID {
			return "", apperrors.NewForbiddenError("not allowed to view this resume")
		}
	}

	url, err := s.storage.GetSignedURL(ctx, application.UserResume, 15*time.Minute)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return url, nil
}

func (s *ApplicationServiceImpl) storeResume(ctx context.Context, userID string, resume *multipart.FileHeader) (string, error) {
	cfg := config.GetConfig()

	if resume.Size > cfg.Upload.MaxSize {
		return "", apperrors.ErrFileTooLarge
	}

	contentType := resume.Header.Get("Content-Type")
	allowed := false
	for _, t := range cfg.Upload.AllowedTypes {
		if strings.EqualFold(t, contentType) {
			allowed = true
			break
		}
	}
	if !allowed || !strings.EqualFold(filepath.Ext(resume.Filename), ".pdf") {
		return "", apperrors.ErrInvalidFileType
	}

	f, err := resume.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer f.Close()

	// Sniff the header so a renamed file cannot slip through.
	head := make([]byte, 5)
	if _, err := io.ReadFull(f, head); err != nil || string(head) != "%PDF-" {
		return "", apperrors.ErrInvalidFileType
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", apperrors.InternalError(err)
	}

	path := fmt.Sprintf("resumes/%s/%s.pdf", userID, uuid.NewString())
	if err := s.storage.Save(ctx, path, f, contentType); err != nil {
		return "", apperrors.InternalError(err)
	}
	return path, nil
}
