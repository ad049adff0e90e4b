package services

import (
	"errors"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type JobService interface {
	Add(db *gorm.DB, hrUserID string, req *dto.AddJobRequest) (*dto.JobDTO, error)
	Update(db *gorm.DB, hrUserID, jobID string, req *dto.UpdateJobRequest) (*dto.JobDTO, error)
	Delete(db *gorm.DB, hrUserID, jobID string) error
	Get(db *gorm.DB, jobID string) (*dto.JobWithCompanyDTO, error)
	ListAll(db *gorm.DB, limit, offset int) ([]dto.JobWithCompanyDTO, error)
	Search(db *gorm.DB, filter *dto.JobSearchFilter) ([]dto.JobDTO, error)
	ListForCompany(db *gorm.DB, companyID string) ([]dto.JobDTO, error)
}

type JobServiceImpl struct {
	jobRepo         repositories.JobRepository
	companyRepo     repositories.CompanyRepository
	userRepo        repositories.UserRepository
	applicationRepo repositories.ApplicationRepository
	runTx           txRunner
}

func NewJobService(
	jobRepo repositories.JobRepository,
	companyRepo repositories.CompanyRepository,
	userRepo repositories.UserRepository,
	applicationRepo repositories.ApplicationRepository,
) JobService {
	return &JobServiceImpl{
		jobRepo:         jobRepo,
		companyRepo:     companyRepo,
		userRepo:        userRepo,
		applicationRepo: applicationRepo,
		runTx:           gormTransaction,
	}
}

// Add posts a job on behalf of the calling HR. The HR must own a company.
func (s *JobServiceImpl) Add(db *gorm.DB, hrUserID string, req *dto.AddJobRequest) (*dto.JobDTO, error) {
	user, err := s.userRepo.FindByID(db, hrUserID)
	if err != nil {
		return nil, handleUserError(err)
	}
	if user.Role != models.UserRoleCompanyHR {
		return nil, apperrors.ErrInvalidUserRole
	}
	if _, err := s.companyRepo.FindByHR(db, hrUserID); err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.NewBadRequestError("register a company before posting jobs")
		}
		return nil, apperrors.InternalError(err)
	}

	job := &models.Job{
		JobTitle:        req.JobTitle,
		JobLocation:     req.JobLocation,
		WorkingTime:     req.WorkingTime,
		SeniorityLevel:  req.SeniorityLevel,
		JobDescription:  req.JobDescription,
		TechnicalSkills: dto.SkillsToJSON(req.TechnicalSkills),
		SoftSkills:      dto.SkillsToJSON(req.SoftSkills),
		AddedBy:         hrUserID,
	}
	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := dto.JobToDTO(job)
	return &out, nil
}

func (s *JobServiceImpl) Update(db *gorm.DB, hrUserID, jobID string, req *dto.UpdateJobRequest) (*dto.JobDTO, error) {
	job, err := s.ownedJob(db, hrUserID, jobID)
	if err != nil {
		return nil, err
	}

	if req.JobTitle != nil {
		job.JobTitle = *req.JobTitle
	}
	if req.JobLocation != nil {
		job.JobLocation = *req.JobLocation
	}
	if req.WorkingTime != nil {
		job.WorkingTime = *req.WorkingTime
	}
	if req.SeniorityLevel != nil {
		job.SeniorityLevel = *req.SeniorityLevel
	}
	if req.JobDescription != nil {
		job.JobDescription = *req.JobDescription
	}
	if req.TechnicalSkills != nil {
		job.TechnicalSkills = dto.SkillsToJSON(req.TechnicalSkills)
	}
	if req.SoftSkills != nil {
		job.SoftSkills = dto.SkillsToJSON(req.SoftSkills)
	}

	if err := s.jobRepo.Update(db, job); err != nil {
		return nil, handleJobError(err)
	}

	out := dto.JobToDTO(job)
	return &out, nil
}

// Delete removes a job and its applications in one transaction. Only the
// HR who added the job may delete it.
func (s *JobServiceImpl) Delete(db *gorm.DB, hrUserID, jobID string) error {
	job, err := s.ownedJob(db, hrUserID, jobID)
	if err != nil {
		return err
	}

	return s.runTx(db, func(tx *gorm.DB) error {
		if err := s.applicationRepo.DeleteByJobID(tx, job.ID); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.jobRepo.Delete(tx, job.ID); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
}

func (s *JobServiceImpl) Get(db *gorm.DB, jobID string) (*dto.JobWithCompanyDTO, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, handleJobError(err)
	}

	out := dto.JobWithCompanyDTO{JobDTO: dto.JobToDTO(job)}
	if company, err := s.companyRepo.FindByHR(db, job.AddedBy); err == nil {
		c := dto.CompanyToDTO(company)
		out.Company = &c
	}
	return &out, nil
}

// ListAll returns jobs with their companies attached. Company lookups are
// batched per distinct owner, not per job.
func (s *JobServiceImpl) ListAll(db *gorm.DB, limit, offset int) ([]dto.JobWithCompanyDTO, error) {
	jobs, err := s.jobRepo.FindAll(db, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	companies := make(map[string]*dto.CompanyDTO)
	out := make([]dto.JobWithCompanyDTO, 0, len(jobs))
	for i := range jobs {
		owner := jobs[i].AddedBy
		if _, seen := companies[owner]; !seen {
			companies[owner] = nil
			if company, err := s.companyRepo.FindByHR(db, owner); err == nil {
				c := dto.CompanyToDTO(company)
				companies[owner] = &c
			}
		}
		out = append(out, dto.JobWithCompanyDTO{
			JobDTO:  dto.JobToDTO(&jobs[i]),
			Company: companies[owner],
		})
	}
	return out, nil
}

func (s *JobServiceImpl) Search(db *gorm.DB, filter *dto.JobSearchFilter) ([]dto.JobDTO, error) {
	jobs, err := s.jobRepo.Search(db, repositories.JobFilter{
		WorkingTime:    filter.WorkingTime,
		JobLocation:    filter.JobLocation,
		SeniorityLevel: filter.SeniorityLevel,
		JobTitle:       filter.JobTitle,
		TechnicalSkill: filter.TechnicalSkill,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.JobDTO, 0, len(jobs))
	for i := range jobs {
		out = append(out, dto.JobToDTO(&jobs[i]))
	}
	return out, nil
}

func (s *JobServiceImpl) ListForCompany(db *gorm.DB, companyID string) ([]dto.JobDTO, error) {
	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		return nil, handleCompanyError(err)
	}

	jobs, err := s.jobRepo.FindByOwner(db, company.CompanyHR)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.JobDTO, 0, len(jobs))
	for i := range jobs {
		out = append(out, dto.JobToDTO(&jobs[i]))
	}
	return out, nil
}

func (s *JobServiceImpl) ownedJob(db *gorm.DB, hrUserID, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, handleJobError(err)
	}
	if job.AddedBy != hrUserID {
		return nil, apperrors.ErrNotJobOwner
	}
	return job, nil
}

func handleJobError(err error) error {
	if errors.Is(err, repositories.ErrJobNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}
