package repositories

import (
	"encoding/json"
	"errors"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

// JobFilter narrows job searches. Zero-valued fields are ignored.
type JobFilter struct {
	WorkingTime    models.WorkingTime
	JobLocation    models.JobLocation
	SeniorityLevel models.SeniorityLevel
	JobTitle       string
	TechnicalSkill string
}

type JobRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	FindAll(db *gorm.DB, limit, offset int) ([]models.Job, error)
	FindByOwner(db *gorm.DB, addedBy string) ([]models.Job, error)
	FindIDsByOwner(db *gorm.DB, addedBy string) ([]string, error)
	Search(db *gorm.DB, filter JobFilter) ([]models.Job, error)
	Create(db *gorm.DB, job *models.Job) error
	Update(db *gorm.DB, job *models.Job) error
	Delete(db *gorm.DB, jobID string) error
	DeleteByIDs(db *gorm.DB, jobIDs []string) error
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindByOwner(db *gorm.DB, addedBy string) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where("added_by = ?", addedBy).Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindIDsByOwner(db *gorm.DB, addedBy string) ([]string, error) {
	var ids []string
	err := db.Model(&models.Job{}).Where("added_by = ?", addedBy).Pluck("id", &ids).Error
	return ids, err
}

func (r *JobRepositoryImpl) Search(db *gorm.DB, filter JobFilter) ([]models.Job, error) {
	query := db.Model(&models.Job{})

	if filter.WorkingTime != "" {
		query = query.Where("working_time = ?", filter.WorkingTime)
	}
	if filter.JobLocation != "" {
		query = query.Where("job_location = ?", filter.JobLocation)
	}
	if filter.SeniorityLevel != "" {
		query = query.Where("seniority_level = ?", filter.SeniorityLevel)
	}
	if filter.JobTitle != "" {
		query = query.Where("job_title ILIKE ?", "%"+filter.JobTitle+"%")
	}
	if filter.TechnicalSkill != "" {
		// jsonb containment on the technical_skills array
		query = query.Where("technical_skills @> ?", skillNeedle(filter.TechnicalSkill))
	}

	var jobs []models.Job
	err := query.Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

// skillNeedle builds the containment argument for a skill search. Marshalling
// keeps quotes and backslashes in the search term valid JSON.
func skillNeedle(skill string) string {
	needle, _ := json.Marshal([]string{skill})
	return string(needle)
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) Update(db *gorm.DB, job *models.Job) error {
	result := db.Model(job).Updates(map[string]interface{}{
		"job_title":        job.JobTitle,
		"job_location":     job.JobLocation,
		"working_time":     job.WorkingTime,
		"seniority_level":  job.SeniorityLevel,
		"job_description":  job.JobDescription,
		"technical_skills": job.TechnicalSkills,
		"soft_skills":      job.SoftSkills,
		"updated_at":       time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// Delete is idempotent so cascade retries converge.
func (r *JobRepositoryImpl) Delete(db *gorm.DB, jobID string) error {
	return db.Where("id = ?", jobID).Delete(&models.Job{}).Error
}

func (r *JobRepositoryImpl) DeleteByIDs(db *gorm.DB, jobIDs []string) error {
	if len(jobIDs) == 0 {
		return nil
	}
	return db.Where("id IN ?", jobIDs).Delete(&models.Job{}).Error
}
