package repositories

import (
	"errors"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	FindByApplicant(db *gorm.DB, userID string) ([]models.Application, error)
	FindByJob(db *gorm.DB, jobID string) ([]models.Application, error)
	FindByJobsWithinRange(db *gorm.DB, jobIDs []string, from, to time.Time) ([]models.Application, error)
	ExistsForJobAndUser(db *gorm.DB, jobID, userID string) (bool, error)
	Create(db *gorm.DB, application *models.Application) error
	DeleteByApplicant(db *gorm.DB, userID string) error
	DeleteByJobID(db *gorm.DB, jobID string) error
	DeleteByJobIDs(db *gorm.DB, jobIDs []string) error
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var application models.Application
	err := db.First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByApplicant(db *gorm.DB, userID string) ([]models.Application, error) {
	var applications []models.Application
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindByJob(db *gorm.DB, jobID string) ([]models.Application, error) {
	var applications []models.Application
	err := db.Where("job_id = ?", jobID).Order("created_at DESC").Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindByJobsWithinRange(db *gorm.DB, jobIDs []string, from, to time.Time) ([]models.Application, error) {
	if len(jobIDs) == 0 {
		return []models.Application{}, nil
	}
	var applications []models.Application
	err := db.Where("job_id IN ? AND created_at >= ? AND created_at < ?", jobIDs, from, to).
		Order("created_at ASC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) ExistsForJobAndUser(db *gorm.DB, jobID, userID string) (bool, error) {
	var count int64
	err := db.Model(&models.Application{}).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, application *models.Application) error {
	return db.Create(application).Error
}

// The bulk deletes below are idempotent: deleting zero rows is success,
// so an interrupted cascade can be re-run to completion.

func (r *ApplicationRepositoryImpl) DeleteByApplicant(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.Application{}).Error
}

func (r *ApplicationRepositoryImpl) DeleteByJobID(db *gorm.DB, jobID string) error {
	return db.Where("job_id = ?", jobID).Delete(&models.Application{}).Error
}

func (r *ApplicationRepositoryImpl) DeleteByJobIDs(db *gorm.DB, jobIDs []string) error {
	if len(jobIDs) == 0 {
		return nil
	}
	return db.Where("job_id IN ?", jobIDs).Delete(&models.Application{}).Error
}
