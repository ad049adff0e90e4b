package repositories

import (
	"errors"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound      = errors.New("company not found")
	ErrCompanyAlreadyExists = errors.New("company already exists")
)

type CompanyRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Company, error)
	// FindByHR returns the company owned by the given Company_HR user.
	FindByHR(db *gorm.DB, hrUserID string) (*models.Company, error)
	SearchByName(db *gorm.DB, query string) ([]models.Company, error)
	Create(db *gorm.DB, company *models.Company) error
	Update(db *gorm.DB, company *models.Company) error
	Delete(db *gorm.DB, companyID string) error
}

type CompanyRepositoryImpl struct{}

func NewCompanyRepository() CompanyRepository {
	return &CompanyRepositoryImpl{}
}

func (r *CompanyRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Company, error) {
	var company models.Company
	err := db.First(&company, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) FindByHR(db *gorm.DB, hrUserID string) (*models.Company, error) {
	var company models.Company
	err := db.First(&company, "company_hr = ?", hrUserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) SearchByName(db *gorm.DB, query string) ([]models.Company, error) {
	var companies []models.Company
	err := db.Where("company_name ILIKE ?", "%"+query+"%").Find(&companies).Error
	return companies, err
}

func (r *CompanyRepositoryImpl) Create(db *gorm.DB, company *models.Company) error {
	var existing models.Company
	if err := db.Where("company_name = ? OR company_email = ?",
		company.CompanyName, company.CompanyEmail).First(&existing).Error; err == nil {
		return ErrCompanyAlreadyExists
	}

	return db.Create(company).Error
}

func (r *CompanyRepositoryImpl) Update(db *gorm.DB, company *models.Company) error {
	result := db.Model(company).Updates(map[string]interface{}{
		"company_name":        company.CompanyName,
		"description":         company.Description,
		"industry":            company.Industry,
		"address":             company.Address,
		"number_of_employees": company.NumberOfEmployees,
		"company_email":       company.CompanyEmail,
		"updated_at":          time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

// Delete is idempotent: removing an absent company is not an error, so a
// retried cascade converges.
func (r *CompanyRepositoryImpl) Delete(db *gorm.DB, companyID string) error {
	return db.Where("id = ?", companyID).Delete(&models.Company{}).Error
}
