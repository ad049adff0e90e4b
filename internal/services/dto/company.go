package dto

import (
	"time"

	"jobboard_backend/internal/models"
)

// CreateCompanyRequest - registers a company for the calling HR account
type CreateCompanyRequest struct {
	CompanyName       string `json:"company_name" binding:"required,min=2,max=100"`
	Description       string `json:"description" binding:"required"`
	Industry          string `json:"industry" binding:"required"`
	Address           string `json:"address" binding:"required"`
	NumberOfEmployees int    `json:"number_of_employees" binding:"required,min=1"`
	CompanyEmail      string `json:"company_email" binding:"required,email"`
}

// UpdateCompanyRequest - partial company update; nil fields are untouched
type UpdateCompanyRequest struct {
	CompanyName       *string `json:"company_name,omitempty" binding:"omitempty,min=2,max=100"`
	Description       *string `json:"description,omitempty"`
	Industry          *string `json:"industry,omitempty"`
	Address           *string `json:"address,omitempty"`
	NumberOfEmployees *int    `json:"number_of_employees,omitempty" binding:"omitempty,min=1"`
	CompanyEmail      *string `json:"company_email,omitempty" binding:"omitempty,email"`
}

// CompanyDTO - company representation
type CompanyDTO struct {
	ID                string    `json:"id"`
	CompanyName       string    `json:"company_name"`
	Description       string    `json:"description"`
	Industry          string    `json:"industry"`
	Address           string    `json:"address"`
	NumberOfEmployees int       `json:"number_of_employees"`
	CompanyEmail      string    `json:"company_email"`
	CompanyHR         string    `json:"company_hr"`
	CreatedAt         time.Time `json:"created_at"`
}

// CompanyWithJobsResponse - company detail including its open jobs
type CompanyWithJobsResponse struct {
	Company CompanyDTO `json:"company"`
	Jobs    []JobDTO   `json:"jobs"`
}

func CompanyToDTO(company *models.Company) CompanyDTO {
	return CompanyDTO{
		ID:                company.ID,
		CompanyName:       company.CompanyName,
		Description:       company.Description,
		Industry:          company.Industry,
		Address:           company.Address,
		NumberOfEmployees: company.NumberOfEmployees,
		CompanyEmail:      company.CompanyEmail,
		CompanyHR:         company.CompanyHR,
		CreatedAt:         company.CreatedAt,
	}
}
