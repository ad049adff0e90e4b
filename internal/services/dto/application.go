package dto

import (
	"time"

	"jobboard_backend/internal/models"
)

// ApplyRequest - multipart form fields accompanying the resume upload
type ApplyRequest struct {
	UserTechSkills []string `form:"user_tech_skills" binding:"required,min=1"`
	UserSoftSkills []string `form:"user_soft_skills" binding:"required,min=1"`
}

// ApplicationDTO - application representation
type ApplicationDTO struct {
	ID             string    `json:"id"`
	JobID          string    `json:"job_id"`
	UserID         string    `json:"user_id"`
	UserTechSkills []string  `json:"user_tech_skills"`
	UserSoftSkills []string  `json:"user_soft_skills"`
	UserResume     string    `json:"user_resume"`
	CreatedAt      time.Time `json:"created_at"`
}

// ApplicationWithApplicantDTO - application with the applicant's public info
type ApplicationWithApplicantDTO struct {
	ApplicationDTO
	Applicant *PublicUserDTO `json:"applicant,omitempty"`
}

// CompanyApplicationsResponse - a company's applications for a single day
type CompanyApplicationsResponse struct {
	CompanyID    string                        `json:"company_id"`
	Date         string                        `json:"date"`
	Total        int                           `json:"total"`
	Applications []ApplicationWithApplicantDTO `json:"applications"`
}

func ApplicationToDTO(application *models.Application) ApplicationDTO {
	return ApplicationDTO{
		ID:             application.ID,
		JobID:          application.JobID,
		UserID:         application.UserID,
		UserTechSkills: application.UserTechSkills,
		UserSoftSkills: application.UserSoftSkills,
		UserResume:     application.UserResume,
		CreatedAt:      application.CreatedAt,
	}
}
