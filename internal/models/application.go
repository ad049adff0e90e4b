package models

import (
	"github.com/lib/pq"
)

// Application links an applicant to a job. Applications are never updated;
// they are removed only when their job (or the applicant) is deleted.
type Application struct {
	BaseModel
	JobID          string         `gorm:"type:uuid;not null;index" json:"job_id"`
	UserID         string         `gorm:"type:uuid;not null;index" json:"user_id"`
	UserTechSkills pq.StringArray `gorm:"type:text[]" json:"user_tech_skills"`
	UserSoftSkills pq.StringArray `gorm:"type:text[]" json:"user_soft_skills"`

	// UserResume is the storage path of the uploaded PDF.
	UserResume string `gorm:"not null" json:"user_resume"`
}
