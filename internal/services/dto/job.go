package dto

import (
	"encoding/json"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/datatypes"
)

// AddJobRequest - posts a new job for the calling HR's company
type AddJobRequest struct {
	JobTitle        string                `json:"job_title" binding:"required,min=2,max=100"`
	JobLocation     models.JobLocation    `json:"job_location" binding:"required,oneof=onsite remotely hybrid"`
	WorkingTime     models.WorkingTime    `json:"working_time" binding:"required,oneof=part-time full-time"`
	SeniorityLevel  models.SeniorityLevel `json:"seniority_level" binding:"required,oneof=Junior Mid-Level Senior Team-Lead CTO"`
	JobDescription  string                `json:"job_description" binding:"required"`
	TechnicalSkills []string              `json:"technical_skills" binding:"required,min=1"`
	SoftSkills      []string              `json:"soft_skills" binding:"required,min=1"`
}

// UpdateJobRequest - partial job update; nil fields are untouched
type UpdateJobRequest struct {
	JobTitle        *string                `json:"job_title,omitempty" binding:"omitempty,min=2,max=100"`
	JobLocation     *models.JobLocation    `json:"job_location,omitempty" binding:"omitempty,oneof=onsite remotely hybrid"`
	WorkingTime     *models.WorkingTime    `json:"working_time,omitempty" binding:"omitempty,oneof=part-time full-time"`
	SeniorityLevel  *models.SeniorityLevel `json:"seniority_level,omitempty" binding:"omitempty,oneof=Junior Mid-Level Senior Team-Lead CTO"`
	JobDescription  *string                `json:"job_description,omitempty"`
	TechnicalSkills []string               `json:"technical_skills,omitempty"`
	SoftSkills      []string               `json:"soft_skills,omitempty"`
}

// JobSearchFilter - query parameters for filtered job search
type JobSearchFilter struct {
	WorkingTime    models.WorkingTime    `form:"working_time" binding:"omitempty,oneof=part-time full-time"`
	JobLocation    models.JobLocation    `form:"job_location" binding:"omitempty,oneof=onsite remotely hybrid"`
	SeniorityLevel models.SeniorityLevel `form:"seniority_level" binding:"omitempty,oneof=Junior Mid-Level Senior Team-Lead CTO"`
	JobTitle       string                `form:"job_title"`
	TechnicalSkill string                `form:"technical_skill"`
}

// JobDTO - job representation
type JobDTO struct {
	ID              string                `json:"id"`
	JobTitle        string                `json:"job_title"`
	JobLocation     models.JobLocation    `json:"job_location"`
	WorkingTime     models.WorkingTime    `json:"working_time"`
	SeniorityLevel  models.SeniorityLevel `json:"seniority_level"`
	JobDescription  string                `json:"job_description"`
	TechnicalSkills []string              `json:"technical_skills"`
	SoftSkills      []string              `json:"soft_skills"`
	AddedBy         string                `json:"added_by"`
	CreatedAt       time.Time             `json:"created_at"`
}

// JobWithCompanyDTO - job listing entry with its company attached
type JobWithCompanyDTO struct {
	JobDTO
	Company *CompanyDTO `json:"company,omitempty"`
}

func JobToDTO(job *models.Job) JobDTO {
	return JobDTO{
		ID:              job.ID,
		JobTitle:        job.JobTitle,
		JobLocation:     job.JobLocation,
		WorkingTime:     job.WorkingTime,
		SeniorityLevel:  job.SeniorityLevel,
		JobDescription:  job.JobDescription,
		TechnicalSkills: SkillsFromJSON(job.TechnicalSkills),
		SoftSkills:      SkillsFromJSON(job.SoftSkills),
		AddedBy:         job.AddedBy,
		CreatedAt:       job.CreatedAt,
	}
}

// SkillsToJSON packs a skill list into the jsonb column representation.
func SkillsToJSON(skills []string) datatypes.JSON {
	if skills == nil {
		skills = []string{}
	}
	raw, _ := json.Marshal(skills)
	return datatypes.JSON(raw)
}

// SkillsFromJSON unpacks the jsonb column back into a skill list.
func SkillsFromJSON(raw datatypes.JSON) []string {
	var skills []string
	if len(raw) == 0 {
		return []string{}
	}
	if err := json.Unmarshal(raw, &skills); err != nil {
		return []string{}
	}
	return skills
}
