package models

import (
	"gorm.io/datatypes"
)

type JobLocation string
type WorkingTime string
type SeniorityLevel string

const (
	JobLocationOnsite   JobLocation = "onsite"
	JobLocationRemotely JobLocation = "remotely"
	JobLocationHybrid   JobLocation = "hybrid"

	WorkingTimeFullTime WorkingTime = "full-time"
	WorkingTimePartTime WorkingTime = "part-time"

	SeniorityJunior   SeniorityLevel = "Junior"
	SeniorityMidLevel SeniorityLevel = "Mid-Level"
	SenioritySenior   SeniorityLevel = "Senior"
	SeniorityTeamLead SeniorityLevel = "Team-Lead"
	SeniorityCTO      SeniorityLevel = "CTO"
)

type Job struct {
	BaseModel
	JobTitle        string         `gorm:"not null;index" json:"job_title"`
	JobLocation     JobLocation    `gorm:"type:varchar(20);not null" json:"job_location"`
	WorkingTime     WorkingTime    `gorm:"type:varchar(20);not null" json:"working_time"`
	SeniorityLevel  SeniorityLevel `gorm:"type:varchar(20);not null" json:"seniority_level"`
	JobDescription  string         `gorm:"not null" json:"job_description"`
	TechnicalSkills datatypes.JSON `gorm:"type:jsonb" json:"technical_skills"`
	SoftSkills      datatypes.JSON `gorm:"type:jsonb" json:"soft_skills"`

	// AddedBy references the Company_HR user who posted the job.
	AddedBy string `gorm:"type:uuid;not null;index" json:"added_by"`
}
