package models

type Company struct {
	BaseModel
	CompanyName       string `gorm:"uniqueIndex;not null" json:"company_name"`
	Description       string `gorm:"not null" json:"description"`
	Industry          string `gorm:"not null" json:"industry"`
	Address           string `gorm:"not null" json:"address"`
	NumberOfEmployees int    `gorm:"not null" json:"number_of_employees"`
	CompanyEmail      string `gorm:"uniqueIndex;not null" json:"company_email"`

	// CompanyHR references the owning user; that user must have the
	// Company_HR role, and owns at most one company.
	CompanyHR string `gorm:"type:uuid;not null;index" json:"company_hr"`
}
