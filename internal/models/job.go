package models

import "github.com/lib/pq"

type Job struct {
	BaseModel
	StartupID        string          `gorm:"type:uuid;not null;index" json:"startupId"`
	Title            string          `gorm:"not null" json:"title"`
	Type             JobType         `gorm:"type:varchar(20);not null" json:"type"`
	ExperienceLevel  ExperienceLevel `gorm:"type:varchar(20)" json:"experienceLevel"`
	LocationType     LocationType    `gorm:"type:varchar(20)" json:"locationType"`
	LocationCity     string          `json:"locationCity"`
	LocationCountry  string          `json:"locationCountry"`
	SalaryMin        *int            `json:"salaryMin,omitempty"`
	SalaryMax        *int            `json:"salaryMax,omitempty"`
	SalaryCurrency   string          `json:"salaryCurrency"`
	Description      string          `gorm:"type:text" json:"description"`
	Requirements     pq.StringArray  `gorm:"type:text[]" json:"requirements"`
	Responsibilities pq.StringArray  `gorm:"type:text[]" json:"responsibilities"`
	Skills           pq.StringArray  `gorm:"type:text[]" json:"skills"`
	Status           JobStatus       `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	Views            int             `gorm:"not null;default:0" json:"views"`
	Applications     int             `gorm:"not null;default:0" json:"applications"`

	Startup *Startup `gorm:"foreignKey:StartupID" json:"startup,omitempty"`
}

func (j *Job) IsActive() bool {
	return j.Status == JobStatusActive
}
