package model

import "time"

// VisitStatusScheduled marks visits that have not started yet.
const VisitStatusScheduled = "Scheduled"

// Visit is a site visit under ResponsibleID's responsibility.
type Visit struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Number        string     `json:"number" gorm:"size:50;index"`
	ProjectID     *uint      `json:"project_id" gorm:"index"`
	ProjectName   string     `json:"project_name" gorm:"size:255"`
	ResponsibleID uint       `json:"responsible_id" gorm:"not null;index"`
	StartAt       *time.Time `json:"start_at" gorm:"index"`
	EndAt         *time.Time `json:"end_at"`
	Status        string     `json:"status" gorm:"size:50;not null;index"`
	Notes         string     `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations
	Project *Project `json:"-" gorm:"foreignKey:ProjectID"`
}
