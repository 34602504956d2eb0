package model

import "time"

// ProjectStatusActive marks projects that are visible to every client.
const ProjectStatusActive = "Active"

// Project is a construction site under follow-up.
type Project struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Number        string     `json:"number" gorm:"size:50;index"`
	Name          string     `json:"name" gorm:"size:255;not null"`
	Address       string     `json:"address" gorm:"type:text"`
	WorkType      string     `json:"work_type" gorm:"size:100"`
	Builder       string     `json:"builder" gorm:"size:255"`
	Status        string     `json:"status" gorm:"size:50;not null;default:'Active';index"`
	StartDate     *time.Time `json:"start_date"`
	ResponsibleID *uint      `json:"responsible_id" gorm:"index"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
