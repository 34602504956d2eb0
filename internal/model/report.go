package model

import "time"

// Report statuses still waiting on someone.
const (
	ReportStatusPending          = "Pending"
	ReportStatusAwaitingApproval = "Awaiting Approval"
)

// Report is an inspection report written by AuthorID, optionally about a Project.
type Report struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Number     string     `json:"number" gorm:"size:50;index"`
	Title      string     `json:"title" gorm:"size:255;not null"`
	ProjectID  *uint      `json:"project_id" gorm:"index"`
	AuthorID   uint       `json:"author_id" gorm:"not null;index"`
	Status     string     `json:"status" gorm:"size:50;not null;index"`
	ReportDate *time.Time `json:"report_date"`
	CreatedAt  time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relations
	Project *Project `json:"-" gorm:"foreignKey:ProjectID"`
	Author  *User    `json:"-" gorm:"foreignKey:AuthorID"`
}
