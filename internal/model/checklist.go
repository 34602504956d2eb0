package model

import "time"

// ChecklistItem is one ordered step of the standard site inspection.
// (Text, Order) is the natural key.
type ChecklistItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"size:255;not null;uniqueIndex:idx_checklist_text_order"`
	Order     int       `json:"order" gorm:"column:sort_order;not null;uniqueIndex:idx_checklist_text_order"`
	Active    bool      `json:"active" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}
