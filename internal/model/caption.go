package model

import "time"

// Caption categories of the predefined library.
const (
	CaptionCategoryFinishing  = "Finishing"
	CaptionCategoryStructural = "Structural"
	CaptionCategoryGeneral    = "General"
	CaptionCategorySafety     = "Safety"
)

// CaptionEntry is a predefined annotation offered when captioning site photos.
// (Text, Category) is the natural key.
type CaptionEntry struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Text        string    `json:"text" gorm:"size:255;not null;uniqueIndex:idx_caption_text_category"`
	Category    string    `json:"category" gorm:"size:100;not null;uniqueIndex:idx_caption_text_category;index"`
	Active      bool      `json:"active" gorm:"not null;index"`
	CreatedByID uint      `json:"created_by_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	CreatedBy *User `json:"-" gorm:"foreignKey:CreatedByID"`
}
