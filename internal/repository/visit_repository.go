package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sitereport/internal/db"
	"sitereport/internal/model"
)

// VisitRepository defines visit read operations.
type VisitRepository interface {
	List(ctx context.Context) ([]model.Visit, error)
	ListByResponsible(ctx context.Context, userID uint) ([]model.Visit, error)
	CountUpcoming(ctx context.Context, now time.Time) (int64, error)
}

type visitRepository struct {
	db *gorm.DB
}

// NewVisitRepository creates a new visit repository.
func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) List(ctx context.Context) ([]model.Visit, error) {
	visits, err := recentVisits(r.db.WithContext(ctx), 0, 0)
	return visits, db.Classify("list visits", err)
}

func (r *visitRepository) ListByResponsible(ctx context.Context, userID uint) ([]model.Visit, error) {
	visits, err := recentVisits(r.db.WithContext(ctx), userID, 0)
	return visits, db.Classify("list visits by responsible", err)
}

// CountUpcoming counts scheduled visits starting from now on.
func (r *visitRepository) CountUpcoming(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Visit{}).
		Where("status = ? AND start_at >= ?", model.VisitStatusScheduled, now).
		Count(&count).Error
	return count, db.Classify("count upcoming visits", err)
}

// recentVisits orders by start time, latest first, with unscheduled visits
// last on every engine.
func recentVisits(tx *gorm.DB, userID uint, limit int) ([]model.Visit, error) {
	q := tx.Preload("Project").Order("start_at IS NULL, start_at DESC, id DESC")
	if userID != 0 {
		q = q.Where("responsible_id = ?", userID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var visits []model.Visit
	err := q.Find(&visits).Error
	return visits, err
}
