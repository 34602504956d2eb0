package repository

import (
	"context"

	"gorm.io/gorm"

	"sitereport/internal/db"
	"sitereport/internal/model"
)

// ReportRepository defines report read operations.
type ReportRepository interface {
	List(ctx context.Context) ([]model.Report, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]model.Report, error)
	Recent(ctx context.Context, limit int) ([]model.Report, error)
	RecentByAuthor(ctx context.Context, authorID uint, limit int) ([]model.Report, error)
	CountPending(ctx context.Context) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) List(ctx context.Context) ([]model.Report, error) {
	reports, err := recentReports(r.db.WithContext(ctx).Preload("Author"), 0, 0)
	return reports, db.Classify("list reports", err)
}

func (r *reportRepository) ListByAuthor(ctx context.Context, authorID uint) ([]model.Report, error) {
	reports, err := recentReports(r.db.WithContext(ctx).Preload("Author"), authorID, 0)
	return reports, db.Classify("list reports by author", err)
}

func (r *reportRepository) Recent(ctx context.Context, limit int) ([]model.Report, error) {
	reports, err := recentReports(r.db.WithContext(ctx).Preload("Author"), 0, limit)
	return reports, db.Classify("recent reports", err)
}

func (r *reportRepository) RecentByAuthor(ctx context.Context, authorID uint, limit int) ([]model.Report, error) {
	reports, err := recentReports(r.db.WithContext(ctx).Preload("Author"), authorID, limit)
	return reports, db.Classify("recent reports by author", err)
}

// CountPending counts reports still waiting for work or approval.
func (r *reportRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Report{}).
		Where("status IN ?", []string{model.ReportStatusPending, model.ReportStatusAwaitingApproval}).
		Count(&count).Error
	return count, db.Classify("count pending reports", err)
}

// recentReports orders by creation time, newest first. A zero authorID
// means every author and a zero limit means no limit.
func recentReports(tx *gorm.DB, authorID uint, limit int) ([]model.Report, error) {
	q := tx.Preload("Project").Order("created_at DESC, id DESC")
	if authorID != 0 {
		q = q.Where("author_id = ?", authorID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var reports []model.Report
	err := q.Find(&reports).Error
	return reports, err
}
