package service

import (
	"context"
	"time"

	apperrors "sitereport/internal/errors"
	"sitereport/internal/model"
	"sitereport/internal/repository"
)

// SyncWindow bounds how many reports and visits one sync returns.
const SyncWindow = 50

// SyncSnapshot is the payload of a down sync.
type SyncSnapshot struct {
	Projects []ProjectView `json:"projects"`
	Reports  []ReportView  `json:"reports"`
	Visits   []VisitView   `json:"visits"`
	SyncTime string        `json:"sync_time"`
}

// SyncService builds sync snapshots.
type SyncService interface {
	SyncDown(ctx context.Context, user *model.User) (*SyncSnapshot, error)
}

type syncService struct {
	repo repository.SyncRepository
	now  func() time.Time
}

// NewSyncService creates a new sync service.
func NewSyncService(repo repository.SyncRepository) SyncService {
	return &syncService{repo: repo, now: time.Now}
}

// SyncDown returns every active project plus the caller's own latest reports
// and visits. Master users are scoped to their own records too.
func (s *syncService) SyncDown(ctx context.Context, user *model.User) (*SyncSnapshot, error) {
	if user == nil || user.ID == 0 {
		return nil, apperrors.ErrTokenInvalid
	}
	syncTime := s.now().UTC()

	snap, err := s.repo.Snapshot(ctx, user.ID, SyncWindow)
	if err != nil {
		return nil, err
	}
	return &SyncSnapshot{
		Projects: projectViews(snap.Projects),
		Reports:  reportViews(snap.Reports, false),
		Visits:   visitViews(snap.Visits),
		SyncTime: syncTime.Format(time.RFC3339),
	}, nil
}
