package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"sitereport/internal/db"
	"sitereport/internal/model"
)

// Snapshot is everything one client pulls during a sync.
type Snapshot struct {
	Projects []model.Project
	Reports  []model.Report
	Visits   []model.Visit
}

// SyncRepository reads sync snapshots.
type SyncRepository interface {
	Snapshot(ctx context.Context, userID uint, limit int) (*Snapshot, error)
}

type syncRepository struct {
	db *gorm.DB
}

// NewSyncRepository creates a new sync repository.
func NewSyncRepository(db *gorm.DB) SyncRepository {
	return &syncRepository{db: db}
}

// Snapshot reads active projects plus userID's latest reports and visits
// inside one read-only transaction so the three lists are consistent.
func (r *syncRepository) Snapshot(ctx context.Context, userID uint, limit int) (*Snapshot, error) {
	snap := &Snapshot{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if snap.Projects, err = activeProjects(tx); err != nil {
			return err
		}
		if snap.Reports, err = recentReports(tx, userID, limit); err != nil {
			return err
		}
		snap.Visits, err = recentVisits(tx, userID, limit)
		return err
	}, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, db.Classify("sync snapshot", err)
	}
	return snap, nil
}
