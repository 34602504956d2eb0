package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sitereport/internal/db"
	"sitereport/internal/model"
)

// SeedRepository persists reference data. Every insert is idempotent: rows
// colliding with a natural-key unique index are skipped, never duplicated.
type SeedRepository interface {
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	EnsureAdmin(ctx context.Context, admin *model.User) (bool, error)
	FindMasterID(ctx context.Context) (uint, error)
	CountActiveChecklistItems(ctx context.Context) (int64, error)
	InsertChecklistItems(ctx context.Context, items []model.ChecklistItem) (int, error)
	CountActiveCaptions(ctx context.Context) (int64, error)
	InsertCaptions(ctx context.Context, captions []model.CaptionEntry) (int, error)
	TableCounts(ctx context.Context) (map[string]int64, error)
}

type seedRepository struct {
	db *gorm.DB
}

// NewSeedRepository creates a new seed repository.
func NewSeedRepository(db *gorm.DB) SeedRepository {
	return &seedRepository{db: db}
}

func (r *seedRepository) Ping(ctx context.Context) error {
	return db.Ping(ctx, r.db)
}

// Migrate creates missing tables, columns and indexes. It never drops anything.
func (r *seedRepository) Migrate(ctx context.Context) error {
	return db.Classify("migrate", r.db.WithContext(ctx).AutoMigrate(model.All()...))
}

// EnsureAdmin inserts admin unless a privileged user already exists.
// It reports whether a row was created.
func (r *seedRepository) EnsureAdmin(ctx context.Context, admin *model.User) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("is_master = ?", true).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(admin)
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, db.Classify("ensure admin", err)
	}
	return created, nil
}

func (r *seedRepository) FindMasterID(ctx context.Context) (uint, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Select("id").
		Where("is_master = ?", true).
		Order("id").
		First(&user).Error
	if err != nil {
		return 0, db.Classify("find master user", err)
	}
	return user.ID, nil
}

func (r *seedRepository) CountActiveChecklistItems(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ChecklistItem{}).Where("active = ?", true).Count(&count).Error
	return count, db.Classify("count checklist items", err)
}

// InsertChecklistItems inserts the missing items in one transaction and
// returns how many rows were new. Primary keys set on items are ignored so
// existing rows always hit the natural key conflict.
func (r *seedRepository) InsertChecklistItems(ctx context.Context, items []model.ChecklistItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	rows := make([]model.ChecklistItem, len(items))
	for i, item := range items {
		item.ID = 0
		rows[i] = item
	}
	var inserted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
		inserted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, db.Classify("insert checklist items", err)
	}
	return int(inserted), nil
}

func (r *seedRepository) CountActiveCaptions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CaptionEntry{}).Where("active = ?", true).Count(&count).Error
	return count, db.Classify("count captions", err)
}

// InsertCaptions commits one batch of captions in its own transaction and
// returns how many rows were new. Primary keys set on captions are ignored.
func (r *seedRepository) InsertCaptions(ctx context.Context, captions []model.CaptionEntry) (int, error) {
	if len(captions) == 0 {
		return 0, nil
	}
	rows := make([]model.CaptionEntry, len(captions))
	for i, caption := range captions {
		caption.ID = 0
		rows[i] = caption
	}
	var inserted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&rows)
		inserted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, db.Classify("insert captions", err)
	}
	return int(inserted), nil
}

// TableCounts returns the row count of every table, keyed by table name.
func (r *seedRepository) TableCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, m := range model.All() {
		stmt := &gorm.Statement{DB: r.db}
		if err := stmt.Parse(m); err != nil {
			return nil, err
		}
		var count int64
		if err := r.db.WithContext(ctx).Model(m).Count(&count).Error; err != nil {
			return nil, db.Classify("count "+stmt.Schema.Table, err)
		}
		counts[stmt.Schema.Table] = count
	}
	return counts, nil
}
