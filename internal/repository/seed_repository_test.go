package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitereport/internal/db/dbtest"
	apperrors "sitereport/internal/errors"
	"sitereport/internal/model"
)

func newAdmin() *model.User {
	return &model.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: "hash",
		FullName:     "System Administrator",
		IsMaster:     true,
		Active:       true,
	}
}

func TestSeedRepository_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	repo := NewSeedRepository(dbtest.OpenMigrated(t))

	created, err := repo.EnsureAdmin(ctx, newAdmin())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.EnsureAdmin(ctx, newAdmin())
	require.NoError(t, err)
	assert.False(t, created)

	id, err := repo.FindMasterID(ctx)
	require.NoError(t, err)
	assert.NotZero(t, id)

	counts, err := repo.TableCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["users"])
}

func TestSeedRepository_EnsureAdminSkipsTakenUsername(t *testing.T) {
	ctx := context.Background()
	gormDB := dbtest.OpenMigrated(t)
	require.NoError(t, gormDB.Create(&model.User{
		Username: "admin", Email: "someone@example.com", PasswordHash: "x", FullName: "Someone", Active: true,
	}).Error)

	created, err := NewSeedRepository(gormDB).EnsureAdmin(ctx, newAdmin())
	require.NoError(t, err)
	assert.False(t, created)
}

func TestSeedRepository_EnsureAdminSchemaMismatch(t *testing.T) {
	ctx := context.Background()
	gormDB := dbtest.Open(t)
	// A users table from before the role column existed.
	require.NoError(t, gormDB.Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT, email TEXT, password_hash TEXT, full_name TEXT,
		job_title TEXT, active NUMERIC, created_at DATETIME, updated_at DATETIME)`).Error)

	_, err := NewSeedRepository(gormDB).EnsureAdmin(ctx, newAdmin())
	assert.ErrorIs(t, err, apperrors.ErrSchemaMismatch)
}

func TestSeedRepository_FindMasterIDNotFound(t *testing.T) {
	_, err := NewSeedRepository(dbtest.OpenMigrated(t)).FindMasterID(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSeedRepository_InsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	gormDB := dbtest.OpenMigrated(t)
	repo := NewSeedRepository(gormDB)

	items := []model.ChecklistItem{
		{Text: "Check site access", Order: 1, Active: true},
		{Text: "Check scaffolding", Order: 2, Active: true},
	}
	n, err := repo.InsertChecklistItems(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.InsertChecklistItems(ctx, items)
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := repo.CountActiveChecklistItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	captions := []model.CaptionEntry{
		{Text: "Crack in wall", Category: model.CaptionCategoryStructural, Active: true, CreatedByID: 1},
		{Text: "Crack in wall", Category: model.CaptionCategoryFinishing, Active: true, CreatedByID: 1},
	}
	n, err = repo.InsertCaptions(ctx, captions)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = repo.InsertCaptions(ctx, captions)
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err = repo.CountActiveCaptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSeedRepository_InsertCountsOnlyNewRowsWhenIDsAreSet(t *testing.T) {
	ctx := context.Background()
	gormDB := dbtest.OpenMigrated(t)
	repo := NewSeedRepository(gormDB)

	_, err := repo.InsertChecklistItems(ctx, []model.ChecklistItem{
		{Text: "Check site access", Order: 1, Active: true},
		{Text: "Check scaffolding", Order: 2, Active: true},
	})
	require.NoError(t, err)

	// Rows read back from the database carry their primary keys.
	var items []model.ChecklistItem
	require.NoError(t, gormDB.Order("id").Find(&items).Error)
	require.Len(t, items, 2)
	require.NotZero(t, items[0].ID)

	items = append(items, model.ChecklistItem{Text: "Check signage", Order: 3, Active: true})
	n, err := repo.InsertChecklistItems(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var total int64
	require.NoError(t, gormDB.Model(&model.ChecklistItem{}).Count(&total).Error)
	assert.Equal(t, int64(3), total)

	_, err = repo.InsertCaptions(ctx, []model.CaptionEntry{
		{Text: "Crack in wall", Category: model.CaptionCategoryStructural, Active: true, CreatedByID: 1},
	})
	require.NoError(t, err)

	var captions []model.CaptionEntry
	require.NoError(t, gormDB.Order("id").Find(&captions).Error)
	require.Len(t, captions, 1)

	captions = append(captions, model.CaptionEntry{
		Text: "Missing handrail", Category: model.CaptionCategorySafety, Active: true, CreatedByID: 1,
	})
	n, err = repo.InsertCaptions(ctx, captions)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, gormDB.Model(&model.CaptionEntry{}).Count(&total).Error)
	assert.Equal(t, int64(2), total)
}
