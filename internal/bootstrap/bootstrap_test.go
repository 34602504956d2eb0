package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "sitereport/internal/errors"
	"sitereport/internal/model"
)

// MockStore is a mock implementation of Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) Migrate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) EnsureAdmin(ctx context.Context, admin *model.User) (bool, error) {
	args := m.Called(ctx, admin)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) FindMasterID(ctx context.Context) (uint, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockStore) CountActiveChecklistItems(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) InsertChecklistItems(ctx context.Context, items []model.ChecklistItem) (int, error) {
	args := m.Called(ctx, items)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) CountActiveCaptions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) InsertCaptions(ctx context.Context, captions []model.CaptionEntry) (int, error) {
	args := m.Called(ctx, captions)
	return args.Int(0), args.Error(1)
}

// MockLocker is a mock implementation of Locker.
type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) TryLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, token, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocker) Unlock(ctx context.Context, key, token string) error {
	return m.Called(ctx, key, token).Error(0)
}

func fastOptions() Options {
	return Options{
		PasswordCost:     bcrypt.MinCost,
		AdminRetryDelay:  time.Millisecond,
		SchemaRetryDelay: time.Millisecond,
		LockPoll:         time.Millisecond,
		LockWait:         time.Second,
	}
}

func schemaMismatch() error {
	return apperrors.NewStorageError(apperrors.StorageSchemaMismatch, "ensure admin", errors.New(`column "is_master" does not exist`))
}

func transient() error {
	return apperrors.NewStorageError(apperrors.StorageTransient, "ensure admin", errors.New("connection reset"))
}

// healthyStore expects a schema step that succeeds and seeded catalogs.
func healthyStore() *MockStore {
	s := new(MockStore)
	s.On("Ping", mock.Anything).Return(nil)
	s.On("Migrate", mock.Anything).Return(nil)
	s.On("FindMasterID", mock.Anything).Return(uint(1), nil)
	s.On("CountActiveChecklistItems", mock.Anything).Return(int64(6), nil)
	s.On("CountActiveCaptions", mock.Anything).Return(int64(42), nil)
	return s
}

func TestCatalogSizes(t *testing.T) {
	assert.Equal(t, 6, ChecklistSize())
	assert.Equal(t, 42, CaptionCatalogSize())

	perCategory := map[string]int{}
	seen := map[captionSeed]bool{}
	for _, c := range captionCatalog {
		perCategory[c.category]++
		assert.False(t, seen[c], "duplicate caption %q", c.text)
		seen[c] = true
	}
	assert.Equal(t, map[string]int{
		model.CaptionCategoryFinishing:  16,
		model.CaptionCategoryStructural: 18,
		model.CaptionCategoryGeneral:    6,
		model.CaptionCategorySafety:     2,
	}, perCategory)
}

func TestCaptionBatches(t *testing.T) {
	batches := captionBatches(7, 10)
	require.Len(t, batches, 5)
	assert.Len(t, batches[0], 10)
	assert.Len(t, batches[4], 2)
	for _, batch := range batches {
		for _, c := range batch {
			assert.Equal(t, uint(7), c.CreatedByID)
			assert.True(t, c.Active)
		}
	}
}

func TestRun_AlreadySeeded(t *testing.T) {
	store := healthyStore()
	store.On("EnsureAdmin", mock.Anything, mock.Anything).Return(false, nil).Once()

	res := New(store, nil, nil, fastOptions()).Run(context.Background())

	assert.Equal(t, StatusCompleted, res.Status)
	assert.True(t, res.Admin.Skipped)
	assert.True(t, res.Checklist.Skipped)
	assert.True(t, res.Captions.Skipped)
	store.AssertNotCalled(t, "InsertChecklistItems", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "InsertCaptions", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestRun_AdminConflictWithoutMasterIsReported(t *testing.T) {
	store := new(MockStore)
	store.On("Ping", mock.Anything).Return(nil)
	store.On("Migrate", mock.Anything).Return(nil)
	store.On("EnsureAdmin", mock.Anything, mock.Anything).Return(false, nil).Once()
	store.On("FindMasterID", mock.Anything).
		Return(uint(0), apperrors.NewStorageError(apperrors.StorageNotFound, "find master user", errors.New("record not found")))
	store.On("CountActiveChecklistItems", mock.Anything).Return(int64(6), nil)
	store.On("CountActiveCaptions", mock.Anything).Return(int64(42), nil)

	res := New(store, nil, nil, fastOptions()).Run(context.Background())

	assert.Equal(t, StatusCompletedWithSkippedSeed, res.Status)
	assert.False(t, res.Admin.Skipped)
	assert.Zero(t, res.Admin.Total)
	assert.Contains(t, res.Admin.Error, "no privileged user")
	assert.Contains(t, res.Reason, "admin")
	assert.True(t, res.Captions.FallbackCreator)
	store.AssertExpectations(t)
}

func TestRun_AdminSchemaMismatchIsNotRetried(t *testing.T) {
	store := healthyStore()
	store.On("EnsureAdmin", mock.Anything, mock.Anything).Return(false, schemaMismatch())

	res := New(store, nil, nil, fastOptions()).Run(context.Background())

	assert.Equal(t, StatusCompletedWithSkippedSeed, res.Status)
	assert.Equal(t, 1, res.Admin.Attempts)
	assert.NotEmpty(t, res.Admin.Error)
	store.AssertNumberOfCalls(t, "EnsureAdmin", 1)
}

func TestRun_AdminTransientErrorsExhaustRetriesAndContinue(t *testing.T) {
	store := new(MockStore)
	store.On("Ping", mock.Anything).Return(nil)
	store.On("Migrate", mock.Anything).Return(nil)
	store.On("EnsureAdmin", mock.Anything, mock.Anything).Return(false, transient())
	store.On("FindMasterID", mock.Anything).Return(uint(0), apperrors.NewStorageError(apperrors.StorageNotFound, "find master", errors.New("record not found")))
	store.On("CountActiveChecklistItems", mock.Anything).Return(int64(0), nil).Once()
	store.On("InsertChecklistItems", mock.Anything, mock.Anything).Return(6, nil)
	store.On("CountActiveChecklistItems", mock.Anything).Return(int64(6), nil).Once()
	store.On("CountActiveCaptions", mock.Anything).Return(int64(0), nil).Once()
	store.On("InsertCaptions", mock.Anything, mock.Anything).Return(10, nil)
	store.On("CountActiveCaptions", mock.Anything).Return(int64(42), nil).Once()

	res := New(store, nil, nil, fastOptions()).Run(context.Background())

	assert.Equal(t, StatusCompletedWithSkippedSeed, res.Status)
	assert.Equal(t, 5, res.Admin.Attempts)
	store.AssertNumberOfCalls(t, "EnsureAdmin", 5)

	assert.Empty(t, res.Checklist.Error)
	assert.Equal(t, 6, res.Checklist.Created)
	assert.True(t, res.Captions.FallbackCreator)
	assert.Equal(t, uint(1), res.Captions.CreatorID)
	store.AssertNumberOfCalls(t, "InsertCaptions", 5)
}

func TestRun_AdminRecoversAfterTransientError(t *testing.T) {
	store := healthyStore()
	store.On("EnsureAdmin", mock.Anything, mock.Anything).Return(false, transient()).Once()
	store.On("EnsureAdmin", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.IsMaster && u.Active && u.Username == "admin" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("admin123")) == nil
	})).Return(true, nil).Once()

	res := New(store, nil, nil, fastOptions()).Run(context.Background())

	assert.Equal(t, StatusCompleted, res.Status)
	assert.Equal(t, 2, res.Admin.Attempts)
	assert.Equal(t, 1, res.Admin.Created)
	store.AssertExpectations(t)
}

func TestRun_CaptionBatchFailureIsIsolated(t *testing.T) {
	store := new(MockStore)
	store.On("Ping", mock.Anything).Return(nil)
	store.On("Migrate", mock.Anything).Return(nil)
	store.On("EnsureAdmin", mock.Anything, mock.Anything).Return(false, nil)
	store.On("FindMasterID", mock.Anything).Return(uint(3), nil)
	store.On("CountActiveChecklistItems", mock.Anything).Return(int64(6), nil)
	store.On("CountActiveCaptions", mock.Anything).Return(int64(0), nil).Once()
	store.On("InsertCaptions", mock.Anything, mock.Anything).Return(10, nil).Twice()
	store.On("InsertCaptions", mock.Anything, mock.Anything).Return(0, transient()).Once()
	store.On("InsertCaptions", mock.Anything, mock.Anything).Return(10, nil).Once()
	store.On("InsertCaptions", mock.Anything, mock.Anything).Return(2, nil).Once()
	store.On("CountActiveCaptions", mock.Anything).Return(int64(32), nil).Once()

	res := New(store, nil, nil, fastOptions()).Run(context.Background())

	assert.Equal(t, StatusCompletedWithSkippedSeed, res.Status)
	assert.Equal(t, 5, res.Captions.Batches)
	assert.Equal(t, []int{3}, res.Captions.FailedBatches)
	assert.Equal(t, 32, res.Captions.Created)
	assert.Equal(t, int64(32), res.Captions.Total)
	assert.Equal(t, uint(3), res.Captions.CreatorID)
	store.AssertNumberOfCalls(t, "InsertCaptions", 5)
}

func TestRun_ChecklistFailureDoesNotBlockCaptions(t *testing.T) {
	store := new(MockStore)
	store.On("Ping", mock.Anything).Return(nil)
	store.On("Migrate", mock.Anything).Return(nil)
	store.On("EnsureAdmin", mock.Anything, mock.Anything).Return(false, nil)
	store.On("CountActiveChecklistItems", mock.Anything).Return(int64(2), nil)
	store.On("InsertChecklistItems", mock.Anything, mock.MatchedBy(func(items []model.ChecklistItem) bool {
		return len(items) == 6 && items[0].Order == 1 && items[5].Order == 6
	})).Return(0, transient())
	store.On("FindMasterID", mock.Anything).Return(uint(1), nil)
	store.On("CountActiveCaptions", mock.Anything).Return(int64(42), nil)

	res := New(store, nil, nil, fastOptions()).Run(context.Background())

	assert.Equal(t, StatusCompletedWithSkippedSeed, res.Status)
	assert.NotEmpty(t, res.Checklist.Error)
	assert.Empty(t, res.Captions.Error)
	store.AssertExpectations(t)
}

func TestRun_UnreachableDatabaseFails(t *testing.T) {
	store := new(MockStore)
	store.On("Ping", mock.Anything).Return(transient())

	res := New(store, nil, nil, fastOptions()).Run(context.Background())

	assert.Equal(t, StatusFailed, res.Status)
	assert.Contains(t, res.Reason, "schema")
	assert.Equal(t, 3, res.Schema.Attempts)
	store.AssertNotCalled(t, "Migrate", mock.Anything)
	store.AssertNotCalled(t, "EnsureAdmin", mock.Anything, mock.Anything)
}

func TestRun_SkipMigrate(t *testing.T) {
	store := new(MockStore)
	store.On("Ping", mock.Anything).Return(nil)
	store.On("EnsureAdmin", mock.Anything, mock.Anything).Return(false, nil)
	store.On("FindMasterID", mock.Anything).Return(uint(1), nil)
	store.On("CountActiveChecklistItems", mock.Anything).Return(int64(6), nil)
	store.On("CountActiveCaptions", mock.Anything).Return(int64(42), nil)

	opts := fastOptions()
	opts.SkipMigrate = true
	res := New(store, nil, nil, opts).Run(context.Background())

	assert.Equal(t, StatusCompleted, res.Status)
	assert.True(t, res.Schema.Skipped)
	store.AssertNotCalled(t, "Migrate", mock.Anything)
}

func TestRun_WaitsForLease(t *testing.T) {
	store := healthyStore()
	store.On("EnsureAdmin", mock.Anything, mock.Anything).Return(false, nil)

	locker := new(MockLocker)
	locker.On("TryLock", mock.Anything, leaseKey, mock.Anything, 2*time.Minute).Return(false, nil).Twice()
	locker.On("TryLock", mock.Anything, leaseKey, mock.Anything, 2*time.Minute).Return(true, nil).Once()
	locker.On("Unlock", mock.Anything, leaseKey, mock.Anything).Return(nil).Once()

	res := New(store, locker, nil, fastOptions()).Run(context.Background())

	assert.Equal(t, StatusCompleted, res.Status)
	locker.AssertNumberOfCalls(t, "TryLock", 3)
	locker.AssertExpectations(t)

	token := locker.Calls[0].Arguments.String(2)
	assert.Equal(t, token, locker.Calls[3].Arguments.String(2))
}

func TestRun_LeaseFailsOpen(t *testing.T) {
	t.Run("redis error", func(t *testing.T) {
		store := healthyStore()
		store.On("EnsureAdmin", mock.Anything, mock.Anything).Return(false, nil)
		locker := new(MockLocker)
		locker.On("TryLock", mock.Anything, leaseKey, mock.Anything, mock.Anything).Return(true, errors.New("connection refused"))

		res := New(store, locker, nil, fastOptions()).Run(context.Background())

		assert.Equal(t, StatusCompleted, res.Status)
		locker.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("held past deadline", func(t *testing.T) {
		store := healthyStore()
		store.On("EnsureAdmin", mock.Anything, mock.Anything).Return(false, nil)
		locker := new(MockLocker)
		locker.On("TryLock", mock.Anything, leaseKey, mock.Anything, mock.Anything).Return(false, nil)

		opts := fastOptions()
		opts.LockWait = 20 * time.Millisecond
		res := New(store, locker, nil, opts).Run(context.Background())

		assert.Equal(t, StatusCompleted, res.Status)
		locker.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
	})
}
