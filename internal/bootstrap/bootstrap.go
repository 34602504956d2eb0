// Package bootstrap creates the schema and seeds reference data. Every step
// is idempotent so it can run on each start, on several replicas at once,
// and after a previous run failed halfway.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"sitereport/internal/config"
	apperrors "sitereport/internal/errors"
	"sitereport/internal/model"
)

// Status is the overall outcome of a run.
type Status string

const (
	StatusCompleted                Status = "completed"
	StatusCompletedWithSkippedSeed Status = "completed_with_skipped_seed"
	StatusFailed                   Status = "failed"
)

const leaseKey = "sitereport:bootstrap:lease"

// Store is the persistence the bootstrapper needs.
type Store interface {
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	EnsureAdmin(ctx context.Context, admin *model.User) (bool, error)
	FindMasterID(ctx context.Context) (uint, error)
	CountActiveChecklistItems(ctx context.Context) (int64, error)
	InsertChecklistItems(ctx context.Context, items []model.ChecklistItem) (int, error)
	CountActiveCaptions(ctx context.Context) (int64, error)
	InsertCaptions(ctx context.Context, captions []model.CaptionEntry) (int, error)
}

// Locker hands out a best-effort lease shared between replicas.
type Locker interface {
	TryLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key, token string) error
}

// Options tunes a run. Zero values fall back to the defaults below.
type Options struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
	AdminFullName string
	PasswordCost  int

	AdminRetries     int
	AdminRetryDelay  time.Duration
	SchemaRetries    int
	SchemaRetryDelay time.Duration
	SkipMigrate      bool

	FallbackCreatorID uint
	CaptionBatchSize  int

	LockTTL  time.Duration
	LockWait time.Duration
	LockPoll time.Duration
}

// OptionsFromConfig maps application configuration onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	b := cfg.Bootstrap
	return Options{
		AdminUsername:     b.AdminUsername,
		AdminEmail:        b.AdminEmail,
		AdminPassword:     b.AdminPassword,
		AdminFullName:     b.AdminFullName,
		AdminRetries:      b.AdminRetries,
		AdminRetryDelay:   b.AdminRetryDelay,
		SkipMigrate:       !cfg.AutoMigrate,
		FallbackCreatorID: b.FallbackCreatorID,
		CaptionBatchSize:  b.CaptionBatchSize,
		LockTTL:           b.LockTTL,
		LockWait:          b.LockWait,
	}
}

func (o Options) withDefaults() Options {
	if o.AdminUsername == "" {
		o.AdminUsername = "admin"
	}
	if o.AdminEmail == "" {
		o.AdminEmail = "admin@example.com"
	}
	if o.AdminPassword == "" {
		o.AdminPassword = "admin123"
	}
	if o.AdminFullName == "" {
		o.AdminFullName = "System Administrator"
	}
	if o.PasswordCost == 0 {
		o.PasswordCost = bcrypt.DefaultCost
	}
	if o.AdminRetries <= 0 {
		o.AdminRetries = 5
	}
	if o.AdminRetryDelay <= 0 {
		o.AdminRetryDelay = 5 * time.Second
	}
	if o.SchemaRetries <= 0 {
		o.SchemaRetries = 3
	}
	if o.SchemaRetryDelay <= 0 {
		o.SchemaRetryDelay = 2 * time.Second
	}
	if o.FallbackCreatorID == 0 {
		o.FallbackCreatorID = 1
	}
	if o.CaptionBatchSize <= 0 {
		o.CaptionBatchSize = 10
	}
	if o.LockTTL <= 0 {
		o.LockTTL = 2 * time.Minute
	}
	if o.LockWait <= 0 {
		o.LockWait = 30 * time.Second
	}
	if o.LockPoll <= 0 {
		o.LockPoll = 500 * time.Millisecond
	}
	return o
}

// StepResult describes one step of a run.
type StepResult struct {
	Attempts int    `json:"attempts"`
	Created  int    `json:"created"`
	Total    int64  `json:"total"`
	Skipped  bool   `json:"skipped"`
	Error    string `json:"error,omitempty"`
}

// CaptionResult adds the caption specific outcome to StepResult.
type CaptionResult struct {
	StepResult
	CreatorID       uint  `json:"creator_id"`
	FallbackCreator bool  `json:"fallback_creator"`
	Batches         int   `json:"batches"`
	FailedBatches   []int `json:"failed_batches,omitempty"`
}

// Result is the structured outcome of Run.
type Result struct {
	Status    Status        `json:"status"`
	Reason    string        `json:"reason,omitempty"`
	Schema    StepResult    `json:"schema"`
	Admin     StepResult    `json:"admin"`
	Checklist StepResult    `json:"checklist"`
	Captions  CaptionResult `json:"captions"`
	Duration  time.Duration `json:"duration_ns"`
}

// Bootstrapper runs schema creation and seeding.
type Bootstrapper struct {
	store  Store
	locker Locker
	log    *zap.Logger
	opts   Options
}

// New builds a Bootstrapper. locker may be nil.
func New(store Store, locker Locker, log *zap.Logger, opts Options) *Bootstrapper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bootstrapper{
		store:  store,
		locker: locker,
		log:    log.Named("bootstrap"),
		opts:   opts.withDefaults(),
	}
}

// Run ensures the schema exists and seeds the admin account, the checklist
// and the caption library. Only a schema failure yields StatusFailed; seed
// failures are logged, recorded and never stop the other steps.
func (b *Bootstrapper) Run(ctx context.Context) *Result {
	start := time.Now()
	res := &Result{Status: StatusCompleted}
	defer func() {
		res.Duration = time.Since(start)
		b.log.Info("bootstrap finished",
			zap.String("status", string(res.Status)),
			zap.String("reason", res.Reason),
			zap.Int("admin_created", res.Admin.Created),
			zap.Int64("checklist_total", res.Checklist.Total),
			zap.Int64("captions_total", res.Captions.Total),
			zap.Duration("duration", res.Duration),
		)
	}()

	release := b.acquireLease(ctx)
	defer release()

	res.Schema = b.ensureSchema(ctx)
	if res.Schema.Error != "" {
		res.Status = StatusFailed
		res.Reason = "schema: " + res.Schema.Error
		return res
	}

	res.Admin = b.seedAdmin(ctx)
	res.Checklist = b.seedChecklist(ctx)
	res.Captions = b.seedCaptions(ctx)

	var incomplete []string
	if res.Admin.Error != "" {
		incomplete = append(incomplete, "admin")
	}
	if res.Checklist.Error != "" {
		incomplete = append(incomplete, "checklist")
	}
	if res.Captions.Error != "" {
		incomplete = append(incomplete, "captions")
	}
	if len(incomplete) > 0 {
		res.Status = StatusCompletedWithSkippedSeed
		res.Reason = fmt.Sprintf("incomplete seed steps: %v", incomplete)
	}
	return res
}

func (b *Bootstrapper) ensureSchema(ctx context.Context) StepResult {
	var step StepResult
	err := retry.Do(ctx, backoff(b.opts.SchemaRetries, b.opts.SchemaRetryDelay), func(ctx context.Context) error {
		step.Attempts++
		if err := b.store.Ping(ctx); err != nil {
			b.log.Warn("database unreachable", zap.Int("attempt", step.Attempts), zap.Error(err))
			return retry.RetryableError(err)
		}
		if b.opts.SkipMigrate {
			step.Skipped = true
			return nil
		}
		if err := b.store.Migrate(ctx); err != nil {
			b.log.Warn("schema migration failed", zap.Int("attempt", step.Attempts), zap.Error(err))
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		b.log.Error("schema unavailable", zap.Int("attempts", step.Attempts), zap.Error(err))
		step.Error = err.Error()
	}
	return step
}

func (b *Bootstrapper) seedAdmin(ctx context.Context) StepResult {
	var step StepResult
	hash, err := bcrypt.GenerateFromPassword([]byte(b.opts.AdminPassword), b.opts.PasswordCost)
	if err != nil {
		step.Error = fmt.Sprintf("hash password: %v", err)
		b.log.Error("admin seed skipped", zap.Error(err))
		return step
	}

	err = retry.Do(ctx, backoff(b.opts.AdminRetries, b.opts.AdminRetryDelay), func(ctx context.Context) error {
		step.Attempts++
		created, err := b.store.EnsureAdmin(ctx, &model.User{
			Username:     b.opts.AdminUsername,
			Email:        b.opts.AdminEmail,
			PasswordHash: string(hash),
			FullName:     b.opts.AdminFullName,
			JobTitle:     "Administrator",
			IsMaster:     true,
			Active:       true,
		})
		if err == nil {
			if created {
				step.Created = 1
			} else {
				step.Skipped = true
			}
			return nil
		}
		// A pending migration will not fix itself between attempts.
		if errors.Is(err, apperrors.ErrSchemaMismatch) {
			return err
		}
		b.log.Warn("admin seed attempt failed", zap.Int("attempt", step.Attempts), zap.Error(err))
		return retry.RetryableError(err)
	})
	if err != nil {
		b.log.Error("admin seed skipped", zap.Int("attempts", step.Attempts), zap.Error(err))
		step.Error = err.Error()
		return step
	}
	if step.Created > 0 {
		b.log.Info("admin user created", zap.String("username", b.opts.AdminUsername))
		step.Total = 1
		return step
	}

	// The insert is a no-op when the username or email already belongs to an
	// ordinary account, which leaves the system without a privileged user.
	if _, err := b.store.FindMasterID(ctx); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			err = fmt.Errorf("no privileged user: %q or %q is taken by a non-master account", b.opts.AdminUsername, b.opts.AdminEmail)
		}
		b.log.Error("admin seed incomplete", zap.Error(err))
		step.Skipped = false
		step.Error = err.Error()
		return step
	}
	step.Total = 1
	return step
}

func (b *Bootstrapper) seedChecklist(ctx context.Context) StepResult {
	step := StepResult{Attempts: 1}
	count, err := b.store.CountActiveChecklistItems(ctx)
	if err != nil {
		b.log.Error("checklist seed skipped", zap.Error(err))
		step.Error = err.Error()
		return step
	}
	if count >= int64(len(checklistCatalog)) {
		step.Skipped = true
		step.Total = count
		return step
	}

	created, err := b.store.InsertChecklistItems(ctx, checklistItems())
	if err != nil {
		b.log.Error("checklist seed failed", zap.Error(err))
		step.Error = err.Error()
		return step
	}
	step.Created = created

	if step.Total, err = b.store.CountActiveChecklistItems(ctx); err != nil {
		b.log.Warn("checklist recount failed", zap.Error(err))
	}
	b.log.Info("checklist seeded", zap.Int("created", created), zap.Int64("total", step.Total))
	return step
}

func (b *Bootstrapper) seedCaptions(ctx context.Context) CaptionResult {
	step := CaptionResult{StepResult: StepResult{Attempts: 1}}

	creatorID, err := b.store.FindMasterID(ctx)
	if err != nil {
		b.log.Warn("no admin user to own captions, using fallback creator",
			zap.Uint("creator_id", b.opts.FallbackCreatorID), zap.Error(err))
		creatorID = b.opts.FallbackCreatorID
		step.FallbackCreator = true
	}
	step.CreatorID = creatorID

	count, err := b.store.CountActiveCaptions(ctx)
	if err != nil {
		// Inserts are idempotent, so an unknown count only costs a few no-op batches.
		b.log.Warn("caption count failed", zap.Error(err))
	} else if count >= int64(len(captionCatalog)) {
		step.Skipped = true
		step.Total = count
		return step
	}

	batches := captionBatches(creatorID, b.opts.CaptionBatchSize)
	step.Batches = len(batches)
	for i, batch := range batches {
		created, err := b.store.InsertCaptions(ctx, batch)
		if err != nil {
			b.log.Error("caption batch failed", zap.Int("batch", i+1), zap.Int("size", len(batch)), zap.Error(err))
			step.FailedBatches = append(step.FailedBatches, i+1)
			continue
		}
		step.Created += created
		b.log.Debug("caption batch committed", zap.Int("batch", i+1), zap.Int("created", created))
	}
	if len(step.FailedBatches) > 0 {
		step.Error = fmt.Sprintf("%d of %d caption batches failed", len(step.FailedBatches), len(batches))
	}

	if step.Total, err = b.store.CountActiveCaptions(ctx); err != nil {
		b.log.Warn("caption recount failed", zap.Error(err))
	}
	b.log.Info("captions seeded", zap.Int("created", step.Created), zap.Int64("total", step.Total))
	return step
}

// acquireLease waits for other replicas to finish bootstrapping. It never
// blocks longer than LockWait and gives up silently when Redis is unusable.
func (b *Bootstrapper) acquireLease(ctx context.Context) func() {
	noop := func() {}
	if b.locker == nil {
		return noop
	}
	token := uuid.NewString()
	deadline := time.Now().Add(b.opts.LockWait)
	for {
		ok, err := b.locker.TryLock(ctx, leaseKey, token, b.opts.LockTTL)
		if err != nil {
			b.log.Warn("bootstrap lease unavailable, continuing without it", zap.Error(err))
			return noop
		}
		if ok {
			return func() {
				ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
				defer cancel()
				if err := b.locker.Unlock(ctx, leaseKey, token); err != nil {
					b.log.Warn("bootstrap lease release failed", zap.Error(err))
				}
			}
		}
		if time.Now().After(deadline) {
			b.log.Warn("bootstrap lease still held elsewhere, continuing", zap.Duration("waited", b.opts.LockWait))
			return noop
		}
		select {
		case <-ctx.Done():
			return noop
		case <-time.After(b.opts.LockPoll):
		}
	}
}

// backoff allows attempts tries in total, delay apart.
func backoff(attempts int, delay time.Duration) retry.Backoff {
	if delay < time.Millisecond {
		delay = time.Millisecond
	}
	return retry.WithMaxRetries(uint64(max(attempts-1, 0)), retry.NewConstant(delay))
}
