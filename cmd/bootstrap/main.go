package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sitereport/internal/bootstrap"
	"sitereport/internal/cache"
	"sitereport/internal/config"
	"sitereport/internal/db"
	"sitereport/internal/logger"
	"sitereport/internal/repository"
)

var errFailed = errors.New("bootstrap failed")

var verify bool

var rootCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the schema and seed reference data",
	Long: `Runs the same idempotent bootstrap the server runs on start.

With --verify nothing is written: the command reports connectivity and the
row count of every table.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().BoolVar(&verify, "verify", false, "only report connectivity and table counts")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	zlog, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = zlog.Sync() }()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL, zlog)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	seedRepo := repository.NewSeedRepository(gormDB)

	ctx := cmd.Context()
	if verify {
		return report(ctx, cmd, seedRepo)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()

	res := bootstrap.New(seedRepo, cacheClient, zlog, bootstrap.OptionsFromConfig(cfg)).Run(ctx)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return err
	}
	if res.Status == bootstrap.StatusFailed {
		zlog.Error("bootstrap failed", zap.String("reason", res.Reason))
		return errFailed
	}
	return nil
}

func report(ctx context.Context, cmd *cobra.Command, repo repository.SeedRepository) error {
	out := cmd.OutOrStdout()
	if err := repo.Ping(ctx); err != nil {
		fmt.Fprintf(out, "database: disconnected (%v)\n", err)
		return err
	}
	fmt.Fprintln(out, "database: connected")

	counts, err := repo.TableCounts(ctx)
	if err != nil {
		return err
	}
	tables := make([]string, 0, len(counts))
	for name := range counts {
		tables = append(tables, name)
	}
	sort.Strings(tables)
	for _, name := range tables {
		fmt.Fprintf(out, "%-20s %d\n", name, counts[name])
	}
	return nil
}
