package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"rug-quote/internal/storage/migrations"
)

// MigrateCommand is a schema action accepted by "rugbot migrate".
type MigrateCommand string

const (
	MigrateUp     MigrateCommand = "up"
	MigrateDown   MigrateCommand = "down"
	MigrateStatus MigrateCommand = "status"
)

func ParseMigrateCommand(s string) (MigrateCommand, error) {
	switch c := MigrateCommand(s); c {
	case MigrateUp, MigrateDown, MigrateStatus:
		return c, nil
	}
	return "", fmt.Errorf("unknown migrate command %q (want up, down or status)", s)
}

// Migrate runs cmd against the embedded schema migrations.
func Migrate(ctx context.Context, db *sql.DB, cmd MigrateCommand, logger *zap.Logger) error {
	const operation = "storage.Migrate"

	if _, err := ParseMigrateCommand(string(cmd)); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("%s: failed to create provider: %w", operation, err)
	}

	switch cmd {
	case MigrateUp:
		results, err := provider.Up(ctx)
		for _, r := range results {
			logMigration(logger, r)
		}
		if err != nil {
			return fmt.Errorf("%s: failed to run migrations: %w", operation, err)
		}
		logger.Info("Database schema is up to date", zap.Int("applied", len(results)))

	case MigrateDown:
		result, err := provider.Down(ctx)
		if result != nil {
			logMigration(logger, result)
		}
		if err != nil {
			return fmt.Errorf("%s: failed to roll back migration: %w", operation, err)
		}

	case MigrateStatus:
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("%s: failed to read migration status: %w", operation, err)
		}
		for _, st := range statuses {
			fields := []zap.Field{
				zap.Int64("version", st.Source.Version),
				zap.String("file", st.Source.Path),
				zap.String("state", string(st.State)),
			}
			if !st.AppliedAt.IsZero() {
				fields = append(fields, zap.Time("applied_at", st.AppliedAt))
			}
			logger.Info("Migration", fields...)
		}
	}
	return nil
}

func logMigration(logger *zap.Logger, r *goose.MigrationResult) {
	logger.Info("Migration applied",
		zap.Int64("version", r.Source.Version),
		zap.String("file", r.Source.Path),
		zap.String("direction", r.Direction),
		zap.Duration("took", r.Duration))
}
