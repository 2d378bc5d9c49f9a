package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/pulsecheck-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Identity (collaborator-owned, mirrored for reads)
		// =========================
		&types.User{},
		&types.UserProfile{},

		// =========================
		// Observed work signals (collaborator-owned, read-only)
		// =========================
		&types.Task{},
		&types.CalendarEvent{},
		&types.JournalEntry{},

		// =========================
		// Analysis pipeline (owned here)
		// =========================
		&types.MetricSnapshot{},
		&types.BurnoutAnalysis{},
		&types.Recommendation{},
		&types.Strategy{},
	)
}

func EnsureAnalysisIndexes(db *gorm.DB) error {
	// uuid-ossp is already enabled in NewPostgresService, but safe to re-run
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("enable uuid-ossp: %w", err)
	}

	// Listing hot path: recent analyses per user.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_burnout_analysis_user_created
		ON burnout_analysis (user_id, created_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_burnout_analysis_user_created: %w", err)
	}

	// Regeneration replaces only an analysis's live pending rows.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_recommendation_analysis_status
		ON recommendation (analysis_id, status)
		WHERE deleted_at IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_recommendation_analysis_status: %w", err)
	}

	// Collector day windows.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_calendar_event_user_starts
		ON calendar_event (user_id, starts_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_calendar_event_user_starts: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_journal_entry_user_recorded
		ON journal_entry (user_id, recorded_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_journal_entry_user_recorded: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_task_user_active
		ON task (user_id)
		WHERE deleted_at IS NULL AND status IN ('open', 'in_progress');
	`).Error; err != nil {
		return fmt.Errorf("create idx_task_user_active: %w", err)
	}

	// Baseline history reads: newest snapshots per user.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_metric_snapshot_user_created
		ON metric_snapshot (user_id, period_start DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_metric_snapshot_user_created: %w", err)
	}

	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureAnalysisIndexes(s.db); err != nil {
		s.log.Error("Analysis index migration failed", "error", err)
		return err
	}
	return nil
}
