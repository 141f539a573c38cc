package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/collab-projects-api/internal/logger"
)

type indexSpec struct {
	table   string
	name    string
	columns []string
}

// Composite indexes that struct tags do not express.
var extraIndexes = []indexSpec{
	{"projects", "idx_projects_state_created_at", []string{"state", "created_at"}},
	{"collaborations", "idx_collaborations_project_state", []string{"project_id", "state"}},
	{"comments", "idx_comments_project_created_at", []string{"project_id", "created_at"}},
}

// AddIndexes creates the composite indexes that are missing. It is idempotent.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range extraIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			logger.Debug().Str("index", idx.name).Msg("index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, strings.Join(idx.columns, ", "))
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logger.Info().Str("index", idx.name).Str("table", idx.table).Msg("created index")
	}

	return nil
}

// MigrateDatabase runs the migrations that follow AutoMigrate
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
