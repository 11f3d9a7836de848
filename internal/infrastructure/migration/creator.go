package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const upTemplate = `-- Migration: %s
-- Created at: %s
-- Direction: UP

`

const downTemplate = `-- Migration: %s
-- Created at: %s
-- Direction: DOWN

`

// CreateMigration creates a new pair of up/down migration files
func CreateMigration(migrationsDir, name string) (string, string, error) {
	if name == "" {
		return "", "", fmt.Errorf("migration name cannot be empty")
	}

	name = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))

	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create migrations directory: %w", err)
	}

	now := time.Now()
	version := now.Format("20060102150405")

	upFile := filepath.Join(migrationsDir, fmt.Sprintf("%s_%s.up.sql", version, name))
	downFile := filepath.Join(migrationsDir, fmt.Sprintf("%s_%s.down.sql", version, name))

	created := now.Format(time.RFC3339)

	if err := os.WriteFile(upFile, []byte(fmt.Sprintf(upTemplate, name, created)), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to create up migration: %w", err)
	}

	if err := os.WriteFile(downFile, []byte(fmt.Sprintf(downTemplate, name, created)), 0o644); err != nil {
		os.Remove(upFile)
		return "", "", fmt.Errorf("failed to create down migration: %w", err)
	}

	return upFile, downFile, nil
}
