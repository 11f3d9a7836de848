package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE services (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT,
			unit_price NUMERIC NOT NULL,
			active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE work_orders (
			id TEXT PRIMARY KEY,
			client_name TEXT NOT NULL,
			phone TEXT,
			vehicle TEXT NOT NULL,
			plate TEXT,
			notes TEXT,
			status TEXT NOT NULL,
			payment_method TEXT NOT NULL,
			total NUMERIC NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE work_order_items (
			id TEXT PRIMARY KEY,
			work_order_id TEXT NOT NULL,
			service_id TEXT NOT NULL,
			price NUMERIC NOT NULL,
			comment TEXT,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE(work_order_id, service_id)
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE expenses (
			id TEXT PRIMARY KEY,
			amount NUMERIC NOT NULL,
			memo TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE daily_closings (
			id TEXT PRIMARY KEY,
			date DATE NOT NULL UNIQUE,
			total_revenue NUMERIC NOT NULL,
			total_expense NUMERIC NOT NULL,
			net_balance NUMERIC NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	return db
}
