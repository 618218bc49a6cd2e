package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	// Foreign keys are off by default in SQLite; the DSN parameter applies
	// the pragma to every pooled connection, not just the first one.
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS assets (
			id TEXT PRIMARY KEY,
			original_file_name TEXT NOT NULL,
			rel_path TEXT NOT NULL UNIQUE,
			mime_type TEXT NOT NULL,
			size_bytes INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			year INTEGER,
			advertiser TEXT,
			niche TEXT,
			share_count INTEGER CHECK (share_count IS NULL OR share_count >= 0),
			master_id TEXT,
			version_number INTEGER NOT NULL DEFAULT 1 CHECK (version_number >= 1),
			FOREIGN KEY (master_id) REFERENCES assets(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_assets_master_version ON assets(master_id, version_number);`,
		`CREATE TABLE IF NOT EXISTS custom_fields (
			asset_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (asset_id, key),
			FOREIGN KEY (asset_id) REFERENCES assets(id) ON DELETE CASCADE
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
