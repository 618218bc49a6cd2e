package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicatePath is returned when an insert collides on the vault-relative path.
	ErrDuplicatePath = errors.New("vault path already recorded")
	// ErrInvalidRecord is returned when required fields are missing or malformed.
	ErrInvalidRecord = errors.New("invalid asset record")
)

// dbTimeFormat is the DATETIME layout SQLite produces for CURRENT_TIMESTAMP.
const dbTimeFormat = "2006-01-02 15:04:05"

// assetColumns is the column list every asset scan uses, in scanAsset order.
const assetColumns = `id, original_file_name, rel_path, mime_type, size_bytes, created_at, year, advertiser, niche, share_count, master_id, version_number`

// AssetStore defines the interface for asset storage and grouping operations.
type AssetStore interface {
	// Create inserts a new master row, assigning a UUID when ID is empty.
	Create(ctx context.Context, rec *AssetRecord) error
	// Get returns the asset by id. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*AssetRecord, error)
	// Update applies a partial update of whitelisted fields plus custom-field
	// upserts/clears in one transaction.
	Update(ctx context.Context, id string, fields FieldUpdates, customFields map[string]*string) error
	// Delete removes the row, cascading custom fields and resetting the
	// asset's versions to standalone masters. Returns the removed record.
	Delete(ctx context.Context, id string) (*AssetRecord, error)
	// ListMasters returns filtered, sorted master rows with group aggregates.
	ListMasters(ctx context.Context, filters Filters, sort Sort) ([]AssetView, error)
	// ListVersions returns the versions of a master, newest version number first.
	ListVersions(ctx context.Context, masterID string) ([]AssetRecord, error)
	// CustomFields returns the key/value annotations of one asset.
	CustomFields(ctx context.Context, assetID string) (map[string]string, error)
	// AddToGroup links a standalone master under another master as a version.
	AddToGroup(ctx context.Context, candidateID, masterID string) error
	// RemoveFromGroup detaches a version back into a standalone master.
	RemoveFromGroup(ctx context.Context, versionID string) error
	// Promote swaps a version with its master atomically.
	Promote(ctx context.Context, versionID string) error
	// CreateVersion inserts a new row as a version of the given master.
	CreateVersion(ctx context.Context, masterID string, rec *AssetRecord) error
}

// AssetRepo provides methods for asset operations backed by SQLite.
// It implements the AssetStore interface.
type AssetRepo struct {
	db *sql.DB
}

// NewAssetRepo creates a new AssetRepo.
func NewAssetRepo(db *sql.DB) *AssetRepo {
	return &AssetRepo{db: db}
}

// Create inserts a new master row. A missing ID is filled with a fresh UUID
// and a zero VersionNumber defaults to 1.
func (r *AssetRepo) Create(ctx context.Context, rec *AssetRecord) error {
	if err := validateRecord(rec); err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.VersionNumber == 0 {
		rec.VersionNumber = 1
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO assets (`+assetColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.OriginalFileName, rec.RelPath, rec.MimeType, rec.SizeBytes,
		rec.CreatedAt.Format(dbTimeFormat), rec.Year, rec.Advertiser, rec.Niche,
		rec.ShareCount, rec.MasterID, rec.VersionNumber,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicatePath, rec.RelPath)
		}
		return fmt.Errorf("failed to insert asset: %w", err)
	}

	return nil
}

// Get returns the asset by id. Returns ErrNotFound if absent.
func (r *AssetRepo) Get(ctx context.Context, id string) (*AssetRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = ?`, id,
	)
	rec, err := scanAsset(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query asset: %w", err)
	}
	return rec, nil
}

// Update applies a partial update of the whitelisted scalar fields (file name,
// year, advertiser, niche, share count) and the given custom-field changes in
// a single transaction. A nil or empty custom-field value clears the key.
func (r *AssetRepo) Update(ctx context.Context, id string, fields FieldUpdates, customFields map[string]*string) error {
	if fields.Empty() && len(customFields) == 0 {
		return fmt.Errorf("%w: no updatable fields given", ErrInvalidRecord)
	}
	if fields.FileName != nil && *fields.FileName == "" {
		return fmt.Errorf("%w: fileName cannot be empty", ErrInvalidRecord)
	}
	if fields.ShareCount.Set && fields.ShareCount.Value != nil && *fields.ShareCount.Value < 0 {
		return fmt.Errorf("%w: shareCount cannot be negative", ErrInvalidRecord)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM assets WHERE id = ?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check asset: %w", err)
	}

	set, args := buildSetClauses(fields)
	if len(set) > 0 {
		args = append(args, id)
		query := "UPDATE assets SET " + joinClauses(set) + " WHERE id = ?"
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update asset: %w", err)
		}
	}

	for key, value := range customFields {
		if key == "" {
			return fmt.Errorf("%w: custom field key cannot be empty", ErrInvalidRecord)
		}
		if value == nil || *value == "" {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM custom_fields WHERE asset_id = ? AND key = ?`, id, key); err != nil {
				return fmt.Errorf("failed to clear custom field %s: %w", key, err)
			}
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO custom_fields (asset_id, key, value) VALUES (?, ?, ?)
			 ON CONFLICT (asset_id, key) DO UPDATE SET value = excluded.value`,
			id, key, *value); err != nil {
			return fmt.Errorf("failed to upsert custom field %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit update: %w", err)
	}
	return nil
}

// Delete removes the row and cascades custom fields. Versions of a deleted
// master are reset to standalone masters in the same transaction; this is the
// documented cascade-to-standalone policy, not a schema side effect. The
// removed record is returned so the caller can clean up the physical file.
func (r *AssetRepo) Delete(ctx context.Context, id string) (*AssetRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rec, err := getAssetTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE assets SET master_id = NULL, version_number = 1 WHERE master_id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to detach versions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to delete asset: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit delete: %w", err)
	}
	return rec, nil
}

// ListVersions returns the versions of a master ordered by version number
// descending. A master without versions yields an empty slice.
func (r *AssetRepo) ListVersions(ctx context.Context, masterID string) ([]AssetRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE master_id = ? ORDER BY version_number DESC, id ASC`,
		masterID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query versions: %w", err)
	}
	defer rows.Close()

	var versions []AssetRecord
	for rows.Next() {
		rec, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		versions = append(versions, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return versions, nil
}

// CustomFields returns the key/value annotations of one asset.
func (r *AssetRepo) CustomFields(ctx context.Context, assetID string) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM custom_fields WHERE asset_id = ?`, assetID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom fields: %w", err)
	}
	defer rows.Close()

	fields := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan custom field: %w", err)
		}
		fields[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return fields, nil
}

// validateRecord checks the fields required on every insert.
func validateRecord(rec *AssetRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}
	if rec.OriginalFileName == "" {
		return fmt.Errorf("%w: originalFileName is required", ErrInvalidRecord)
	}
	if rec.RelPath == "" {
		return fmt.Errorf("%w: relPath is required", ErrInvalidRecord)
	}
	if rec.MimeType == "" {
		return fmt.Errorf("%w: mimeType is required", ErrInvalidRecord)
	}
	if rec.SizeBytes < 0 {
		return fmt.Errorf("%w: sizeBytes cannot be negative", ErrInvalidRecord)
	}
	if rec.ShareCount != nil && *rec.ShareCount < 0 {
		return fmt.Errorf("%w: shareCount cannot be negative", ErrInvalidRecord)
	}
	return nil
}

// buildSetClauses translates FieldUpdates into SQL SET fragments and args.
func buildSetClauses(fields FieldUpdates) ([]string, []any) {
	var set []string
	var args []any
	if fields.FileName != nil {
		set = append(set, "original_file_name = ?")
		args = append(args, *fields.FileName)
	}
	if fields.Year.Set {
		set = append(set, "year = ?")
		args = append(args, fields.Year.Value)
	}
	if fields.Advertiser.Set {
		set = append(set, "advertiser = ?")
		args = append(args, fields.Advertiser.Value)
	}
	if fields.Niche.Set {
		set = append(set, "niche = ?")
		args = append(args, fields.Niche.Value)
	}
	if fields.ShareCount.Set {
		set = append(set, "share_count = ?")
		args = append(args, fields.ShareCount.Value)
	}
	return set, args
}

func joinClauses(clauses []string) string {
	out := ""
	for i, c := range clauses {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanAsset reads one asset row in assetColumns order.
func scanAsset(row scanner) (*AssetRecord, error) {
	var rec AssetRecord
	var createdAt string
	err := row.Scan(
		&rec.ID, &rec.OriginalFileName, &rec.RelPath, &rec.MimeType, &rec.SizeBytes,
		&createdAt, &rec.Year, &rec.Advertiser, &rec.Niche, &rec.ShareCount,
		&rec.MasterID, &rec.VersionNumber,
	)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt, err = parseDBTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	return &rec, nil
}

// getAssetTx loads an asset inside a transaction, mapping absence to ErrNotFound.
func getAssetTx(ctx context.Context, tx *sql.Tx, id string) (*AssetRecord, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = ?`, id)
	rec, err := scanAsset(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query asset: %w", err)
	}
	return rec, nil
}

// parseDBTime parses a SQLite DATETIME string.
func parseDBTime(raw string) (time.Time, error) {
	t, err := time.Parse(dbTimeFormat, raw)
	if err == nil {
		return t, nil
	}
	// SQLite might hand back RFC3339 depending on how the value was written
	return time.Parse(time.RFC3339, raw)
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
