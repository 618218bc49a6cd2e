package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GroupError reports a violated grouping precondition, such as linking an
// asset that is already a version or promoting a master.
type GroupError struct {
	Op     string
	ID     string
	Reason string
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.ID, e.Reason)
}

// AddToGroup links candidateID under masterID as a new version. Both assets
// must currently be masters and distinct, which keeps every master_id
// reference a single hop.
func (r *AssetRepo) AddToGroup(ctx context.Context, candidateID, masterID string) error {
	if candidateID == masterID {
		return &GroupError{Op: "addToGroup", ID: candidateID, Reason: "an asset cannot be grouped with itself"}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	candidate, err := getAssetTx(ctx, tx, candidateID)
	if err != nil {
		return err
	}
	if candidate.MasterID != nil {
		return &GroupError{Op: "addToGroup", ID: candidateID, Reason: "already a version of another master"}
	}

	master, err := getAssetTx(ctx, tx, masterID)
	if err != nil {
		return err
	}
	if master.MasterID != nil {
		return &GroupError{Op: "addToGroup", ID: masterID, Reason: "target is itself a version"}
	}

	next, err := nextVersionNumber(ctx, tx, masterID)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE assets SET master_id = ?, version_number = ? WHERE id = ?`,
		masterID, next, candidateID); err != nil {
		return fmt.Errorf("failed to link version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit addToGroup: %w", err)
	}
	return nil
}

// RemoveFromGroup detaches a version back into a standalone master. The
// former master and the remaining group members are untouched.
func (r *AssetRepo) RemoveFromGroup(ctx context.Context, versionID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	version, err := getAssetTx(ctx, tx, versionID)
	if err != nil {
		return err
	}
	if version.MasterID == nil {
		return &GroupError{Op: "removeFromGroup", ID: versionID, Reason: "not a version"}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE assets SET master_id = NULL, version_number = 1 WHERE id = ?`, versionID); err != nil {
		return fmt.Errorf("failed to detach version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit removeFromGroup: %w", err)
	}
	return nil
}

// Promote swaps a version with its master in one transaction: the version
// becomes the group's master, every sibling is relinked under it, and the old
// master joins the group with the next version number. Either the whole swap
// commits or none of it does.
func (r *AssetRepo) Promote(ctx context.Context, versionID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	version, err := getAssetTx(ctx, tx, versionID)
	if err != nil {
		return err
	}
	if version.MasterID == nil {
		return &GroupError{Op: "promote", ID: versionID, Reason: "not a version"}
	}
	oldMasterID := *version.MasterID

	// Detach the new master first so every reference stays one hop deep.
	if _, err := tx.ExecContext(ctx,
		`UPDATE assets SET master_id = NULL, version_number = 1 WHERE id = ?`, versionID); err != nil {
		return fmt.Errorf("failed to promote version: %w", err)
	}
	// Siblings keep their version numbers, only the parent changes.
	if _, err := tx.ExecContext(ctx,
		`UPDATE assets SET master_id = ? WHERE master_id = ?`, versionID, oldMasterID); err != nil {
		return fmt.Errorf("failed to relink siblings: %w", err)
	}

	next, err := nextVersionNumber(ctx, tx, versionID)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE assets SET master_id = ?, version_number = ? WHERE id = ?`,
		versionID, next, oldMasterID); err != nil {
		return fmt.Errorf("failed to demote master: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit promote: %w", err)
	}
	return nil
}

// CreateVersion inserts rec as a new version of masterID. The target must
// currently be a master. The caller is responsible for snapshotting any
// metadata from the master into rec beforehand.
func (r *AssetRepo) CreateVersion(ctx context.Context, masterID string, rec *AssetRecord) error {
	if err := validateRecord(rec); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	master, err := getAssetTx(ctx, tx, masterID)
	if err != nil {
		return err
	}
	if master.MasterID != nil {
		return &GroupError{Op: "createVersion", ID: masterID, Reason: "target is not a master"}
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	next, err := nextVersionNumber(ctx, tx, masterID)
	if err != nil {
		return err
	}
	rec.MasterID = &masterID
	rec.VersionNumber = next

	_, err = tx.ExecContext(ctx,
		`INSERT INTO assets (`+assetColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.OriginalFileName, rec.RelPath, rec.MimeType, rec.SizeBytes,
		rec.CreatedAt.Format(dbTimeFormat), rec.Year, rec.Advertiser, rec.Niche,
		rec.ShareCount, rec.MasterID, rec.VersionNumber,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicatePath, rec.RelPath)
		}
		return fmt.Errorf("failed to insert version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit createVersion: %w", err)
	}
	return nil
}

// nextVersionNumber returns the next number in a group's sequence. The master
// itself occupies 1, so an empty group hands out 2. Numbers are monotone per
// group but not gap-free: detached members keep their slot unused.
func nextVersionNumber(ctx context.Context, tx *sql.Tx, masterID string) (int, error) {
	var max sql.NullInt64
	err := tx.QueryRowContext(ctx,
		`SELECT MAX(version_number) FROM assets WHERE master_id = ?`, masterID,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next version number: %w", err)
	}
	highest := int64(1)
	if max.Valid && max.Int64 > highest {
		highest = max.Int64
	}
	return int(highest) + 1, nil
}
