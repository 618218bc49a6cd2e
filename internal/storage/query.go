package storage

import (
	"context"
	"fmt"
)

// Filters narrows the master listing. All criteria are combined with AND.
// The share-count range applies to the master's own shareCount, never the
// accumulated value; a master with an unset shareCount matches no range bound.
type Filters struct {
	Year       *int
	Advertiser *string
	Niche      *string
	SharesMin  *int64 // inclusive
	SharesMax  *int64 // inclusive
}

// SortKey names a sortable column of the master listing.
type SortKey string

const (
	SortFileName          SortKey = "fileName"
	SortYear              SortKey = "year"
	SortShareCount        SortKey = "shareCount"
	SortAccumulatedShares SortKey = "accumulatedShares"
	SortCreatedAt         SortKey = "createdAt"
)

// Sort selects the ordering of the master listing. A zero value sorts by
// creation time, newest first. Ties are always broken by id ascending.
type Sort struct {
	Key  SortKey
	Desc bool
}

var sortColumns = map[SortKey]string{
	SortFileName:          "a.original_file_name",
	SortYear:              "a.year",
	SortShareCount:        "a.share_count",
	SortAccumulatedShares: "accumulated_shares",
	SortCreatedAt:         "a.created_at",
}

// ListMasters returns master rows (never versions) with their group
// aggregates merged in. accumulatedShares counts null shareCounts as 0 on
// both the master and its versions; the master's own ShareCount field keeps
// its null so an unset value still surfaces as unset.
func (r *AssetRepo) ListMasters(ctx context.Context, filters Filters, sort Sort) ([]AssetView, error) {
	if sort.Key == "" {
		sort.Key = SortCreatedAt
		sort.Desc = true
	}
	column, ok := sortColumns[sort.Key]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported sort key %q", ErrInvalidRecord, sort.Key)
	}

	query := `SELECT a.id, a.original_file_name, a.rel_path, a.mime_type, a.size_bytes,
		a.created_at, a.year, a.advertiser, a.niche, a.share_count, a.master_id, a.version_number,
		COALESCE(a.share_count, 0) + COALESCE(g.version_shares, 0) AS accumulated_shares,
		1 + COALESCE(g.version_count, 0) AS version_count
	FROM assets a
	LEFT JOIN (
		SELECT master_id,
			SUM(COALESCE(share_count, 0)) AS version_shares,
			COUNT(*) AS version_count
		FROM assets
		WHERE master_id IS NOT NULL
		GROUP BY master_id
	) g ON g.master_id = a.id
	WHERE a.master_id IS NULL`

	var args []any
	if filters.Year != nil {
		query += " AND a.year = ?"
		args = append(args, *filters.Year)
	}
	if filters.Advertiser != nil {
		query += " AND a.advertiser = ?"
		args = append(args, *filters.Advertiser)
	}
	if filters.Niche != nil {
		query += " AND a.niche = ?"
		args = append(args, *filters.Niche)
	}
	if filters.SharesMin != nil {
		query += " AND a.share_count >= ?"
		args = append(args, *filters.SharesMin)
	}
	if filters.SharesMax != nil {
		query += " AND a.share_count <= ?"
		args = append(args, *filters.SharesMax)
	}

	direction := "ASC"
	if sort.Desc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, a.id ASC", column, direction)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query masters: %w", err)
	}
	defer rows.Close()

	var views []AssetView
	for rows.Next() {
		var view AssetView
		var createdAt string
		err := rows.Scan(
			&view.ID, &view.OriginalFileName, &view.RelPath, &view.MimeType, &view.SizeBytes,
			&createdAt, &view.Year, &view.Advertiser, &view.Niche, &view.ShareCount,
			&view.MasterID, &view.VersionNumber,
			&view.AccumulatedShares, &view.VersionCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan master view: %w", err)
		}
		view.CreatedAt, err = parseDBTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
