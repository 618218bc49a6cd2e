package storage

import "time"

// AssetRecord represents one imported media file in the database.
// A record with a nil MasterID is a master; otherwise it is a version of
// the referenced master. MasterID may only point at a row whose own
// MasterID is NULL (one hop at most).
type AssetRecord struct {
	ID               string  // UUID
	OriginalFileName string  // File name at import time
	RelPath          string  // Vault-relative storage path, unique
	MimeType         string
	SizeBytes        int64
	CreatedAt        time.Time
	Year             *int    // nil = unset
	Advertiser       *string // nil = unset
	Niche            *string // nil = unset
	ShareCount       *int64  // nil = unset, never coerced to 0 on the record itself
	MasterID         *string // nil = this asset is a master
	VersionNumber    int     // >= 1
}

// IsMaster reports whether the record is the root of its version group.
func (a *AssetRecord) IsMaster() bool {
	return a.MasterID == nil
}

// AssetView is a master record with the aggregates derived from its group.
type AssetView struct {
	AssetRecord
	AccumulatedShares int64 // own shareCount (null as 0) + sum over versions (null as 0)
	VersionCount      int   // 1 + number of versions
}

// OptInt carries a tri-state update: absent (Set false), set to a value,
// or cleared to NULL (Set true, Value nil).
type OptInt struct {
	Set   bool
	Value *int
}

// OptInt64 is OptInt for 64-bit columns.
type OptInt64 struct {
	Set   bool
	Value *int64
}

// OptString is the tri-state update for text columns.
type OptString struct {
	Set   bool
	Value *string
}

// FieldUpdates describes a partial update of the whitelisted scalar fields.
// MasterID, VersionNumber, RelPath, MimeType, SizeBytes and CreatedAt are
// deliberately not representable here.
type FieldUpdates struct {
	FileName   *string // nil = unchanged; the file name cannot be cleared
	Year       OptInt
	Advertiser OptString
	Niche      OptString
	ShareCount OptInt64
}

// Empty reports whether the update would touch no column.
func (u FieldUpdates) Empty() bool {
	return u.FileName == nil && !u.Year.Set && !u.Advertiser.Set && !u.Niche.Set && !u.ShareCount.Set
}
