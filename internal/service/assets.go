package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_asset_service.go -package=mocks adarchive/internal/service AssetService

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"adarchive/internal/storage"
	"adarchive/internal/thumbs"
	"adarchive/internal/vault"
)

// AssetView is a master listing entry: the repository view plus the cached
// thumbnail, if one exists yet.
type AssetView struct {
	storage.AssetView
	ThumbnailRef string
}

// VersionView is a single asset (master or version) with its thumbnail.
type VersionView struct {
	storage.AssetRecord
	ThumbnailRef string
}

// Updates is a partial asset update: whitelisted scalar fields plus
// custom-field upserts. A nil custom-field value clears the key.
type Updates struct {
	Fields       storage.FieldUpdates
	CustomFields map[string]*string
}

// Empty reports whether the update carries no change at all.
func (u Updates) Empty() bool {
	return u.Fields.Empty() && len(u.CustomFields) == 0
}

// AssetService exposes the versioning and aggregation engine to the API
// boundary. This interface is defined from the handlers' perspective
// (consumer-first).
type AssetService interface {
	// ListAssets returns filtered, sorted masters with aggregates and thumbnails.
	ListAssets(ctx context.Context, filters storage.Filters, sort storage.Sort) ([]AssetView, error)
	// GetAsset returns one asset with its thumbnail and custom fields.
	GetAsset(ctx context.Context, id string) (*VersionView, map[string]string, error)
	// CreateAsset imports a source file into the vault and records it as a master.
	CreateAsset(ctx context.Context, sourcePath string) (*AssetView, error)
	// UpdateAsset applies a partial metadata update.
	UpdateAsset(ctx context.Context, id string, updates Updates) error
	// DeleteAsset removes the record, its vault file and its thumbnail.
	DeleteAsset(ctx context.Context, id string) error
	// CreateVersion imports a source file as a new version of a master,
	// cloning the master's metadata as a starting snapshot.
	CreateVersion(ctx context.Context, masterID, sourcePath string) (*VersionView, error)
	// ListVersions returns a master's versions, newest version number first.
	ListVersions(ctx context.Context, masterID string) ([]VersionView, error)
	// AddToGroup links a standalone master under another master.
	AddToGroup(ctx context.Context, versionID, masterID string) error
	// RemoveFromGroup detaches a version into a standalone master.
	RemoveFromGroup(ctx context.Context, versionID string) error
	// Promote swaps a version with its master atomically.
	Promote(ctx context.Context, versionID string) error
	// BulkImport imports many source files with per-file outcomes.
	BulkImport(ctx context.Context, sourcePaths []string) BulkImportResult
	// BulkUpdate applies the same update to many ids with per-id outcomes.
	BulkUpdate(ctx context.Context, ids []string, updates Updates) BulkUpdateResult
	// BulkDelete deletes many ids with per-id outcomes.
	BulkDelete(ctx context.Context, ids []string) BulkDeleteResult
	// BulkAddToGroup links many ids under one master with per-id outcomes.
	BulkAddToGroup(ctx context.Context, versionIDs []string, masterID string) BulkGroupResult
}

// assetService implements AssetService.
type assetService struct {
	store  storage.AssetStore
	vault  *vault.Manager
	thumbs *thumbs.Service
	queue  *thumbs.Queue
	logger *slog.Logger
}

// NewAssetService creates a new AssetService.
func NewAssetService(store storage.AssetStore, vaultMgr *vault.Manager, thumbSvc *thumbs.Service, queue *thumbs.Queue) AssetService {
	return &assetService{
		store:  store,
		vault:  vaultMgr,
		thumbs: thumbSvc,
		queue:  queue,
		logger: slog.Default(),
	}
}

// ListAssets returns masters with aggregates, merging in cached thumbnails.
func (s *assetService) ListAssets(ctx context.Context, filters storage.Filters, sort storage.Sort) ([]AssetView, error) {
	masters, err := s.store.ListMasters(ctx, filters, sort)
	if err != nil {
		return nil, mapStorageError(err)
	}
	views := make([]AssetView, 0, len(masters))
	for _, m := range masters {
		views = append(views, AssetView{
			AssetView:    m,
			ThumbnailRef: s.thumbs.GetExisting(m.ID),
		})
	}
	return views, nil
}

// GetAsset returns one asset with thumbnail and custom fields.
func (s *assetService) GetAsset(ctx context.Context, id string) (*VersionView, map[string]string, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, nil, mapStorageError(err)
	}
	fields, err := s.store.CustomFields(ctx, id)
	if err != nil {
		return nil, nil, mapStorageError(err)
	}
	return &VersionView{
		AssetRecord:  *rec,
		ThumbnailRef: s.thumbs.GetExisting(id),
	}, fields, nil
}

// CreateAsset imports sourcePath into the vault and inserts a master record.
// Thumbnail generation is queued fire-and-forget from the vault copy; a
// renderer problem never fails the import.
func (s *assetService) CreateAsset(ctx context.Context, sourcePath string) (*AssetView, error) {
	if strings.TrimSpace(sourcePath) == "" {
		return nil, &ValidationError{Field: "sourceFilePath", Message: "cannot be empty"}
	}

	id := uuid.New().String()
	imported, err := s.vault.Import(sourcePath, id)
	if err != nil {
		return nil, &ValidationError{Field: "sourceFilePath", Message: err.Error()}
	}

	rec := &storage.AssetRecord{
		ID:               id,
		OriginalFileName: imported.OriginalFileName,
		RelPath:          imported.RelPath,
		MimeType:         imported.MimeType,
		SizeBytes:        imported.SizeBytes,
		VersionNumber:    1,
	}
	if err := s.store.Create(ctx, rec); err != nil {
		// The record is authoritative; without it the vault copy is orphaned
		if removeErr := s.vault.Remove(imported.RelPath); removeErr != nil {
			s.logger.Warn("failed to remove vault file after aborted create", "rel_path", imported.RelPath, "error", removeErr)
		}
		return nil, mapStorageError(err)
	}

	s.enqueueThumbnail(id, imported.RelPath)
	s.logger.InfoContext(ctx, "asset imported", "id", id, "file", imported.OriginalFileName)

	return &AssetView{
		AssetView: storage.AssetView{
			AssetRecord:       *rec,
			AccumulatedShares: 0,
			VersionCount:      1,
		},
	}, nil
}

// UpdateAsset applies a partial metadata update.
func (s *assetService) UpdateAsset(ctx context.Context, id string, updates Updates) error {
	if updates.Empty() {
		return &ValidationError{Field: "updates", Message: "no supported fields to update"}
	}
	if err := s.store.Update(ctx, id, updates.Fields, updates.CustomFields); err != nil {
		return mapStorageError(err)
	}
	return nil
}

// DeleteAsset removes the record first (the database is the authoritative
// existence record), then cleans up the vault file and thumbnail. Filesystem
// cleanup failures are logged but the delete still reports success.
func (s *assetService) DeleteAsset(ctx context.Context, id string) error {
	rec, err := s.store.Delete(ctx, id)
	if err != nil {
		return mapStorageError(err)
	}
	if err := s.vault.Remove(rec.RelPath); err != nil {
		s.logger.Warn("failed to remove vault file for deleted asset", "id", id, "rel_path", rec.RelPath, "error", err)
	}
	s.thumbs.Invalidate(id)
	s.logger.InfoContext(ctx, "asset deleted", "id", id)
	return nil
}

// CreateVersion imports sourcePath as a new version of masterID. The
// master's year, advertiser, niche and share count are cloned as a starting
// snapshot; the two records are independent afterwards.
func (s *assetService) CreateVersion(ctx context.Context, masterID, sourcePath string) (*VersionView, error) {
	if strings.TrimSpace(sourcePath) == "" {
		return nil, &ValidationError{Field: "sourceFilePath", Message: "cannot be empty"}
	}

	master, err := s.store.Get(ctx, masterID)
	if err != nil {
		return nil, mapStorageError(err)
	}
	if !master.IsMaster() {
		return nil, &storage.GroupError{Op: "createVersion", ID: masterID, Reason: "target is not a master"}
	}

	id := uuid.New().String()
	imported, err := s.vault.Import(sourcePath, id)
	if err != nil {
		return nil, &ValidationError{Field: "sourceFilePath", Message: err.Error()}
	}

	rec := &storage.AssetRecord{
		ID:               id,
		OriginalFileName: imported.OriginalFileName,
		RelPath:          imported.RelPath,
		MimeType:         imported.MimeType,
		SizeBytes:        imported.SizeBytes,
		Year:             master.Year,
		Advertiser:       master.Advertiser,
		Niche:            master.Niche,
		ShareCount:       master.ShareCount,
	}
	if err := s.store.CreateVersion(ctx, masterID, rec); err != nil {
		if removeErr := s.vault.Remove(imported.RelPath); removeErr != nil {
			s.logger.Warn("failed to remove vault file after aborted version create", "rel_path", imported.RelPath, "error", removeErr)
		}
		return nil, mapStorageError(err)
	}

	s.enqueueThumbnail(id, imported.RelPath)
	s.logger.InfoContext(ctx, "version created", "id", id, "master_id", masterID, "version_number", rec.VersionNumber)

	return &VersionView{AssetRecord: *rec}, nil
}

// ListVersions returns the versions of a master with thumbnails attached.
func (s *assetService) ListVersions(ctx context.Context, masterID string) ([]VersionView, error) {
	if _, err := s.store.Get(ctx, masterID); err != nil {
		return nil, mapStorageError(err)
	}
	versions, err := s.store.ListVersions(ctx, masterID)
	if err != nil {
		return nil, mapStorageError(err)
	}
	views := make([]VersionView, 0, len(versions))
	for _, v := range versions {
		views = append(views, VersionView{
			AssetRecord:  v,
			ThumbnailRef: s.thumbs.GetExisting(v.ID),
		})
	}
	return views, nil
}

// AddToGroup links versionID under masterID.
func (s *assetService) AddToGroup(ctx context.Context, versionID, masterID string) error {
	return mapStorageError(s.store.AddToGroup(ctx, versionID, masterID))
}

// RemoveFromGroup detaches versionID into a standalone master.
func (s *assetService) RemoveFromGroup(ctx context.Context, versionID string) error {
	return mapStorageError(s.store.RemoveFromGroup(ctx, versionID))
}

// Promote swaps versionID with its master.
func (s *assetService) Promote(ctx context.Context, versionID string) error {
	return mapStorageError(s.store.Promote(ctx, versionID))
}

// enqueueThumbnail schedules background generation from the vault copy, so
// the preview survives the source file disappearing after import.
func (s *assetService) enqueueThumbnail(assetID, relPath string) {
	if s.queue == nil {
		return
	}
	abs, err := s.vault.AbsPath(relPath)
	if err != nil {
		s.logger.Warn("cannot resolve vault path for thumbnail", "asset_id", assetID, "error", err)
		return
	}
	s.queue.Enqueue(assetID, abs)
}
