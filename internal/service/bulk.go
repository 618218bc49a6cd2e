package service

import "context"

// BulkError is a per-id failure inside a bulk operation.
type BulkError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// ImportError is a per-file failure inside a bulk import.
type ImportError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// BulkUpdateResult reports a bulk update: partial counts, never an abort.
type BulkUpdateResult struct {
	UpdatedCount int
	Errors       []BulkError
}

// BulkDeleteResult reports a bulk delete.
type BulkDeleteResult struct {
	DeletedCount int
	Errors       []BulkError
}

// BulkGroupResult reports a bulk grouping operation.
type BulkGroupResult struct {
	Errors []BulkError
}

// BulkImportResult reports a bulk import.
type BulkImportResult struct {
	ImportedCount int
	Assets        []AssetView
	Errors        []ImportError
}

// BulkUpdate applies the same update to each id independently. One failure
// never aborts the rest; distinct ids share no state beyond their own rows.
func (s *assetService) BulkUpdate(ctx context.Context, ids []string, updates Updates) BulkUpdateResult {
	var res BulkUpdateResult
	for _, id := range ids {
		if err := s.UpdateAsset(ctx, id, updates); err != nil {
			res.Errors = append(res.Errors, BulkError{ID: id, Error: err.Error()})
			continue
		}
		res.UpdatedCount++
	}
	return res
}

// BulkDelete deletes each id independently, including its vault file and
// thumbnail cleanup.
func (s *assetService) BulkDelete(ctx context.Context, ids []string) BulkDeleteResult {
	var res BulkDeleteResult
	for _, id := range ids {
		if err := s.DeleteAsset(ctx, id); err != nil {
			res.Errors = append(res.Errors, BulkError{ID: id, Error: err.Error()})
			continue
		}
		res.DeletedCount++
	}
	return res
}

// BulkAddToGroup links each id under masterID independently. An id that is
// already a version elsewhere, or equal to masterID, is reported per-id
// without affecting the others.
func (s *assetService) BulkAddToGroup(ctx context.Context, versionIDs []string, masterID string) BulkGroupResult {
	var res BulkGroupResult
	for _, id := range versionIDs {
		if err := s.AddToGroup(ctx, id, masterID); err != nil {
			res.Errors = append(res.Errors, BulkError{ID: id, Error: err.Error()})
		}
	}
	return res
}

// BulkImport imports each source path independently with per-file outcomes.
func (s *assetService) BulkImport(ctx context.Context, sourcePaths []string) BulkImportResult {
	var res BulkImportResult
	for _, path := range sourcePaths {
		view, err := s.CreateAsset(ctx, path)
		if err != nil {
			res.Errors = append(res.Errors, ImportError{File: path, Error: err.Error()})
			continue
		}
		res.ImportedCount++
		res.Assets = append(res.Assets, *view)
	}
	return res
}
