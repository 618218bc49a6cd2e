package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"adarchive/internal/contextutil"
	"adarchive/internal/service"
	"adarchive/internal/storage"
)

// assetJSON is the wire shape of an asset. Aggregate fields are only present
// on master listing entries.
type assetJSON struct {
	ID                  string            `json:"id"`
	OriginalFileName    string            `json:"originalFileName"`
	StorageRelativePath string            `json:"storageRelativePath"`
	MimeType            string            `json:"mimeType"`
	SizeBytes           int64             `json:"sizeBytes"`
	CreatedAt           string            `json:"createdAt"`
	Year                *int              `json:"year"`
	Advertiser          *string           `json:"advertiser"`
	Niche               *string           `json:"niche"`
	ShareCount          *int64            `json:"shareCount"`
	MasterID            *string           `json:"masterId"`
	VersionNumber       int               `json:"versionNumber"`
	AccumulatedShares   *int64            `json:"accumulatedShares,omitempty"`
	VersionCount        *int              `json:"versionCount,omitempty"`
	ThumbnailRef        string            `json:"thumbnailRef,omitempty"`
	CustomFields        map[string]string `json:"customFields,omitempty"`
}

func assetBase(rec storage.AssetRecord) assetJSON {
	return assetJSON{
		ID:                  rec.ID,
		OriginalFileName:    rec.OriginalFileName,
		StorageRelativePath: rec.RelPath,
		MimeType:            rec.MimeType,
		SizeBytes:           rec.SizeBytes,
		CreatedAt:           rec.CreatedAt.UTC().Format(time.RFC3339),
		Year:                rec.Year,
		Advertiser:          rec.Advertiser,
		Niche:               rec.Niche,
		ShareCount:          rec.ShareCount,
		MasterID:            rec.MasterID,
		VersionNumber:       rec.VersionNumber,
	}
}

func assetFromView(view service.AssetView) assetJSON {
	out := assetBase(view.AssetRecord)
	shares := view.AccumulatedShares
	count := view.VersionCount
	out.AccumulatedShares = &shares
	out.VersionCount = &count
	out.ThumbnailRef = view.ThumbnailRef
	return out
}

func assetFromVersion(view service.VersionView) assetJSON {
	out := assetBase(view.AssetRecord)
	out.ThumbnailRef = view.ThumbnailRef
	return out
}

// writeJSON encodes payload with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger := contextutil.LoggerFromContext(r.Context())
		logger.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

// writeError maps the service error taxonomy onto HTTP statuses and a
// {success:false, error} body. NotFound is surfaced as a response field,
// never an unhandled failure.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := contextutil.LoggerFromContext(r.Context())

	status := http.StatusInternalServerError
	var validationErr *service.ValidationError
	var groupErr *storage.GroupError
	switch {
	case errors.As(err, &validationErr), errors.As(err, &groupErr):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "error", err)
	} else {
		logger.WarnContext(r.Context(), "request rejected", "error", err)
	}

	writeJSON(w, r, status, map[string]any{
		"success": false,
		"error":   err.Error(),
	})
}
