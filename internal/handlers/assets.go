package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"adarchive/internal/service"
	"adarchive/internal/storage"
)

// AssetHandler serves the asset CRUD and bulk channels.
type AssetHandler struct {
	svc service.AssetService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(svc service.AssetService) *AssetHandler {
	return &AssetHandler{svc: svc}
}

var validSortKeys = map[storage.SortKey]bool{
	storage.SortFileName:          true,
	storage.SortYear:              true,
	storage.SortShareCount:        true,
	storage.SortAccumulatedShares: true,
	storage.SortCreatedAt:         true,
}

// List handles GET /api/assets. Filters and sort come from query parameters;
// only masters are returned.
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, sort, err := parseListQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	views, err := h.svc.ListAssets(r.Context(), filters, sort)
	if err != nil {
		writeError(w, r, err)
		return
	}

	assets := make([]assetJSON, 0, len(views))
	for _, v := range views {
		assets = append(assets, assetFromView(v))
	}
	writeJSON(w, r, http.StatusOK, assets)
}

// Get handles GET /api/assets/{id}.
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, customFields, err := h.svc.GetAsset(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := assetFromVersion(*view)
	out.CustomFields = customFields
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"asset":   out,
	})
}

type createAssetRequest struct {
	SourceFilePath string `json:"sourceFilePath"`
}

// Create handles POST /api/assets.
func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &service.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}

	view, err := h.svc.CreateAsset(r.Context(), req.SourceFilePath)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{
		"success": true,
		"asset":   assetFromView(*view),
	})
}

type bulkImportRequest struct {
	SourcePaths []string `json:"sourcePaths"`
}

// Import handles POST /api/assets/import.
func (h *AssetHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req bulkImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &service.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}
	if len(req.SourcePaths) == 0 {
		writeError(w, r, &service.ValidationError{Field: "sourcePaths", Message: "cannot be empty"})
		return
	}

	res := h.svc.BulkImport(r.Context(), req.SourcePaths)
	assets := make([]assetJSON, 0, len(res.Assets))
	for _, v := range res.Assets {
		assets = append(assets, assetFromView(v))
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success":       true,
		"importedCount": res.ImportedCount,
		"assets":        assets,
		"errors":        emptyImportErrors(res.Errors),
	})
}

type updateAssetRequest struct {
	Updates map[string]json.RawMessage `json:"updates"`
}

// Update handles PATCH /api/assets/{id}.
func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &service.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}

	updates, err := parseUpdates(req.Updates)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.UpdateAsset(r.Context(), id, updates); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"success": true})
}

// Delete handles DELETE /api/assets/{id}.
func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteAsset(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"success": true})
}

type bulkUpdateRequest struct {
	IDs     []string                   `json:"ids"`
	Updates map[string]json.RawMessage `json:"updates"`
}

// BulkUpdate handles POST /api/assets/bulk-update. The response always
// carries partial counts plus per-id errors, never an overall failure.
func (h *AssetHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req bulkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &service.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}
	updates, err := parseUpdates(req.Updates)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res := h.svc.BulkUpdate(r.Context(), req.IDs, updates)
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success":      true,
		"updatedCount": res.UpdatedCount,
		"errors":       emptyBulkErrors(res.Errors),
	})
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkDelete handles POST /api/assets/bulk-delete.
func (h *AssetHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &service.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}

	res := h.svc.BulkDelete(r.Context(), req.IDs)
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success":      true,
		"deletedCount": res.DeletedCount,
		"errors":       emptyBulkErrors(res.Errors),
	})
}

// parseListQuery builds filters and sort from GET /api/assets query params.
func parseListQuery(r *http.Request) (storage.Filters, storage.Sort, error) {
	var filters storage.Filters
	var sort storage.Sort
	q := r.URL.Query()

	if raw := q.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return filters, sort, &service.ValidationError{Field: "year", Message: "must be an integer"}
		}
		filters.Year = &year
	}
	if raw := q.Get("advertiser"); raw != "" {
		filters.Advertiser = &raw
	}
	if raw := q.Get("niche"); raw != "" {
		filters.Niche = &raw
	}
	if raw := q.Get("sharesMin"); raw != "" {
		min, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filters, sort, &service.ValidationError{Field: "sharesMin", Message: "must be an integer"}
		}
		filters.SharesMin = &min
	}
	if raw := q.Get("sharesMax"); raw != "" {
		max, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filters, sort, &service.ValidationError{Field: "sharesMax", Message: "must be an integer"}
		}
		filters.SharesMax = &max
	}

	if raw := q.Get("sortBy"); raw != "" {
		key := storage.SortKey(raw)
		if !validSortKeys[key] {
			return filters, sort, &service.ValidationError{Field: "sortBy", Message: fmt.Sprintf("unsupported sort key %q", raw)}
		}
		sort.Key = key
	}
	switch q.Get("sortDir") {
	case "", "asc":
	case "desc":
		sort.Desc = true
	default:
		return filters, sort, &service.ValidationError{Field: "sortDir", Message: "must be asc or desc"}
	}

	return filters, sort, nil
}

// parseUpdates converts the loose JSON update object into the typed service
// shape, distinguishing absent keys from explicit nulls (clears).
func parseUpdates(raw map[string]json.RawMessage) (service.Updates, error) {
	var updates service.Updates
	for key, value := range raw {
		isNull := len(bytes.TrimSpace(value)) == 0 || bytes.Equal(bytes.TrimSpace(value), []byte("null"))
		switch key {
		case "fileName":
			if isNull {
				return updates, &service.ValidationError{Field: "fileName", Message: "cannot be cleared"}
			}
			var name string
			if err := json.Unmarshal(value, &name); err != nil {
				return updates, &service.ValidationError{Field: "fileName", Message: "must be a string"}
			}
			updates.Fields.FileName = &name
		case "year":
			updates.Fields.Year.Set = true
			if !isNull {
				var year int
				if err := json.Unmarshal(value, &year); err != nil {
					return updates, &service.ValidationError{Field: "year", Message: "must be an integer or null"}
				}
				updates.Fields.Year.Value = &year
			}
		case "advertiser":
			opt, err := parseOptString(key, value, isNull)
			if err != nil {
				return updates, err
			}
			updates.Fields.Advertiser = opt
		case "niche":
			opt, err := parseOptString(key, value, isNull)
			if err != nil {
				return updates, err
			}
			updates.Fields.Niche = opt
		case "shareCount":
			updates.Fields.ShareCount.Set = true
			if !isNull {
				var count int64
				if err := json.Unmarshal(value, &count); err != nil {
					return updates, &service.ValidationError{Field: "shareCount", Message: "must be an integer or null"}
				}
				updates.Fields.ShareCount.Value = &count
			}
		case "customFields":
			var fields map[string]*string
			if err := json.Unmarshal(value, &fields); err != nil {
				return updates, &service.ValidationError{Field: "customFields", Message: "must be an object of strings"}
			}
			updates.CustomFields = fields
		default:
			return updates, &service.ValidationError{Field: key, Message: "unsupported update field"}
		}
	}
	return updates, nil
}

func parseOptString(field string, value json.RawMessage, isNull bool) (storage.OptString, error) {
	opt := storage.OptString{Set: true}
	if isNull {
		return opt, nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return storage.OptString{}, &service.ValidationError{Field: field, Message: "must be a string or null"}
	}
	opt.Value = &s
	return opt, nil
}

// emptyBulkErrors keeps the errors field a JSON array, never null.
func emptyBulkErrors(errs []service.BulkError) []service.BulkError {
	if errs == nil {
		return []service.BulkError{}
	}
	return errs
}

func emptyImportErrors(errs []service.ImportError) []service.ImportError {
	if errs == nil {
		return []service.ImportError{}
	}
	return errs
}
