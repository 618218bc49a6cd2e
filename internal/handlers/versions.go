package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"adarchive/internal/service"
)

// VersionHandler serves the version channels of a master.
type VersionHandler struct {
	svc service.AssetService
}

// NewVersionHandler creates a new VersionHandler.
func NewVersionHandler(svc service.AssetService) *VersionHandler {
	return &VersionHandler{svc: svc}
}

type createVersionRequest struct {
	SourceFilePath string `json:"sourceFilePath"`
}

// Create handles POST /api/assets/{id}/versions.
func (h *VersionHandler) Create(w http.ResponseWriter, r *http.Request) {
	masterID := chi.URLParam(r, "id")
	var req createVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &service.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}

	view, err := h.svc.CreateVersion(r.Context(), masterID, req.SourceFilePath)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{
		"success": true,
		"newId":   view.ID,
		"asset":   assetFromVersion(*view),
	})
}

// List handles GET /api/assets/{id}/versions, ordered by version number
// descending.
func (h *VersionHandler) List(w http.ResponseWriter, r *http.Request) {
	masterID := chi.URLParam(r, "id")
	views, err := h.svc.ListVersions(r.Context(), masterID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	assets := make([]assetJSON, 0, len(views))
	for _, v := range views {
		assets = append(assets, assetFromVersion(v))
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"assets":  assets,
	})
}
