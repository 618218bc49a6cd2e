package handlers

import (
	"encoding/json"
	"net/http"

	"adarchive/internal/service"
)

// GroupHandler serves the master/version grouping channels.
type GroupHandler struct {
	svc service.AssetService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(svc service.AssetService) *GroupHandler {
	return &GroupHandler{svc: svc}
}

type addToGroupRequest struct {
	VersionID string `json:"versionId"`
	MasterID  string `json:"masterId"`
}

// Add handles POST /api/groups/add.
func (h *GroupHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addToGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &service.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}
	if req.VersionID == "" || req.MasterID == "" {
		writeError(w, r, &service.ValidationError{Field: "versionId", Message: "versionId and masterId are required"})
		return
	}

	if err := h.svc.AddToGroup(r.Context(), req.VersionID, req.MasterID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"success": true})
}

type versionOnlyRequest struct {
	VersionID string `json:"versionId"`
}

// Remove handles POST /api/groups/remove.
func (h *GroupHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req versionOnlyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &service.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}
	if req.VersionID == "" {
		writeError(w, r, &service.ValidationError{Field: "versionId", Message: "cannot be empty"})
		return
	}

	if err := h.svc.RemoveFromGroup(r.Context(), req.VersionID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"success": true})
}

// Promote handles POST /api/groups/promote.
func (h *GroupHandler) Promote(w http.ResponseWriter, r *http.Request) {
	var req versionOnlyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &service.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}
	if req.VersionID == "" {
		writeError(w, r, &service.ValidationError{Field: "versionId", Message: "cannot be empty"})
		return
	}

	if err := h.svc.Promote(r.Context(), req.VersionID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"success": true})
}

type bulkAddToGroupRequest struct {
	VersionIDs []string `json:"versionIds"`
	MasterID   string   `json:"masterId"`
}

// BulkAdd handles POST /api/groups/bulk-add. Failures are reported per id.
func (h *GroupHandler) BulkAdd(w http.ResponseWriter, r *http.Request) {
	var req bulkAddToGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &service.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}
	if req.MasterID == "" {
		writeError(w, r, &service.ValidationError{Field: "masterId", Message: "cannot be empty"})
		return
	}

	res := h.svc.BulkAddToGroup(r.Context(), req.VersionIDs, req.MasterID)
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"errors":  emptyBulkErrors(res.Errors),
	})
}
