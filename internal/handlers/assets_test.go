package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"adarchive/internal/service"
	"adarchive/internal/service/mocks"
	"adarchive/internal/storage"
)

// withURLParam injects a chi route parameter the way the router would.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func sampleView(id string) service.AssetView {
	return service.AssetView{
		AssetView: storage.AssetView{
			AssetRecord: storage.AssetRecord{
				ID:               id,
				OriginalFileName: "ad.jpg",
				RelPath:          id + ".jpg",
				MimeType:         "image/jpeg",
				SizeBytes:        1024,
				CreatedAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
				VersionNumber:    1,
			},
			AccumulatedShares: 150,
			VersionCount:      2,
		},
	}
}

func TestAssetHandlerList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAssetService(ctrl)
	handler := NewAssetHandler(mockSvc)

	var gotFilters storage.Filters
	var gotSort storage.Sort
	mockSvc.EXPECT().
		ListAssets(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f storage.Filters, s storage.Sort) ([]service.AssetView, error) {
			gotFilters, gotSort = f, s
			return []service.AssetView{sampleView("a1")}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/api/assets?year=2024&advertiser=Acme&sharesMin=10&sortBy=shareCount&sortDir=desc", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if gotFilters.Year == nil || *gotFilters.Year != 2024 {
		t.Errorf("expected year filter 2024, got %v", gotFilters.Year)
	}
	if gotFilters.Advertiser == nil || *gotFilters.Advertiser != "Acme" {
		t.Errorf("expected advertiser filter, got %v", gotFilters.Advertiser)
	}
	if gotFilters.SharesMin == nil || *gotFilters.SharesMin != 10 {
		t.Errorf("expected sharesMin 10, got %v", gotFilters.SharesMin)
	}
	if gotSort.Key != storage.SortShareCount || !gotSort.Desc {
		t.Errorf("expected shareCount desc, got %+v", gotSort)
	}

	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body) != 1 || body[0]["id"] != "a1" {
		t.Errorf("unexpected body: %v", body)
	}
	if body[0]["accumulatedShares"] != float64(150) {
		t.Errorf("expected accumulatedShares 150, got %v", body[0]["accumulatedShares"])
	}
	// Unset metadata surfaces as explicit nulls
	if year, present := body[0]["year"]; !present || year != nil {
		t.Errorf("expected year null, got %v (present %v)", year, present)
	}
}

func TestAssetHandlerListBadQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"non-integer year", "?year=abc"},
		{"non-integer sharesMin", "?sharesMin=ten"},
		{"non-integer sharesMax", "?sharesMax=1.5x"},
		{"unknown sort key", "?sortBy=sizeBytes"},
		{"bad sort direction", "?sortDir=sideways"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			// No service call expected for a rejected query
			handler := NewAssetHandler(mocks.NewMockAssetService(ctrl))

			req := httptest.NewRequest(http.MethodGet, "/api/assets"+tt.query, nil)
			rec := httptest.NewRecorder()
			handler.List(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestAssetHandlerGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAssetService(ctrl)
	handler := NewAssetHandler(mockSvc)

	view := &service.VersionView{AssetRecord: sampleView("a1").AssetRecord}
	mockSvc.EXPECT().
		GetAsset(gomock.Any(), "a1").
		Return(view, map[string]string{"campaign": "summer"}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/assets/a1", nil), "id", "a1")
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Success bool `json:"success"`
		Asset   struct {
			ID           string            `json:"id"`
			CustomFields map[string]string `json:"customFields"`
		} `json:"asset"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Success || body.Asset.ID != "a1" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
	if body.Asset.CustomFields["campaign"] != "summer" {
		t.Errorf("expected custom fields in response, got %v", body.Asset.CustomFields)
	}
}

func TestAssetHandlerGetNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAssetService(ctrl)
	handler := NewAssetHandler(mockSvc)

	mockSvc.EXPECT().GetAsset(gomock.Any(), "missing").Return(nil, nil, service.ErrNotFound)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/assets/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Success || body.Error == "" {
		t.Errorf("expected failure body, got %s", rec.Body.String())
	}
}

func TestAssetHandlerCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAssetService(ctrl)
	handler := NewAssetHandler(mockSvc)

	view := sampleView("a1")
	mockSvc.EXPECT().CreateAsset(gomock.Any(), "/tmp/ad.jpg").Return(&view, nil)

	body := bytes.NewBufferString(`{"sourceFilePath": "/tmp/ad.jpg"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/assets", body)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAssetHandlerCreateRejections(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		setup func(m *mocks.MockAssetService)
	}{
		{
			name:  "invalid JSON",
			body:  `{"sourceFilePath": `,
			setup: func(m *mocks.MockAssetService) {},
		},
		{
			name: "validation error from service",
			body: `{"sourceFilePath": ""}`,
			setup: func(m *mocks.MockAssetService) {
				m.EXPECT().CreateAsset(gomock.Any(), "").
					Return(nil, &service.ValidationError{Field: "sourceFilePath", Message: "cannot be empty"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := mocks.NewMockAssetService(ctrl)
			tt.setup(mockSvc)
			handler := NewAssetHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/assets", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			handler.Create(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestAssetHandlerUpdateTriState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAssetService(ctrl)
	handler := NewAssetHandler(mockSvc)

	var got service.Updates
	mockSvc.EXPECT().
		UpdateAsset(gomock.Any(), "a1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, u service.Updates) error {
			got = u
			return nil
		})

	// year cleared with an explicit null, shareCount set, advertiser absent
	body := bytes.NewBufferString(`{"updates": {"year": null, "shareCount": 42, "customFields": {"campaign": "summer", "old": null}}}`)
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/assets/a1", body), "id", "a1")
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if !got.Fields.Year.Set || got.Fields.Year.Value != nil {
		t.Errorf("expected year cleared, got %+v", got.Fields.Year)
	}
	if !got.Fields.ShareCount.Set || got.Fields.ShareCount.Value == nil || *got.Fields.ShareCount.Value != 42 {
		t.Errorf("expected shareCount 42, got %+v", got.Fields.ShareCount)
	}
	if got.Fields.Advertiser.Set {
		t.Errorf("expected absent advertiser to stay untouched, got %+v", got.Fields.Advertiser)
	}
	if v, ok := got.CustomFields["campaign"]; !ok || v == nil || *v != "summer" {
		t.Errorf("expected campaign upsert, got %v", got.CustomFields)
	}
	if v, ok := got.CustomFields["old"]; !ok || v != nil {
		t.Errorf("expected old cleared via null, got %v", got.CustomFields)
	}
}

func TestAssetHandlerUpdateRejections(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{"updates": `},
		{"fileName cleared", `{"updates": {"fileName": null}}`},
		{"fileName wrong type", `{"updates": {"fileName": 5}}`},
		{"year wrong type", `{"updates": {"year": "abc"}}`},
		{"unsupported field", `{"updates": {"sizeBytes": 10}}`},
		{"immutable masterId", `{"updates": {"masterId": "other"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			handler := NewAssetHandler(mocks.NewMockAssetService(ctrl))

			req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/assets/a1", bytes.NewBufferString(tt.body)), "id", "a1")
			rec := httptest.NewRecorder()
			handler.Update(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAssetHandlerDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAssetService(ctrl)
	handler := NewAssetHandler(mockSvc)

	mockSvc.EXPECT().DeleteAsset(gomock.Any(), "a1").Return(nil)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/assets/a1", nil), "id", "a1")
	rec := httptest.NewRecorder()
	handler.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAssetHandlerBulkUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAssetService(ctrl)
	handler := NewAssetHandler(mockSvc)

	mockSvc.EXPECT().
		BulkUpdate(gomock.Any(), []string{"a1", "a2"}, gomock.Any()).
		Return(service.BulkUpdateResult{
			UpdatedCount: 1,
			Errors:       []service.BulkError{{ID: "a2", Error: "not found"}},
		})

	body := bytes.NewBufferString(`{"ids": ["a1", "a2"], "updates": {"year": 2024}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/assets/bulk-update", body)
	rec := httptest.NewRecorder()
	handler.BulkUpdate(rec, req)

	// Partial failure is still an overall 200 with per-id errors
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Success      bool                `json:"success"`
		UpdatedCount int                 `json:"updatedCount"`
		Errors       []service.BulkError `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !out.Success || out.UpdatedCount != 1 || len(out.Errors) != 1 {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestAssetHandlerBulkDeleteEmptyErrorsArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAssetService(ctrl)
	handler := NewAssetHandler(mockSvc)

	mockSvc.EXPECT().
		BulkDelete(gomock.Any(), []string{"a1"}).
		Return(service.BulkDeleteResult{DeletedCount: 1})

	body := bytes.NewBufferString(`{"ids": ["a1"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/assets/bulk-delete", body)
	rec := httptest.NewRecorder()
	handler.BulkDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// errors is always an array, never null
	if string(out["errors"]) != "[]" {
		t.Errorf("expected empty errors array, got %s", out["errors"])
	}
}

func TestAssetHandlerImport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAssetService(ctrl)
	handler := NewAssetHandler(mockSvc)

	mockSvc.EXPECT().
		BulkImport(gomock.Any(), []string{"/tmp/a.jpg", "/tmp/bad.jpg"}).
		Return(service.BulkImportResult{
			ImportedCount: 1,
			Assets:        []service.AssetView{sampleView("a1")},
			Errors:        []service.ImportError{{File: "/tmp/bad.jpg", Error: "unsupported file type"}},
		})

	body := bytes.NewBufferString(`{"sourcePaths": ["/tmp/a.jpg", "/tmp/bad.jpg"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/assets/import", body)
	rec := httptest.NewRecorder()
	handler.Import(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Success       bool                  `json:"success"`
		ImportedCount int                   `json:"importedCount"`
		Errors        []service.ImportError `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !out.Success || out.ImportedCount != 1 || len(out.Errors) != 1 {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestAssetHandlerImportEmptyPaths(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	handler := NewAssetHandler(mocks.NewMockAssetService(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/api/assets/import", bytes.NewBufferString(`{"sourcePaths": []}`))
	rec := httptest.NewRecorder()
	handler.Import(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
