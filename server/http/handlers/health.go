package handlers

import (
	"encoding/json"
	"net/http"

	"drugmatch-service/internal/drugmatch/model"
	"drugmatch-service/internal/drugmatch/service"
)

// Health reports the loaded catalog. The server only starts once the catalog
// is loaded, so a response always means matching is available.
func Health(m *service.Matcher, ocrEnabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat := m.Catalog()
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(model.HealthResponse{
			Message:       "Eyedrops matcher running.",
			CatalogRows:   cat.Len(),
			NameColumn:    cat.NameColumn,
			CompanyColumn: cat.CompanyColumn,
			OCR:           ocrEnabled,
		})
	}
}
