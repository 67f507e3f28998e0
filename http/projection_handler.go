package http

import (
	"bytes"
	"log"
	"net/http"

	"mortgage-agent/domain"
	"mortgage-agent/export"
	"mortgage-agent/service"
)

type ProjectionHandler struct {
	service *service.ProjectionService
}

func NewProjectionHandler(service *service.ProjectionService) *ProjectionHandler {
	return &ProjectionHandler{service: service}
}

// Run computes and archives a projection. Scenarios that fail are reported
// inside the result; only invalid input fails the request.
func (h *ProjectionHandler) Run(w http.ResponseWriter, r *http.Request) {
	var input domain.ProjectionInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Run(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, result)
}

// Get returns an archived run. Expects the route to define {id}.
func (h *ProjectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, result)
}

// Export renders an archived run as CSV or as a text table.
func (h *ProjectionHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	view, err := export.ParseView(query.Get("view"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	switch format := query.Get("format"); format {
	case "", "csv":
		err = export.WriteCSV(&buf, result.Scenarios)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="projection-`+result.RunID+`.csv"`)
	case "table":
		err = export.WriteTable(&buf, result, view)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	default:
		http.Error(w, "unknown format "+format, http.StatusBadRequest)
		return
	}
	if err != nil {
		w.Header().Del("Content-Disposition")
		writeError(w, err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing export: %v", err)
	}
}
