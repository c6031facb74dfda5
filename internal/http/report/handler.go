package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/webitplay/depobill/internal/report"
)

type Handler struct {
	svc       *report.Service
	exportDir string
}

func NewHandler(svc *report.Service, exportDir string) *Handler {
	return &Handler{svc: svc, exportDir: exportDir}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{year}", h.yearly)
}

func (h *Handler) yearly(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}

	rep, err := h.svc.Yearly(r.Context(), year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if format := r.URL.Query().Get("format"); format == "csv" {
		path, err := report.ExportCSV(rep, h.exportDir, "report-"+strconv.Itoa(year))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		http.ServeFile(w, r, path)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(rep); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
