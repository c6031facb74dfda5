package invoice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/webitplay/depobill/internal/invoice"
	"github.com/webitplay/depobill/internal/pdf"
	"github.com/webitplay/depobill/internal/settings"
)

type Handler struct {
	svc      *invoice.Service
	settings *settings.Service
	renderer *pdf.Renderer
}

func NewHandler(svc *invoice.Service, settingsSvc *settings.Service, renderer *pdf.Renderer) *Handler {
	return &Handler{svc: svc, settings: settingsSvc, renderer: renderer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type createInvoiceRequest struct {
	Client      invoice.ClientInfo `json:"client"`
	JobType     invoice.JobType    `json:"job_type"`
	Canceled    bool               `json:"canceled"`
	Description string             `json:"description"`
	SetupStart  string             `json:"setup_start"`
	DepoEnd     string             `json:"depo_end"`
	LunchBreak  float64            `json:"lunch_break"`
	Expenses    []invoice.Expense  `json:"expenses"`
	Notes       string             `json:"notes"`
	Subtitle    string             `json:"subtitle"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg, err := h.settings.Load()
	if err != nil {
		if errors.Is(err, settings.ErrNotConfigured) {
			http.Error(w, "settings are not configured", http.StatusConflict)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	inv, err := h.svc.Create(r.Context(), cfg, invoice.CreateParams{
		Client:      req.Client,
		JobType:     req.JobType,
		Canceled:    req.Canceled,
		Description: req.Description,
		SetupStart:  req.SetupStart,
		DepoEnd:     req.DepoEnd,
		LunchBreak:  req.LunchBreak,
		Expenses:    req.Expenses,
		Notes:       req.Notes,
		Subtitle:    req.Subtitle,
	})
	if err != nil {
		switch {
		case errors.Is(err, invoice.ErrBadClock),
			errors.Is(err, invoice.ErrNonPositiveDuration),
			errors.Is(err, invoice.ErrNegativeAmount),
			errors.Is(err, invoice.ErrNegativeHours):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, settings.ErrRatesUnset),
			errors.Is(err, settings.ErrCancelHoursUnset):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	// The invoice is committed at this point; a render failure leaves
	// pdf_path empty but never unwinds the creation.
	pdfPath, err := h.renderer.Render(inv, cfg.Freelancer)
	if err != nil {
		slog.Error("failed to render invoice PDF", "number", inv.Number, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(inv, pdfPath)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := invoice.ListFilter{}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	invs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(invs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv, "")); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
