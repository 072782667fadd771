package router

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/evindia/evbot/internal/catalog"
	"github.com/evindia/evbot/internal/conversation"
	"github.com/evindia/evbot/internal/dialogue"
	"github.com/evindia/evbot/internal/llm"
	"github.com/evindia/evbot/pkg/logging"
)

// handler serves the read-only catalog API.
type handler struct {
	catalog   *catalog.Service
	store     conversation.Store
	assistant *llm.Assistant
	logger    *logging.Logger
}

func newHandler(cfg *Config) *handler {
	if cfg.Catalog == nil {
		panic("router: catalog service cannot be nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &handler{
		catalog:   cfg.Catalog,
		store:     cfg.Store,
		assistant: cfg.Assistant,
		logger:    logger,
	}
}

// HealthResponse reports liveness plus per-dependency readiness.
type HealthResponse struct {
	Status   string          `json:"status"`
	Services map[string]bool `json:"services"`
}

// Health returns the service status.
// GET /health
func (h *handler) Health(w http.ResponseWriter, r *http.Request) {
	_, err := h.catalog.AllScooters(r.Context())
	resp := HealthResponse{
		Status: "ok",
		Services: map[string]bool{
			"catalog":       err == nil,
			"conversations": h.store != nil,
			"llm":           h.assistant.Enabled(),
		},
	}
	respondJSON(w, http.StatusOK, resp)
}

// ListScooters returns the full catalog.
// GET /api/scooters
func (h *handler) ListScooters(w http.ResponseWriter, r *http.Request) {
	specs, err := h.catalog.AllScooters(r.Context())
	if err != nil {
		h.logger.Error("scooter listing failed", "error", err)
		jsonError(w, "failed to list scooters", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, specs)
}

// GetScooter returns one model by its slug ("ola-electric-s1-pro").
// GET /api/scooters/{slug}
func (h *handler) GetScooter(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		jsonError(w, "missing slug", http.StatusBadRequest)
		return
	}

	specs, err := h.catalog.AllScooters(r.Context())
	if err != nil {
		h.logger.Error("scooter lookup failed", "slug", slug, "error", err)
		jsonError(w, "failed to look up scooter", http.StatusInternalServerError)
		return
	}
	for _, sc := range specs {
		if sc.Slug() == strings.ToLower(slug) {
			respondJSON(w, http.StatusOK, sc)
			return
		}
	}
	jsonError(w, "scooter not found", http.StatusNotFound)
}

// DealerAvailabilityResponse is the pincode-scoped dealer listing.
type DealerAvailabilityResponse struct {
	Pincode string                  `json:"pincode"`
	Nearby  bool                    `json:"nearby"`
	Dealers []catalog.DealerListing `json:"dealers"`
	Models  []string                `json:"models"`
}

// ListDealers returns every dealer, or the availability view for a pincode.
// GET /api/dealers?pincode=400058
func (h *handler) ListDealers(w http.ResponseWriter, r *http.Request) {
	pincode := r.URL.Query().Get("pincode")
	if pincode == "" {
		dealers, err := h.catalog.AllDealers(r.Context())
		if err != nil {
			h.logger.Error("dealer listing failed", "error", err)
			jsonError(w, "failed to list dealers", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, dealers)
		return
	}

	res := h.catalog.Availability(r.Context(), pincode)
	switch res.Outcome {
	case catalog.AvailabilityError:
		jsonError(w, "failed to check availability", http.StatusInternalServerError)
	case catalog.AvailabilityNone:
		jsonError(w, "no dealers found for pincode", http.StatusNotFound)
	default:
		respondJSON(w, http.StatusOK, DealerAvailabilityResponse{
			Pincode: res.Pincode,
			Nearby:  res.Outcome == catalog.AvailabilityNearby,
			Dealers: res.Dealers,
			Models:  res.Models,
		})
	}
}

// FAQResponse is one pre-computed answer, without the matching internals.
type FAQResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// ListFAQs returns the FAQ table.
// GET /api/faqs
func (h *handler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	entries := dialogue.FAQs()
	out := make([]FAQResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, FAQResponse{Question: e.Question, Answer: e.Answer, Category: e.Category})
	}
	respondJSON(w, http.StatusOK, out)
}

// SubsidyResponse is one state incentive scheme.
type SubsidyResponse struct {
	State          string   `json:"state"`
	Amount         int      `json:"amount"`
	Eligibility    string   `json:"eligibility"`
	Documents      []string `json:"documents"`
	ProcessingTime string   `json:"processingTime"`
	AdditionalInfo string   `json:"additionalInfo,omitempty"`
}

// ListSubsidies returns every known state scheme.
// GET /api/subsidies
func (h *handler) ListSubsidies(w http.ResponseWriter, r *http.Request) {
	entries := dialogue.Subsidies()
	out := make([]SubsidyResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, subsidyResponse(e))
	}
	respondJSON(w, http.StatusOK, out)
}

// GetSubsidy returns one state's scheme, matched case-insensitively.
// GET /api/subsidies/{state}
func (h *handler) GetSubsidy(w http.ResponseWriter, r *http.Request) {
	state := chi.URLParam(r, "state")
	entry, ok := dialogue.LookupSubsidy(state)
	if !ok {
		jsonError(w, "no subsidy information for state", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, subsidyResponse(entry))
}

func subsidyResponse(e dialogue.SubsidyEntry) SubsidyResponse {
	return SubsidyResponse{
		State:          e.State,
		Amount:         e.Amount,
		Eligibility:    e.Eligibility,
		Documents:      e.Documents,
		ProcessingTime: e.ProcessingTime,
		AdditionalInfo: e.AdditionalInfo,
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	respondJSON(w, status, errorResponse{Error: msg})
}
