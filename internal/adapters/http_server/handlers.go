package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"travel_advisor/internal/domain"
)

// Recommender is the query side the handlers depend on.
type Recommender interface {
	Recommend(ctx context.Context, p domain.PreferenceSet, topN int) ([]domain.Recommendation, error)
}

type Handlers struct {
	Q    Recommender
	TopN int
}

type problem struct {
	Type   string   `json:"type"`
	Title  string   `json:"title"`
	Status int      `json:"status"`
	Detail string   `json:"detail,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

const maxBodyBytes = 1 << 16

// recommendRequest is the preference intake. Only presence and the budget
// range are enforced; unrecognized tag values are ranked as non-matching.
type recommendRequest struct {
	Budget      int    `json:"budget" validate:"required,gte=500,lte=20000"`
	Duration    string `json:"duration" validate:"required,max=64"`
	TravelStyle string `json:"travel_style" validate:"required,max=64"`
	Environment string `json:"environment" validate:"required,max=64"`
	GroupType   string `json:"group_type" validate:"required,max=64"`
}

func (r recommendRequest) preferences() domain.PreferenceSet {
	return domain.PreferenceSet{
		Budget:      r.Budget,
		Duration:    domain.Duration(strings.TrimSpace(r.Duration)),
		TravelStyle: domain.TravelStyle(strings.TrimSpace(r.TravelStyle)),
		Environment: domain.Environment(strings.TrimSpace(r.Environment)),
		GroupType:   domain.GroupType(strings.TrimSpace(r.GroupType)),
	}
}

type recommendResponse struct {
	Items []domain.Recommendation `json:"items"`
}

type optionsResponse struct {
	TravelStyles []domain.TravelStyle `json:"travel_styles"`
	Environments []domain.Environment `json:"environments"`
	Durations    []domain.Duration    `json:"durations"`
	GroupTypes   []domain.GroupType   `json:"group_types"`
	BudgetMin    int                  `json:"budget_min"`
	BudgetMax    int                  `json:"budget_max"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Group(func(r chi.Router) {
		r.Use(s.rateLimit())
		r.Get("/v1/options", h.options)
		r.Post("/v1/recommendations", h.recommend)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string, errs ...string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	p := problem{Type: "about:blank", Title: title, Status: status, Detail: detail, Errors: errs}
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, optionsResponse{
		TravelStyles: domain.TravelStyles,
		Environments: domain.Environments,
		Durations:    domain.Durations,
		GroupTypes:   domain.GroupTypes,
		BudgetMin:    500,
		BudgetMax:    20000,
	})
}

func (h *Handlers) recommend(w http.ResponseWriter, r *http.Request) {
	topN := h.TopN
	if ls := r.URL.Query().Get("limit"); ls != "" {
		n, err := strconv.Atoi(ls)
		if err != nil || n <= 0 || n > 20 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 20")
			return
		}
		topN = n
	}

	var req recommendRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be a JSON preference set")
		return
	}
	if msgs := validateStruct(req); len(msgs) > 0 {
		writeProblem(w, http.StatusBadRequest, "Validation failed", "one or more preferences are missing or out of range", msgs...)
		return
	}

	recs, err := h.Q.Recommend(r.Context(), req.preferences(), topN)
	switch {
	case errors.Is(err, domain.ErrNoMatchFound):
		writeProblem(w, http.StatusNotFound, "No Match Found",
			"We could not find a destination for these preferences. Try changing them!")
		return
	case errors.Is(err, domain.ErrEmptyCatalog):
		writeProblem(w, http.StatusServiceUnavailable, "Catalog Unavailable",
			"No destinations are available yet. Run the seeder.")
		return
	case err != nil:
		log.Error().Err(err).Msg("recommend failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	writeJSON(w, r, recommendResponse{Items: recs})
}
