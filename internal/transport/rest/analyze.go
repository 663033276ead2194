package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/openaac/pictoapi/internal/domain"
)

// Resolver is the resolution pipeline surface the handler needs.
type Resolver interface {
	ResolvePhrase(ctx context.Context, phrase, language string) ([]domain.Outcome, error)
	Options(ctx context.Context, word, language string) ([]domain.Outcome, error)
}

// AnalyzeHandler serves the phrase analysis endpoints.
type AnalyzeHandler struct {
	resolver Resolver
	log      *slog.Logger
}

func NewAnalyzeHandler(resolver Resolver, log *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{resolver: resolver, log: log}
}

type phraseRequest struct {
	Phrase string `json:"phrase"`
}

type wordRequest struct {
	Word string `json:"word"`
}

// pictogramResponse is one entry of the analysis result. Resolved tokens
// carry id and url; unresolved ones carry error instead.
type pictogramResponse struct {
	Word  string `json:"word"`
	ID    string `json:"id,omitempty"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

// ProcessPhrase handles POST /api/v1/analyze/process-phrase.
// The optional language query parameter selects the pictogram language.
func (h *AnalyzeHandler) ProcessPhrase(w http.ResponseWriter, r *http.Request) {
	var req phraseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Phrase == "" {
		writeError(w, http.StatusBadRequest, "phrase is required")
		return
	}

	language := r.URL.Query().Get("language")
	outcomes, err := h.resolver.ResolvePhrase(r.Context(), req.Phrase, language)
	if err != nil {
		h.log.ErrorContext(r.Context(), "process phrase failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toResponses(outcomes))
}

// GetOptions handles POST /api/v1/analyze/get-options.
func (h *AnalyzeHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Word == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}

	language := r.URL.Query().Get("language")
	outcomes, err := h.resolver.Options(r.Context(), req.Word, language)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.ErrorContext(r.Context(), "get options failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toResponses(outcomes))
}

func toResponses(outcomes []domain.Outcome) []pictogramResponse {
	out := make([]pictogramResponse, 0, len(outcomes))
	for _, o := range outcomes {
		resp := pictogramResponse{Word: o.Word}
		if o.Resolved() {
			resp.ID = o.ID
			resp.URL = o.URL
		} else {
			resp.Error = o.Err.Error()
		}
		out = append(out, resp)
	}
	return out
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
