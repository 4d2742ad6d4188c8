package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"bcnav/internal/corpus"
	"bcnav/internal/logging"
	"bcnav/internal/navigator"
	"bcnav/internal/ref"
	"bcnav/internal/store"
)

// APIResponse is the standard response wrapper.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *APIMeta  `json:"meta,omitempty"`
}

// APIError carries a machine-readable code and a human message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Total     int    `json:"total,omitempty"`
	Timestamp string `json:"timestamp"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := APIResponse{
		Success: true,
		Data:    data,
		Meta:    &APIMeta{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
		Meta:    &APIMeta{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error("failed to encode error response", "error", err)
	}
}

// navigateRequest is the POST /api/navigate body.
type navigateRequest struct {
	Concept    string   `json:"concept"`
	Book       string   `json:"book,omitempty"`
	Traditions []string `json:"traditions,omitempty"`
	MaxResults int      `json:"max_results,omitempty"`
	MaxHops    int      `json:"max_hops,omitempty"`
	MinWeight  float64  `json:"min_weight,omitempty"`
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		return
	}

	opts := navigator.Options{
		MaxHops:       req.MaxHops,
		MinEdgeWeight: req.MinWeight,
	}
	opts.Book = req.Book
	opts.MaxResults = req.MaxResults
	for _, t := range req.Traditions {
		opts.Traditions = append(opts.Traditions, corpus.Tradition(t))
	}

	result, err := s.nav.Navigate(r.Context(), req.Concept, opts)
	if err != nil {
		status, code := errorStatus(err)
		s.hub.Broadcast(ProgressMessage{Type: "error", Message: err.Error()})
		respondError(w, status, code, err.Error())
		return
	}

	s.hub.Broadcast(ProgressMessage{
		Type:    "complete",
		QueryID: result.QueryID,
		Message: req.Concept,
	})
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("ref")
	if input == "" {
		respondError(w, http.StatusBadRequest, "MISSING_REF", "ref query parameter is required")
		return
	}
	rng, err := ref.Resolve(input)
	if err != nil {
		status, code := errorStatus(err)
		respondError(w, status, code, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, rng)
}

func (s *Server) handleVerse(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("ref")
	if input == "" {
		respondError(w, http.StatusBadRequest, "MISSING_REF", "ref query parameter is required")
		return
	}
	c, err := ref.ResolveCoordinate(input)
	if err != nil {
		status, code := errorStatus(err)
		respondError(w, status, code, err.Error())
		return
	}

	if tradition := r.URL.Query().Get("tradition"); tradition != "" {
		witness, err := s.store.Text(r.Context(), c, corpus.Tradition(tradition))
		if err != nil {
			status, code := errorStatus(err)
			respondError(w, status, code, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, []corpus.Witness{witness})
		return
	}

	witnesses, err := s.store.Witnesses(r.Context(), c)
	if err != nil {
		status, code := errorStatus(err)
		respondError(w, status, code, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, witnesses)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scope := corpus.SearchScope{
		Book:      q.Get("book"),
		Tradition: corpus.Tradition(q.Get("tradition")),
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a non-negative integer")
			return
		}
		scope.MaxResults = n
	}

	coords, err := s.store.Search(r.Context(), q.Get("q"), scope)
	if err != nil {
		status, code := errorStatus(err)
		respondError(w, status, code, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, coords)
}

// statusPayload is the GET /api/status body.
type statusPayload struct {
	Stats   store.Stats       `json:"stats"`
	Imports []store.ImportLog `json:"imports,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	imports, err := s.store.ImportLogs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, statusPayload{Stats: stats, Imports: imports})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
