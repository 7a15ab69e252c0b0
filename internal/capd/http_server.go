package capd

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/attendsim/capacity-core/pkg/config"
	"github.com/attendsim/capacity-core/pkg/logger"
)

const maxConfigPayloadBytes = 1 << 20

// HTTPServer serves the analysis API
type HTTPServer struct {
	mux      *http.ServeMux
	store    *Store
	executor *Executor
	metrics  *Metrics
}

// NewHTTPServer wires the API routes over the given store and executor.
// metrics may be nil, in which case /metrics is not served.
func NewHTTPServer(store *Store, executor *Executor, metrics *Metrics) *HTTPServer {
	s := &HTTPServer{
		mux:      http.NewServeMux(),
		store:    store,
		executor: executor,
		metrics:  metrics,
	}

	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/v1/analyses", s.handleAnalyses)
	s.mux.HandleFunc("/v1/analyses/", s.handleAnalysisByID)
	if metrics != nil {
		s.mux.Handle("/metrics", metrics.Handler())
	}

	return s
}

// Handler returns the server's root handler
func (s *HTTPServer) Handler() http.Handler {
	return s.mux
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleAnalyses handles /v1/analyses
func (s *HTTPServer) handleAnalyses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateAnalysis(w, r)
	case http.MethodGet:
		s.handleListAnalyses(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleCreateAnalysis accepts an analysis config as JSON (default) or YAML
// payload, stores it, and starts it asynchronously
func (s *HTTPServer) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxConfigPayloadBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var cfg *config.AnalysisConfig
	if isYAMLContentType(r.Header.Get("Content-Type")) {
		cfg, err = config.ParseYAML(body)
	} else {
		cfg, err = config.ParseJSON(body)
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.store.Create("", cfg)
	if err != nil {
		s.writeError(w, http.StatusConflict, err.Error())
		return
	}

	rec, err = s.executor.Start(rec.ID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("analysis created", "analysis_id", rec.ID, "target_concurrency", cfg.TargetConcurrency)
	s.writeJSON(w, http.StatusAccepted, rec)
}

func (s *HTTPServer) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"analyses": s.store.List(limit),
	})
}

// handleAnalysisByID handles /v1/analyses/{id}
func (s *HTTPServer) handleAnalysisByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/analyses/")
	if id == "" || strings.Contains(id, "/") {
		s.writeError(w, http.StatusBadRequest, "analysis ID is required")
		return
	}

	rec, ok := s.store.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "analysis not found: "+id)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func isYAMLContentType(ct string) bool {
	return strings.Contains(ct, "yaml")
}
