// Package capd is the analysis daemon: an in-memory store of analysis
// records, an asynchronous executor around the verdict engine, and an HTTP
// JSON API over both.
package capd

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/attendsim/capacity-core/pkg/config"
	"github.com/attendsim/capacity-core/pkg/models"
	"github.com/attendsim/capacity-core/pkg/utils"
)

// AnalysisStatus tracks an analysis through its lifecycle
type AnalysisStatus string

const (
	StatusPending   AnalysisStatus = "pending"
	StatusRunning   AnalysisStatus = "running"
	StatusCompleted AnalysisStatus = "completed"
	StatusFailed    AnalysisStatus = "failed"
)

// AnalysisRecord is one stored analysis with its input and result
type AnalysisRecord struct {
	ID          string                     `json:"id"`
	Status      AnalysisStatus             `json:"status"`
	CreatedAt   time.Time                  `json:"created_at"`
	StartedAt   time.Time                  `json:"started_at,omitempty"`
	CompletedAt time.Time                  `json:"completed_at,omitempty"`
	Config      *config.AnalysisConfig     `json:"config"`
	Verdict     *models.ScalabilityVerdict `json:"verdict,omitempty"`
	Error       string                     `json:"error,omitempty"`
}

// Store is an in-memory analysis record store
type Store struct {
	mu      sync.RWMutex
	records map[string]*AnalysisRecord
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		records: make(map[string]*AnalysisRecord),
	}
}

// Create registers a new pending analysis. An empty id selects a generated one.
func (s *Store) Create(id string, cfg *config.AnalysisConfig) (*AnalysisRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = utils.GenerateAnalysisID()
	}
	if _, exists := s.records[id]; exists {
		return nil, fmt.Errorf("analysis already exists: %s", id)
	}

	rec := &AnalysisRecord{
		ID:        id,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
		Config:    cfg,
	}
	s.records[id] = rec
	return rec.clone(), nil
}

// Get returns the record for id, if present
func (s *Store) Get(id string) (*AnalysisRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, false
	}
	return rec.clone(), true
}

// List returns up to limit records, newest first
func (s *Store) List(limit int) []*AnalysisRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	out := make([]*AnalysisRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MarkRunning transitions a record to running
func (s *Store) MarkRunning(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return fmt.Errorf("analysis not found: %s", id)
	}
	rec.Status = StatusRunning
	rec.StartedAt = time.Now().UTC()
	return nil
}

// Complete stores a finished verdict on a record
func (s *Store) Complete(id string, verdict *models.ScalabilityVerdict) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return fmt.Errorf("analysis not found: %s", id)
	}
	rec.Status = StatusCompleted
	rec.CompletedAt = time.Now().UTC()
	rec.Verdict = verdict
	return nil
}

// Fail marks a record failed with the given cause
func (s *Store) Fail(id string, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return fmt.Errorf("analysis not found: %s", id)
	}
	rec.Status = StatusFailed
	rec.CompletedAt = time.Now().UTC()
	if cause != nil {
		rec.Error = cause.Error()
	}
	return nil
}

// clone copies a record so callers never share the store's mutable state
func (r *AnalysisRecord) clone() *AnalysisRecord {
	cp := *r
	return &cp
}
