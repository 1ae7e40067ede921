package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"cardslip/internal/domain/models"
	repo "cardslip/internal/repository/sheets"
)

// Snapshot is one immutable read of the catalog sheet: the header row
// followed by the data rows, every cell already stringified.
type Snapshot struct {
	Headers   []string
	Rows      [][]string
	FetchedAt time.Time
}

// Service answers catalog queries against a cached sheet snapshot.
type Service struct {
	repo       repo.Repository
	sheetRange string
	logger     *zap.Logger

	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewService wires a new catalog service instance.
func NewService(repository repo.Repository, sheetRange string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, sheetRange: sheetRange, logger: logger}
}

// Search runs the query against the latest snapshot, fetching one first
// if the service has none yet. The empty query is a caller error, not a
// catalog error.
func (s *Service) Search(ctx context.Context, query string) ([]models.Card, error) {
	if query == "" {
		return nil, models.NewValidationError("search query is required")
	}

	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	return Search(*snap, query)
}

// Refresh re-reads the sheet and swaps the cached snapshot wholesale.
// Overlapping refreshes are last-write-wins.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	values, err := s.repo.ReadRange(ctx, s.sheetRange)
	if err != nil {
		return nil, fmt.Errorf("read catalog range %s: %w", s.sheetRange, err)
	}

	snap := buildSnapshot(values)

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	s.logger.Info("catalog snapshot refreshed", zap.Int("rows", len(snap.Rows)))
	return snap, nil
}

func (s *Service) currentSnapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()

	if snap != nil {
		return snap, nil
	}
	return s.Refresh(ctx)
}

func buildSnapshot(values [][]interface{}) *Snapshot {
	snap := &Snapshot{FetchedAt: time.Now()}
	if len(values) == 0 {
		return snap
	}

	snap.Headers = stringRow(values[0])
	snap.Rows = make([][]string, 0, len(values)-1)
	for _, row := range values[1:] {
		snap.Rows = append(snap.Rows, stringRow(row))
	}
	return snap
}
