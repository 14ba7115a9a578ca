package jobs

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"hrms/internal/platform/querier"
)

type Run struct {
	ID          string     `json:"id"`
	JobType     string     `json:"jobType"`
	Status      string     `json:"status"`
	Details     []byte     `json:"details,omitempty"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type RunStore interface {
	StartRun(ctx context.Context, jobType string) (string, error)
	FinishRun(ctx context.Context, runID, status string, detailsJSON []byte) error
	ListRuns(ctx context.Context, jobType string, limit int) ([]Run, error)
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) StartRun(ctx context.Context, jobType string) (string, error) {
	runID := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
    INSERT INTO job_runs (id, job_type, status)
    VALUES ($1,$2,$3)
  `, runID, jobType, StatusRunning)
	if err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) FinishRun(ctx context.Context, runID, status string, detailsJSON []byte) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE job_runs
    SET status = $1, details = $2, completed_at = now()
    WHERE id = $3
  `, status, detailsJSON, runID)
	return err
}

func (s *Store) ListRuns(ctx context.Context, jobType string, limit int) ([]Run, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id::text, job_type, status, COALESCE(details::text, ''), started_at, completed_at
    FROM job_runs
    WHERE job_type = $1
    ORDER BY started_at DESC
    LIMIT $2
  `, jobType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		var details string
		if err := rows.Scan(&run.ID, &run.JobType, &run.Status, &details, &run.StartedAt, &run.CompletedAt); err != nil {
			return nil, err
		}
		if details != "" {
			run.Details = []byte(details)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// MemoryStore records runs in process.
type MemoryStore struct {
	mu   sync.Mutex
	runs map[string]Run
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]Run)}
}

func (m *MemoryStore) StartRun(_ context.Context, jobType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run := Run{ID: uuid.NewString(), JobType: jobType, Status: StatusRunning, StartedAt: time.Now().UTC()}
	m.runs[run.ID] = run
	return run.ID, nil
}

func (m *MemoryStore) FinishRun(_ context.Context, runID, status string, detailsJSON []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[runID]
	if !ok {
		return nil
	}
	now := time.Now().UTC()
	run.Status = status
	run.Details = detailsJSON
	run.CompletedAt = &now
	m.runs[runID] = run
	return nil
}

func (m *MemoryStore) ListRuns(_ context.Context, jobType string, limit int) ([]Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Run
	for _, run := range m.runs {
		if run.JobType == jobType {
			out = append(out, run)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
