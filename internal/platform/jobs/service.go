package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"hrms/internal/domain/gratuity"
)

const (
	JobGratuityAccrual = "gratuity_accrual"

	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"

	systemActor = "system"
)

// Observer receives the outcome of every job run.
type Observer interface {
	ObserveJob(jobType, status string, duration time.Duration)
}

type Service struct {
	Runs     RunStore
	Gratuity *gratuity.Service
	Interval time.Duration
	Observer Observer
	queue    chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(runs RunStore, gratuitySvc *gratuity.Service, interval time.Duration) *Service {
	return &Service{
		Runs:     runs,
		Gratuity: gratuitySvc,
		Interval: interval,
		queue:    make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Interval > 0 {
		go s.scheduleAccruals(ctx, s.Interval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) bool {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		slog.Warn("job queue full", "jobType", jobType)
		return false
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

// RunGratuityAccrual stores a monthly calculation for every employed staff
// member and records the run.
func (s *Service) RunGratuityAccrual(ctx context.Context, actor string) (gratuity.BatchResult, error) {
	if actor == "" {
		actor = systemActor
	}
	details, err := s.RunNow(ctx, JobGratuityAccrual, func(ctx context.Context) (any, error) {
		return s.Gratuity.CalculateAll(ctx, actor)
	})
	result, _ := details.(gratuity.BatchResult)
	return result, err
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	started := time.Now()
	runID, err := s.Runs.StartRun(ctx, j.Type)
	if err != nil {
		slog.Warn("job run insert failed", "jobType", j.Type, "err", err)
	}

	details, err := j.Run(ctx)
	status := StatusCompleted
	if err != nil {
		status = StatusFailed
	}
	if s.Observer != nil {
		s.Observer.ObserveJob(j.Type, status, time.Since(started))
	}

	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if updErr := s.Runs.FinishRun(ctx, runID, status, detailsJSON); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) scheduleAccruals(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobGratuityAccrual, func(ctx context.Context) (any, error) {
				return s.Gratuity.CalculateAll(ctx, systemActor)
			})
		}
	}
}
