package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/repository"
)

// ProjectService aggregates submissions across every approved event's
// workbook for the peer-learning hub. The aggregation fans out one sheet
// read per event; an unreadable workbook is skipped, never fatal. Results
// are cached with a TTL and refreshed in the background by a cron job.
type ProjectService struct {
	eventRepo      *repository.EventRepository
	submissionRepo *repository.SubmissionRepository
	concurrency    int
	ttl            time.Duration
	logger         *zap.Logger

	mu        sync.RWMutex
	projects  []domain.Submission
	refreshed time.Time
}

func NewProjectService(
	eventRepo *repository.EventRepository,
	submissionRepo *repository.SubmissionRepository,
	concurrency int,
	ttl time.Duration,
	logger *zap.Logger,
) *ProjectService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ProjectService{
		eventRepo:      eventRepo,
		submissionRepo: submissionRepo,
		concurrency:    concurrency,
		ttl:            ttl,
		logger:         logger,
	}
}

// All returns the cross-event project list, from cache when fresh.
func (s *ProjectService) All(ctx context.Context) ([]domain.Submission, error) {
	s.mu.RLock()
	// refreshed marks cache validity; an empty aggregation is still a
	// valid, cacheable result.
	if !s.refreshed.IsZero() && time.Since(s.refreshed) < s.ttl {
		projects := s.projects
		s.mu.RUnlock()
		return projects, nil
	}
	s.mu.RUnlock()

	return s.Refresh(ctx)
}

// Refresh reloads the aggregation and replaces the cache.
func (s *ProjectService) Refresh(ctx context.Context) ([]domain.Submission, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	type eventBatch struct {
		index int
		subs  []domain.Submission
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	batches := make(chan eventBatch, len(events))
	for i, event := range events {
		if !event.IsApproved() || event.SheetLink == "" {
			continue
		}
		i, event := i, event
		g.Go(func() error {
			id, err := workbookID(&event)
			if err != nil {
				s.logger.Warn("skipping event with bad sheet link",
					zap.String("event", event.Name), zap.Error(err))
				return nil
			}
			subs, err := s.submissionRepo.List(gctx, id)
			if err != nil {
				s.logger.Error("failed to load projects from event",
					zap.String("event", event.Name), zap.Error(err))
				return nil
			}
			for j := range subs {
				subs[j].EventName = event.Name
			}
			batches <- eventBatch{index: i, subs: subs}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(batches)

	// Keep event order stable across refreshes.
	ordered := make(map[int][]domain.Submission, len(events))
	for b := range batches {
		ordered[b.index] = b.subs
	}
	var projects []domain.Submission
	for i := range events {
		projects = append(projects, ordered[i]...)
	}

	s.mu.Lock()
	s.projects = projects
	s.refreshed = time.Now()
	s.mu.Unlock()

	s.logger.Info("project aggregation refreshed", zap.Int("projects", len(projects)))
	return projects, nil
}

// FindByTitle returns the first project matching the title, optionally
// narrowed to one event.
func (s *ProjectService) FindByTitle(ctx context.Context, title, eventName string) (*domain.Submission, error) {
	projects, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ProjectTitle != title {
			continue
		}
		if eventName != "" && projects[i].EventName != eventName {
			continue
		}
		return &projects[i], nil
	}
	return nil, ErrNotFound
}

// ForStudent returns a student's enrollments across all events.
func (s *ProjectService) ForStudent(ctx context.Context, fullName string) ([]domain.Submission, error) {
	projects, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	mine := projects[:0:0]
	for _, p := range projects {
		if p.StudentFullName == fullName {
			mine = append(mine, p)
		}
	}
	return mine, nil
}
