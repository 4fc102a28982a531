package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/repository"
)

// DashboardService computes the admin dashboard headline numbers.
type DashboardService struct {
	userRepo       *repository.UserRepository
	eventRepo      *repository.EventRepository
	submissionRepo *repository.SubmissionRepository
	concurrency    int
	logger         *zap.Logger
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	eventRepo *repository.EventRepository,
	submissionRepo *repository.SubmissionRepository,
	concurrency int,
	logger *zap.Logger,
) *DashboardService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &DashboardService{
		userRepo:       userRepo,
		eventRepo:      eventRepo,
		submissionRepo: submissionRepo,
		concurrency:    concurrency,
		logger:         logger,
	}
}

// Stats counts approved students, events, and enrollments across all
// event workbooks. Unreadable workbooks are skipped so one broken link
// never blanks the dashboard.
func (s *DashboardService) Stats(ctx context.Context) (*domain.StatsDTO, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	approvedStudents := 0
	for _, u := range users {
		if u.IsApproved() {
			approvedStudents++
		}
	}

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	var totalEnrollments int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, event := range events {
		if event.SheetLink == "" {
			continue
		}
		event := event
		g.Go(func() error {
			id, err := workbookID(&event)
			if err != nil {
				return nil
			}
			subs, err := s.submissionRepo.List(gctx, id)
			if err != nil {
				s.logger.Error("could not count projects for event",
					zap.String("event", event.Name), zap.Error(err))
				return nil
			}
			atomic.AddInt64(&totalEnrollments, int64(len(subs)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.StatsDTO{
		ApprovedStudents: approvedStudents,
		TotalEvents:      len(events),
		TotalEnrollments: int(totalEnrollments),
	}, nil
}
