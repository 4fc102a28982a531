package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pragyanai/demotrack/internal/auth"
	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/repository"
)

// EnrollmentService implements student submissions against per-event
// workbooks.
type EnrollmentService struct {
	eventService   *EventService
	submissionRepo *repository.SubmissionRepository
	logger         *zap.Logger
}

func NewEnrollmentService(
	eventService *EventService,
	submissionRepo *repository.SubmissionRepository,
	logger *zap.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		eventService:   eventService,
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

// ListForEvent returns every submission in the event's workbook.
func (s *EnrollmentService) ListForEvent(ctx context.Context, eventName string) ([]domain.Submission, error) {
	event, err := s.eventService.Get(ctx, eventName)
	if err != nil {
		return nil, err
	}
	id, err := workbookID(event)
	if err != nil {
		return nil, err
	}

	subs, err := s.submissionRepo.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	for i := range subs {
		subs[i].EventName = event.Name
	}
	return subs, nil
}

// MySubmission returns the caller's submission for an event, or
// ErrNotFound when they have not enrolled.
func (s *EnrollmentService) MySubmission(ctx context.Context, eventName string, user *auth.UserContext) (*domain.Submission, error) {
	event, err := s.eventService.Get(ctx, eventName)
	if err != nil {
		return nil, err
	}
	id, err := workbookID(event)
	if err != nil {
		return nil, err
	}

	sub, err := s.submissionRepo.FindByStudent(ctx, id, user.FullName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up submission: %w", err)
	}
	sub.EventName = event.Name
	return sub, nil
}

// Enroll upserts the caller's submission. Only active events accept
// enrollment; identity fields come from the session, not the request.
func (s *EnrollmentService) Enroll(ctx context.Context, eventName string, user *auth.UserContext, req *domain.EnrollmentRequest) (created bool, err error) {
	event, err := s.eventService.Get(ctx, eventName)
	if err != nil {
		return false, err
	}
	if !event.IsActive() {
		return false, ErrEventNotActive
	}
	id, err := workbookID(event)
	if err != nil {
		return false, err
	}

	sub := &domain.Submission{
		StudentFullName:  user.FullName,
		College:          user.College,
		Branch:           user.Branch,
		ProjectTitle:     req.ProjectTitle,
		Description:      req.Description,
		ReportLink:       req.ReportLink,
		PresentationLink: req.PresentationLink,
		GitHubLink:       req.GitHubLink,
		YouTubeLink:      req.YouTubeLink,
		LinkedinPostLink: req.LinkedinPostLink,
	}

	created, err = s.submissionRepo.Upsert(ctx, id, sub)
	if err != nil {
		return false, fmt.Errorf("failed to save enrollment: %w", err)
	}

	s.logger.Info("enrollment saved",
		zap.String("event", eventName),
		zap.String("student", user.FullName),
		zap.Bool("created", created),
	)
	return created, nil
}
