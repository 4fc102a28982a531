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

// EvaluationService implements peer scoring of project demos.
type EvaluationService struct {
	eventService   *EventService
	submissionRepo *repository.SubmissionRepository
	evaluationRepo *repository.EvaluationRepository
	logger         *zap.Logger
}

func NewEvaluationService(
	eventService *EventService,
	submissionRepo *repository.SubmissionRepository,
	evaluationRepo *repository.EvaluationRepository,
	logger *zap.Logger,
) *EvaluationService {
	return &EvaluationService{
		eventService:   eventService,
		submissionRepo: submissionRepo,
		evaluationRepo: evaluationRepo,
		logger:         logger,
	}
}

// Evaluate averages the four rubric scores and appends the result to the
// event workbook's evaluation worksheet.
func (s *EvaluationService) Evaluate(ctx context.Context, eventName string, evaluator *auth.UserContext, req *domain.EvaluationRequest) (*domain.Evaluation, error) {
	event, err := s.eventService.Get(ctx, eventName)
	if err != nil {
		return nil, err
	}
	if !event.IsActive() {
		return nil, ErrEventNotActive
	}
	id, err := workbookID(event)
	if err != nil {
		return nil, err
	}

	candidate, err := s.submissionRepo.FindByStudent(ctx, id, req.Candidate)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to look up candidate: %w", err)
	}

	avg := float64(req.Presentation+req.Technical+req.Demo+req.QA) / 4

	eval := &domain.Evaluation{
		Candidate:    candidate.StudentFullName,
		ProjectTitle: candidate.ProjectTitle,
		AverageScore: avg,
		Evaluator:    evaluator.UserName,
	}
	if err := s.evaluationRepo.Append(ctx, id, eval); err != nil {
		return nil, fmt.Errorf("failed to record evaluation: %w", err)
	}

	s.logger.Info("evaluation recorded",
		zap.String("event", eventName),
		zap.String("candidate", eval.Candidate),
		zap.String("evaluator", eval.Evaluator),
		zap.Float64("average", avg),
	)
	return eval, nil
}

// ListForEvent returns every evaluation in the event's workbook.
func (s *EvaluationService) ListForEvent(ctx context.Context, eventName string) ([]domain.Evaluation, error) {
	event, err := s.eventService.Get(ctx, eventName)
	if err != nil {
		return nil, err
	}
	id, err := workbookID(event)
	if err != nil {
		return nil, err
	}

	evals, err := s.evaluationRepo.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	return evals, nil
}
