package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/rag"
)

// ReportAnswerer is the RAG pipeline surface the QA service needs.
// *rag.Pipeline satisfies it; tests substitute fakes.
type ReportAnswerer interface {
	Ask(ctx context.Context, reportURL, question string) (*rag.Answer, error)
}

// QAService answers questions about a project's report document.
type QAService struct {
	projectService *ProjectService
	pipeline       ReportAnswerer
	logger         *zap.Logger
}

func NewQAService(projectService *ProjectService, pipeline ReportAnswerer, logger *zap.Logger) *QAService {
	return &QAService{
		projectService: projectService,
		pipeline:       pipeline,
		logger:         logger,
	}
}

// Ask resolves the project's report link and runs the question through
// the RAG pipeline.
func (s *QAService) Ask(ctx context.Context, req *domain.QARequest) (*domain.QAResponse, error) {
	if s.pipeline == nil {
		return nil, ErrQADisabled
	}

	project, err := s.projectService.FindByTitle(ctx, req.ProjectTitle, req.EventName)
	if err != nil {
		return nil, err
	}
	if project.ReportLink == "" {
		return nil, ErrNoReportLink
	}

	answer, err := s.pipeline.Ask(ctx, project.ReportLink, req.Question)
	if err != nil {
		s.logger.Error("report question answering failed",
			zap.String("project", req.ProjectTitle),
			zap.String("report_url", project.ReportLink),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to answer question: %w", err)
	}

	return &domain.QAResponse{
		Answer:  answer.Text,
		Sources: answer.Sources,
	}, nil
}
