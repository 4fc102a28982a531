package service_test

import (
	"context"
	"testing"

	"github.com/pragyanai/demotrack/internal/auth"
	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/repository"
	"github.com/pragyanai/demotrack/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvaluationService(store *fakeStore) *service.EvaluationService {
	eventSvc := newEventService(store, &fakeCopier{})
	subRepo := repository.NewSubmissionRepository(store, nopLogger)
	evalRepo := repository.NewEvaluationRepository(store, nopLogger)
	return service.NewEvaluationService(eventSvc, subRepo, evalRepo, nopLogger)
}

var evaluationHeaders = []string{"Candidate", "ProjectTitle", "AverageScore", "Evaluator"}

func TestEvaluationService_Evaluate(t *testing.T) {
	store := newFakeStore()
	store.seed(eventsSheetID, repository.WorksheetEvents, eventHeaders,
		eventRow("GenAI Demo Day", "Yes", "No", sheetURL("evt-1")),
		eventRow("Conducted Event", "Yes", "Yes", sheetURL("evt-2")),
	)
	store.seed("evt-1", repository.WorksheetProjects, projectHeaders,
		projectRow("Asha Kumari", "RAG Chatbot", ""),
	)
	svc := newEvaluationService(store)
	ctx := context.Background()
	lead := &auth.UserContext{UserName: "lead.p", FullName: "Lead Person", Role: domain.RoleLead}

	req := &domain.EvaluationRequest{
		Candidate:    "Asha Kumari",
		Presentation: 90,
		Technical:    85,
		Demo:         80,
		QA:           90,
	}
	eval, err := svc.Evaluate(ctx, "GenAI Demo Day", lead, req)
	require.NoError(t, err)
	assert.Equal(t, "Asha Kumari", eval.Candidate)
	assert.Equal(t, "RAG Chatbot", eval.ProjectTitle)
	assert.InDelta(t, 86.25, eval.AverageScore, 0.0001)
	assert.Equal(t, "lead.p", eval.Evaluator)

	require.Len(t, store.appends, 1)
	assert.Equal(t, repository.WorksheetEvaluation, store.appends[0].Worksheet)
	assert.Equal(t, "Asha Kumari", store.appends[0].Values[0])

	req.Candidate = "Nobody Here"
	_, err = svc.Evaluate(ctx, "GenAI Demo Day", lead, req)
	assert.ErrorIs(t, err, service.ErrCandidateNotFound)

	req.Candidate = "Asha Kumari"
	_, err = svc.Evaluate(ctx, "Conducted Event", lead, req)
	assert.ErrorIs(t, err, service.ErrEventNotActive)
}

func TestEvaluationService_ListForEvent(t *testing.T) {
	store := newFakeStore()
	store.seed(eventsSheetID, repository.WorksheetEvents, eventHeaders,
		eventRow("GenAI Demo Day", "Yes", "No", sheetURL("evt-1")),
	)
	store.seed("evt-1", repository.WorksheetEvaluation, evaluationHeaders,
		map[string]string{
			"Candidate": "Asha Kumari", "ProjectTitle": "RAG Chatbot",
			"AverageScore": "86.25", "Evaluator": "lead.p",
		},
	)
	svc := newEvaluationService(store)

	evals, err := svc.ListForEvent(context.Background(), "GenAI Demo Day")
	require.NoError(t, err)
	require.Len(t, evals, 1)
	assert.InDelta(t, 86.25, evals[0].AverageScore, 0.0001)
}
