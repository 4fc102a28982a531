package repository_test

import (
	"context"
	"testing"

	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const eventWorkbookID = "event-workbook"

func newSubmissionRepo(store *fakeStore) *repository.SubmissionRepository {
	return repository.NewSubmissionRepository(store, zap.NewNop())
}

func TestSubmissionRepository_FindByStudent(t *testing.T) {
	store := newFakeStore()
	store.seed(eventWorkbookID, repository.WorksheetProjects, projectHeaders,
		projectRow("Asha Kumari", "Sign Language Translator", "https://example.com/report"),
		projectRow("Ravi Shetty", "Crop Disease Detector", ""),
	)
	repo := newSubmissionRepo(store)

	sub, err := repo.FindByStudent(context.Background(), eventWorkbookID, "Ravi Shetty")
	require.NoError(t, err)
	assert.Equal(t, 3, sub.Row)
	assert.Equal(t, "Crop Disease Detector", sub.ProjectTitle)

	_, err = repo.FindByStudent(context.Background(), eventWorkbookID, "Nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubmissionRepository_Upsert_AppendsWhenNew(t *testing.T) {
	store := newFakeStore()
	store.seed(eventWorkbookID, repository.WorksheetProjects, projectHeaders,
		projectRow("Ravi Shetty", "Crop Disease Detector", ""),
	)
	repo := newSubmissionRepo(store)

	created, err := repo.Upsert(context.Background(), eventWorkbookID, &domain.Submission{
		StudentFullName: "Asha Kumari",
		College:         "PES University",
		Branch:          "CSE",
		ProjectTitle:    "Sign Language Translator",
		Description:     "Realtime translation",
		ReportLink:      "https://example.com/report",
	})
	require.NoError(t, err)
	assert.True(t, created)

	require.Len(t, store.appends, 1)
	assert.Empty(t, store.rowUpdates)

	row := store.appends[0].Values
	require.Len(t, row, 20)
	assert.Equal(t, "Asha Kumari", row[0])
	assert.Equal(t, "Sign Language Translator", row[3])
	assert.Equal(t, "https://example.com/report", row[5])
	// Reserved bookkeeping columns are written empty, never dropped.
	assert.Equal(t, "", row[19])
}

func TestSubmissionRepository_Upsert_UpdatesExistingRow(t *testing.T) {
	store := newFakeStore()
	store.seed(eventWorkbookID, repository.WorksheetProjects, projectHeaders,
		projectRow("Asha Kumari", "Old Title", ""),
	)
	repo := newSubmissionRepo(store)

	created, err := repo.Upsert(context.Background(), eventWorkbookID, &domain.Submission{
		StudentFullName: "Asha Kumari",
		ProjectTitle:    "New Title",
	})
	require.NoError(t, err)
	assert.False(t, created)

	assert.Empty(t, store.appends)
	require.Len(t, store.rowUpdates, 1)
	assert.Equal(t, 2, store.rowUpdates[0].Row)
	assert.Equal(t, "New Title", store.rowUpdates[0].Values[3])
}

func TestEvaluationRepository_List_SkipsBadScores(t *testing.T) {
	store := newFakeStore()
	store.seed(eventWorkbookID, repository.WorksheetEvaluation,
		[]string{"Candidate", "ProjectTitle", "AverageScore", "Evaluator"},
		map[string]string{"Candidate": "Asha Kumari", "ProjectTitle": "Sign Language Translator", "AverageScore": "86.25", "Evaluator": "lead.r"},
		map[string]string{"Candidate": "Ravi Shetty", "ProjectTitle": "Crop Disease Detector", "AverageScore": "not-a-number", "Evaluator": "lead.r"},
	)
	repo := repository.NewEvaluationRepository(store, zap.NewNop())

	evals, err := repo.List(context.Background(), eventWorkbookID)
	require.NoError(t, err)
	require.Len(t, evals, 1)
	assert.Equal(t, "Asha Kumari", evals[0].Candidate)
	assert.Equal(t, 86.25, evals[0].AverageScore)
}

func TestEvaluationRepository_Append(t *testing.T) {
	store := newFakeStore()
	repo := repository.NewEvaluationRepository(store, zap.NewNop())

	err := repo.Append(context.Background(), eventWorkbookID, &domain.Evaluation{
		Candidate:    "Asha Kumari",
		ProjectTitle: "Sign Language Translator",
		AverageScore: 86.25,
		Evaluator:    "lead.r",
	})
	require.NoError(t, err)

	require.Len(t, store.appends, 1)
	assert.Equal(t, repository.WorksheetEvaluation, store.appends[0].Worksheet)
	assert.Equal(t, []interface{}{"Asha Kumari", "Sign Language Translator", 86.25, "lead.r"}, store.appends[0].Values)
}
