package repository

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/pragyanai/demotrack/internal/domain"
)

// Header names in an event workbook's ProjectEvaluation worksheet.
const (
	colCandidate    = "Candidate"
	colEvalTitle    = "ProjectTitle"
	colAverageScore = "AverageScore"
	colEvaluator    = "Evaluator"
)

// EvaluationRepository appends and lists peer-evaluation rows in event
// workbooks.
type EvaluationRepository struct {
	store  SheetStore
	logger *zap.Logger
}

func NewEvaluationRepository(store SheetStore, logger *zap.Logger) *EvaluationRepository {
	return &EvaluationRepository{store: store, logger: logger}
}

// Append records an evaluation. Rows are append-only; re-evaluations show
// up as additional rows.
func (r *EvaluationRepository) Append(ctx context.Context, spreadsheetID string, eval *domain.Evaluation) error {
	row := []interface{}{
		eval.Candidate,
		eval.ProjectTitle,
		eval.AverageScore,
		eval.Evaluator,
	}
	return r.store.AppendRow(ctx, spreadsheetID, WorksheetEvaluation, row)
}

// List returns every evaluation row in the given event workbook.
func (r *EvaluationRepository) List(ctx context.Context, spreadsheetID string) ([]domain.Evaluation, error) {
	records, _, err := r.store.Records(ctx, spreadsheetID, WorksheetEvaluation)
	if err != nil {
		return nil, err
	}

	evals := make([]domain.Evaluation, 0, len(records))
	for _, rec := range records {
		score, parseErr := strconv.ParseFloat(rec.Get(colAverageScore), 64)
		if parseErr != nil {
			r.logger.Warn("skipping evaluation row with unparseable score",
				zap.String("spreadsheet_id", spreadsheetID),
				zap.Int("row", rec.Row),
				zap.String("value", rec.Get(colAverageScore)),
			)
			continue
		}
		evals = append(evals, domain.Evaluation{
			Candidate:    rec.Get(colCandidate),
			ProjectTitle: rec.Get(colEvalTitle),
			AverageScore: score,
			Evaluator:    rec.Get(colEvaluator),
		})
	}
	return evals, nil
}
