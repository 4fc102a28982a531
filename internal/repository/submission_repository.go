package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/sheets"
)

// Header names exactly as they appear in an event workbook's Project_List
// worksheet.
const (
	colStudentFullName  = "StudentFullName"
	colProjectTitle     = "ProjectTitle"
	colDescription      = "Description"
	colReportLink       = "ReportLink"
	colPresentationLink = "PresentationLink"
	colGitHubLink       = "GitHubLink"
	colYouTubeLink      = "YouTubeLink"
	colLinkedinPostLink = "Linkedin_Project_Post_Link"
)

// Project_List rows span columns A..T; columns past the links are
// reserved for the event team's manual bookkeeping.
const submissionRowWidth = 20

// SubmissionRepository reads and writes Project_List worksheets. Unlike
// the other repositories it is not bound to one workbook: each approved
// event links its own spreadsheet.
type SubmissionRepository struct {
	store  SheetStore
	logger *zap.Logger
}

func NewSubmissionRepository(store SheetStore, logger *zap.Logger) *SubmissionRepository {
	return &SubmissionRepository{store: store, logger: logger}
}

// List returns every submission row in the given event workbook.
func (r *SubmissionRepository) List(ctx context.Context, spreadsheetID string) ([]domain.Submission, error) {
	records, headers, err := r.store.Records(ctx, spreadsheetID, WorksheetProjects)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	if !hasColumns(headers, colStudentFullName) {
		r.logger.Error("Project_List worksheet header mismatch",
			zap.String("spreadsheet_id", spreadsheetID),
			zap.Strings("headers", headers),
		)
		return nil, ErrMissingColumns
	}

	subs := make([]domain.Submission, 0, len(records))
	for _, rec := range records {
		subs = append(subs, recordToSubmission(rec))
	}
	return subs, nil
}

// FindByStudent returns the student's submission row, keyed by full name
// the way the event workbooks have always been keyed.
func (r *SubmissionRepository) FindByStudent(ctx context.Context, spreadsheetID, studentFullName string) (*domain.Submission, error) {
	subs, err := r.List(ctx, spreadsheetID)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if subs[i].StudentFullName == studentFullName {
			return &subs[i], nil
		}
	}
	return nil, ErrNotFound
}

// Upsert updates the student's existing row or appends a new one.
func (r *SubmissionRepository) Upsert(ctx context.Context, spreadsheetID string, sub *domain.Submission) (created bool, err error) {
	row := submissionToRow(sub)

	existing, err := r.FindByStudent(ctx, spreadsheetID, sub.StudentFullName)
	switch {
	case err == nil:
		return false, r.store.UpdateRow(ctx, spreadsheetID, WorksheetProjects, existing.Row, row)
	case err == ErrNotFound:
		return true, r.store.AppendRow(ctx, spreadsheetID, WorksheetProjects, row)
	default:
		return false, err
	}
}

func submissionToRow(sub *domain.Submission) []interface{} {
	row := make([]interface{}, submissionRowWidth)
	for i := range row {
		row[i] = ""
	}
	row[0] = sub.StudentFullName
	row[1] = sub.College
	row[2] = sub.Branch
	row[3] = sub.ProjectTitle
	row[4] = sub.Description
	row[5] = sub.ReportLink
	row[6] = sub.PresentationLink
	row[7] = sub.GitHubLink
	row[8] = sub.YouTubeLink
	row[9] = sub.LinkedinPostLink
	return row
}

func recordToSubmission(rec sheets.Record) domain.Submission {
	return domain.Submission{
		Row:              rec.Row,
		StudentFullName:  rec.Get(colStudentFullName),
		College:          rec.Get(colCollegeName),
		Branch:           rec.Get(colBranch),
		ProjectTitle:     rec.Get(colProjectTitle),
		Description:      rec.Get(colDescription),
		ReportLink:       rec.Get(colReportLink),
		PresentationLink: rec.Get(colPresentationLink),
		GitHubLink:       rec.Get(colGitHubLink),
		YouTubeLink:      rec.Get(colYouTubeLink),
		LinkedinPostLink: rec.Get(colLinkedinPostLink),
	}
}
