// Package repository maps worksheet rows to domain records. Reads are
// header-driven (the sheets are hand-edited and column order has drifted
// before); writes are positional full-width rows so reserved columns stay
// aligned.
package repository

import (
	"context"
	"errors"

	"github.com/pragyanai/demotrack/internal/sheets"
)

// SheetStore is the slice of the sheets client the repositories need.
// *sheets.Client satisfies it; tests substitute fakes.
type SheetStore interface {
	Records(ctx context.Context, spreadsheetID, worksheet string) ([]sheets.Record, []string, error)
	AppendRow(ctx context.Context, spreadsheetID, worksheet string, row []interface{}) error
	UpdateRow(ctx context.Context, spreadsheetID, worksheet string, rowIndex int, row []interface{}) error
	UpdateCell(ctx context.Context, spreadsheetID, worksheet string, rowIndex, colIndex int, value string) error
}

// Worksheet names fixed by the deployed workbooks.
const (
	WorksheetUser       = "User"
	WorksheetAdmin      = "Admin"
	WorksheetEvents     = "Project_Demos_List"
	WorksheetProjects   = "Project_List"
	WorksheetEvaluation = "ProjectEvaluation"
)

var (
	// ErrNotFound is returned when no row matches
	ErrNotFound = errors.New("record not found")
	// ErrMissingColumns is returned when a worksheet's header row lacks
	// columns the portal depends on
	ErrMissingColumns = errors.New("worksheet is missing required columns")
)

// hasColumns reports whether every required header is present.
func hasColumns(headers []string, required ...string) bool {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	for _, r := range required {
		if !present[r] {
			return false
		}
	}
	return true
}
