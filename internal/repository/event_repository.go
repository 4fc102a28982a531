package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/sheets"
)

// Header names exactly as they appear in the Project_Demos_List worksheet.
const (
	colDemoDate       = "DemoDate"
	colEventName      = "ProjectDemo_Event_Name"
	colEventDomain    = "Domain"
	colEventDesc      = "BriefDescription"
	colApprovedStatus = "Approved_Status"
	colConductedState = "Conducted_State"
	colWhatsappLink   = "WhatsappLink"
	colSheetLink      = "Project_Demo_Sheet_Link"
)

// 1-based column positions for cell writes (fixed by the sheet layout).
const (
	eventDomainColumn   = 3
	eventDescColumn     = 4
	eventApprovedColumn = 6
	eventWhatsappColumn = 8
	eventSheetColumn    = 9
	eventRowWidth       = 18
)

// EventRepository reads and writes the events workbook.
type EventRepository struct {
	store         SheetStore
	spreadsheetID string
	logger        *zap.Logger
}

func NewEventRepository(store SheetStore, spreadsheetID string, logger *zap.Logger) *EventRepository {
	return &EventRepository{store: store, spreadsheetID: spreadsheetID, logger: logger}
}

// List returns every event row.
func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	records, headers, err := r.store.Records(ctx, r.spreadsheetID, WorksheetEvents)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	if !hasColumns(headers, colEventName, colApprovedStatus, colConductedState) {
		r.logger.Error("events worksheet header mismatch", zap.Strings("headers", headers))
		return nil, fmt.Errorf("%w: Project_Demos_List worksheet", ErrMissingColumns)
	}

	events := make([]domain.Event, 0, len(records))
	for _, rec := range records {
		events = append(events, recordToEvent(rec))
	}
	return events, nil
}

// ListActive returns events open for enrollment.
func (r *EventRepository) ListActive(ctx context.Context) ([]domain.Event, error) {
	events, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	active := events[:0:0]
	for _, e := range events {
		if e.IsActive() {
			active = append(active, e)
		}
	}
	return active, nil
}

// FindByName returns the event row with the given name.
func (r *EventRepository) FindByName(ctx context.Context, name string) (*domain.Event, error) {
	events, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].Name == name {
			return &events[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a stage-1 event row: unapproved, unconducted, no links.
func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	row := make([]interface{}, eventRowWidth)
	for i := range row {
		row[i] = ""
	}
	row[0] = event.DemoDate
	row[1] = event.Name
	row[2] = event.Domain
	row[3] = event.Description
	row[5] = "No" // Approved_Status
	row[6] = "No" // Conducted_State
	return r.store.AppendRow(ctx, r.spreadsheetID, WorksheetEvents, row)
}

// UpdateDetails overwrites the lead-editable cells: domain and description.
func (r *EventRepository) UpdateDetails(ctx context.Context, row int, eventDomain, description string) error {
	if err := r.store.UpdateCell(ctx, r.spreadsheetID, WorksheetEvents, row, eventDomainColumn, eventDomain); err != nil {
		return err
	}
	return r.store.UpdateCell(ctx, r.spreadsheetID, WorksheetEvents, row, eventDescColumn, description)
}

// Approve performs the admin's stage-2 finalization in place.
func (r *EventRepository) Approve(ctx context.Context, row int, whatsappLink, sheetLink string) error {
	if err := r.store.UpdateCell(ctx, r.spreadsheetID, WorksheetEvents, row, eventApprovedColumn, "Yes"); err != nil {
		return err
	}
	if err := r.store.UpdateCell(ctx, r.spreadsheetID, WorksheetEvents, row, eventWhatsappColumn, whatsappLink); err != nil {
		return err
	}
	return r.store.UpdateCell(ctx, r.spreadsheetID, WorksheetEvents, row, eventSheetColumn, sheetLink)
}

func recordToEvent(rec sheets.Record) domain.Event {
	return domain.Event{
		Row:            rec.Row,
		DemoDate:       rec.Get(colDemoDate),
		Name:           rec.Get(colEventName),
		Domain:         rec.Get(colEventDomain),
		Description:    rec.Get(colEventDesc),
		ApprovedStatus: rec.Get(colApprovedStatus),
		ConductedState: rec.Get(colConductedState),
		WhatsappLink:   rec.Get(colWhatsappLink),
		SheetLink:      rec.Get(colSheetLink),
	}
}
