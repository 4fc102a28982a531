package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/repository"
	"github.com/pragyanai/demotrack/internal/sheets"
)

// SheetCopier copies the event template workbook. *sheets.Client
// satisfies it; tests substitute fakes.
type SheetCopier interface {
	CopySpreadsheet(ctx context.Context, templateID, title string) (id, url string, err error)
}

// EventService implements the event lifecycle: lead stage-1 creation,
// lead edits, and admin stage-2 approval.
type EventService struct {
	eventRepo  *repository.EventRepository
	copier     SheetCopier
	templateID string
	logger     *zap.Logger
}

func NewEventService(
	eventRepo *repository.EventRepository,
	copier SheetCopier,
	templateID string,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		eventRepo:  eventRepo,
		copier:     copier,
		templateID: templateID,
		logger:     logger,
	}
}

// List returns all events.
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.eventRepo.List(ctx)
}

// ListActive returns events open for enrollment.
func (s *EventService) ListActive(ctx context.Context) ([]domain.Event, error) {
	return s.eventRepo.ListActive(ctx)
}

// Get returns one event by name.
func (s *EventService) Get(ctx context.Context, name string) (*domain.Event, error) {
	event, err := s.eventRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up event: %w", err)
	}
	return event, nil
}

// Create performs a lead's stage-1 event submission. The row lands
// unapproved; an admin links a workbook and approves it later.
func (s *EventService) Create(ctx context.Context, creator string, req *domain.CreateEventRequest) error {
	if _, err := s.eventRepo.FindByName(ctx, req.Name); err == nil {
		return fmt.Errorf("%w: event %q already exists", ErrConflict, req.Name)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to check existing events: %w", err)
	}

	event := &domain.Event{
		DemoDate:    req.DemoDate,
		Name:        req.Name,
		Domain:      req.Domain,
		Description: req.Description,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.Info("event submitted for admin review",
		zap.String("event", req.Name),
		zap.String("created_by", creator),
	)
	return nil
}

// UpdateDetails saves a lead's edits to the descriptive fields. Links and
// status stay admin-owned.
func (s *EventService) UpdateDetails(ctx context.Context, name string, req *domain.UpdateEventRequest) error {
	event, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := s.eventRepo.UpdateDetails(ctx, event.Row, req.Domain, req.Description); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	s.logger.Info("event details updated", zap.String("event", name))
	return nil
}

// CreateSheet copies the template workbook for an event and returns the
// new sheet's ID and URL. The caller still has to approve the event with
// the returned link.
func (s *EventService) CreateSheet(ctx context.Context, name string) (*domain.SheetCreatedResponse, error) {
	if _, err := s.Get(ctx, name); err != nil {
		return nil, err
	}

	id, url, err := s.copier.CopySpreadsheet(ctx, s.templateID, fmt.Sprintf("Event - %s", name))
	if err != nil {
		return nil, fmt.Errorf("failed to create event sheet: %w", err)
	}
	return &domain.SheetCreatedResponse{SpreadsheetID: id, SheetLink: url}, nil
}

// Approve performs the admin's stage-2 finalization: the sheet link is
// mandatory before an event can go live.
func (s *EventService) Approve(ctx context.Context, name string, req *domain.ApproveEventRequest) error {
	if _, err := sheets.SpreadsheetIDFromURL(req.SheetLink); err != nil {
		return fmt.Errorf("%w: %v", ErrNoSheetLink, err)
	}

	event, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := s.eventRepo.Approve(ctx, event.Row, req.WhatsappLink, req.SheetLink); err != nil {
		return fmt.Errorf("failed to approve event: %w", err)
	}

	s.logger.Info("event approved", zap.String("event", name))
	return nil
}

// workbookID resolves an event's linked spreadsheet ID, enforcing that a
// link exists.
func workbookID(event *domain.Event) (string, error) {
	if event.SheetLink == "" {
		return "", ErrNoSheetLink
	}
	id, err := sheets.SpreadsheetIDFromURL(event.SheetLink)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoSheetLink, err)
	}
	return id, nil
}
