package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pragyanai/demotrack/internal/domain"
)

// AdminRepository reads the "Admin" worksheet. Admin accounts are managed
// directly in the sheet; the portal never writes to it.
type AdminRepository struct {
	store         SheetStore
	spreadsheetID string
	logger        *zap.Logger
}

func NewAdminRepository(store SheetStore, spreadsheetID string, logger *zap.Logger) *AdminRepository {
	return &AdminRepository{store: store, spreadsheetID: spreadsheetID, logger: logger}
}

// FindByUserName returns the admin row for a username.
func (r *AdminRepository) FindByUserName(ctx context.Context, userName string) (*domain.Admin, error) {
	records, headers, err := r.store.Records(ctx, r.spreadsheetID, WorksheetAdmin)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		r.logger.Error("admin lookup on empty Admin worksheet")
		return nil, ErrNotFound
	}
	if !hasColumns(headers, colUserName, colPassword) {
		r.logger.Error("Admin worksheet header mismatch", zap.Strings("headers", headers))
		return nil, fmt.Errorf("%w: Admin worksheet", ErrMissingColumns)
	}

	for _, rec := range records {
		if rec.Get(colUserName) == userName {
			return &domain.Admin{
				UserName: rec.Get(colUserName),
				Password: rec.Get(colPassword),
			}, nil
		}
	}
	return nil, ErrNotFound
}
