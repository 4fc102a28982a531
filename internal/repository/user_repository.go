package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/sheets"
)

// Header names exactly as they appear in the deployed User worksheet.
const (
	colTimestamp     = "Timestamp"
	colFullName      = "FullName"
	colCollegeName   = "CollegeName"
	colBranch        = "Branch"
	colRollNo        = "RollNO(UniversityRegNo)"
	colYearOfPassing = "YearofPassing_Passed"
	colPhoneLogin    = "Phone(login)"
	colPhoneWhatsapp = "Phone(Whatsapp)"
	colUserName      = "UserName"
	colPassword      = "Password"
	colStatus        = "Status(Approved/NotApproved)"
	colRole          = "Role(Student/Lead)"
)

// 1-based column positions for cell writes (fixed by the sheet layout).
const (
	userStatusColumn = 11
	userRoleColumn   = 12
	userRowWidth     = 12
)

// UserRepository reads and writes the "User" worksheet.
type UserRepository struct {
	store         SheetStore
	spreadsheetID string
	logger        *zap.Logger
}

func NewUserRepository(store SheetStore, spreadsheetID string, logger *zap.Logger) *UserRepository {
	return &UserRepository{store: store, spreadsheetID: spreadsheetID, logger: logger}
}

// List returns every user row.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	records, headers, err := r.store.Records(ctx, r.spreadsheetID, WorksheetUser)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	if !hasColumns(headers, colUserName, colPhoneLogin, colPassword, colStatus) {
		r.logger.Error("User worksheet header mismatch", zap.Strings("headers", headers))
		return nil, fmt.Errorf("%w: User worksheet", ErrMissingColumns)
	}

	users := make([]domain.User, 0, len(records))
	for _, rec := range records {
		users = append(users, recordToUser(rec))
	}
	return users, nil
}

// FindByIdentifier matches on username or login phone, the two login
// identifiers the portal accepts.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].UserName == identifier || users[i].PhoneLogin == identifier {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// FindByUserName matches on username only.
func (r *UserRepository) FindByUserName(ctx context.Context, userName string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].UserName == userName {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// Exists reports whether the username or login phone is already taken.
func (r *UserRepository) Exists(ctx context.Context, userName, phoneLogin string) (bool, error) {
	users, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for i := range users {
		if users[i].UserName == userName || users[i].PhoneLogin == phoneLogin {
			return true, nil
		}
	}
	return false, nil
}

// Create appends a new user row. Timestamp format matches the rows the
// original deployment wrote.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.RegisteredAt == "" {
		user.RegisteredAt = time.Now().Format("2006-01-02 15:04:05")
	}
	row := []interface{}{
		user.RegisteredAt,
		user.FullName,
		user.College,
		user.Branch,
		user.RollNo,
		user.YearOfPassing,
		user.PhoneLogin,
		user.PhoneWhatsapp,
		user.UserName,
		user.PasswordHash,
		string(user.Status),
		string(user.Role),
	}
	if len(row) != userRowWidth {
		return fmt.Errorf("user row width mismatch: %d", len(row))
	}
	return r.store.AppendRow(ctx, r.spreadsheetID, WorksheetUser, row)
}

// SetStatus overwrites the approval status cell of a user row.
func (r *UserRepository) SetStatus(ctx context.Context, row int, status domain.UserStatus) error {
	return r.store.UpdateCell(ctx, r.spreadsheetID, WorksheetUser, row, userStatusColumn, string(status))
}

// SetRole overwrites the role cell of a user row.
func (r *UserRepository) SetRole(ctx context.Context, row int, role domain.Role) error {
	return r.store.UpdateCell(ctx, r.spreadsheetID, WorksheetUser, row, userRoleColumn, string(role))
}

func recordToUser(rec sheets.Record) domain.User {
	return domain.User{
		Row:           rec.Row,
		RegisteredAt:  rec.Get(colTimestamp),
		FullName:      rec.Get(colFullName),
		College:       rec.Get(colCollegeName),
		Branch:        rec.Get(colBranch),
		RollNo:        rec.Get(colRollNo),
		YearOfPassing: rec.Get(colYearOfPassing),
		PhoneLogin:    rec.Get(colPhoneLogin),
		PhoneWhatsapp: rec.Get(colPhoneWhatsapp),
		UserName:      rec.Get(colUserName),
		PasswordHash:  rec.Get(colPassword),
		Status:        domain.UserStatus(rec.Get(colStatus)),
		Role:          domain.Role(rec.Get(colRole)),
	}
}
