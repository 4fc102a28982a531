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

const usersSheetID = "users-sheet"

func newUserRepo(store *fakeStore) *repository.UserRepository {
	return repository.NewUserRepository(store, usersSheetID, zap.NewNop())
}

func TestUserRepository_List(t *testing.T) {
	store := newFakeStore()
	store.seed(usersSheetID, repository.WorksheetUser, userHeaders,
		userRow("Asha Kumari", "9876543210", "asha.k", "hash1", "Approved", "Student"),
		userRow("Ravi Shetty", "9876500000", "ravi.s", "hash2", "NotApproved", "Student"),
	)

	users, err := newUserRepo(store).List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, 2, users[0].Row)
	assert.Equal(t, "Asha Kumari", users[0].FullName)
	assert.Equal(t, "asha.k", users[0].UserName)
	assert.Equal(t, domain.StatusApproved, users[0].Status)
	assert.Equal(t, domain.RoleStudent, users[0].Role)
	assert.True(t, users[0].IsApproved())

	assert.Equal(t, 3, users[1].Row)
	assert.False(t, users[1].IsApproved())
}

func TestUserRepository_List_MissingColumns(t *testing.T) {
	store := newFakeStore()
	store.seed(usersSheetID, repository.WorksheetUser,
		[]string{"FullName", "UserName"},
		map[string]string{"FullName": "Asha Kumari", "UserName": "asha.k"},
	)

	_, err := newUserRepo(store).List(context.Background())
	assert.ErrorIs(t, err, repository.ErrMissingColumns)
}

func TestUserRepository_FindByIdentifier(t *testing.T) {
	store := newFakeStore()
	store.seed(usersSheetID, repository.WorksheetUser, userHeaders,
		userRow("Asha Kumari", "9876543210", "asha.k", "hash1", "Approved", "Student"),
	)
	repo := newUserRepo(store)

	byName, err := repo.FindByIdentifier(context.Background(), "asha.k")
	require.NoError(t, err)
	assert.Equal(t, "Asha Kumari", byName.FullName)

	byPhone, err := repo.FindByIdentifier(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "asha.k", byPhone.UserName)

	_, err = repo.FindByIdentifier(context.Background(), "unknown")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_Exists(t *testing.T) {
	store := newFakeStore()
	store.seed(usersSheetID, repository.WorksheetUser, userHeaders,
		userRow("Asha Kumari", "9876543210", "asha.k", "hash1", "Approved", "Student"),
	)
	repo := newUserRepo(store)

	taken, err := repo.Exists(context.Background(), "asha.k", "0000000000")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.Exists(context.Background(), "someone.else", "9876543210")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.Exists(context.Background(), "someone.else", "0000000000")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUserRepository_Create_RowShape(t *testing.T) {
	store := newFakeStore()
	repo := newUserRepo(store)

	user := &domain.User{
		FullName:      "Asha Kumari",
		College:       "PES University",
		Branch:        "CSE",
		RollNo:        "PES123",
		YearOfPassing: "2025",
		PhoneLogin:    "9876543210",
		PhoneWhatsapp: "9876543210",
		UserName:      "asha.k",
		PasswordHash:  "hash1",
		Status:        domain.StatusNotApproved,
		Role:          domain.RoleStudent,
	}
	require.NoError(t, repo.Create(context.Background(), user))

	require.Len(t, store.appends, 1)
	row := store.appends[0]
	assert.Equal(t, usersSheetID, row.SpreadsheetID)
	assert.Equal(t, repository.WorksheetUser, row.Worksheet)
	require.Len(t, row.Values, 12)

	// Timestamp gets filled in when absent.
	assert.NotEmpty(t, row.Values[0])
	assert.Equal(t, "Asha Kumari", row.Values[1])
	assert.Equal(t, "asha.k", row.Values[8])
	assert.Equal(t, "hash1", row.Values[9])
	assert.Equal(t, "NotApproved", row.Values[10])
	assert.Equal(t, "Student", row.Values[11])
}

func TestUserRepository_SetStatusAndRole_Cells(t *testing.T) {
	store := newFakeStore()
	repo := newUserRepo(store)

	require.NoError(t, repo.SetStatus(context.Background(), 5, domain.StatusApproved))
	require.NoError(t, repo.SetRole(context.Background(), 5, domain.RoleLead))

	require.Len(t, store.cellUpdates, 2)
	assert.Equal(t, cellWrite{usersSheetID, repository.WorksheetUser, 5, 11, "Approved"}, store.cellUpdates[0])
	assert.Equal(t, cellWrite{usersSheetID, repository.WorksheetUser, 5, 12, "Lead"}, store.cellUpdates[1])
}
