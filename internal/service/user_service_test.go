package service_test

import (
	"context"
	"testing"

	"github.com/pragyanai/demotrack/internal/repository"
	"github.com/pragyanai/demotrack/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(store *fakeStore) *service.UserService {
	return service.NewUserService(repository.NewUserRepository(store, usersSheetID, nopLogger), nopLogger)
}

func TestUserService_PendingApprovedLeads(t *testing.T) {
	store := newFakeStore()
	store.seed(usersSheetID, repository.WorksheetUser, userHeaders,
		userRow("Asha Kumari", "9876543210", "asha.k", "h", "Approved", "Student"),
		userRow("Ravi Shetty", "9876500000", "ravi.s", "h", "NotApproved", "Student"),
		userRow("Lead Person", "9876511111", "lead.p", "h", "Approved", "Lead"),
	)
	svc := newUserService(store)
	ctx := context.Background()

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "ravi.s", pending[0].UserName)

	approved, err := svc.Approved(ctx)
	require.NoError(t, err)
	assert.Len(t, approved, 2)

	leads, err := svc.Leads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "lead.p", leads[0].UserName)
}

func TestUserService_Approve_Batch(t *testing.T) {
	store := newFakeStore()
	store.seed(usersSheetID, repository.WorksheetUser, userHeaders,
		userRow("Asha Kumari", "9876543210", "asha.k", "h", "Approved", "Student"),
		userRow("Ravi Shetty", "9876500000", "ravi.s", "h", "NotApproved", "Student"),
	)
	svc := newUserService(store)

	approved, skipped, err := svc.Approve(context.Background(), []string{"ravi.s", "asha.k", "ghost"})
	require.NoError(t, err)

	assert.Equal(t, []string{"ravi.s", "asha.k"}, approved)
	assert.Equal(t, []string{"ghost"}, skipped)

	require.Len(t, store.cellUpdates, 2)
	assert.Equal(t, 3, store.cellUpdates[0].Row)
	assert.Equal(t, 11, store.cellUpdates[0].Col)
	assert.Equal(t, "Approved", store.cellUpdates[0].Value)
	assert.Equal(t, 2, store.cellUpdates[1].Row)
}

func TestUserService_Promote(t *testing.T) {
	store := newFakeStore()
	store.seed(usersSheetID, repository.WorksheetUser, userHeaders,
		userRow("Asha Kumari", "9876543210", "asha.k", "h", "Approved", "Student"),
		userRow("Ravi Shetty", "9876500000", "ravi.s", "h", "NotApproved", "Student"),
		userRow("Lead Person", "9876511111", "lead.p", "h", "Approved", "Lead"),
	)
	svc := newUserService(store)
	ctx := context.Background()

	require.NoError(t, svc.Promote(ctx, "asha.k"))
	require.Len(t, store.cellUpdates, 1)
	assert.Equal(t, 12, store.cellUpdates[0].Col)
	assert.Equal(t, "Lead", store.cellUpdates[0].Value)

	assert.ErrorIs(t, svc.Promote(ctx, "ghost"), service.ErrNotFound)
	assert.ErrorIs(t, svc.Promote(ctx, "ravi.s"), service.ErrPermissionDenied)
	assert.ErrorIs(t, svc.Promote(ctx, "lead.p"), service.ErrConflict)
}
