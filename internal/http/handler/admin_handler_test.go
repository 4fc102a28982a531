package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockUserService struct {
	users      []domain.User
	approved   []string
	skipped    []string
	err        error
	promoteErr error
	lastBatch  []string
}

func (m *mockUserService) Pending(ctx context.Context) ([]domain.User, error)  { return m.users, m.err }
func (m *mockUserService) Approved(ctx context.Context) ([]domain.User, error) { return m.users, m.err }
func (m *mockUserService) Leads(ctx context.Context) ([]domain.User, error)    { return m.users, m.err }

func (m *mockUserService) Approve(ctx context.Context, userNames []string) ([]string, []string, error) {
	m.lastBatch = userNames
	return m.approved, m.skipped, m.err
}

func (m *mockUserService) Promote(ctx context.Context, userName string) error {
	return m.promoteErr
}

type mockDashboardService struct {
	stats *domain.StatsDTO
	err   error
}

func (m *mockDashboardService) Stats(ctx context.Context) (*domain.StatsDTO, error) {
	return m.stats, m.err
}

func newAdminHandler(users *mockUserService, dash *mockDashboardService, logPath string) *AdminHandler {
	if dash == nil {
		dash = &mockDashboardService{}
	}
	return NewAdminHandlerWithMocks(users, dash, logPath, zap.NewNop())
}

func TestAdminHandler_Stats(t *testing.T) {
	h := newAdminHandler(&mockUserService{}, &mockDashboardService{stats: &domain.StatsDTO{
		ApprovedStudents: 12, TotalEvents: 3, TotalEnrollments: 40,
	}}, "")

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	rec := httptest.NewRecorder()
	h.Stats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var stats domain.StatsDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 12, stats.ApprovedStudents)
	assert.Equal(t, 40, stats.TotalEnrollments)
}

func TestAdminHandler_ApproveUsers(t *testing.T) {
	users := &mockUserService{approved: []string{"ravi.s"}, skipped: []string{"ghost"}}
	h := newAdminHandler(users, nil, "")

	body := domain.ApproveUsersRequest{UserNames: []string{"ravi.s", "ghost"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/users/approve", jsonBody(t, body))
	rec := httptest.NewRecorder()
	h.ApproveUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"ravi.s", "ghost"}, users.lastBatch)

	var resp map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"ravi.s"}, resp["approved"])
	assert.Equal(t, []string{"ghost"}, resp["skipped"])
}

func TestAdminHandler_PromoteUser(t *testing.T) {
	promote := func(promoteErr error) *httptest.ResponseRecorder {
		h := newAdminHandler(&mockUserService{promoteErr: promoteErr}, nil, "")
		r := chi.NewRouter()
		r.Post("/admin/users/{userName}/promote", h.PromoteUser)
		req := httptest.NewRequest(http.MethodPost, "/admin/users/asha.k/promote", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, promote(nil).Code)
	assert.Equal(t, http.StatusNotFound, promote(service.ErrNotFound).Code)
	assert.Equal(t, http.StatusConflict, promote(service.ErrPermissionDenied).Code)
	assert.Equal(t, http.StatusConflict, promote(service.ErrConflict).Code)
}

func TestAdminHandler_Logs(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		h := newAdminHandler(&mockUserService{}, nil, "")
		req := httptest.NewRequest(http.MethodGet, "/admin/logs", nil)
		rec := httptest.NewRecorder()
		h.Logs(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("tails trailing lines", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "app.log")
		content := strings.Join([]string{"line1", "line2", "line3", "line4"}, "\n") + "\n"
		require.NoError(t, os.WriteFile(logPath, []byte(content), 0o644))

		h := newAdminHandler(&mockUserService{}, nil, logPath)
		req := httptest.NewRequest(http.MethodGet, "/admin/logs?lines=2", nil)
		rec := httptest.NewRecorder()
		h.Logs(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Lines []string `json:"lines"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{"line3", "line4"}, resp.Lines)
	})
}
