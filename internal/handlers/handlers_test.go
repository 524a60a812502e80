package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asStaff fakes what AuthMiddleware leaves on the context.
func asStaff(userID, barbershopID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextBarbershopID, barbershopID)
		c.Set(middleware.ContextUserRole, models.RoleOwner)
		c.Next()
	}
}

func asClient(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUserRole, models.RoleClient)
		c.Next()
	}
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httperr.HTTPError {
	t.Helper()

	var out httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type auditRecorder struct {
	events []audit.Event
}

func (r *auditRecorder) Dispatch(ev audit.Event) {
	r.events = append(r.events, ev)
}

type cacheSpy struct {
	days    []string
	barbers []uint
}

func (s *cacheSpy) Get(_ context.Context, _ uint, _ string, _ uint) ([]string, bool) {
	return nil, false
}
func (s *cacheSpy) Version(context.Context, uint, string) string { return "" }
func (s *cacheSpy) Set(context.Context, uint, string, uint, string, []string) {}
func (s *cacheSpy) InvalidateDay(_ context.Context, _ uint, date string) {
	s.days = append(s.days, date)
}
func (s *cacheSpy) InvalidateBarber(_ context.Context, barberID uint) {
	s.barbers = append(s.barbers, barberID)
}

func jsonUnmarshal(w *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(w.Body.Bytes(), v)
}
