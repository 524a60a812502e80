package handlers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
)

func cashRouter(h *CashEntryHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/api/me", asStaff(3, 1))
	g.GET("/cash-entries", h.List)
	g.GET("/cash-entries/summary", h.Summary)
	g.POST("/cash-entries", h.Create)
	return r
}

func TestCashEntryHandler_Summary(t *testing.T) {
	db, mock := newMockDB(t)
	r := cashRouter(NewCashEntryHandler(db, &auditRecorder{}))

	mock.ExpectQuery(`SELECT type, COALESCE\(SUM\(amount\), 0\) AS total FROM "cash_entries" WHERE barbershop_id = \$1 AND occurred_on >= \$2 AND occurred_on <= \$3 GROUP BY`).
		WithArgs(1, "2030-07-01", "2030-07-31").
		WillReturnRows(sqlmock.NewRows([]string{"type", "total"}).
			AddRow("income", "350.50").
			AddRow("expense", "120.00"))

	w := doJSON(r, http.MethodGet, "/api/me/cash-entries/summary?from=2030-07-01&to=2030-07-31", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out dto.CashSummaryDTO
	require.NoError(t, jsonUnmarshal(w, &out))
	assert.True(t, decimal.RequireFromString("350.50").Equal(out.Income))
	assert.True(t, decimal.RequireFromString("120").Equal(out.Expense))
	assert.True(t, decimal.RequireFromString("230.50").Equal(out.Balance))
	assert.Equal(t, "2030-07-01", out.From)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCashEntryHandler_Validation(t *testing.T) {
	db, mock := newMockDB(t)
	r := cashRouter(NewCashEntryHandler(db, &auditRecorder{}))

	w := doJSON(r, http.MethodGet, "/api/me/cash-entries/summary?from=2030-08-01&to=2030-07-01", nil)
	assert.Equal(t, "invalid_date_range", decodeError(t, w).Code)

	w = doJSON(r, http.MethodGet, "/api/me/cash-entries?type=gift", nil)
	assert.Equal(t, "invalid_type", decodeError(t, w).Code)

	w = doJSON(r, http.MethodPost, "/api/me/cash-entries", gin.H{"type": "expense", "amount": "0"})
	assert.Equal(t, "invalid_amount", decodeError(t, w).Code)

	w = doJSON(r, http.MethodPost, "/api/me/cash-entries", gin.H{"type": "refund", "amount": 10})
	assert.Equal(t, "invalid_type", decodeError(t, w).Code)

	w = doJSON(r, http.MethodPost, "/api/me/cash-entries", gin.H{"type": "expense", "amount": 10, "occurred_on": "01/07/2030"})
	assert.Equal(t, "invalid_date", decodeError(t, w).Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCashEntryHandler_Create(t *testing.T) {
	db, mock := newMockDB(t)
	sink := &auditRecorder{}
	r := cashRouter(NewCashEntryHandler(db, sink))

	mock.ExpectQuery(`INSERT INTO "cash_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	w := doJSON(r, http.MethodPost, "/api/me/cash-entries", gin.H{
		"type": "Expense", "category": "Produtos", "amount": "89.9", "occurred_on": "2030-07-10",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"type":"expense"`)
	assert.Contains(t, w.Body.String(), `"category":"produtos"`)

	require.Len(t, sink.events, 1)
	assert.Equal(t, "cash_entry_created", sink.events[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}
