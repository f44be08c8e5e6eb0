package api

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHandler_ExportCSV(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(transactionRows().
			AddRow("tx-1", 58.5, "cat-1", "Food", "expense",
				time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), `He said "hi", now`, false, time.Now()).
			AddRow("tx-2", 5000.0, "cat-2", "", "income",
				time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "", false, time.Now()))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/export/csv", NewExportHandler().ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data struct {
			CSVContent string `json:"csv_content"`
			Filename   string `json:"filename"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	lines := strings.Split(resp.Data.CSVContent, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Type,Category,Amount,Notes", lines[0])
	// 备注转义：引号双写、逗号换成空格，整列加引号
	assert.Equal(t, `2024-06-15,expense,Food,58.50,"He said ""hi""  now"`, lines[1])
	// 空类别名落到 Other
	assert.Equal(t, `2024-06-01,income,Other,5000.00,""`, lines[2])

	expected := fmt.Sprintf("expense_report_%s.csv", time.Now().Format("20060102"))
	assert.Equal(t, expected, resp.Data.Filename)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportCSV_BadDate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/export/csv", NewExportHandler().ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv?end_date=garbage", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportExcel(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(transactionRows().
			AddRow("tx-1", 58.5, "cat-1", "Food", "expense",
				time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), "午饭", false, time.Now()))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/export/excel", NewExportHandler().ExportExcel)

	req := httptest.NewRequest("GET", "/export/excel", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "expense_report_")
	assert.NotEmpty(t, w.Body.Bytes())
	require.NoError(t, mock.ExpectationsWereMet())
}
