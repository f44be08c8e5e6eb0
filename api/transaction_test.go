package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transactionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "amount", "category_id", "category_name", "type",
		"date", "note", "is_recurring", "created_at",
	})
}

func TestTransactionHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `transactions`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/transactions", NewTransactionHandler().Create)

	body := `{"amount":58.5,"category_id":"cat-1","category_name":"Food","type":"expense","date":"2024-06-15T00:00:00Z","note":"午饭"}`
	req := httptest.NewRequest("POST", "/transactions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "创建成功", resp.Message)
	assert.Equal(t, "expense", resp.Data["type"])
	assert.NotEmpty(t, resp.Data["id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Create_InvalidType(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/transactions", NewTransactionHandler().Create)

	body := `{"amount":58.5,"category_id":"cat-1","type":"transfer","date":"2024-06-15T00:00:00Z"}`
	req := httptest.NewRequest("POST", "/transactions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestTransactionHandler_List_WithFilters(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs("expense", "cat-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(transactionRows().
			AddRow("tx-1", 58.5, "cat-1", "Food", "expense",
				time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), "午饭", false, time.Now()))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/transactions", NewTransactionHandler().List)

	req := httptest.NewRequest("GET",
		"/transactions?type=expense&category_id=cat-1&start_date=2024-06-01&end_date=2024-06-30", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_List_BadDate(t *testing.T) {
	// 无法识别的日期直接报错，不能静默忽略过滤条件
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/transactions", NewTransactionHandler().List)

	req := httptest.NewRequest("GET", "/transactions?start_date=not-a-date", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "日期格式错误")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_List_BadType(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/transactions", NewTransactionHandler().List)

	req := httptest.NewRequest("GET", "/transactions?type=transfer", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Update(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `transactions`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(transactionRows().
			AddRow("tx-1", 99.0, "cat-1", "Food", "expense",
				time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), "晚饭", false, time.Now()))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PUT("/transactions/:id", NewTransactionHandler().Update)

	body := `{"amount":99,"note":"晚饭"}`
	req := httptest.NewRequest("PUT", "/transactions/tx-1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 99.0, resp.Data["amount"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Update_EmptyBody(t *testing.T) {
	// 空更新不触碰数据库，目标是否存在都返回 400
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PUT("/transactions/:id", NewTransactionHandler().Update)

	req := httptest.NewRequest("PUT", "/transactions/no-such-id", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "没有需要更新的字段")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Update_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `transactions`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PUT("/transactions/:id", NewTransactionHandler().Update)

	body := `{"amount":99}`
	req := httptest.NewRequest("PUT", "/transactions/no-such-id", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Delete_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `transactions`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.DELETE("/transactions/:id", NewTransactionHandler().Delete)

	req := httptest.NewRequest("DELETE", "/transactions/no-such-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_ResetAll(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 删除顺序固定：交易 → 类别 → 提醒
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `transactions`").
		WillReturnResult(sqlmock.NewResult(0, 10))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `categories`").
		WillReturnResult(sqlmock.NewResult(0, 8))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `reminders`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.DELETE("/reset-all", NewTransactionHandler().ResetAll)

	req := httptest.NewRequest("DELETE", "/reset-all", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "所有数据已清空")
	require.NoError(t, mock.ExpectationsWereMet())
}
