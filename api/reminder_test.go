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

func reminderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "message", "date", "time",
		"is_recurring", "is_enabled", "created_at",
	})
}

func TestReminderHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `reminders`").
		WillReturnRows(reminderRows().
			AddRow("rm-1", "房租", "别忘了交房租",
				time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), "09:00", true, true, time.Now()))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/reminders", NewReminderHandler().List)

	req := httptest.NewRequest("GET", "/reminders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "房租", resp.Data[0]["title"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReminderHandler_Create_DefaultEnabled(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `reminders`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/reminders", NewReminderHandler().Create)

	// 不带 is_enabled 时默认启用
	body := `{"title":"房租","date":"2024-07-01T00:00:00Z","time":"09:00"}`
	req := httptest.NewRequest("POST", "/reminders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp.Data["is_enabled"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReminderHandler_Create_MissingTitle(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/reminders", NewReminderHandler().Create)

	body := `{"date":"2024-07-01T00:00:00Z"}`
	req := httptest.NewRequest("POST", "/reminders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestReminderHandler_Update_Toggle(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `reminders`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT .* FROM `reminders`").
		WillReturnRows(reminderRows().
			AddRow("rm-1", "房租", "",
				time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), "09:00", true, false, time.Now()))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PUT("/reminders/:id", NewReminderHandler().Update)

	body := `{"is_enabled":false}`
	req := httptest.NewRequest("PUT", "/reminders/rm-1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp.Data["is_enabled"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReminderHandler_Update_EmptyBody(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PUT("/reminders/:id", NewReminderHandler().Update)

	req := httptest.NewRequest("PUT", "/reminders/no-such-id", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReminderHandler_Delete_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `reminders`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.DELETE("/reminders/:id", NewReminderHandler().Delete)

	req := httptest.NewRequest("DELETE", "/reminders/no-such-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
