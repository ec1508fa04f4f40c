package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryTestRouter(db *sql.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := &CategoryHandler{DB: db, WS: NewWSHandler()}

	router.GET("/categories", func(c *gin.Context) {
		c.Set("user_id", testUserID)
	}, h.GetCategories)
	return router
}

func TestGetCategoriesScanFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "name", "icon", "type", "created_at", "updated_at",
	}).AddRow(testCategoryID, testUserID, "Food", "", "expense", "not-a-time", time.Now())

	mock.ExpectQuery(`FROM categories`).
		WithArgs(testUserID).
		WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	w := httptest.NewRecorder()
	categoryTestRouter(db).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch categories")
}
