package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performRequest(handler gin.HandlerFunc, query string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test"+query, nil)
	handler(c)
	return w
}

func TestSuccessEnvelope(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Success(c, "Thành công", gin.H{"balance": 5000})
	}, "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp StandardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Thành công", resp.Message)
	assert.Empty(t, resp.Error)
}

func TestErrorEnvelope(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		BadRequest(c, MsgInvalidInput)
	}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp StandardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, MsgInvalidInput, resp.Error)
	assert.Empty(t, resp.Message)
}

func TestErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name    string
		handler gin.HandlerFunc
		want    int
	}{
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, MsgUnauthorized) }, http.StatusUnauthorized},
		{"forbidden", func(c *gin.Context) { Forbidden(c, MsgForbidden) }, http.StatusForbidden},
		{"not found", func(c *gin.Context) { NotFound(c, MsgOrderNotFound) }, http.StatusNotFound},
		{"conflict", func(c *gin.Context) { Conflict(c, MsgAlreadyProcessed) }, http.StatusConflict},
		{"validation", func(c *gin.Context) { ValidationError(c, MsgInvalidInput) }, http.StatusUnprocessableEntity},
		{"internal", func(c *gin.Context) { InternalServerError(c, MsgInternalError) }, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(tt.handler, "")
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestNewPagination(t *testing.T) {
	w := httptest.NewRecorder()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test?page=3&limit=25", nil)
	p := NewPagination(c)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 50, p.Offset)

	// Defaults and caps
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	p = NewPagination(c)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPaginationLimit, p.Limit)

	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test?page=-5&limit=9999", nil)
	p = NewPagination(c)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPaginationLimit, p.Limit)
}
