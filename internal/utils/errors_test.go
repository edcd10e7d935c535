package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/osa911/teamchat/internal/api/constants"
	"github.com/osa911/teamchat/internal/api/dto/common"
	"github.com/osa911/teamchat/internal/service"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   common.ErrorCode
	}{
		{"auth", fmt.Errorf("wrapped: %w", service.ErrAuth), http.StatusUnauthorized, common.ErrCodeUnauthorized},
		{"validation", fmt.Errorf("%w: bad", service.ErrValidation), http.StatusBadRequest, common.ErrCodeValidation},
		{"not found", fmt.Errorf("%w: gone", service.ErrNotFound), http.StatusNotFound, common.ErrCodeNotFound},
		{"conflict", fmt.Errorf("%w: taken", service.ErrConflict), http.StatusConflict, common.ErrCodeConflict},
		{"remote store", fmt.Errorf("%w: %w", service.ErrRemoteStore, errors.New("timeout")), http.StatusBadGateway, common.ErrCodeRemoteStore},
		{"other", errors.New("boom"), http.StatusInternalServerError, common.ErrCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			HandleAPIError(c, tt.err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"`+string(tt.wantCode)+`"`)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}

func TestHandleErrorCarriesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(constants.ContextKeyRequestID, "req-42")

	HandleError(c, http.StatusTooManyRequests, common.ErrCodeTooManyRequests, "slow down", nil)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.True(t, c.IsAborted())
	assert.Contains(t, rec.Body.String(), `"requestId":"req-42"`)
}

func TestHandleCreated(t *testing.T) {
	tests := []struct {
		name     string
		location string
	}{
		{"with location", "/api/v1/teams/t1"},
		{"without location", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

			HandleCreated(c, tt.location, gin.H{"uid": "t1"})

			assert.Equal(t, http.StatusCreated, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
			assert.Contains(t, rec.Body.String(), `"success":true`)
		})
	}
}
