package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"volunteer-events-api/internal/response"
)

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        response.NewAppError(response.ErrCodeNotFound, "Event not found", ""),
			wantStatus: http.StatusNotFound,
			wantCode:   response.ErrCodeNotFound,
		},
		{
			name:       "already exists",
			err:        response.NewAppError(response.ErrCodeAlreadyExists, "Already signed up", ""),
			wantStatus: http.StatusConflict,
			wantCode:   response.ErrCodeAlreadyExists,
		},
		{
			name:       "capacity exceeded",
			err:        response.NewAppError(response.ErrCodeCapacityExceeded, "Event has no spots left", ""),
			wantStatus: http.StatusConflict,
			wantCode:   response.ErrCodeCapacityExceeded,
		},
		{
			name:       "validation",
			err:        response.NewAppError(response.ErrCodeValidation, "Unknown status", ""),
			wantStatus: http.StatusBadRequest,
			wantCode:   response.ErrCodeValidation,
		},
		{
			name:       "unauthorized",
			err:        response.NewAppError(response.ErrCodeUnauthorized, "Sign in first", ""),
			wantStatus: http.StatusUnauthorized,
			wantCode:   response.ErrCodeUnauthorized,
		},
		{
			name:       "forbidden",
			err:        response.NewAppError(response.ErrCodeForbidden, "Not yours", ""),
			wantStatus: http.StatusForbidden,
			wantCode:   response.ErrCodeForbidden,
		},
		{
			name:       "internal",
			err:        response.NewAppError(response.ErrCodeInternal, "Something broke", "details"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   response.ErrCodeInternal,
		},
		{
			name:       "gorm record not found",
			err:        gorm.ErrRecordNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   response.ErrCodeNotFound,
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   response.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			handleServiceError(c, nil, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Error.Code)
		})
	}
}
