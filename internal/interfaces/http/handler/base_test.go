package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/retailops/backend/internal/domain/shared"
)

func TestHandleDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound},
		{"concurrency conflict", shared.ErrConcurrencyConflict, http.StatusConflict},
		{"duplicate submission", shared.NewDomainError(shared.ErrCodeDuplicateSubmission, "already processed"), http.StatusConflict},
		{"stock cap", shared.NewDomainError(shared.ErrCodeQuantityExceedsMax, "only 3 in stock"), http.StatusUnprocessableEntity},
		{"invalid discount", shared.NewDomainError(shared.ErrCodeInvalidDiscount, "discount exceeds subtotal"), http.StatusUnprocessableEntity},
		{"invalid credentials", shared.NewDomainError(shared.ErrCodeInvalidCredentials, "invalid email or password"), http.StatusUnauthorized},
		{"invalid otp", shared.NewDomainError(shared.ErrCodeInvalidOTP, "invalid or expired code"), http.StatusUnauthorized},
		{"validation", shared.NewDomainError(shared.ErrCodeValidation, "name is required"), http.StatusBadRequest},
		{"wrapped domain error", fmt.Errorf("saving: %w", shared.ErrNotFound), http.StatusNotFound},
		{"unknown error becomes 500", errors.New("boom"), http.StatusInternalServerError},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.HandleDomainError(c, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
