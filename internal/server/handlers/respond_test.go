package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/rewardly/cbs/internal/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrInvalidID, http.StatusBadRequest},
		{domain.ErrDuplicateTransaction, http.StatusConflict},
		{domain.ErrInvalidStateTransition, http.StatusConflict},
		{domain.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{domain.ErrConcurrencyConflict, http.StatusServiceUnavailable},
		{fmt.Errorf("wrapped: %w", domain.ErrInsufficientBalance), http.StatusUnprocessableEntity},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
