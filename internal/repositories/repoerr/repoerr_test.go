package repoerr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"

	"github.com/rewardly/cbs/internal/domain"
)

func TestMap(t *testing.T) {
	opaque := errors.New("opaque")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, domain.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), domain.ErrNotFound},
		{"unique violation", &pq.Error{Code: "23505"}, domain.ErrDuplicateTransaction},
		{"lock timeout", &pq.Error{Code: "55P03"}, domain.ErrConcurrencyConflict},
		{"serialization failure", &pq.Error{Code: "40001"}, domain.ErrConcurrencyConflict},
		{"deadlock", &pq.Error{Code: "40P01"}, domain.ErrConcurrencyConflict},
		{"other pq error", &pq.Error{Code: "23503"}, nil},
		{"unrelated", opaque, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Map(tt.in)
			if tt.want != nil {
				if !errors.Is(got, tt.want) {
					t.Errorf("Map(%v) = %v, want %v", tt.in, got, tt.want)
				}
				return
			}
			if got != tt.in {
				t.Errorf("Map(%v) = %v, want passthrough", tt.in, got)
			}
		})
	}
}
