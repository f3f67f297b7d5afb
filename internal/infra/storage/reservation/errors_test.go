package reservation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPQError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"exclusion violation", &pq.Error{Code: "23P01"}, ErrOverlap},
		{"unique violation", &pq.Error{Code: "23505"}, ErrDuplicateDraft},
		{"serialization failure", &pq.Error{Code: "40001"}, ErrSerialization},
		{"instructor exclusion violation", &pq.Error{Code: "23P01", Constraint: "reservation_lessons_no_overlap"}, ErrInstructorBusy},
		{"resource exclusion violation", &pq.Error{Code: "23P01", Constraint: "reservations_no_overlap"}, ErrOverlap},
		{"wrapped", fmt.Errorf("insert: %w", &pq.Error{Code: "23P01"}), ErrOverlap},
		{"other pq error", &pq.Error{Code: "42P01"}, nil},
		{"not a pq error", errors.New("boom"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyPQError(tt.err))
		})
	}
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(fmt.Errorf("%w: Create", ErrOverlap)))
	assert.True(t, IsConflict(ErrSerialization))
	assert.True(t, IsConflict(fmt.Errorf("%w: Create - insert lessons", ErrInstructorBusy)))
	assert.True(t, IsConflict(&pq.Error{Code: "23P01", Constraint: "reservation_lessons_no_overlap"}))
	assert.False(t, IsConflict(ErrDuplicateDraft))
	assert.False(t, IsConflict(ErrExecQuery))
	assert.True(t, IsConflict(fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})))
}

func TestIsInstructorBusy(t *testing.T) {
	assert.True(t, IsInstructorBusy(fmt.Errorf("%w: Create - insert lessons", ErrInstructorBusy)))
	assert.True(t, IsInstructorBusy(fmt.Errorf("insert: %w", &pq.Error{Code: "23P01", Constraint: "reservation_lessons_no_overlap"})))
	assert.False(t, IsInstructorBusy(&pq.Error{Code: "23P01", Constraint: "reservations_no_overlap"}))
	assert.False(t, IsInstructorBusy(ErrOverlap))
}
