package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/idempotency"
	apperrors "github.com/DIVIJ08070/doctor-appointment-app/pkg/errors"
)

func TestIsCompleteDefaultsFalse(t *testing.T) {
	svc := NewService(idempotency.NewMemoryStore())

	complete, err := svc.IsComplete(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.False(t, complete)
}

func TestMarkCompleteThenIsComplete(t *testing.T) {
	svc := NewService(idempotency.NewMemoryStore())

	require.NoError(t, svc.MarkComplete(context.Background(), "acct-1", "9876543210", "1990-04-12"))

	complete, err := svc.IsComplete(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.True(t, complete)

	// Other accounts stay gated.
	complete, err = svc.IsComplete(context.Background(), "acct-2")
	require.NoError(t, err)
	assert.False(t, complete)
}

func TestMarkCompleteValidation(t *testing.T) {
	svc := NewService(idempotency.NewMemoryStore())
	ctx := context.Background()

	err := svc.MarkComplete(ctx, "acct-1", "  ", "1990-04-12")
	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))

	err = svc.MarkComplete(ctx, "acct-1", "9876543210", "")
	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))

	err = svc.MarkComplete(ctx, "acct-1", "9876543210", "12/04/1990")
	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))
}
