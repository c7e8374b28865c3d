package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/geocoder89/eventmanager/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestIsMatchesEntityAndKind(t *testing.T) {
	sentinel := apperr.New(apperr.Event, apperr.NotFound)
	wrapped := apperr.Wrap(apperr.Event, apperr.NotFound, errors.New("no rows in result set"))

	assert.ErrorIs(t, wrapped, sentinel)
	assert.ErrorIs(t, fmt.Errorf("get event: %w", wrapped), sentinel)

	assert.NotErrorIs(t, wrapped, apperr.New(apperr.Ticket, apperr.NotFound))
	assert.NotErrorIs(t, wrapped, apperr.New(apperr.Event, apperr.Duplicate))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := apperr.Wrap(apperr.Packet, apperr.Internal, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "event_packet")
	assert.Contains(t, err.Error(), "internal_error")
}

func TestFromAndKindOf(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   apperr.Kind
		wantEntity apperr.Entity
	}{
		{"app error", apperr.New(apperr.Ticket, apperr.ConstraintViolation), apperr.ConstraintViolation, apperr.Ticket},
		{"wrapped app error", fmt.Errorf("ctx: %w", apperr.New(apperr.Relation, apperr.Duplicate)), apperr.Duplicate, apperr.Relation},
		{"plain error", errors.New("boom"), apperr.Internal, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apperr.From(tt.err)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantEntity, got.Entity)
			assert.Equal(t, tt.wantKind, apperr.KindOf(tt.err))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not_found", apperr.NotFound.String())
	assert.Equal(t, "duplicate_entry", apperr.Duplicate.String())
	assert.Equal(t, "invalid_reference", apperr.InvalidReference.String())
	assert.Equal(t, "constraint_violation", apperr.ConstraintViolation.String())
	assert.Equal(t, "internal_error", apperr.Internal.String())
}
