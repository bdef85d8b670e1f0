package visit_test

import (
	"testing"

	"github.com/rpggio/visitdesk/internal/domain/visit"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to visit.Status
		want     bool
	}{
		{visit.StatusPlanned, visit.StatusActive, true},
		{visit.StatusActive, visit.StatusCompleted, true},
		{visit.StatusPlanned, visit.StatusCompleted, false},
		{visit.StatusActive, visit.StatusPlanned, false},
		{visit.StatusCompleted, visit.StatusActive, false},
		{visit.StatusCompleted, visit.StatusPlanned, false},
		{visit.StatusCompleted, visit.StatusCompleted, false},
		{visit.StatusPlanned, visit.StatusPlanned, false},
		{"", visit.StatusActive, false},
		{visit.StatusPlanned, "cancelled", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, visit.CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestParseMode(t *testing.T) {
	mode, err := visit.ParseMode("in-person")
	require.NoError(t, err)
	require.Equal(t, visit.ModeInPerson, mode)

	_, err = visit.ParseMode("video")
	require.ErrorIs(t, err, visit.ErrInvalidMode)
}

func TestSequenceGenerator(t *testing.T) {
	gen := visit.NewSequenceGenerator("v")
	require.Equal(t, "v1", gen.Next())
	require.Equal(t, "v2", gen.Next())
}
