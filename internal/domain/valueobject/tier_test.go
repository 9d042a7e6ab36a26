package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierTable_AtMostIsInclusive(t *testing.T) {
	table := MustTierTable(AtMost, "high",
		Tier[string]{Limit: 10, Value: "low"},
		Tier[string]{Limit: 20, Value: "mid"},
	)

	tests := []struct {
		name  string
		input float64
		want  string
		index int
	}{
		{name: "below first limit", input: -5, want: "low", index: 0},
		{name: "exactly first limit", input: 10, want: "low", index: 0},
		{name: "just above first limit", input: 10.01, want: "mid", index: 1},
		{name: "exactly second limit", input: 20, want: "mid", index: 1},
		{name: "above all limits", input: 20.01, want: "high", index: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, idx := table.Find(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.index, idx)
		})
	}
}

func TestTierTable_AtLeastIsInclusive(t *testing.T) {
	table := MustTierTable(AtLeast, 0,
		Tier[int]{Limit: 70, Value: 25},
		Tier[int]{Limit: 60, Value: 22},
	)

	assert.Equal(t, 25, table.Lookup(80))
	assert.Equal(t, 25, table.Lookup(70))
	assert.Equal(t, 22, table.Lookup(69.99))
	assert.Equal(t, 22, table.Lookup(60))
	assert.Equal(t, 0, table.Lookup(59.99))
}

func TestTierTable_UnboundedTopBracket(t *testing.T) {
	table := MustTierTable(AtMost, -1,
		Tier[int]{Limit: 100, Value: 1},
		Tier[int]{Limit: Unbounded, Value: 2},
	)

	assert.Equal(t, 2, table.Lookup(1e18))
	assert.Equal(t, 2, table.Len())
}

func TestTierTable_RejectsMisorderedLimits(t *testing.T) {
	t.Run("ascending required for AtMost", func(t *testing.T) {
		_, err := NewTierTable(AtMost, 0,
			Tier[int]{Limit: 20, Value: 1},
			Tier[int]{Limit: 10, Value: 2},
		)
		require.ErrorIs(t, err, ErrInvalidTierTable)
	})

	t.Run("descending required for AtLeast", func(t *testing.T) {
		_, err := NewTierTable(AtLeast, 0,
			Tier[int]{Limit: 10, Value: 1},
			Tier[int]{Limit: 10, Value: 2},
		)
		require.ErrorIs(t, err, ErrInvalidTierTable)
	})

	t.Run("must variant panics", func(t *testing.T) {
		assert.Panics(t, func() {
			MustTierTable(AtMost, 0, Tier[int]{Limit: 5}, Tier[int]{Limit: 1})
		})
	})
}

func TestTierTable_EmptyReturnsFallback(t *testing.T) {
	table := MustTierTable[string](AtMost, "none")
	got, idx := table.Find(42)
	assert.Equal(t, "none", got)
	assert.Equal(t, -1, idx)
}
