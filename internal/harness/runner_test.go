package harness

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRunner_SmallScenario(t *testing.T) {
	r := New(zerolog.Nop())
	cfg := &Config{
		Scenarios: []Scenario{
			{Name: "tiny", Elements: 16, Operations: 2000, InsertPercent: 20, ErasePercent: 20, Seed: 99},
		},
	}
	require.NoError(t, r.Run(cfg))
}

func TestRunner_EmptyStart(t *testing.T) {
	r := New(zerolog.Nop())
	cfg := &Config{
		Scenarios: []Scenario{
			{Name: "from-zero", Elements: 0, Operations: 500, InsertPercent: 10, ErasePercent: 50, Seed: 3},
		},
	}
	require.NoError(t, r.Run(cfg))
}

func TestRunner_Demo(t *testing.T) {
	require.NoError(t, New(zerolog.Nop()).Demo())
}
