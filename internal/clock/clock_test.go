package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFake(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	clk := NewFake(start)
	require.True(t, clk.Now().Equal(start))

	clk.Advance(90 * time.Minute)
	require.True(t, clk.Now().Equal(start.Add(90*time.Minute)))

	later := start.Add(8 * time.Hour)
	clk.Set(later)
	require.True(t, clk.Now().Equal(later))
}
