package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFDToPercentKnees(t *testing.T) {
	for _, r := range FDTable {
		assert.Zero(t, FDToPercent(0, r.Patch), "patch %d", r.Patch)
		assert.Zero(t, FDToPercent(-5, r.Patch), "patch %d", r.Patch)
		assert.InDelta(t, 45, FDToPercent(r.R145*45, r.Patch), 1e-9, "patch %d", r.Patch)
		assert.InDelta(t, 60, FDToPercent(r.FD60, r.Patch), 0.05, "patch %d", r.Patch)
		assert.Equal(t, 60.0, FDToPercent(r.FD60*10, r.Patch), "patch %d", r.Patch)
	}
}

func TestFDToPercentMonotonic(t *testing.T) {
	for _, r := range FDTable {
		prev := 0.0
		for raw := 0.0; raw <= r.FD60*1.5; raw += r.FD60 / 997 {
			got := r.Percent(raw)
			assert.GreaterOrEqual(t, got, prev, "patch %d raw %v", r.Patch, raw)
			assert.LessOrEqual(t, got, 60.0)
			prev = got
		}
	}
}

func TestFDTableAscending(t *testing.T) {
	for i := 1; i < len(FDTable); i++ {
		assert.Greater(t, FDTable[i].Patch, FDTable[i-1].Patch)
		assert.Greater(t, FDTable[i].FD60, FDTable[i-1].FD60)
	}
	_, ok := LookupPatch(DefaultPatch)
	assert.True(t, ok)
	assert.Zero(t, FDToPercent(1000, 1))
}
