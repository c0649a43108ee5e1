package calc

import "math"

// FDRow is one patch level of the Final Damage curve.
type FDRow struct {
	Patch int     `json:"patch"`
	FD60  float64 `json:"fd60"`  // raw Final Damage at the 60% cap
	R145  float64 `json:"r145"`  // raw cost per percent from 0 to 45%
	R4560 float64 `json:"r4560"` // raw cost per percent from 45 to 60%
}

const (
	fdKnee = 45.0
	fdCap  = 60.0

	// DefaultPatch is the patch level a fresh skill config uses.
	DefaultPatch = 50
)

// FDTable holds the curve for every supported patch level, ascending.
var FDTable = []FDRow{
	{Patch: 32, FD60: 1387, R145: 17.6, R4560: 39.7},
	{Patch: 40, FD60: 1943, R145: 24.7, R4560: 55.5},
	{Patch: 50, FD60: 2718, R145: 34.5, R4560: 77.7},
	{Patch: 60, FD60: 3805, R145: 48.3, R4560: 108.8},
	{Patch: 70, FD60: 5327, R145: 67.6, R4560: 152.3},
	{Patch: 80, FD60: 7458, R145: 94.7, R4560: 213.2},
	{Patch: 90, FD60: 10441, R145: 132.5, R4560: 298.5},
	{Patch: 100, FD60: 14617, R145: 185.5, R4560: 417.9},
}

// LookupPatch returns the curve row for a patch level.
func LookupPatch(patch int) (FDRow, bool) {
	for _, r := range FDTable {
		if r.Patch == patch {
			return r, true
		}
	}
	return FDRow{}, false
}

// Percent converts raw Final Damage into a percentage, capped at 60.
func (r FDRow) Percent(fdRaw float64) float64 {
	if fdRaw <= 0 || r.R145 <= 0 || r.R4560 <= 0 {
		return 0
	}
	at45 := r.R145 * fdKnee
	if fdRaw <= at45 {
		return math.Min(fdRaw/r.R145, fdKnee)
	}
	return math.Min(fdKnee+(fdRaw-at45)/r.R4560, fdCap)
}

// FDToPercent converts raw Final Damage into a percentage using the curve of
// patch. Unknown patch levels yield 0.
func FDToPercent(fdRaw float64, patch int) float64 {
	r, ok := LookupPatch(patch)
	if !ok {
		return 0
	}
	return r.Percent(fdRaw)
}
