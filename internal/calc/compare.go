package calc

import (
	"math"

	"dn-damage-calc/internal/stat"
)

// StatDelta is the change of one stat type between two row lists.
type StatDelta struct {
	Type  stat.Type `json:"type"`
	Delta float64   `json:"delta"`
}

// RowDeltas sums each stat type in a and b regardless of the percent flag
// and returns b-a for every type that changed, in first-seen order. Deltas
// are rounded to two decimals.
func RowDeltas(a, b []stat.Row) []StatDelta {
	var order []stat.Type
	seen := map[stat.Type]bool{}
	for _, r := range stat.Concat(a, b) {
		if r.Type == stat.TypeNone || seen[r.Type] {
			continue
		}
		seen[r.Type] = true
		order = append(order, r.Type)
	}
	var out []StatDelta
	for _, t := range order {
		d := stat.Sum(b, t) - stat.Sum(a, t)
		if d == 0 {
			continue
		}
		out = append(out, StatDelta{Type: t, Delta: math.Round(d*100) / 100})
	}
	return out
}

// PairDeltas compares the current rows of pairs with their effective
// comparison rows.
func PairDeltas(pairs ...stat.Pair) []StatDelta {
	var a, b []stat.Row
	for _, p := range pairs {
		a = append(a, p.Rows(stat.Current)...)
		b = append(b, p.Rows(stat.Comparison)...)
	}
	return RowDeltas(a, b)
}

// RangeDiff is the change from one damage range to another. Percentages are
// relative to the current bound and are 0 when that bound is not positive.
type RangeDiff struct {
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	MinPct float64 `json:"minPct"`
	MaxPct float64 `json:"maxPct"`
	AvgPct float64 `json:"avgPct"`
}

func relPct(cur, next float64) float64 {
	if cur <= 0 {
		return 0
	}
	return (next - cur) / cur * 100
}

func diffRange(cur, next Range) RangeDiff {
	d := RangeDiff{
		Min:    next.Min - cur.Min,
		Max:    next.Max - cur.Max,
		MinPct: relPct(float64(cur.Min), float64(next.Min)),
		MaxPct: relPct(float64(cur.Max), float64(next.Max)),
	}
	d.AvgPct = (d.MinPct + d.MaxPct) / 2
	return d
}

// Diff holds the comparison side minus the current side.
type Diff struct {
	// Raw point changes.
	Str int `json:"str"`
	Agi int `json:"agi"`
	Int int `json:"int"`

	// Percent change of the attack upper bound.
	PhysAtkPct float64 `json:"physAtkPct"`
	MagAtkPct  float64 `json:"magAtkPct"`

	// Percentage point changes.
	FirePct   float64 `json:"firePct"`
	IcePct    float64 `json:"icePct"`
	LightPct  float64 `json:"lightPct"`
	DarkPct   float64 `json:"darkPct"`
	FDPercent float64 `json:"fdPercent"`

	Base        RangeDiff `json:"base"`
	Elemental   RangeDiff `json:"elemental"`
	FinalDamage RangeDiff `json:"finalDamage"`
	Critical    RangeDiff `json:"critical"`

	// Stats lists the per-type row changes across the whole build.
	Stats []StatDelta `json:"stats,omitempty"`
}

// Changed reports whether any damage bound moved.
func (d Diff) Changed() bool {
	for _, r := range []RangeDiff{d.Base, d.Elemental, d.FinalDamage, d.Critical} {
		if r.Min != 0 || r.Max != 0 {
			return true
		}
	}
	return false
}

// DiffResults compares two pipeline results.
func DiffResults(cur, next Result) Diff {
	return Diff{
		Str:         next.Str - cur.Str,
		Agi:         next.Agi - cur.Agi,
		Int:         next.Int - cur.Int,
		PhysAtkPct:  relPct(float64(cur.PhysAtk.Max), float64(next.PhysAtk.Max)),
		MagAtkPct:   relPct(float64(cur.MagAtk.Max), float64(next.MagAtk.Max)),
		FirePct:     round1(next.FirePct - cur.FirePct),
		IcePct:      round1(next.IcePct - cur.IcePct),
		LightPct:    round1(next.LightPct - cur.LightPct),
		DarkPct:     round1(next.DarkPct - cur.DarkPct),
		FDPercent:   round1(next.FDPercent - cur.FDPercent),
		Base:        diffRange(cur.Base, next.Base),
		Elemental:   diffRange(cur.Elemental, next.Elemental),
		FinalDamage: diffRange(cur.FinalDamage, next.FinalDamage),
		Critical:    diffRange(cur.Critical, next.Critical),
	}
}

// Comparison is both sides of a build evaluated against the same skill.
type Comparison struct {
	Current    Result `json:"current"`
	Comparison Result `json:"comparison"`
	Diff       Diff   `json:"diff"`
}

// Compare runs the pipeline for both sides and diffs them.
func Compare(b Build, s SkillConfig) Comparison {
	var res [2]Result
	for i, side := range stat.Sides {
		res[i] = Calculate(b, s, side)
	}
	d := DiffResults(res[0], res[1])
	d.Stats = RowDeltas(
		stat.Concat(CollectRows(b, stat.Current), ExpertRows(b, stat.Current)),
		stat.Concat(CollectRows(b, stat.Comparison), ExpertRows(b, stat.Comparison)),
	)
	return Comparison{Current: res[0], Comparison: res[1], Diff: d}
}
