package setbonus

import (
	"slices"

	"github.com/google/uuid"

	"dn-damage-calc/internal/stat"
)

// List is the tier list of one gear set, sorted by piece count.
// The zero value is an empty list.
type List struct {
	tiers []Tier
}

// New returns a list with one disabled tier per piece count, each holding a
// blank row on both sides.
func New(pieces ...int) List {
	var l List
	for _, p := range pieces {
		if p < Pending || l.find(p) >= 0 {
			continue
		}
		l.insert(newTier(p, stat.EmptyPair()))
	}
	return l
}

// Len returns the number of tiers, the pending tier included.
func (l List) Len() int { return len(l.tiers) }

// Tiers returns a deep copy of the tiers in ascending piece order. Editing
// the result never reaches the list.
func (l List) Tiers() []Tier {
	out := slices.Clone(l.tiers)
	for i := range out {
		out[i].Effects = slices.Clone(out[i].Effects)
		for j := range out[i].Effects {
			p := &out[i].Effects[j].Pair
			p.Base, p.Alt = slices.Clone(p.Base), slices.Clone(p.Alt)
		}
	}
	return out
}

// Enabled reports whether the tier with the given piece count applies to side.
func (l List) Enabled(pieces int, side stat.Side) bool {
	i := l.find(pieces)
	return i >= 0 && l.tiers[i].Enabled(side)
}

// Rows returns the stored rows of a tier's first effect for side, without
// the comparison fallback. This is what an editor shows.
func (l List) Rows(pieces int, side stat.Side) []stat.Row {
	i := l.find(pieces)
	if i < 0 {
		return nil
	}
	return slices.Clone(l.tiers[i].raw(side))
}

// ActiveRows returns the stored rows of every enabled tier for side.
func (l List) ActiveRows(side stat.Side) []stat.Row {
	var out []stat.Row
	for _, t := range l.tiers {
		if t.Pieces > Pending && t.Enabled(side) {
			out = append(out, t.Rows(side)...)
		}
	}
	return out
}

func (l List) find(pieces int) int {
	for i := range l.tiers {
		if l.tiers[i].Pieces == pieces {
			return i
		}
	}
	return -1
}

func (l *List) insert(t Tier) int {
	i, _ := slices.BinarySearchFunc(l.tiers, t.Pieces, func(x Tier, p int) int { return x.Pieces - p })
	l.tiers = slices.Insert(l.tiers, i, t)
	return i
}

// Ensure creates the tier for pieces if it does not exist and returns its
// index. A newly created tier above Pending starts enabled on both sides,
// together with every tier below it.
func (l *List) Ensure(pieces int) int {
	if pieces < Pending {
		return -1
	}
	if i := l.find(pieces); i >= 0 {
		return i
	}
	i := l.insert(newTier(pieces, stat.Pair{}))
	if pieces > Pending {
		for j := range l.tiers {
			if p := l.tiers[j].Pieces; p > Pending && p <= pieces {
				l.tiers[j].enabled = [2]bool{true, true}
			}
		}
	}
	return i
}

// Toggle flips the tier with the given piece count on side. Switching a tier
// off also switches off every higher tier; switching it on also switches on
// every lower tier. The pending tier and unknown piece counts are ignored.
func (l *List) Toggle(pieces int, side stat.Side) {
	if pieces <= Pending || !side.Valid() {
		return
	}
	i := l.find(pieces)
	if i < 0 {
		return
	}
	on := l.tiers[i].enabled[side]
	for j := range l.tiers {
		t := &l.tiers[j]
		if t.Pieces == Pending {
			continue
		}
		switch {
		case on && t.Pieces >= pieces:
			t.enabled[side] = false
		case !on && t.Pieces <= pieces:
			t.enabled[side] = true
		}
	}
}

// AddPendingRow appends row to the pending tier on side.
func (l *List) AddPendingRow(side stat.Side, row stat.Row) {
	if !side.Valid() {
		return
	}
	t := &l.tiers[l.Ensure(Pending)]
	t.setRaw(side, append(slices.Clone(t.raw(side)), row))
}

// UpdateRow replaces row idx of a tier on side.
func (l *List) UpdateRow(pieces int, side stat.Side, idx int, row stat.Row) bool {
	i := l.find(pieces)
	if i < 0 || !side.Valid() {
		return false
	}
	rows := slices.Clone(l.tiers[i].raw(side))
	if idx < 0 || idx >= len(rows) {
		return false
	}
	rows[idx] = row
	l.tiers[i].setRaw(side, rows)
	return true
}

// DeleteRow removes row idx of a tier on side and prunes empty tiers.
func (l *List) DeleteRow(pieces int, side stat.Side, idx int) bool {
	if _, ok := l.take(pieces, side, idx); !ok {
		return false
	}
	l.prune()
	return true
}

// MoveRow moves row idx of tier from on side to tier to, creating the
// destination if needed, then prunes empty tiers.
func (l *List) MoveRow(from int, side stat.Side, idx int, to int) bool {
	if from == to || to < Pending {
		return false
	}
	row, ok := l.take(from, side, idx)
	if !ok {
		return false
	}
	t := &l.tiers[l.Ensure(to)]
	t.setRaw(side, append(slices.Clone(t.raw(side)), row))
	l.prune()
	return true
}

// ClearSide drops every row of a tier on side and prunes empty tiers.
func (l *List) ClearSide(pieces int, side stat.Side) {
	i := l.find(pieces)
	if i < 0 || !side.Valid() {
		return
	}
	l.tiers[i].setRaw(side, nil)
	l.prune()
}

// CopyToAlt makes the comparison side a copy of the current side, rows and
// switches both.
func (l *List) CopyToAlt() {
	for i := range l.tiers {
		t := &l.tiers[i]
		for j := range t.Effects {
			base := t.Effects[j].Pair.Base
			alt := make([]stat.Row, len(base))
			for k, r := range base {
				r.ID = uuid.NewString()
				alt[k] = r
			}
			t.Effects[j].Pair.Alt = alt
		}
		t.enabled[stat.Comparison] = t.enabled[stat.Current]
	}
}

func (l *List) take(pieces int, side stat.Side, idx int) (stat.Row, bool) {
	i := l.find(pieces)
	if i < 0 || !side.Valid() {
		return stat.Row{}, false
	}
	rows := l.tiers[i].raw(side)
	if idx < 0 || idx >= len(rows) {
		return stat.Row{}, false
	}
	row := rows[idx]
	l.tiers[i].setRaw(side, slices.Delete(slices.Clone(rows), idx, idx+1))
	return row, true
}

func (l *List) prune() {
	l.tiers = slices.DeleteFunc(l.tiers, func(t Tier) bool { return t.empty() })
}
