// Package setbonus keeps the piece-count tiers of a gear set and the
// per-side switches that decide which tier bonuses apply.
//
// Set bonuses stack: a 4-piece bonus only applies together with the 2-piece
// one. The enabled tiers of each side therefore always form a prefix of the
// tiers ordered by piece count, and every mutation below preserves that.
package setbonus

import (
	"github.com/google/uuid"

	"dn-damage-calc/internal/stat"
)

// Pending is the piece count of the tier holding rows that have not been
// assigned a threshold yet. It is never enabled and never aggregated.
const Pending = 0

// Effect is one independently keyed bonus of a tier.
type Effect struct {
	ID   string    `json:"id" yaml:"id,omitempty"`
	Pair stat.Pair `json:"pair" yaml:"pair"`
}

// Tier is a piece-count threshold and the bonus it grants.
type Tier struct {
	Pieces  int
	Effects []Effect
	enabled [2]bool
}

func newTier(pieces int, pair stat.Pair) Tier {
	return Tier{Pieces: pieces, Effects: []Effect{{ID: uuid.NewString(), Pair: pair}}}
}

// Enabled reports whether the tier applies to side.
func (t Tier) Enabled(side stat.Side) bool {
	if !side.Valid() {
		return false
	}
	return t.enabled[side]
}

// Rows returns the rows stored for side across every effect. Tiers do not
// mirror the current side: a comparison side left empty grants nothing, and
// CopyToAlt is the way to carry current rows over.
func (t Tier) Rows(side stat.Side) []stat.Row {
	var out []stat.Row
	for _, e := range t.Effects {
		out = append(out, e.Pair.Raw(side)...)
	}
	return out
}

func (t Tier) raw(side stat.Side) []stat.Row {
	if len(t.Effects) == 0 {
		return nil
	}
	return t.Effects[0].Pair.Raw(side)
}

func (t *Tier) setRaw(side stat.Side, rows []stat.Row) {
	if len(t.Effects) == 0 {
		t.Effects = []Effect{{ID: uuid.NewString()}}
	}
	t.Effects[0].Pair.Set(side, rows)
}

func (t Tier) empty() bool {
	for _, e := range t.Effects {
		if len(e.Pair.Base) > 0 || len(e.Pair.Alt) > 0 {
			return false
		}
	}
	return true
}
