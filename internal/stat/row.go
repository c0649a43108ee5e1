package stat

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Side selects the current build (0) or the comparison build (1).
type Side int

const (
	Current Side = iota
	Comparison
)

// Sides is both sides in evaluation order.
var Sides = [2]Side{Current, Comparison}

func (s Side) String() string {
	if s == Comparison {
		return "comparison"
	}
	return "current"
}

// Valid reports whether s is Current or Comparison.
func (s Side) Valid() bool { return s == Current || s == Comparison }

// Row is one flat or percent contribution to a stat.
type Row struct {
	ID        string `json:"id" yaml:"id,omitempty"`
	Type      Type   `json:"type" yaml:"type"`
	Value     Num    `json:"value" yaml:"value"`
	IsPercent bool   `json:"isPercent" yaml:"isPercent,omitempty"`
}

// NewRow returns a row with a fresh ID.
func NewRow(t Type, v Num, pct bool) Row {
	return Row{ID: uuid.NewString(), Type: t, Value: v, IsPercent: pct}
}

// EmptyRow returns a blank row with a fresh ID.
func EmptyRow() Row { return NewRow(TypeNone, Num{}, false) }

// Empty reports whether neither the type nor the value was filled in.
func (r Row) Empty() bool { return r.Type == TypeNone && r.Value.Blank() }

// Pair holds the rows of one piece of gear for both sides.
type Pair struct {
	Base []Row `json:"base" yaml:"base"`
	Alt  []Row `json:"alt" yaml:"alt"`
}

// EmptyPair returns a pair with one blank row per side.
func EmptyPair() Pair {
	return Pair{Base: []Row{EmptyRow()}, Alt: []Row{EmptyRow()}}
}

// Diverged reports whether the comparison side has any filled-in row.
func (p Pair) Diverged() bool {
	for _, r := range p.Alt {
		if !r.Empty() {
			return true
		}
	}
	return false
}

// Rows returns the effective rows for side. The comparison side mirrors Base
// until at least one Alt row is filled in.
func (p Pair) Rows(side Side) []Row {
	if side == Comparison && p.Diverged() {
		return p.Alt
	}
	return p.Base
}

// Raw returns the rows stored for side without the fallback.
func (p Pair) Raw(side Side) []Row {
	if side == Comparison {
		return p.Alt
	}
	return p.Base
}

// Set replaces the rows stored for side.
func (p *Pair) Set(side Side, rows []Row) {
	if side == Comparison {
		p.Alt = rows
		return
	}
	p.Base = rows
}

// IsZero reports whether neither side holds any row.
func (p Pair) IsZero() bool { return len(p.Base) == 0 && len(p.Alt) == 0 }

type pairObject Pair

// UnmarshalJSON accepts {"base":[...],"alt":[...]} and the positional
// [[current...],[comparison...]] form saved by the browser.
func (p *Pair) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = Pair{}
		return nil
	}
	if b[0] == '[' {
		var tuple [][]Row
		if err := json.Unmarshal(b, &tuple); err != nil {
			return fmt.Errorf("pair: %w", err)
		}
		*p = Pair{}
		if len(tuple) > 0 {
			p.Base = tuple[0]
		}
		if len(tuple) > 1 {
			p.Alt = tuple[1]
		}
		return nil
	}
	var obj pairObject
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("pair: %w", err)
	}
	*p = Pair(obj)
	return nil
}
