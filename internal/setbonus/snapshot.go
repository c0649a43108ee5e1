package setbonus

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"dn-damage-calc/internal/stat"
)

// Snapshot is the stored form of a tier.
type Snapshot struct {
	Pieces     int      `json:"pieces" yaml:"pieces"`
	Effects    []Effect `json:"effects" yaml:"effects"`
	EnabledCur bool     `json:"enabledCur" yaml:"enabledCur"`
	EnabledCmp bool     `json:"enabledCmp" yaml:"enabledCmp"`
}

// Snapshot returns the stored form of every tier.
func (l List) Snapshot() []Snapshot {
	tiers := l.Tiers()
	out := make([]Snapshot, len(tiers))
	for i, t := range tiers {
		out[i] = Snapshot{
			Pieces:     t.Pieces,
			Effects:    t.Effects,
			EnabledCur: t.enabled[stat.Current],
			EnabledCmp: t.enabled[stat.Comparison],
		}
	}
	return out
}

// Restore rebuilds a list from stored tiers. Tiers sharing a piece count are
// merged, negative counts become Pending, and the switches are normalised so
// that each side's enabled tiers form a prefix: every tier below the highest
// enabled one is enabled.
func Restore(snaps []Snapshot) List {
	var l List
	for _, s := range snaps {
		p := s.Pieces
		if p < Pending {
			p = Pending
		}
		i := l.find(p)
		if i < 0 {
			i = l.insert(Tier{Pieces: p})
		}
		t := &l.tiers[i]
		t.Effects = append(t.Effects, s.Effects...)
		t.enabled[stat.Current] = t.enabled[stat.Current] || s.EnabledCur
		t.enabled[stat.Comparison] = t.enabled[stat.Comparison] || s.EnabledCmp
	}
	for _, side := range stat.Sides {
		top := Pending
		for _, t := range l.tiers {
			if t.Pieces > Pending && t.enabled[side] {
				top = t.Pieces
			}
		}
		for i := range l.tiers {
			t := &l.tiers[i]
			t.enabled[side] = t.Pieces > Pending && t.Pieces <= top
		}
	}
	return l
}

func (l List) MarshalJSON() ([]byte, error) { return json.Marshal(l.Snapshot()) }

func (l *List) UnmarshalJSON(b []byte) error {
	var snaps []Snapshot
	if err := json.Unmarshal(b, &snaps); err != nil {
		return err
	}
	*l = Restore(snaps)
	return nil
}

func (l List) MarshalYAML() (interface{}, error) { return l.Snapshot(), nil }

func (l *List) UnmarshalYAML(node *yaml.Node) error {
	var snaps []Snapshot
	if err := node.Decode(&snaps); err != nil {
		return err
	}
	*l = Restore(snaps)
	return nil
}
