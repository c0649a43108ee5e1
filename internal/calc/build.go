package calc

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"dn-damage-calc/internal/setbonus"
	"dn-damage-calc/internal/stat"
)

// Field is a scalar entered once per side. The comparison value mirrors the
// current one while it is blank.
type Field struct {
	Cur stat.Num `json:"cur" yaml:"cur"`
	Cmp stat.Num `json:"cmp" yaml:"cmp"`
}

// F returns a field whose comparison side mirrors cur.
func F(cur float64) Field { return Field{Cur: stat.N(cur)} }

// Get returns the value for side.
func (f Field) Get(side stat.Side) float64 {
	if side == stat.Comparison {
		return f.Cmp.Or(f.Cur).Value()
	}
	return f.Cur.Value()
}

type fieldObject Field

// UnmarshalJSON accepts {"cur":..,"cmp":..} or a bare value for cur.
func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj fieldObject
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*f = Field(obj)
		return nil
	}
	*f = Field{}
	return f.Cur.UnmarshalJSON(b)
}

// Weapon is a main or secondary weapon.
type Weapon struct {
	PhysMin Field `json:"physMin" yaml:"physMin"`
	PhysMax Field `json:"physMax" yaml:"physMax"`
	MagMin  Field `json:"magMin" yaml:"magMin"`
	MagMax  Field `json:"magMax" yaml:"magMax"`

	// Enhanced ability flat attack.
	EnhPhysMin Field `json:"enhPhysMin" yaml:"enhPhysMin"`
	EnhPhysMax Field `json:"enhPhysMax" yaml:"enhPhysMax"`
	EnhMagMin  Field `json:"enhMagMin" yaml:"enhMagMin"`
	EnhMagMax  Field `json:"enhMagMax" yaml:"enhMagMax"`

	// Potential attack percent.
	PotPhysMin Field `json:"potPhysMin" yaml:"potPhysMin"`
	PotPhysMax Field `json:"potPhysMax" yaml:"potPhysMax"`
	PotMagMin  Field `json:"potMagMin" yaml:"potMagMin"`
	PotMagMax  Field `json:"potMagMax" yaml:"potMagMax"`

	Stat      stat.Pair `json:"statPair" yaml:"statPair"`
	Enhanced  stat.Pair `json:"enhancedPair" yaml:"enhancedPair"`
	Potential stat.Pair `json:"potentialPair" yaml:"potentialPair"`
}

// ArmorSlot is one of the five armor pieces.
type ArmorSlot struct {
	Stat      stat.Pair `json:"statPair" yaml:"statPair"`
	Enhanced  stat.Pair `json:"enhancedPair" yaml:"enhancedPair"`
	Potential stat.Pair `json:"potentialPair" yaml:"potentialPair"`
}

// CostumeSlot is a costume piece. The first two slots are the costume
// weapons, whose percent fields add to the attack multiplier.
type CostumeSlot struct {
	PhysMin Field `json:"physMin" yaml:"physMin"`
	PhysMax Field `json:"physMax" yaml:"physMax"`
	MagMin  Field `json:"magMin" yaml:"magMin"`
	MagMax  Field `json:"magMax" yaml:"magMax"`

	Stat      stat.Pair `json:"statPair" yaml:"statPair"`
	Enhanced  stat.Pair `json:"enhancedPair,omitempty" yaml:"enhancedPair,omitempty"`
	Potential stat.Pair `json:"potentialPair,omitempty" yaml:"potentialPair,omitempty"`
}

const (
	costumeMainWeapon = 0
	costumeSubWeapon  = 1
)

// Build is everything a character wears, for both sides.
type Build struct {
	Class      Class  `json:"class" yaml:"class"`
	WeaponMain Weapon `json:"weaponMain" yaml:"weaponMain"`
	WeaponSub  Weapon `json:"weaponSub" yaml:"weaponSub"`

	ArmorSlots      []ArmorSlot   `json:"armorSlots" yaml:"armorSlots"`
	GeneralSetBonus setbonus.List `json:"generalSetBonus" yaml:"generalSetBonus"`

	GeneralAcc         []stat.Pair   `json:"generalAcc" yaml:"generalAcc"`
	GeneralAccPot      []stat.Pair   `json:"generalAccPot" yaml:"generalAccPot"`
	GeneralAccSetBonus setbonus.List `json:"generalAccSetBonus" yaml:"generalAccSetBonus"`

	CostumeSlots    []CostumeSlot `json:"costumeSlots" yaml:"costumeSlots"`
	CostumeSetBonus setbonus.List `json:"costumeSetBonus" yaml:"costumeSetBonus"`

	CostumeAcc         []stat.Pair   `json:"costumeAcc" yaml:"costumeAcc"`
	CostumeAccPot      []stat.Pair   `json:"costumeAccPot" yaml:"costumeAccPot"`
	CostumeAccSetBonus setbonus.List `json:"costumeAccSetBonus" yaml:"costumeAccSetBonus"`

	HeraldryUnique []stat.Pair `json:"heraldryUnique" yaml:"heraldryUnique"`
	HeraldryFree   []stat.Pair `json:"heraldryFree" yaml:"heraldryFree"`
	Runes          []stat.Pair `json:"runes" yaml:"runes"`

	CardStats         stat.Pair `json:"cardStats" yaml:"cardStats"`
	CostumeCollection stat.Pair `json:"costumeCollection" yaml:"costumeCollection"`
	TitleStats        stat.Pair `json:"titleStats" yaml:"titleStats"`
	ExpertStats       stat.Pair `json:"expertStats" yaml:"expertStats"`

	// Character-level primary stats before equipment.
	ClassBaseStr stat.Num `json:"classBaseStr" yaml:"classBaseStr"`
	ClassBaseAgi stat.Num `json:"classBaseAgi" yaml:"classBaseAgi"`
	ClassBaseInt stat.Num `json:"classBaseInt" yaml:"classBaseInt"`
}

const (
	armorSlotCount   = 5
	accessorySlots   = 4
	costumeSlotCount = 5
)

func emptyWeapon() Weapon {
	return Weapon{Stat: stat.EmptyPair(), Enhanced: stat.EmptyPair(), Potential: stat.EmptyPair()}
}

func emptyPairs(n int) []stat.Pair {
	out := make([]stat.Pair, n)
	for i := range out {
		out[i] = stat.EmptyPair()
	}
	return out
}

// DefaultBuild returns an empty Warrior build with the usual slot counts.
func DefaultBuild() Build {
	b := Build{
		Class:             Warrior,
		WeaponMain:        emptyWeapon(),
		WeaponSub:         emptyWeapon(),
		GeneralAcc:        emptyPairs(accessorySlots),
		GeneralAccPot:     emptyPairs(accessorySlots),
		CostumeAcc:        emptyPairs(accessorySlots),
		CostumeAccPot:     emptyPairs(accessorySlots),
		HeraldryUnique:    emptyPairs(1),
		HeraldryFree:      emptyPairs(1),
		Runes:             emptyPairs(1),
		CardStats:         stat.EmptyPair(),
		CostumeCollection: stat.EmptyPair(),
		TitleStats:        stat.EmptyPair(),
		ExpertStats:       stat.EmptyPair(),
	}
	for i := 0; i < armorSlotCount; i++ {
		b.ArmorSlots = append(b.ArmorSlots, ArmorSlot{
			Stat: stat.EmptyPair(), Enhanced: stat.EmptyPair(), Potential: stat.EmptyPair(),
		})
	}
	for i := 0; i < costumeSlotCount; i++ {
		b.CostumeSlots = append(b.CostumeSlots, CostumeSlot{Stat: stat.EmptyPair()})
	}
	return b
}

// UnmarshalYAML accepts a mapping or a bare scalar for cur.
func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var obj fieldObject
		if err := node.Decode(&obj); err != nil {
			return err
		}
		*f = Field(obj)
		return nil
	}
	*f = Field{}
	return f.Cur.UnmarshalYAML(node)
}
