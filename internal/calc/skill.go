package calc

import (
	"fmt"
	"strings"

	"dn-damage-calc/internal/stat"
)

// SkillType selects which attack range a skill scales with.
type SkillType string

const (
	Physical SkillType = "phys"
	Magic    SkillType = "magic"
)

func (t *SkillType) UnmarshalText(b []byte) error {
	switch v := SkillType(strings.ToLower(strings.TrimSpace(string(b)))); v {
	case Physical, Magic:
		*t = v
	case "":
		*t = Magic
	default:
		return fmt.Errorf("unknown skill type %q", string(b))
	}
	return nil
}

// Element is the element of a skill.
type Element string

const (
	ElementNone Element = "none"
	Fire        Element = "fire"
	Ice         Element = "ice"
	Light       Element = "light"
	Dark        Element = "dark"
)

// Elements lists the elements a skill can carry, ElementNone first.
var Elements = []Element{ElementNone, Fire, Ice, Light, Dark}

// StatType returns the attack stat matching e, or TypeNone.
func (e Element) StatType() stat.Type {
	switch e {
	case Fire:
		return stat.FireAttack
	case Ice:
		return stat.IceAttack
	case Light:
		return stat.LightAttack
	case Dark:
		return stat.DarkAttack
	}
	return stat.TypeNone
}

func (e *Element) UnmarshalText(b []byte) error {
	v := Element(strings.ToLower(strings.TrimSpace(string(b))))
	if v == "" {
		v = ElementNone
	}
	for _, el := range Elements {
		if v == el {
			*e = v
			return nil
		}
	}
	return fmt.Errorf("unknown element %q", string(b))
}

// SkillConfig describes the skill being evaluated and the target it hits.
type SkillConfig struct {
	Type      SkillType `json:"skillType" yaml:"skillType"`
	Element   Element   `json:"skillElement" yaml:"skillElement"`
	Pct       stat.Num  `json:"skillPct" yaml:"skillPct"`
	Fixed     stat.Num  `json:"fixedValue" yaml:"fixedValue"`
	TargetRes stat.Num  `json:"targetRes" yaml:"targetRes"`
	DebuffSum stat.Num  `json:"debuffSum" yaml:"debuffSum"`
	PatchLv   int       `json:"patchLv" yaml:"patchLv"`
}

// DefaultSkill returns a 100% magic skill with no element at patch 50.
func DefaultSkill() SkillConfig {
	return SkillConfig{
		Type:      Magic,
		Element:   ElementNone,
		Pct:       stat.N(100),
		Fixed:     stat.N(0),
		TargetRes: stat.N(0),
		DebuffSum: stat.N(0),
		PatchLv:   DefaultPatch,
	}
}

// Validate rejects skill settings outside the closed sets.
func (s SkillConfig) Validate() error {
	if s.Type != Physical && s.Type != Magic {
		return fmt.Errorf("unknown skill type %q", s.Type)
	}
	if s.Element.StatType() == stat.TypeNone && s.Element != ElementNone {
		return fmt.Errorf("unknown element %q", s.Element)
	}
	if _, ok := LookupPatch(s.PatchLv); !ok {
		return fmt.Errorf("unknown patch level %d", s.PatchLv)
	}
	return nil
}
