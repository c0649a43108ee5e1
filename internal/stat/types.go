package stat

import "strings"

// Type is the name of a stat. Rows are matched against it by exact name.
type Type string

const (
	TypeNone       Type = ""
	STR            Type = "STR"
	AGI            Type = "AGI"
	INT            Type = "INT"
	PhysicalAttack Type = "Physical Attack"
	MagicAttack    Type = "Magic Attack"
	FireAttack     Type = "Fire Attack"
	IceAttack      Type = "Ice Attack"
	LightAttack    Type = "Light Attack"
	DarkAttack     Type = "Dark Attack"
	FinalDamage    Type = "Final Damage"
)

// Types lists every selectable stat in display order.
var Types = []Type{
	STR, AGI, INT,
	PhysicalAttack, MagicAttack,
	FireAttack, IceAttack, LightAttack, DarkAttack,
	FinalDamage,
}

// Valid reports whether t is one of Types.
func (t Type) Valid() bool {
	for _, v := range Types {
		if t == v {
			return true
		}
	}
	return false
}

// ParseType maps a name to a Type, ignoring case and surrounding space.
// Unknown names are kept verbatim so the row still counts as filled in.
func ParseType(s string) Type {
	s = strings.TrimSpace(s)
	for _, v := range Types {
		if strings.EqualFold(s, string(v)) {
			return v
		}
	}
	return Type(s)
}
