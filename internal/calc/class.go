package calc

import (
	"fmt"
	"strings"

	"dn-damage-calc/internal/stat"
)

// Class is a playable class. The set is closed: anything else is rejected
// when a build is decoded.
type Class int

const (
	Warrior Class = iota
	Archer
	Sorceress
	Cleric
	Academic

	classCount
)

// Classes lists every class in display order.
var Classes = []Class{Warrior, Archer, Sorceress, Cleric, Academic}

// Weights converts final primary stats into base attack.
type Weights struct {
	Str float64 // physical attack per STR
	Agi float64 // physical attack per AGI
	Int float64 // magic attack per INT
}

type classInfo struct {
	name    string
	weights Weights
	primary []stat.Type
}

var classTable = [classCount]classInfo{
	Warrior:   {"Warrior", Weights{Str: 0.5, Agi: 0.25, Int: 0.5}, []stat.Type{stat.STR, stat.AGI}},
	Archer:    {"Archer", Weights{Str: 0.25, Agi: 0.5, Int: 0.5}, []stat.Type{stat.AGI}},
	Sorceress: {"Sorceress", Weights{Str: 0.25, Agi: 0.3, Int: 0.75}, []stat.Type{stat.INT}},
	Cleric:    {"Cleric", Weights{Str: 0.5, Agi: 0.25, Int: 0.5}, []stat.Type{stat.INT}},
	Academic:  {"Academic", Weights{Str: 0.25, Agi: 0.5, Int: 0.5}, []stat.Type{stat.INT, stat.AGI}},
}

func (c Class) valid() bool { return c >= 0 && c < classCount }

// Weights returns the attack coefficients of c.
func (c Class) Weights() Weights {
	if !c.valid() {
		return Weights{}
	}
	return classTable[c].weights
}

// PrimaryStats returns the stats c mainly scales with.
func (c Class) PrimaryStats() []stat.Type {
	if !c.valid() {
		return nil
	}
	return classTable[c].primary
}

func (c Class) String() string {
	if !c.valid() {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classTable[c].name
}

// ParseClass maps a class name to a Class, ignoring case.
func ParseClass(s string) (Class, error) {
	s = strings.TrimSpace(s)
	for i := range classTable {
		if strings.EqualFold(s, classTable[i].name) {
			return Class(i), nil
		}
	}
	return 0, fmt.Errorf("unknown class %q", s)
}

func (c Class) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("unknown class %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Class) UnmarshalText(b []byte) error {
	v, err := ParseClass(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
