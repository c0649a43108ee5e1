package calc

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"dn-damage-calc/internal/setbonus"
	"dn-damage-calc/internal/stat"
)

// ErrMalformed is returned when an import is not valid JSON.
var ErrMalformed = errors.New("malformed snapshot")

// The browser calculator keeps its state as flat JSON documents: weapon
// fields carry a "Cmp" twin, pairs are two-element arrays and numbers are
// strings. These helpers read that layout with gjson so missing keys degrade
// to blanks instead of failing the import.

func parseNum(v gjson.Result) stat.Num {
	switch v.Type {
	case gjson.Null:
		return stat.Num{}
	case gjson.Number:
		return stat.N(v.Float())
	case gjson.String:
		return stat.ParseNum(v.Str)
	}
	return stat.ParseNum(v.String())
}

func parseField(v gjson.Result, key string) Field {
	return Field{Cur: parseNum(v.Get(key)), Cmp: parseNum(v.Get(key + "Cmp"))}
}

func parseRow(v gjson.Result) stat.Row {
	r := stat.NewRow(stat.ParseType(v.Get("type").String()), parseNum(v.Get("value")), v.Get("isPercent").Bool())
	if id := v.Get("id").String(); id != "" {
		r.ID = id
	}
	return r
}

func parseRows(v gjson.Result) []stat.Row {
	var rows []stat.Row
	v.ForEach(func(_, r gjson.Result) bool {
		rows = append(rows, parseRow(r))
		return true
	})
	return rows
}

func parsePair(v gjson.Result) stat.Pair {
	switch {
	case v.IsArray():
		return stat.Pair{Base: parseRows(v.Get("0")), Alt: parseRows(v.Get("1"))}
	case v.IsObject():
		return stat.Pair{Base: parseRows(v.Get("base")), Alt: parseRows(v.Get("alt"))}
	}
	return stat.EmptyPair()
}

func parsePairs(v gjson.Result, fallback int) []stat.Pair {
	if !v.IsArray() {
		return emptyPairs(fallback)
	}
	var out []stat.Pair
	v.ForEach(func(_, p gjson.Result) bool {
		out = append(out, parsePair(p))
		return true
	})
	return out
}

func parseTiers(v gjson.Result) setbonus.List {
	var snaps []setbonus.Snapshot
	v.ForEach(func(_, t gjson.Result) bool {
		s := setbonus.Snapshot{
			Pieces:     int(t.Get("pieces").Int()),
			EnabledCur: t.Get("enabledCur").Bool(),
			EnabledCmp: t.Get("enabledCmp").Bool(),
		}
		t.Get("effects").ForEach(func(_, e gjson.Result) bool {
			s.Effects = append(s.Effects, setbonus.Effect{ID: e.Get("id").String(), Pair: parsePair(e.Get("pair"))})
			return true
		})
		snaps = append(snaps, s)
		return true
	})
	return setbonus.Restore(snaps)
}

func parseWeapon(v gjson.Result) Weapon {
	return Weapon{
		PhysMin:    parseField(v, "physMin"),
		PhysMax:    parseField(v, "physMax"),
		MagMin:     parseField(v, "magMin"),
		MagMax:     parseField(v, "magMax"),
		EnhPhysMin: parseField(v, "enhPhysMin"),
		EnhPhysMax: parseField(v, "enhPhysMax"),
		EnhMagMin:  parseField(v, "enhMagMin"),
		EnhMagMax:  parseField(v, "enhMagMax"),
		PotPhysMin: parseField(v, "potPhysMin"),
		PotPhysMax: parseField(v, "potPhysMax"),
		PotMagMin:  parseField(v, "potMagMin"),
		PotMagMax:  parseField(v, "potMagMax"),
		Stat:       parsePair(v.Get("statPair")),
		Enhanced:   parsePair(v.Get("enhancedPair")),
		Potential:  parsePair(v.Get("potentialPair")),
	}
}

func parseCostumeSlot(v gjson.Result) CostumeSlot {
	c := CostumeSlot{
		PhysMin: parseField(v, "physMin"),
		PhysMax: parseField(v, "physMax"),
		MagMin:  parseField(v, "magMin"),
		MagMax:  parseField(v, "magMax"),
		Stat:    parsePair(v.Get("statPair")),
	}
	if e := v.Get("enhancedPair"); e.Exists() {
		c.Enhanced = parsePair(e)
	}
	if p := v.Get("potentialPair"); p.Exists() {
		c.Potential = parsePair(p)
	}
	return c
}

// ImportBrowserBuild reads a build saved by the browser calculator. Absent
// sections take their default shape. Only an unknown class or invalid JSON
// fails the import.
func ImportBrowserBuild(raw string) (Build, error) {
	if !gjson.Valid(raw) {
		return Build{}, ErrMalformed
	}
	doc := gjson.Parse(raw)
	b := DefaultBuild()

	if c := doc.Get("class"); c.Exists() {
		class, err := ParseClass(c.String())
		if err != nil {
			return Build{}, err
		}
		b.Class = class
	}
	if w := doc.Get("weaponMain"); w.Exists() {
		b.WeaponMain = parseWeapon(w)
	}
	if w := doc.Get("weaponSub"); w.Exists() {
		b.WeaponSub = parseWeapon(w)
	}
	if a := doc.Get("armorSlots"); a.IsArray() {
		b.ArmorSlots = nil
		a.ForEach(func(_, s gjson.Result) bool {
			b.ArmorSlots = append(b.ArmorSlots, ArmorSlot{
				Stat:      parsePair(s.Get("statPair")),
				Enhanced:  parsePair(s.Get("enhancedPair")),
				Potential: parsePair(s.Get("potentialPair")),
			})
			return true
		})
	}
	if c := doc.Get("costumeSlots"); c.IsArray() {
		b.CostumeSlots = nil
		c.ForEach(func(_, s gjson.Result) bool {
			b.CostumeSlots = append(b.CostumeSlots, parseCostumeSlot(s))
			return true
		})
	}

	b.GeneralSetBonus = parseTiers(doc.Get("generalSetBonus"))
	b.GeneralAccSetBonus = parseTiers(doc.Get("generalAccSetBonus"))
	b.CostumeSetBonus = parseTiers(doc.Get("costumeSetBonus"))
	b.CostumeAccSetBonus = parseTiers(doc.Get("costumeAccSetBonus"))

	b.GeneralAcc = parsePairs(doc.Get("generalAcc"), accessorySlots)
	b.GeneralAccPot = parsePairs(doc.Get("generalAccPot"), accessorySlots)
	b.CostumeAcc = parsePairs(doc.Get("costumeAcc"), accessorySlots)
	b.CostumeAccPot = parsePairs(doc.Get("costumeAccPot"), accessorySlots)
	b.HeraldryUnique = parsePairs(doc.Get("heraldryUnique"), 1)
	b.HeraldryFree = parsePairs(doc.Get("heraldryFree"), 1)
	b.Runes = parsePairs(doc.Get("runes"), 1)

	b.CardStats = parsePair(doc.Get("cardStats"))
	b.CostumeCollection = parsePair(doc.Get("costumeCollection"))
	b.TitleStats = parsePair(doc.Get("titleStats"))
	b.ExpertStats = parsePair(doc.Get("expertStats"))

	b.ClassBaseStr = parseNum(doc.Get("classBaseStr"))
	b.ClassBaseAgi = parseNum(doc.Get("classBaseAgi"))
	b.ClassBaseInt = parseNum(doc.Get("classBaseInt"))
	return b, nil
}

// ImportBrowserSkill reads a skill config saved by the browser calculator.
// Missing keys keep their defaults.
func ImportBrowserSkill(raw string) (SkillConfig, error) {
	if !gjson.Valid(raw) {
		return SkillConfig{}, ErrMalformed
	}
	doc := gjson.Parse(raw)
	s := DefaultSkill()

	if v := doc.Get("skillType"); v.Exists() {
		if err := s.Type.UnmarshalText([]byte(v.String())); err != nil {
			return SkillConfig{}, err
		}
	}
	if v := doc.Get("skillElement"); v.Exists() {
		if err := s.Element.UnmarshalText([]byte(v.String())); err != nil {
			return SkillConfig{}, err
		}
	}
	for key, dst := range map[string]*stat.Num{
		"skillPct":   &s.Pct,
		"fixedValue": &s.Fixed,
		"targetRes":  &s.TargetRes,
		"debuffSum":  &s.DebuffSum,
	} {
		if v := doc.Get(key); v.Exists() {
			*dst = parseNum(v)
		}
	}
	if v := doc.Get("patchLv"); v.Exists() {
		s.PatchLv = int(v.Int())
	}
	if err := s.Validate(); err != nil {
		return SkillConfig{}, fmt.Errorf("import skill: %w", err)
	}
	return s, nil
}
