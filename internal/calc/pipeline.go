package calc

import (
	"math"

	"dn-damage-calc/internal/stat"
)

// ── rounding ──

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func floor(v float64) int { return int(math.Floor(v)) }

// Range is an integer min/max pair. Min and max are computed separately
// throughout and never derived from each other.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r Range) apply(fn func(int) int) Range { return Range{Min: fn(r.Min), Max: fn(r.Max)} }

// Result is the outcome of one pipeline run for one side.
type Result struct {
	Side stat.Side `json:"side"`

	Str int `json:"str"`
	Agi int `json:"agi"`
	Int int `json:"int"`

	PhysAtk Range `json:"physAtk"`
	MagAtk  Range `json:"magAtk"`
	// Atk is PhysAtk or MagAtk depending on the skill type.
	Atk Range `json:"atk"`

	FirePct  float64 `json:"firePct"`
	IcePct   float64 `json:"icePct"`
	LightPct float64 `json:"lightPct"`
	DarkPct  float64 `json:"darkPct"`
	// ElemPct is the percentage of the skill's element, 0 for none.
	ElemPct float64 `json:"elemPct"`

	FDRaw     float64 `json:"fdRaw"`
	FDPercent float64 `json:"fdPercent"`
	// FDToCap is the raw final damage still missing to reach the cap.
	FDToCap float64 `json:"fdToCap"`

	Base        Range `json:"base"`
	Elemental   Range `json:"elemental"`
	FinalDamage Range `json:"finalDamage"`
	Critical    Range `json:"critical"`
}

// ElementPct returns the reported percentage for e.
func (r Result) ElementPct(e Element) float64 {
	switch e {
	case Fire:
		return r.FirePct
	case Ice:
		return r.IcePct
	case Light:
		return r.LightPct
	case Dark:
		return r.DarkPct
	}
	return 0
}

// ── primary stats ──

func primaryStat(rows []stat.Row, t stat.Type, base stat.Num) int {
	return floor((base.Value() + stat.SumFlat(rows, t)) * (1 + stat.SumPct(rows, t)/100))
}

// ── attack ──

// attackParts holds the inputs of one attack bound before the multiplier.
type attackParts struct {
	flat   float64
	pct    float64
	expert float64
}

func (p attackParts) final(baseWeight float64) int {
	return floor((baseWeight+p.flat)*round3(1+p.pct/100)) + floor(p.expert)
}

type weaponBound func(w Weapon) (flat, enh, pot Field)

var (
	physMin weaponBound = func(w Weapon) (Field, Field, Field) { return w.PhysMin, w.EnhPhysMin, w.PotPhysMin }
	physMax weaponBound = func(w Weapon) (Field, Field, Field) { return w.PhysMax, w.EnhPhysMax, w.PotPhysMax }
	magMin  weaponBound = func(w Weapon) (Field, Field, Field) { return w.MagMin, w.EnhMagMin, w.PotMagMin }
	magMax  weaponBound = func(w Weapon) (Field, Field, Field) { return w.MagMax, w.EnhMagMax, w.PotMagMax }
)

type costumeBound func(c CostumeSlot) Field

var (
	costumePhysMin costumeBound = func(c CostumeSlot) Field { return c.PhysMin }
	costumePhysMax costumeBound = func(c CostumeSlot) Field { return c.PhysMax }
	costumeMagMin  costumeBound = func(c CostumeSlot) Field { return c.MagMin }
	costumeMagMax  costumeBound = func(c CostumeSlot) Field { return c.MagMax }
)

func costumeWeapons(b Build) []CostumeSlot {
	out := make([]CostumeSlot, 0, 2)
	for _, i := range []int{costumeMainWeapon, costumeSubWeapon} {
		if i < len(b.CostumeSlots) {
			out = append(out, b.CostumeSlots[i])
		}
	}
	return out
}

func attackBound(b Build, side stat.Side, t stat.Type, gear, expert []stat.Row, wb weaponBound, cb costumeBound) attackParts {
	p := attackParts{
		flat:   stat.SumFlat(gear, t),
		pct:    stat.SumPct(gear, t),
		expert: stat.SumFlat(expert, t),
	}
	for _, w := range []Weapon{b.WeaponMain, b.WeaponSub} {
		flat, enh, pot := wb(w)
		p.flat += flat.Get(side) + enh.Get(side)
		p.pct += pot.Get(side)
	}
	for _, c := range costumeWeapons(b) {
		p.pct += cb(c).Get(side)
	}
	return p
}

// ── pipeline ──

// Calculate runs the damage pipeline for one side. It is a pure function of
// its inputs. Unknown patch levels contribute no final damage; callers that
// need to reject them should use SkillConfig.Validate.
func Calculate(b Build, s SkillConfig, side stat.Side) Result {
	gear := CollectRows(b, side)
	expert := ExpertRows(b, side)
	r := Result{Side: side}

	r.Str = primaryStat(gear, stat.STR, b.ClassBaseStr)
	r.Agi = primaryStat(gear, stat.AGI, b.ClassBaseAgi)
	r.Int = primaryStat(gear, stat.INT, b.ClassBaseInt)

	w := b.Class.Weights()
	basePhys := float64(r.Str)*w.Str + float64(r.Agi)*w.Agi
	baseMag := float64(r.Int) * w.Int

	r.PhysAtk = Range{
		Min: attackBound(b, side, stat.PhysicalAttack, gear, expert, physMin, costumePhysMin).final(basePhys),
		Max: attackBound(b, side, stat.PhysicalAttack, gear, expert, physMax, costumePhysMax).final(basePhys),
	}
	r.MagAtk = Range{
		Min: attackBound(b, side, stat.MagicAttack, gear, expert, magMin, costumeMagMin).final(baseMag),
		Max: attackBound(b, side, stat.MagicAttack, gear, expert, magMax, costumeMagMax).final(baseMag),
	}
	r.Atk = r.MagAtk
	if s.Type == Physical {
		r.Atk = r.PhysAtk
	}

	all := stat.Concat(gear, expert)
	elem := map[Element]float64{}
	for _, e := range Elements {
		if t := e.StatType(); t != stat.TypeNone {
			elem[e] = stat.SumPct(all, t)
		}
	}
	r.FirePct = round1(elem[Fire])
	r.IcePct = round1(elem[Ice])
	r.LightPct = round1(elem[Light])
	r.DarkPct = round1(elem[Dark])
	r.ElemPct = round1(elem[s.Element])

	// Final Damage pools flat and percent rows alike.
	r.FDRaw = stat.Sum(all, stat.FinalDamage)
	fdPct := FDToPercent(r.FDRaw, s.PatchLv)
	r.FDPercent = round1(fdPct)
	if row, ok := LookupPatch(s.PatchLv); ok {
		r.FDToCap = math.Max(0, row.FD60-r.FDRaw)
	}

	skillPct := s.Pct.Value()
	fixed := s.Fixed.Value()
	elemMul := (1 + elem[s.Element]/100 - s.TargetRes.Value()/100) * (1 + s.DebuffSum.Value()/100)
	fdMul := 1 + math.Min(math.Round(fdPct), fdCap)/100

	r.Base = r.Atk.apply(func(v int) int { return floor(float64(v)*(skillPct/100) + fixed) })
	r.Elemental = r.Base.apply(func(v int) int { return floor(float64(v) * elemMul) })
	r.FinalDamage = r.Elemental.apply(func(v int) int { return floor(float64(v) * fdMul) })
	r.Critical = r.FinalDamage.apply(func(v int) int { return floor(float64(v) * 2) })
	return r
}
