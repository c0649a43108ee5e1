package calc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dn-damage-calc/internal/setbonus"
	"dn-damage-calc/internal/stat"
)

func row(t stat.Type, v float64, pct bool) stat.Row { return stat.NewRow(t, stat.N(v), pct) }

func pairOf(rows ...stat.Row) stat.Pair {
	return stat.Pair{Base: rows, Alt: []stat.Row{stat.EmptyRow()}}
}

func physSkill() SkillConfig {
	s := DefaultSkill()
	s.Type = Physical
	return s
}

// verifyResult runs the checklist every pipeline result must satisfy.
func verifyResult(t *testing.T, r Result) {
	t.Helper()
	stages := []struct {
		name string
		rng  Range
	}{
		{"physAtk", r.PhysAtk}, {"magAtk", r.MagAtk}, {"base", r.Base},
		{"elemental", r.Elemental}, {"finalDamage", r.FinalDamage}, {"critical", r.Critical},
	}
	for _, s := range stages {
		prefix := fmt.Sprintf("side %s %s", r.Side, s.name)
		// 1. ranges are independently computed but never inverted for plain gear
		if s.rng.Min > s.rng.Max {
			t.Errorf("%s: min %d > max %d", prefix, s.rng.Min, s.rng.Max)
		}
	}
	// 2. final damage percent is bounded
	if r.FDPercent < 0 || r.FDPercent > 60 {
		t.Errorf("fdPercent %v out of [0, 60]", r.FDPercent)
	}
	// 3. critical doubles final damage
	if r.Critical.Min != 2*r.FinalDamage.Min || r.Critical.Max != 2*r.FinalDamage.Max {
		t.Errorf("critical %v is not twice final damage %v", r.Critical, r.FinalDamage)
	}
	// 4. active attack follows the skill
	if r.Atk != r.PhysAtk && r.Atk != r.MagAtk {
		t.Errorf("atk %v matches neither physical nor magic", r.Atk)
	}
}

func TestScenarioBareWarrior(t *testing.T) {
	b := DefaultBuild()
	b.ClassBaseStr = stat.N(100)
	b.WeaponMain.PhysMin = F(50)
	b.WeaponMain.PhysMax = F(80)

	for _, side := range stat.Sides {
		r := Calculate(b, physSkill(), side)
		verifyResult(t, r)

		assert.Equal(t, 100, r.Str)
		assert.Equal(t, Range{100, 130}, r.PhysAtk)
		assert.Equal(t, Range{0, 0}, r.MagAtk)
		assert.Equal(t, r.PhysAtk, r.Atk)
		assert.Equal(t, Range{100, 130}, r.Base)
		assert.Equal(t, Range{100, 130}, r.Elemental)
		assert.Zero(t, r.FDRaw)
		assert.Zero(t, r.FDPercent)
		assert.Equal(t, Range{100, 130}, r.FinalDamage)
		assert.Equal(t, Range{200, 260}, r.Critical)
	}
}

func fullSorceress() Build {
	b := DefaultBuild()
	b.Class = Sorceress
	b.ClassBaseInt = stat.N(200)
	b.ArmorSlots[0].Stat = pairOf(row(stat.INT, 10, true))

	b.WeaponMain.MagMin = F(100)
	b.WeaponMain.MagMax = F(150)
	b.WeaponMain.PotMagMin = F(1.34)
	b.WeaponMain.PotMagMax = F(2.34)
	b.WeaponSub.EnhMagMin = F(10)
	b.WeaponSub.EnhMagMax = F(10)
	b.CostumeSlots[0].MagMin = F(1)
	b.CostumeSlots[0].MagMax = F(1)

	b.CardStats = pairOf(
		row(stat.MagicAttack, 25, false),
		row(stat.MagicAttack, 10, true),
		row(stat.FireAttack, 20, true),
		row(stat.FireAttack, 100, false),
		row(stat.FinalDamage, 690, false),
	)
	b.ExpertStats = pairOf(
		row(stat.MagicAttack, 7, false),
		row(stat.MagicAttack, 50, true),
		row(stat.FireAttack, 5, true),
		row(stat.FinalDamage, 345, true),
	)
	return b
}

func fireSkill() SkillConfig {
	s := DefaultSkill()
	s.Element = Fire
	s.Pct = stat.N(150)
	s.Fixed = stat.N(20)
	s.TargetRes = stat.N(10)
	s.DebuffSum = stat.N(20)
	return s
}

func TestCalculateAllStages(t *testing.T) {
	r := Calculate(fullSorceress(), fireSkill(), stat.Current)
	verifyResult(t, r)

	assert.Equal(t, 220, r.Int)
	// (165+100+10+25) * round3(1.1234) = 336.9, expert flat added after
	assert.Equal(t, Range{343, 403}, r.MagAtk)
	assert.Equal(t, r.MagAtk, r.Atk)

	assert.Equal(t, 25.0, r.FirePct)
	assert.Equal(t, 25.0, r.ElemPct)
	assert.Zero(t, r.IcePct)

	assert.Equal(t, 1035.0, r.FDRaw)
	assert.Equal(t, 30.0, r.FDPercent)
	assert.Equal(t, 2718.0-1035.0, r.FDToCap)

	assert.Equal(t, Range{534, 624}, r.Base)
	assert.Equal(t, Range{736, 861}, r.Elemental)
	assert.Equal(t, Range{956, 1119}, r.FinalDamage)
	assert.Equal(t, Range{1912, 2238}, r.Critical)
}

func TestFinalDamagePercentRoundsBeforeUse(t *testing.T) {
	b := DefaultBuild()
	b.ExpertStats = pairOf(row(stat.FinalDamage, 34.5*30.6, false))
	s := physSkill()
	s.Pct = stat.N(0)
	s.Fixed = stat.N(100)

	r := Calculate(b, s, stat.Current)
	assert.Equal(t, 30.6, r.FDPercent)
	assert.Equal(t, Range{100, 100}, r.Elemental)
	assert.Equal(t, Range{131, 131}, r.FinalDamage)
}

func TestUnknownPatchContributesNothing(t *testing.T) {
	b := fullSorceress()
	s := fireSkill()
	s.PatchLv = 55

	r := Calculate(b, s, stat.Current)
	assert.Zero(t, r.FDPercent)
	assert.Zero(t, r.FDToCap)
	assert.Equal(t, r.Elemental, r.FinalDamage)
	assert.Error(t, s.Validate())
}

func TestComparisonSideFallsBackPerField(t *testing.T) {
	b := DefaultBuild()
	b.ClassBaseStr = stat.N(100)
	b.WeaponMain.PhysMin = Field{Cur: stat.N(50), Cmp: stat.N(60)}
	b.WeaponMain.PhysMax = F(80)

	cur := Calculate(b, physSkill(), stat.Current)
	cmp := Calculate(b, physSkill(), stat.Comparison)
	assert.Equal(t, Range{100, 130}, cur.PhysAtk)
	assert.Equal(t, Range{110, 130}, cmp.PhysAtk)
}

func TestSetBonusGatesPerSide(t *testing.T) {
	b := DefaultBuild()
	l := setbonus.New(2)
	require.True(t, l.UpdateRow(2, stat.Current, 0, row(stat.STR, 10, false)))
	l.Toggle(2, stat.Current)
	b.GeneralSetBonus = l

	assert.Equal(t, 10, Calculate(b, physSkill(), stat.Current).Str)
	assert.Equal(t, 0, Calculate(b, physSkill(), stat.Comparison).Str)

	l.Toggle(2, stat.Comparison)
	b.GeneralSetBonus = l
	// Tier rows are per side; the comparison side starts blank.
	assert.Equal(t, 0, Calculate(b, physSkill(), stat.Comparison).Str)

	l.CopyToAlt()
	b.GeneralSetBonus = l
	assert.Equal(t, 10, Calculate(b, physSkill(), stat.Comparison).Str)
}

func TestClearedSetBonusSideGrantsNothing(t *testing.T) {
	b := DefaultBuild()
	l := setbonus.New(2)
	require.True(t, l.UpdateRow(2, stat.Current, 0, row(stat.STR, 100, false)))
	require.True(t, l.UpdateRow(2, stat.Comparison, 0, row(stat.STR, 5, false)))
	l.Toggle(2, stat.Current)
	l.Toggle(2, stat.Comparison)
	b.GeneralSetBonus = l
	assert.Equal(t, 5, Calculate(b, physSkill(), stat.Comparison).Str)

	l.ClearSide(2, stat.Comparison)
	b.GeneralSetBonus = l
	require.True(t, l.Enabled(2, stat.Comparison))
	assert.Empty(t, l.Rows(2, stat.Comparison))
	assert.Equal(t, 100, Calculate(b, physSkill(), stat.Current).Str)
	assert.Equal(t, 0, Calculate(b, physSkill(), stat.Comparison).Str)
}

func TestPendingRowsNeverCount(t *testing.T) {
	b := DefaultBuild()
	var l setbonus.List
	l.AddPendingRow(stat.Current, row(stat.STR, 99, false))
	b.CostumeSetBonus = l
	assert.Zero(t, Calculate(b, physSkill(), stat.Current).Str)
}

func TestCalculateIsDeterministic(t *testing.T) {
	b := fullSorceress()
	s := fireSkill()
	for _, side := range stat.Sides {
		assert.Equal(t, Calculate(b, s, side), Calculate(b, s, side))
	}
}

func TestMissingOptionalSections(t *testing.T) {
	b := Build{Class: Archer, ClassBaseAgi: stat.N(100)}
	b.CostumeSlots = []CostumeSlot{{}}
	r := Calculate(b, physSkill(), stat.Comparison)
	verifyResult(t, r)
	assert.Equal(t, Range{50, 50}, r.PhysAtk)
}

func TestCollectRowsSkipsExpert(t *testing.T) {
	b := fullSorceress()
	rows := CollectRows(b, stat.Current)
	assert.Equal(t, 25.0, stat.SumFlat(rows, stat.MagicAttack))
	assert.Equal(t, 7.0, stat.SumFlat(ExpertRows(b, stat.Current), stat.MagicAttack))
}

func TestAccessoryPotentialsAreCollected(t *testing.T) {
	b := DefaultBuild()
	b.GeneralAcc = []stat.Pair{pairOf(row(stat.AGI, 3, false))}
	b.GeneralAccPot = []stat.Pair{pairOf(row(stat.AGI, 4, false)), pairOf(row(stat.AGI, 5, false))}
	assert.Equal(t, 12.0, stat.SumFlat(CollectRows(b, stat.Current), stat.AGI))
}
