package calc

import "dn-damage-calc/internal/stat"

// CollectRows gathers every equipment row that applies to side, in a fixed
// order. Set-bonus tiers contribute only when they have a piece count and are
// switched on for that side. Expert stats are read separately by ExpertRows.
func CollectRows(b Build, side stat.Side) []stat.Row {
	var lists [][]stat.Row
	add := func(pairs ...stat.Pair) {
		for _, p := range pairs {
			lists = append(lists, p.Rows(side))
		}
	}

	for _, w := range []Weapon{b.WeaponMain, b.WeaponSub} {
		add(w.Stat, w.Enhanced, w.Potential)
	}
	for _, a := range b.ArmorSlots {
		add(a.Stat, a.Enhanced, a.Potential)
	}
	lists = append(lists, b.GeneralSetBonus.ActiveRows(side))

	add(withPotential(b.GeneralAcc, b.GeneralAccPot)...)
	lists = append(lists, b.GeneralAccSetBonus.ActiveRows(side))

	for _, c := range b.CostumeSlots {
		add(c.Stat, c.Enhanced, c.Potential)
	}
	lists = append(lists, b.CostumeSetBonus.ActiveRows(side))

	add(withPotential(b.CostumeAcc, b.CostumeAccPot)...)
	lists = append(lists, b.CostumeAccSetBonus.ActiveRows(side))

	add(b.HeraldryUnique...)
	add(b.HeraldryFree...)
	add(b.Runes...)
	add(b.CardStats, b.CostumeCollection, b.TitleStats)

	return stat.Concat(lists...)
}

// ExpertRows returns the expert stat rows for side.
func ExpertRows(b Build, side stat.Side) []stat.Row {
	return b.ExpertStats.Rows(side)
}

// withPotential pairs each accessory with its potential slot.
func withPotential(acc, pot []stat.Pair) []stat.Pair {
	out := make([]stat.Pair, 0, len(acc)+len(pot))
	for i := 0; i < max(len(acc), len(pot)); i++ {
		if i < len(acc) {
			out = append(out, acc[i])
		}
		if i < len(pot) {
			out = append(out, pot[i])
		}
	}
	return out
}
