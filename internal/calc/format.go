package calc

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Numbers are grouped the way the in-game tooltips show them.
var printer = message.NewPrinter(language.English)

func signed(v float64, decimals int) string {
	sign := ""
	if v >= 0 {
		sign = "+"
	}
	return sign + printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}

func writeRange(b *strings.Builder, label string, r Range) {
	printer.Fprintf(b, "%-13s %d – %d\n", label+":", r.Min, r.Max)
}

// FormatResult renders one side as plain text.
func FormatResult(r Result, s SkillConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s skill %s%%", r.Side, s.Type, s.Pct)
	if s.Element != ElementNone {
		fmt.Fprintf(&b, " (%s)", s.Element)
	}
	fmt.Fprintf(&b, " patch %d\n", s.PatchLv)

	printer.Fprintf(&b, "STR %d / AGI %d / INT %d\n", r.Str, r.Agi, r.Int)
	printer.Fprintf(&b, "Physical Attack: %d – %d\n", r.PhysAtk.Min, r.PhysAtk.Max)
	printer.Fprintf(&b, "Magic Attack:    %d – %d\n", r.MagAtk.Min, r.MagAtk.Max)
	fmt.Fprintf(&b, "Fire %.1f%% / Ice %.1f%% / Light %.1f%% / Dark %.1f%%\n",
		r.FirePct, r.IcePct, r.LightPct, r.DarkPct)
	printer.Fprintf(&b, "Final Damage: %.1f%% (raw %.0f", r.FDPercent, r.FDRaw)
	if r.FDToCap > 0 {
		printer.Fprintf(&b, ", %.0f to cap", r.FDToCap)
	}
	b.WriteString(")\n")

	writeRange(&b, "Base", r.Base)
	writeRange(&b, "Elemental", r.Elemental)
	writeRange(&b, "Final Damage", r.FinalDamage)
	writeRange(&b, "Critical", r.Critical)
	return b.String()
}

func writeRangeDiff(b *strings.Builder, label string, cur, next Range, d RangeDiff) {
	printer.Fprintf(b, "%-13s %d – %d -> %d – %d (%s / %s, avg %s%%)\n",
		label+":", cur.Min, cur.Max, next.Min, next.Max,
		signed(float64(d.Min), 0), signed(float64(d.Max), 0), signed(d.AvgPct, 1))
}

// FormatComparison renders both sides and their difference.
func FormatComparison(c Comparison, s SkillConfig) string {
	var b strings.Builder
	b.WriteString(FormatResult(c.Current, s))
	b.WriteString("===================\n")

	d := c.Diff
	fmt.Fprintf(&b, "STR %s / AGI %s / INT %s\n",
		signed(float64(d.Str), 0), signed(float64(d.Agi), 0), signed(float64(d.Int), 0))
	fmt.Fprintf(&b, "Physical Attack %s%% / Magic Attack %s%%\n", signed(d.PhysAtkPct, 1), signed(d.MagAtkPct, 1))
	fmt.Fprintf(&b, "Fire %s / Ice %s / Light %s / Dark %s / Final Damage %s\n",
		signed(d.FirePct, 1), signed(d.IcePct, 1), signed(d.LightPct, 1), signed(d.DarkPct, 1), signed(d.FDPercent, 1))

	writeRangeDiff(&b, "Base", c.Current.Base, c.Comparison.Base, d.Base)
	writeRangeDiff(&b, "Elemental", c.Current.Elemental, c.Comparison.Elemental, d.Elemental)
	writeRangeDiff(&b, "Final Damage", c.Current.FinalDamage, c.Comparison.FinalDamage, d.FinalDamage)
	writeRangeDiff(&b, "Critical", c.Current.Critical, c.Comparison.Critical, d.Critical)

	if len(d.Stats) > 0 {
		parts := make([]string, 0, len(d.Stats))
		for _, sd := range d.Stats {
			sign := ""
			if sd.Delta > 0 {
				sign = "+"
			}
			parts = append(parts, fmt.Sprintf("%s %s%s", sd.Type, sign, strconv.FormatFloat(sd.Delta, 'f', -1, 64)))
		}
		fmt.Fprintf(&b, "Stats: %s\n", strings.Join(parts, ", "))
	}
	return b.String()
}
