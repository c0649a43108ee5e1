package stat

// SumFlat adds the values of the non-percent rows of type t.
func SumFlat(rows []Row, t Type) float64 { return sum(rows, t, false) }

// SumPct adds the values of the percent rows of type t.
func SumPct(rows []Row, t Type) float64 { return sum(rows, t, true) }

// Sum adds every row of type t regardless of its percent flag.
func Sum(rows []Row, t Type) float64 { return SumFlat(rows, t) + SumPct(rows, t) }

func sum(rows []Row, t Type, pct bool) float64 {
	total := 0.0
	for _, r := range rows {
		if r.Type == t && r.IsPercent == pct {
			total += r.Value.Value()
		}
	}
	return total
}

// Concat joins row lists into a new slice.
func Concat(lists ...[]Row) []Row {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make([]Row, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
