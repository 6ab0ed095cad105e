package progress

// Entry is the part of a session record the totals need
type Entry struct {
	Target       Range
	CompletedEnd Position
}

// Totals are the page sums of one day
type Totals struct {
	TargetSum    int `json:"total_target_halaman"`
	CompletedSum int `json:"total_selesai_halaman"`
}

// Percent returns the day's completion percentage
func (t Totals) Percent() float64 {
	return Percentage(t.CompletedSum, t.TargetSum)
}

// Add merges two totals
func (t Totals) Add(o Totals) Totals {
	return Totals{TargetSum: t.TargetSum + o.TargetSum, CompletedSum: t.CompletedSum + o.CompletedSum}
}

// DailyTotals sums target and completed page counts over entries.
// The result does not depend on the order of entries.
func DailyTotals(entries []Entry) Totals {
	var t Totals
	for _, e := range entries {
		t.TargetSum += e.Target.PageCount()
		t.CompletedSum += CompletedPages(e.Target, e.CompletedEnd)
	}
	return t
}
