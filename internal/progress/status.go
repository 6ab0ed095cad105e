package progress

import (
	"fmt"
	"math"
)

// Status is the completion state of a session
type Status int

const (
	NotStarted Status = iota
	InProgress
	Done
)

// Wire values used by the murojaah backend
const (
	statusNotStarted = "Belum Selesai"
	statusInProgress = "Berjalan"
	statusDone       = "Selesai"
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return statusInProgress
	case Done:
		return statusDone
	}
	return statusNotStarted
}

// ParseStatus maps a backend status string onto a Status
func ParseStatus(s string) (Status, error) {
	switch s {
	case statusNotStarted, "":
		return NotStarted, nil
	case statusInProgress:
		return InProgress, nil
	case statusDone:
		return Done, nil
	}
	return NotStarted, fmt.Errorf("unknown status %q", s)
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes an unknown backend status as NotStarted. The status
// of a session is derived again from its positions, so it never fails.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		parsed = NotStarted
	}
	*s = parsed
	return nil
}

// CompletedPages counts pages from the target start up to completedEnd.
// Completion is always measured from the target start. The None sentinel
// and positions before the start count as zero.
func CompletedPages(target Range, completedEnd Position) int {
	if completedEnd.IsNone() {
		return 0
	}
	n := Range{Start: target.Start, End: completedEnd}.PageCount()
	if n < 0 {
		return 0
	}
	return n
}

// DeriveStatus classifies a session from its target and completed position
func DeriveStatus(target Range, completedEnd Position) Status {
	if completedEnd.IsNone() {
		return NotStarted
	}

	completed := CompletedPages(target, completedEnd)
	total := target.PageCount()

	switch {
	case completed >= total:
		return Done
	case completed > 0:
		return InProgress
	}
	return NotStarted
}

// Percentage returns completed/target*100 clamped to [0,100]
func Percentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(completed) / float64(total) * 100
	return math.Max(0, math.Min(100, p))
}

// Progress is the full evaluation of one session
type Progress struct {
	TargetPages    int     `json:"total_target_halaman"`
	CompletedPages int     `json:"total_selesai_halaman"`
	Status         Status  `json:"status"`
	Percent        float64 `json:"persentase"`
}

// Evaluate computes page totals, status and percentage for a session
func Evaluate(target Range, completedEnd Position) Progress {
	total := target.PageCount()
	completed := CompletedPages(target, completedEnd)
	return Progress{
		TargetPages:    total,
		CompletedPages: completed,
		Status:         DeriveStatus(target, completedEnd),
		Percent:        Percentage(completed, total),
	}
}

// Tier buckets a percentage for display
type Tier int

const (
	TierEmpty Tier = iota
	TierLow
	TierMedium
	TierHigh
	TierComplete
)

// TierOf buckets the rounded percentage: 0, 1-30, 31-70, 71-99, 100
func TierOf(percent float64) Tier {
	p := int(math.Round(percent))
	switch {
	case p >= 100:
		return TierComplete
	case p >= 71:
		return TierHigh
	case p >= 31:
		return TierMedium
	case p > 0:
		return TierLow
	}
	return TierEmpty
}

// Bar renders a ten cell text progress bar
func Bar(percent float64) string {
	filled := int(math.Round(math.Max(0, math.Min(100, percent)) / 10))
	bar := make([]rune, 10)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return string(bar)
}
