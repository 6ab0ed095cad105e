package progress

import "fmt"

// Kind classifies a validation failure. A Kind is itself an error so callers
// can match with errors.Is(err, progress.OutOfBounds).
type Kind int

const (
	// OutOfBounds means a juz is outside [1,30] or a page outside [1,20]
	OutOfBounds Kind = iota + 1
	// InvertedRange means the range start comes after its end
	InvertedRange
	// CompletedBelowStart means the completed position is before the target start
	CompletedBelowStart
	// CompletedAboveEnd means the completed position is past the target end
	CompletedAboveEnd
)

func (k Kind) Error() string {
	switch k {
	case OutOfBounds:
		return "position out of bounds"
	case InvertedRange:
		return "range start is after range end"
	case CompletedBelowStart:
		return "completed position is before target start"
	case CompletedAboveEnd:
		return "completed position is after target end"
	}
	return fmt.Sprintf("validation kind %d", int(k))
}

// String returns the short identifier used in logs and JSON payloads
func (k Kind) String() string {
	switch k {
	case OutOfBounds:
		return "out_of_bounds"
	case InvertedRange:
		return "inverted_range"
	case CompletedBelowStart:
		return "completed_below_start"
	case CompletedAboveEnd:
		return "completed_above_end"
	}
	return "unknown"
}

// ValidationError reports which position failed and why
type ValidationError struct {
	Kind     Kind
	Field    string
	Position Position
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s (juz %d, page %d)", e.Field, e.Kind.Error(), e.Position.Juz, e.Position.Page)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Message returns a user facing explanation in Indonesian
func (e *ValidationError) Message() string {
	switch e.Kind {
	case OutOfBounds:
		if e.Position.Juz < MinJuz || e.Position.Juz > MaxJuz {
			return "Juz harus antara 1-30"
		}
		return "Halaman harus antara 1-20"
	case InvertedRange:
		return "Target akhir harus lebih besar atau sama dengan target awal"
	case CompletedBelowStart:
		return "Posisi selesai tidak boleh kurang dari awal target"
	case CompletedAboveEnd:
		return "Posisi selesai tidak boleh melebihi akhir target"
	}
	return e.Error()
}
