package progress

// ValidateRange checks that both ends of r are inside the domain bounds and
// that r is not inverted.
func ValidateRange(r Range) error {
	if !r.Start.Valid() {
		return &ValidationError{Kind: OutOfBounds, Field: "start", Position: r.Start}
	}
	if !r.End.Valid() {
		return &ValidationError{Kind: OutOfBounds, Field: "end", Position: r.End}
	}
	if r.End.Before(r.Start) {
		return &ValidationError{Kind: InvertedRange, Field: "end", Position: r.End}
	}
	return nil
}

// ValidateCompleted checks a reported completed position against the stored
// target. The None sentinel is always accepted.
func ValidateCompleted(target Range, completedEnd Position) error {
	if completedEnd.IsNone() {
		return nil
	}
	if !completedEnd.Valid() {
		return &ValidationError{Kind: OutOfBounds, Field: "completed", Position: completedEnd}
	}
	if completedEnd.Before(target.Start) {
		return &ValidationError{Kind: CompletedBelowStart, Field: "completed", Position: completedEnd}
	}
	if !target.Contains(completedEnd) {
		return &ValidationError{Kind: CompletedAboveEnd, Field: "completed", Position: completedEnd}
	}
	return nil
}
