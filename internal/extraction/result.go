package extraction

import "fmt"

// Drop describes one malformed entry removed during normalisation.
type Drop struct {
	// Field is the canonical name of the list the entry came from.
	Field string

	// Index is the entry's position in that list, or -1 for scalar fields.
	Index int

	// Reason says what was wrong.
	Reason string
}

// String implements fmt.Stringer.
func (d Drop) String() string {
	if d.Index < 0 {
		return fmt.Sprintf("%s: %s", d.Field, d.Reason)
	}
	return fmt.Sprintf("%s[%d]: %s", d.Field, d.Index, d.Reason)
}

// Result is a normalised record with the entries dropped on the way.
// A Result with drops is a partial success, not a failure.
type Result[T any] struct {
	Record  T
	Dropped []Drop
}

// add appends drops to the result.
func (r *Result[T]) add(drops ...Drop) {
	r.Dropped = append(r.Dropped, drops...)
}
