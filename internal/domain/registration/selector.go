package registration

// Selector tracks a bounded multi-select group of positions.
// Checked order is selection order.
// INVARIANT: len(Checked()) <= max after any sequence of Toggle calls
type Selector struct {
	options []string
	max     int
	checked []string
	err     error
}

// NewSelector creates a selector over options allowing at most max selections.
// PRE: max > 0
// POST: Returns a selector with nothing checked
func NewSelector(options []string, max int) *Selector {
	if max <= 0 {
		max = MaxPositions
	}
	return &Selector{options: options, max: max}
}

// SelectorFrom builds a selector and replays the given selections in order.
// Selections beyond the limit or outside the options are dropped and leave an error behind.
// PRE: none
// POST: Selector holds at most max of the given values
func SelectorFrom(options []string, max int, selected []string) *Selector {
	s := NewSelector(options, max)
	var firstErr error
	for _, v := range selected {
		if s.IsChecked(v) {
			continue
		}
		if err := s.Toggle(v); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.err = firstErr
	return s
}

// Toggle flips the checked state of value.
// Any earlier error is cleared first. Checking a value while the group is full
// leaves it unchecked and returns ErrTooManyPositions.
// PRE: none
// POST: Count() <= max
func (s *Selector) Toggle(value string) error {
	s.err = nil
	if !contains(s.options, value) {
		s.err = ErrUnknownPosition
		return s.err
	}
	for i, v := range s.checked {
		if v == value {
			s.checked = append(s.checked[:i:i], s.checked[i+1:]...)
			return nil
		}
	}
	if len(s.checked) >= s.max {
		s.err = ErrTooManyPositions
		return s.err
	}
	s.checked = append(s.checked, value)
	return nil
}

// Count returns the number of checked options.
func (s *Selector) Count() int {
	return len(s.checked)
}

// Checked returns a copy of the checked values in selection order.
func (s *Selector) Checked() []string {
	out := make([]string, len(s.checked))
	copy(out, s.checked)
	return out
}

// IsChecked reports whether value is currently checked.
func (s *Selector) IsChecked(value string) bool {
	return contains(s.checked, value)
}

// Disabled reports whether value must be disabled: the group is full and value is not one of the picks.
func (s *Selector) Disabled(value string) bool {
	return len(s.checked) >= s.max && !s.IsChecked(value)
}

// Err returns the error left by the last toggle, if any.
func (s *Selector) Err() error {
	return s.err
}

// Option is the render state of one checkbox.
type Option struct {
	Value    string
	Checked  bool
	Disabled bool
}

// Options returns render state for every option in catalog order.
func (s *Selector) Options() []Option {
	out := make([]Option, 0, len(s.options))
	for _, v := range s.options {
		out = append(out, Option{Value: v, Checked: s.IsChecked(v), Disabled: s.Disabled(v)})
	}
	return out
}
