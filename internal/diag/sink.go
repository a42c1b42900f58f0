package diag

// Sink is an append-only, insertion-ordered list of diagnostics shared by
// the parser and the analyzer for one compile. It is owned by the driver
// (or internal/session on its behalf) and outlives neither pass.
type Sink struct {
	diags []Diagnostic
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

// Add appends d to the sink. Diagnostics are never deduplicated.
func (s *Sink) Add(d Diagnostic) {
	s.diags = append(s.diags, d)
}

// Empty returns whether no diagnostic has been added.
func (s *Sink) Empty() bool {
	return len(s.diags) == 0
}

// Len returns the number of diagnostics added so far.
func (s *Sink) Len() int {
	return len(s.diags)
}

// All returns the diagnostics in insertion order. The returned slice must
// not be mutated by the caller.
func (s *Sink) All() []Diagnostic {
	return s.diags
}

// HasFatal returns whether any diagnostic added so far is Fatal (currently
// only IllegalCharacter is).
func (s *Sink) HasFatal() bool {
	for _, d := range s.diags {
		if d.Fatal {
			return true
		}
	}
	return false
}
