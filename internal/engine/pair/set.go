package pair

// Spec describes one recognizable autoclosing pair. Open and Close may be
// the same character (quotes).
type Spec struct {
	Open  rune
	Close rune
}

// Set is the collection of pairs the tracker recognizes when inspecting
// insertions. Order is irrelevant; lookups are by opening character.
type Set struct {
	closers map[rune]rune
}

// NewSet builds a set from specs. Later specs with a duplicate opening
// character override earlier ones.
func NewSet(specs []Spec) Set {
	closers := make(map[rune]rune, len(specs))
	for _, s := range specs {
		closers[s.Open] = s.Close
	}
	return Set{closers: closers}
}

// DefaultSet returns the pairs recognized out of the box.
func DefaultSet() Set {
	return NewSet([]Spec{
		{'(', ')'},
		{'[', ']'},
		{'{', '}'},
		{'<', '>'},
		{'\'', '\''},
		{'"', '"'},
		{'`', '`'},
	})
}

// Closer returns the closing character for an opening character.
func (s Set) Closer(open rune) (rune, bool) {
	c, ok := s.closers[open]
	return c, ok
}

// Len returns the number of recognized pairs.
func (s Set) Len() int {
	return len(s.closers)
}
