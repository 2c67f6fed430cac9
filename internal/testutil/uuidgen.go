package testutil

// FixedUUIDGenerator generates the same identifier every time, or a
// predetermined sequence of identifiers. This enables deterministic test
// execution and golden-file comparison: the same LLKB write or heal attempt
// produces a byte-identical record regardless of which machine ran the test.
//
// Thread-safety: FixedUUIDGenerator is not safe for concurrent use; tests
// that need concurrency should give each goroutine its own instance.
type FixedUUIDGenerator struct {
	ids []string
	pos int
}

// NewFixedUUIDGenerator creates a generator that cycles through ids in
// order, repeating the last one once exhausted. If ids is empty, Generate
// returns "00000000-0000-0000-0000-000000000000".
func NewFixedUUIDGenerator(ids ...string) *FixedUUIDGenerator {
	if len(ids) == 0 {
		ids = []string{"00000000-0000-0000-0000-000000000000"}
	}
	return &FixedUUIDGenerator{ids: ids}
}

// Generate returns the next fixed identifier.
func (g *FixedUUIDGenerator) Generate() string {
	id := g.ids[g.pos]
	if g.pos < len(g.ids)-1 {
		g.pos++
	}
	return id
}

// Reset rewinds the generator to its first identifier.
func (g *FixedUUIDGenerator) Reset() {
	g.pos = 0
}
