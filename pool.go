package goexpect

// pool is an ordered collection of definitions of one family plus its derived
// phrase index. Pools are built once and never mutated; extension concatenates
// into a fresh pool so live dispatchers keep referential stability.
type pool struct {
	defs  []*Assertion
	index map[string][]*Assertion
}

// newPool builds a pool and its phrase index. The index maps each lowercased
// slot-1 phrase alias to the definitions that declare it, in pool order, so
// dispatch shortlists candidates without a linear scan.
func newPool(defs []*Assertion) *pool {
	p := &pool{
		defs:  defs,
		index: make(map[string][]*Assertion, len(defs)),
	}
	for _, d := range defs {
		for _, key := range d.phraseKeys() {
			p.index[key] = append(p.index[key], d)
		}
	}
	return p
}

// extend returns a new pool of the receiver's definitions followed by more.
// Existing definitions come first so built-ins keep their structural position;
// true duplicates still trip ambiguity detection at dispatch time.
func (p *pool) extend(more []*Assertion) *pool {
	defs := make([]*Assertion, 0, len(p.defs)+len(more))
	defs = append(defs, p.defs...)
	defs = append(defs, more...)
	return newPool(defs)
}

func (p *pool) candidates(normPhrase string) []*Assertion {
	return p.index[normPhrase]
}
