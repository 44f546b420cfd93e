package goexpect

// slot is one compiled matcher corresponding one-to-one with a call-argument
// position. Exactly one of literals/schema is set: a literal slot matches the
// raw argument against its allowed phrase(s) and contributes nothing to the
// implementation-facing values; a value slot validates the argument through
// its schema. Value slots compiled from Unknown() accept anything and mark the
// parse result non-exact.
type slot struct {
	literals []string
	schema   Schema
	anyValue bool
}

func (s slot) isLiteral() bool { return s.literals != nil }

// compileSlots derives the slot sequence from a declaration, enforcing the
// structural rules at construction time:
//
//   - parts must be non-empty
//   - no phrase literal may be empty or start with "not "
//   - "and" may only appear immediately followed by a Schema part
//   - a leading Schema requires a phrase at position 1; a leading phrase gets
//     an implicit unknown subject slot prepended
func compileSlots(parts []Part) ([]slot, error) {
	if len(parts) == 0 {
		return nil, &ImplementationError{Reason: "assertion parts must be non-empty"}
	}

	for i, p := range parts {
		lits, ok := phraseLiterals(p)
		if !ok {
			continue
		}
		for _, lit := range lits {
			if err := checkLiteral(lit); err != nil {
				return nil, err
			}
			if lit != conjunction {
				continue
			}
			next := i + 1
			if next >= len(parts) {
				return nil, &ImplementationError{Reason: `"and" can only appear when followed by a schema`}
			}
			if _, isPhrase := phraseLiterals(parts[next]); isPhrase {
				return nil, &ImplementationError{Reason: `"and" can only appear when followed by a schema`}
			}
		}
	}

	slots := make([]slot, 0, len(parts)+1)
	if _, leadingPhrase := phraseLiterals(parts[0]); leadingPhrase {
		// Subject-first shorthand: the subject slot is implicit and accepts
		// anything.
		slots = append(slots, slot{schema: Unknown(), anyValue: true})
	} else {
		if _, ok := parts[0].(Schema); !ok {
			return nil, &ImplementationError{Reason: "expected schema, phrase literal, or phrase literal choice"}
		}
		if len(parts) < 2 {
			return nil, &ImplementationError{Reason: "a leading schema must be followed by a phrase"}
		}
		if _, ok := phraseLiterals(parts[1]); !ok {
			return nil, &ImplementationError{Reason: "a leading schema must be followed by a phrase"}
		}
	}

	for _, p := range parts {
		if lits, ok := phraseLiterals(p); ok {
			slots = append(slots, slot{literals: lits})
			continue
		}
		s, ok := p.(Schema)
		if !ok {
			return nil, &ImplementationError{Reason: "expected schema, phrase literal, or phrase literal choice"}
		}
		slots = append(slots, slot{schema: s, anyValue: isUnknown(s)})
	}
	return slots, nil
}
