package goexpect

import (
	"strings"
)

// Part is one element of an assertion declaration: a phrase literal (plain
// string), a PhraseChoice, or a Schema. Ordering matters: a declaration that
// starts with a phrase uses the subject-first shorthand (the subject slot is
// implicit and accepts anything); a declaration that starts with a Schema
// declares the subject type explicitly and must put a phrase right after it.
type Part = any

// PhraseChoice is an ordered set of interchangeable phrase aliases at one
// position, e.g. PhraseChoice{"to be at least", "to be gte"}.
type PhraseChoice []string

// conjunction is the reserved literal marking a clause boundary. It may appear
// in a declaration only when immediately followed by a Schema part.
const conjunction = "and"

// negationPrefix is reserved for the dispatcher; declarations must not claim it.
const negationPrefix = "not "

func phraseLiterals(p Part) ([]string, bool) {
	switch t := p.(type) {
	case string:
		return []string{t}, true
	case PhraseChoice:
		return []string(t), true
	}
	return nil, false
}

func checkLiteral(lit string) error {
	if lit == "" {
		return &ImplementationError{Reason: "phrase literal must be non-empty"}
	}
	if strings.HasPrefix(lit, negationPrefix) {
		return &ImplementationError{Reason: `phrase literal must not start with "not "`}
	}
	return nil
}

// renderParts builds the human-readable definition form used in error
// messages and membership checks, e.g. "<number> to be greater than <number>".
func renderParts(parts []Part) string {
	b := &strings.Builder{}
	b.WriteString("<")
	if _, ok := phraseLiterals(parts[0]); ok {
		b.WriteString("unknown")
	} else {
		b.WriteString(schemaName(parts[0].(Schema)))
	}
	b.WriteString(">")
	start := 0
	if _, ok := phraseLiterals(parts[0]); !ok {
		start = 1
	}
	for _, p := range parts[start:] {
		b.WriteString(" ")
		if lits, ok := phraseLiterals(p); ok {
			b.WriteString(strings.Join(lits, "|"))
			continue
		}
		b.WriteString("<" + schemaName(p.(Schema)) + ">")
	}
	return b.String()
}

func schemaName(s Schema) string {
	switch t := s.(type) {
	case kindSchema:
		return t.want
	case numberSchema:
		return "number"
	case unknownSchema:
		return "unknown"
	case patternSchema:
		return "pattern"
	case oneOfSchema:
		return "enum"
	default:
		return "schema"
	}
}
