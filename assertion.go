package goexpect

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// SyncImpl is the function shape behind sync function-backed assertions. It
// receives the slot-parsed values (subject first, literal slots elided) and
// returns one of: nil/true (pass), false (generic failure), a Schema to
// validate the subject against, a *Failure, or a goskema.Issues/error
// describing the failure. Anything else is an implementation error.
type SyncImpl func(values ...any) any

// AsyncImpl is the function shape behind async function-backed assertions.
// The returned value is interpreted like SyncImpl's; the error return carries
// validation failures (goskema.Issues) or implementation defects.
type AsyncImpl func(ctx context.Context, values ...any) (any, error)

// Assertion is one immutable registered definition: its declared parts, the
// compiled slots, the implementation, and a stable identity. Create via
// NewAssertion or NewAsyncAssertion; pools share Assertion values freely after
// extension.
type Assertion struct {
	id    string
	parts []Part
	slots []slot
	repr  string
	async bool

	schemaImpl Schema
	syncFn     SyncImpl
	asyncFn    AsyncImpl

	// subjectInline marks schema-backed definitions whose only value slot is
	// the subject: parseValues validates the subject inline and caches the
	// outcome so execute need not re-validate.
	subjectInline bool
}

// NewAssertion registers-nothing-yet: it compiles a sync-family definition
// from parts and an implementation (a Schema or a SyncImpl-shaped function).
// Malformed parts or impl fail here, at construction time, never at dispatch.
func NewAssertion(parts []Part, impl any) (*Assertion, error) {
	a, err := newAssertion(parts, false)
	if err != nil {
		return nil, err
	}
	switch t := impl.(type) {
	case nil:
		return nil, &ImplementationError{Assertion: a.repr, Reason: "impl must not be nil"}
	case Schema:
		a.schemaImpl = t
	case SyncImpl:
		a.syncFn = t
	case func(values ...any) any:
		a.syncFn = t
	default:
		return nil, &ImplementationError{Assertion: a.repr, Reason: "impl must be a Schema or func(values ...any) any"}
	}
	a.subjectInline = a.schemaImpl != nil && a.onlyValueSlotIsSubject()
	return a, nil
}

// NewAsyncAssertion compiles an async-family definition. The implementation is
// a Schema or an AsyncImpl-shaped function; async definitions dispatch only
// through ExpectAsync.
func NewAsyncAssertion(parts []Part, impl any) (*Assertion, error) {
	a, err := newAssertion(parts, true)
	if err != nil {
		return nil, err
	}
	switch t := impl.(type) {
	case nil:
		return nil, &ImplementationError{Assertion: a.repr, Reason: "impl must not be nil"}
	case Schema:
		a.schemaImpl = t
	case AsyncImpl:
		a.asyncFn = t
	case func(ctx context.Context, values ...any) (any, error):
		a.asyncFn = t
	default:
		return nil, &ImplementationError{Assertion: a.repr, Reason: "impl must be a Schema or func(ctx, values ...any) (any, error)"}
	}
	a.subjectInline = a.schemaImpl != nil && a.onlyValueSlotIsSubject()
	return a, nil
}

func newAssertion(parts []Part, async bool) (*Assertion, error) {
	slots, err := compileSlots(parts)
	if err != nil {
		return nil, err
	}
	return &Assertion{
		id:    uuid.NewString(),
		parts: parts,
		slots: slots,
		repr:  renderParts(parts),
		async: async,
	}, nil
}

// ID returns the definition's stable synthetic id.
func (a *Assertion) ID() string { return a.id }

// IsAsync reports the definition's family.
func (a *Assertion) IsAsync() bool { return a.async }

// String returns the human-readable definition form, e.g.
// "<number> to be greater than|to be gt <number>".
func (a *Assertion) String() string { return a.repr }

func (a *Assertion) onlyValueSlotIsSubject() bool {
	for _, s := range a.slots[1:] {
		if !s.isLiteral() {
			return false
		}
	}
	return true
}

// phraseKeys lists the lowercased phrase aliases at slot 1 (always a literal
// slot by construction); the phrase index is keyed on these.
func (a *Assertion) phraseKeys() []string {
	keys := make([]string, 0, len(a.slots[1].literals))
	for _, lit := range a.slots[1].literals {
		keys = append(keys, strings.ToLower(lit))
	}
	return keys
}

// parsed is the outcome of matching raw call arguments against one
// definition's slots.
type parsed struct {
	ok bool
	// exact is false when any value slot fell back to the unknown/any
	// acceptor; such results lose tie-breaks against exact ones.
	exact bool
	// values are the implementation-facing arguments: validated value-slot
	// data in declaration order, literal slots elided.
	values []any

	// Cached subject validation for subjectInline definitions.
	subjectChecked bool
	subjectErr     error
}

// parseValues attempts a structural match of args against the compiled slots.
// Slots are validated strictly left to right with short-circuit on the first
// mismatch; this ordering is observable through side-effecting schemas and
// must not change.
func (a *Assertion) parseValues(ctx context.Context, args []any) parsed {
	if len(args) != len(a.slots) {
		return parsed{}
	}
	pr := parsed{ok: true, exact: true, values: make([]any, 0, len(args))}
	for i, s := range a.slots {
		arg := args[i]
		if s.isLiteral() {
			str, isStr := arg.(string)
			if !isStr || !containsString(s.literals, str) {
				return parsed{}
			}
			continue
		}
		if s.anyValue {
			pr.exact = false
			pr.values = append(pr.values, arg)
			if i == 0 && a.subjectInline {
				_, err := a.schemaImpl.Parse(ctx, arg)
				pr.subjectChecked = true
				pr.subjectErr = err
			}
			continue
		}
		data, err := s.schema.Parse(ctx, arg)
		if err != nil {
			return parsed{}
		}
		pr.values = append(pr.values, data)
	}
	return pr
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
