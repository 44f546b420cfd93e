package goexpect

import (
	"context"

	goskema "github.com/reoring/goskema"
)

// Schema is the opaque per-value validation capability the engine dispatches
// over. Parse returns the validated (possibly coerced) value, or an error.
// Implementations report failures as goskema.Issues so the engine can render
// them; any other error is treated as an implementation defect.
type Schema interface {
	Parse(ctx context.Context, v any) (any, error)
}

// SchemaFunc adapts a plain function into a Schema.
type SchemaFunc func(ctx context.Context, v any) (any, error)

func (f SchemaFunc) Parse(ctx context.Context, v any) (any, error) { return f(ctx, v) }

// unknownSchema accepts any value. Slots compiled from it are flagged
// non-exact so definitions using it lose exact-match tie-breaks.
type unknownSchema struct{}

func (unknownSchema) Parse(ctx context.Context, v any) (any, error) { return v, nil }

// Unknown returns the schema that accepts anything. It backs the implicit
// subject slot of phrase-first definitions and may be used explicitly for
// wildcard parameters.
func Unknown() Schema { return unknownSchema{} }

func isUnknown(s Schema) bool {
	_, ok := s.(unknownSchema)
	return ok
}

// Of adapts a typed goskema.Schema into the engine's any-typed Schema, so
// assertions can be authored directly against goskema's dsl builders:
//
//	goexpect.NewAssertion(
//		[]goexpect.Part{goexpect.Of(dsl.String()), "to be kebab-case"},
//		impl,
//	)
func Of[T any](s goskema.Schema[T]) Schema {
	return SchemaFunc(func(ctx context.Context, v any) (any, error) {
		tv, err := s.Parse(ctx, v)
		if err != nil {
			return nil, err
		}
		return tv, nil
	})
}
