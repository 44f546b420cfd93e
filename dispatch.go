package goexpect

import (
	"context"
	"fmt"
	"strings"

	"github.com/reoring/goexpect/internal/diag"
)

// dispatch is the engine core: preprocess negation, shortlist candidates via
// the phrase index, structurally parse each, resolve the unique best match,
// execute it, and apply inversion semantics. Conjunction splitting only runs
// when no single definition consumes the whole argument list, so a definition
// declaring "and" as a literal slot always wins over the splitter.
func dispatch(ctx context.Context, p *pool, subject any, phrase string, params []any) error {
	stripped, inverted := strings.CutPrefix(strings.TrimSpace(phrase), negationPrefix)

	args := make([]any, 0, len(params)+2)
	args = append(args, subject, stripped)
	args = append(args, params...)

	type match struct {
		def *Assertion
		pr  parsed
	}
	var matches []match
	for _, cand := range p.candidates(strings.ToLower(stripped)) {
		if pr := cand.parseValues(ctx, args); pr.ok {
			matches = append(matches, match{def: cand, pr: pr})
		}
	}

	var chosen match
	switch len(matches) {
	case 0:
		if clauses, ok := splitConjunction(stripped, params); ok {
			return dispatchClauses(ctx, p, subject, clauses, inverted)
		}
		rawArgs := append([]any{subject, phrase}, params...)
		return &UnknownAssertionError{Phrase: phrase, Args: rawArgs}
	case 1:
		chosen = matches[0]
	default:
		// Detect ties by counting, never by first-seen, so the outcome is
		// independent of candidate iteration order.
		var exact []match
		for _, m := range matches {
			if m.pr.exact {
				exact = append(exact, m)
			}
		}
		if len(exact) == 1 {
			chosen = exact[0]
			break
		}
		tied := matches
		if len(exact) > 1 {
			tied = exact
		}
		names := make([]string, len(tied))
		for i, m := range tied {
			names[i] = m.def.String()
		}
		return &AmbiguousAssertionError{Phrase: stripped, Matches: names}
	}

	err := chosen.def.execute(ctx, chosen.pr, args)
	if !inverted {
		return err
	}
	return invertOutcome(err, subject, describePhrase(stripped, params))
}

// invertOutcome swaps the pass/fail interpretation for negated calls.
// Implementation and pool defects propagate regardless of negation.
func invertOutcome(err error, subject any, described string) error {
	if err == nil {
		return &AssertionError{
			Negated: true,
			Message: fmt.Sprintf("expected %s not %s, but it did", diag.Format(subject), described),
		}
	}
	if _, ok := AsAssertionError(err); ok {
		return nil
	}
	return err
}

func describePhrase(phrase string, params []any) string {
	b := &strings.Builder{}
	b.WriteString(phrase)
	for _, p := range params {
		if s, ok := p.(string); ok {
			fmt.Fprintf(b, " %s", s)
			continue
		}
		fmt.Fprintf(b, " %s", diag.Format(p))
	}
	return b.String()
}

// clause is one phrase + params segment of a conjunction chain.
type clause struct {
	phrase string
	params []any
}

// splitConjunction cuts trailing params at bare "and" literals into further
// clauses. It reports false when there is nothing to split or when an "and" is
// not followed by a phrase string, leaving the unknown-assertion error to the
// caller.
func splitConjunction(phrase string, params []any) ([]clause, bool) {
	clauses := []clause{{phrase: phrase}}
	i := 0
	for i < len(params) {
		if s, ok := params[i].(string); ok && s == conjunction {
			if i+1 >= len(params) {
				return nil, false
			}
			next, ok := params[i+1].(string)
			if !ok {
				return nil, false
			}
			clauses = append(clauses, clause{phrase: next})
			i += 2
			continue
		}
		last := len(clauses) - 1
		clauses[last].params = append(clauses[last].params, params[i])
		i++
	}
	if len(clauses) < 2 {
		return nil, false
	}
	return clauses, true
}

// dispatchClauses requires every clause to pass against the same subject.
// Each clause handles its own "not " prefix; a leading "not" on the whole
// call additionally inverts the combined outcome, and its failure message
// names every clause with its parameters.
func dispatchClauses(ctx context.Context, p *pool, subject any, clauses []clause, inverted bool) error {
	run := func() error {
		for _, c := range clauses {
			if err := dispatch(ctx, p, subject, c.phrase, c.params); err != nil {
				return err
			}
		}
		return nil
	}
	err := run()
	if !inverted {
		return err
	}
	described := make([]string, len(clauses))
	for i, c := range clauses {
		described[i] = describePhrase(c.phrase, c.params)
	}
	return invertOutcome(err, subject, strings.Join(described, " "+conjunction+" "))
}
