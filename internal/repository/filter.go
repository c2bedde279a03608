package repository

import (
	"fmt"
	"strings"
)

// filterBuilder collects WHERE predicates as an ordered list of clause +
// parameter pairs and renders them with positional placeholders. It replaces
// ad-hoc string concatenation for the admin search queries.
type filterBuilder struct {
	clauses []string
	args    []any
}

func newFilterBuilder() *filterBuilder {
	return &filterBuilder{}
}

// Where appends a predicate. The clause uses ? markers which are rewritten to
// $n placeholders in order.
func (b *filterBuilder) Where(clause string, args ...any) *filterBuilder {
	b.clauses = append(b.clauses, clause)
	b.args = append(b.args, args...)
	return b
}

// WhereIf appends the predicate only when cond holds.
func (b *filterBuilder) WhereIf(cond bool, clause string, args ...any) *filterBuilder {
	if cond {
		b.Where(clause, args...)
	}
	return b
}

// SQL renders "WHERE c1 AND c2 ..." with $n placeholders starting at startArg.
// Returns the empty string when no predicates were added.
func (b *filterBuilder) SQL(startArg int) string {
	if len(b.clauses) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(" WHERE ")
	n := startArg
	for i, clause := range b.clauses {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		for _, r := range clause {
			if r == '?' {
				fmt.Fprintf(&sb, "$%d", n)
				n++
				continue
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Args returns the parameters in placeholder order.
func (b *filterBuilder) Args() []any {
	return b.args
}

// ArgsWith appends extra trailing parameters (limit/offset) after the
// predicate args.
func (b *filterBuilder) ArgsWith(extra ...any) []any {
	out := make([]any, 0, len(b.args)+len(extra))
	out = append(out, b.args...)
	out = append(out, extra...)
	return out
}

func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}
