package recordstore

import (
	"fmt"
	"strings"
)

// The record store accepts a small string query language in its filter and
// sort parameters, e.g. `hidden = false && stock > 0`, sort `-display_order,-created`.

// Eq builds an equality clause. Strings are single-quoted with escaping,
// everything else is rendered verbatim.
func Eq(field string, value any) string {
	return clause(field, "=", value)
}

// Ne builds an inequality clause.
func Ne(field string, value any) string {
	return clause(field, "!=", value)
}

// Gt builds a greater-than clause.
func Gt(field string, value any) string {
	return clause(field, ">", value)
}

// And joins clauses with the query language's && operator, skipping empties.
func And(clauses ...string) string {
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " && ")
}

// SortDesc renders a descending sort expression over the given fields.
func SortDesc(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, "-"+f)
	}
	return strings.Join(parts, ",")
}

func clause(field, op string, value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%s %s '%s'", field, op, strings.ReplaceAll(v, "'", `\'`))
	default:
		return fmt.Sprintf("%s %s %v", field, op, v)
	}
}
