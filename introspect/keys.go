package introspect

import (
	"fmt"
	"regexp"
	"strings"
)

// MalformedConstraintDefinitionError is returned when the index definition
// behind a primary or unique constraint cannot be parsed.
type MalformedConstraintDefinitionError struct {
	Table      string
	Constraint string
	Definition string
}

func (e *MalformedConstraintDefinitionError) Error() string {
	return fmt.Sprintf("malformed index definition for constraint %q on table %s: %q",
		e.Constraint, e.Table, e.Definition)
}

// Matches pg_get_indexdef output such as
//
//	CREATE UNIQUE INDEX users_pkey ON public.users USING btree (id)
//
// up to the parenthesis opening the key column list. The list itself is read
// by splitIdentifiers, which stops at the first unquoted ")", so trailing
// INCLUDE (...) or WHERE (...) clauses are not mistaken for key columns.
var indexDefPattern = regexp.MustCompile(`\sON\s+.+?\s+USING\s+\w+\s*\(`)

// parseIndexColumns returns the key columns of an index definition in
// declaration order. Quoted identifiers are unquoted.
func parseIndexColumns(def string) ([]string, bool) {
	loc := indexDefPattern.FindStringIndex(def)
	if loc == nil {
		return nil, false
	}
	cols := splitIdentifiers(def[loc[1]:])
	if len(cols) == 0 {
		return nil, false
	}
	return cols, true
}

// splitIdentifiers splits a comma separated identifier list ending at the
// first unquoted ")". Double quoted names may contain commas and parentheses.
// It returns nil when the list is unterminated or has an empty name.
func splitIdentifiers(list string) []string {
	var (
		out    []string
		cur    strings.Builder
		quoted bool
		closed bool
	)
scan:
	for i := 0; i < len(list); i++ {
		c := list[i]
		switch {
		case c == '"' && quoted && i+1 < len(list) && list[i+1] == '"':
			cur.WriteByte('"')
			i++
		case c == '"':
			quoted = !quoted
		case c == ',' && !quoted:
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		case c == ')' && !quoted:
			closed = true
			break scan
		default:
			cur.WriteByte(c)
		}
	}
	if !closed {
		return nil
	}
	out = append(out, strings.TrimSpace(cur.String()))

	for _, name := range out {
		if name == "" {
			return nil
		}
	}
	return out
}
