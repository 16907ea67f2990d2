package database

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Sort specifiers accepted by the list endpoints
const (
	SortIDAsc         = "id.asc"
	SortIDDesc        = "id.desc"
	SortCreatedAtAsc  = "createdAt.asc"
	SortCreatedAtDesc = "createdAt.desc"
)

const DefaultSortOrder = SortIDDesc

// IsValidSortOrder checks if a string is a valid sort order constant
func IsValidSortOrder(order string) bool {
	switch order {
	case SortIDAsc, SortIDDesc, SortCreatedAtAsc, SortCreatedAtDesc:
		return true
	default:
		return false
	}
}

// NormalizeSearchTerm trims the raw query string. An empty result means
// "no filter" and is signalled by ok == false.
func NormalizeSearchTerm(q string) (string, bool) {
	s := strings.TrimSpace(q)
	if s == "" {
		return "", false
	}
	return s, true
}

// SubstringMatchAny builds a case-insensitive OR-of-substring predicate
// across the given columns. Returns nil when the term is empty or no
// columns are given, meaning "match everything".
func SubstringMatchAny(term string, columns []string) sq.Sqlizer {
	if term == "" || len(columns) == 0 {
		return nil
	}
	like := "%" + strings.ToLower(term) + "%"
	parts := make(sq.Or, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, sq.Like{"LOWER(" + col + ")": like})
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return parts
}

// RangePredicate builds a conjunction of ">= min" / "<= max" bounds on a
// column, omitting absent bounds. Returns nil when both are absent.
func RangePredicate(column string, min, max *time.Time) sq.Sqlizer {
	var parts sq.And
	if min != nil {
		parts = append(parts, sq.GtOrEq{column: *min})
	}
	if max != nil {
		parts = append(parts, sq.LtOrEq{column: *max})
	}
	switch len(parts) {
	case 0:
		return nil
	case 1:
		return parts[0]
	default:
		return parts
	}
}

// ConjunctionOfAll ANDs all non-nil predicates. A single predicate
// collapses to itself; all-absent collapses to nil ("match everything").
func ConjunctionOfAll(preds ...sq.Sqlizer) sq.Sqlizer {
	var present sq.And
	for _, p := range preds {
		if p != nil {
			present = append(present, p)
		}
	}
	switch len(present) {
	case 0:
		return nil
	case 1:
		return present[0]
	default:
		return present
	}
}

// ResolveSort parses a "field.direction" specifier against a map of
// allowed sort fields to column names and returns a concrete ORDER BY
// clause plus the canonical specifier it applied, so callers can echo
// back what the query actually used. Malformed or unknown input falls
// back to the default; it never fails.
func ResolveSort(spec string, columns map[string]string, defaultKey, defaultDir string) (order, applied string) {
	key, dir := defaultKey, defaultDir
	if parts := strings.SplitN(spec, ".", 2); len(parts) == 2 {
		if _, ok := columns[parts[0]]; ok && (parts[1] == "asc" || parts[1] == "desc") {
			key, dir = parts[0], parts[1]
		}
	}
	col, ok := columns[key]
	if !ok {
		// misconfigured default; fall back to the first mapped column
		for _, c := range columns {
			col = c
			break
		}
	}
	if dir != "asc" && dir != "desc" {
		dir = "desc"
	}
	return col + " " + strings.ToUpper(dir), key + "." + dir
}
