package conferences

import (
	"cmp"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

//go:generate go tool stringer -type=FilterOperator
type FilterOperator int

const (
	OPERATOR_EQUAL FilterOperator = iota
	OPERATOR_GREATER_THAN
	OPERATOR_GREATER_THAN_OR_EQUAL
	OPERATOR_LESS_THAN
	OPERATOR_LESS_THAN_OR_EQUAL
	OPERATOR_NOT_EQUAL
)

// IsInequality reports whether the operator constrains a range of values.
// The underlying query engine only supports one such field per query.
func (o FilterOperator) IsInequality() bool {
	return o != OPERATOR_EQUAL
}

//go:generate go tool stringer -type=FilterField
type FilterField int

const (
	FIELD_NAME FilterField = iota
	FIELD_CITY
	FIELD_TOPIC
	FIELD_MONTH
	FIELD_MAX_ATTENDEES
	FIELD_SPEAKER
	FIELD_SESSION_TYPE
)

// AttributeName is the stored attribute the field filters and sorts on.
func (f FilterField) AttributeName() string {
	switch f {
	case FIELD_NAME:
		return "Name"
	case FIELD_CITY:
		return "City"
	case FIELD_TOPIC:
		return "Topics"
	case FIELD_MONTH:
		return "Month"
	case FIELD_MAX_ATTENDEES:
		return "MaxAttendees"
	case FIELD_SPEAKER:
		return "Speaker"
	case FIELD_SESSION_TYPE:
		return "SessionType"
	default:
		panic(fmt.Sprintf("unknown filter field: %d", f))
	}
}

func (f FilterField) isNumeric() bool {
	return f == FIELD_MONTH || f == FIELD_MAX_ATTENDEES
}

// Tokens accepted from clients. FIELD_NAME is deliberately absent: it is
// the canonical sort field, not a filterable one.
var fieldTokens = map[string]FilterField{
	"CITY":          FIELD_CITY,
	"TOPIC":         FIELD_TOPIC,
	"MONTH":         FIELD_MONTH,
	"MAX_ATTENDEES": FIELD_MAX_ATTENDEES,
	"SPEAKER":       FIELD_SPEAKER,
	"TYPE":          FIELD_SESSION_TYPE,
}

var operatorTokens = map[string]FilterOperator{
	"EQ":   OPERATOR_EQUAL,
	"GT":   OPERATOR_GREATER_THAN,
	"GTEQ": OPERATOR_GREATER_THAN_OR_EQUAL,
	"LT":   OPERATOR_LESS_THAN,
	"LTEQ": OPERATOR_LESS_THAN_OR_EQUAL,
	"NE":   OPERATOR_NOT_EQUAL,
}

// RawFilter is one user-supplied (field, operator, value) triple, untrusted
// and unvalidated.
type RawFilter struct {
	Field    string
	Operator string
	Value    string
}

// Filter is a validated filter. Value is an int for numeric fields and a
// string otherwise.
type Filter struct {
	Field    FilterField
	Operator FilterOperator
	Value    any
}

// QueryDescriptor is an executable query: the validated filters in the
// order they were supplied, plus the sort order the storage layer must
// apply. At most one field across Filters carries an inequality operator,
// and when one does it leads OrderBy.
type QueryDescriptor struct {
	Filters []Filter
	OrderBy []FilterField
}

// CompileQuery validates user-supplied filters and produces an executable
// descriptor. It performs no I/O.
//
// The inequality field, if any, must sort first, so only one field may
// carry a non-equality operator across the whole query. Repeating
// inequalities on that same field is fine.
func CompileQuery(rawFilters []RawFilter) (QueryDescriptor, error) {
	filters := make([]Filter, 0, len(rawFilters))
	var inequalityField *FilterField

	for _, raw := range rawFilters {
		field, ok := fieldTokens[raw.Field]
		if !ok {
			return QueryDescriptor{}, NewInvalidFilterError("Filter contains invalid field or operator.", nil)
		}
		operator, ok := operatorTokens[raw.Operator]
		if !ok {
			return QueryDescriptor{}, NewInvalidFilterError("Filter contains invalid field or operator.", nil)
		}

		var value any = raw.Value
		if field.isNumeric() {
			n, err := strconv.Atoi(raw.Value)
			if err != nil {
				return QueryDescriptor{}, NewInvalidFilterError(
					fmt.Sprintf("Filter value %q for field %s must be a number.", raw.Value, raw.Field), err)
			}
			value = n
		}

		if operator.IsInequality() {
			if inequalityField != nil && *inequalityField != field {
				return QueryDescriptor{}, NewInvalidFilterError("Inequality filter is allowed on only one field.", nil)
			}
			inequalityField = &field
		}

		filters = append(filters, Filter{Field: field, Operator: operator, Value: value})
	}

	orderBy := []FilterField{FIELD_NAME}
	if inequalityField != nil {
		orderBy = []FilterField{*inequalityField, FIELD_NAME}
	}

	return QueryDescriptor{Filters: filters, OrderBy: orderBy}, nil
}

// Sort orders conferences per the descriptor, in place. Storage backends
// that cannot sort server-side apply this after filtering.
func (q QueryDescriptor) Sort(confs []Conference) {
	sort.SliceStable(confs, func(i, j int) bool {
		for _, field := range q.OrderBy {
			if c := compareField(confs[i], confs[j], field); c != 0 {
				return c < 0
			}
		}
		return false
	})
}

func compareField(a, b Conference, field FilterField) int {
	switch field {
	case FIELD_NAME:
		return strings.Compare(a.Name, b.Name)
	case FIELD_CITY:
		return strings.Compare(a.City, b.City)
	case FIELD_MONTH:
		return cmp.Compare(a.Month, b.Month)
	case FIELD_MAX_ATTENDEES:
		return cmp.Compare(a.MaxAttendees, b.MaxAttendees)
	case FIELD_TOPIC:
		return strings.Compare(strings.Join(a.Topics, ","), strings.Join(b.Topics, ","))
	default:
		// Session-only fields have no conference attribute to sort on.
		return 0
	}
}
