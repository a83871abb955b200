// Package store is the record-store boundary for the compliance domain.
// Everything above it speaks in filters, orders and inclusive ranges; the
// concrete implementations (GORM/MySQL in production, in-memory in tests)
// translate that contract into their own terms. It is the single place where
// the free-string categorical fields meet the database.
package store

import "errors"

// ErrNotFound is returned by Update and Delete when the target key is absent.
var ErrNotFound = errors.New("record not found")

// Op enumerates the comparison operators the adapter supports.
type Op string

const (
	OpEq          Op = "eq"           // field = value
	OpIn          Op = "in"           // field IN value (slice)
	OpLt          Op = "lt"           // field < value
	OpLte         Op = "lte"          // field <= value
	OpGte         Op = "gte"          // field >= value
	OpContainsAny Op = "contains_any" // case-insensitive substring over Fields, OR-joined
)

// Filter is a single predicate. Filters on a Query combine conjunctively.
// For OpContainsAny, Fields lists the columns searched and Value is the
// needle; Field is ignored.
type Filter struct {
	Field  string
	Fields []string
	Op     Op
	Value  interface{}
}

// Order is an order-by term.
type Order struct {
	Field string
	Desc  bool
}

// Range is an inclusive row range [From, To] applied after filtering and
// ordering. From is zero-based.
type Range struct {
	From int
	To   int
}

// Query describes one Find call against a table.
type Query struct {
	Table   string
	Filters []Filter
	Order   []Order
	Range   *Range
	// IncludeDeleted lifts the implicit delete_at IS NULL predicate.
	IncludeDeleted bool
}

// Store is the generic record-store contract consumed by the services.
//
// Find loads matching rows into dest (a pointer to a slice of models) and
// returns the total matching count before the range was applied. Update and
// Delete report a missing key as ErrNotFound so callers can answer 404
// instead of a generic failure. Delete is a soft delete: the row keeps
// existing but drops out of every query.
type Store interface {
	Find(q Query, dest interface{}) (int64, error)
	Insert(table string, row interface{}) error
	Update(table, keyColumn string, key interface{}, patch map[string]interface{}) error
	Delete(table, keyColumn string, key interface{}) error
}

// Eq builds an equality filter.
func Eq(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpEq, Value: value}
}

// In builds an in-set filter.
func In(field string, values interface{}) Filter {
	return Filter{Field: field, Op: OpIn, Value: values}
}

// Lt builds a less-than filter.
func Lt(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpLt, Value: value}
}

// Lte builds a less-or-equal filter.
func Lte(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpLte, Value: value}
}

// Gte builds a greater-or-equal filter.
func Gte(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpGte, Value: value}
}

// Search builds a case-insensitive substring filter over several columns.
func Search(needle string, fields ...string) Filter {
	return Filter{Fields: fields, Op: OpContainsAny, Value: needle}
}
