package store

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemStore is an in-process Store used by the service tests. It keeps rows as
// column-name maps derived from the model gorm tags and mirrors the adapter
// semantics: conjunctive filters, stable ordering, inclusive ranges and soft
// deletes.
type MemStore struct {
	mu     sync.RWMutex
	tables map[string][]map[string]interface{}
}

func NewMemStore() *MemStore {
	return &MemStore{tables: make(map[string][]map[string]interface{})}
}

func (s *MemStore) Insert(table string, row interface{}) error {
	rec, err := structToRow(row)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], rec)
	return nil
}

func (s *MemStore) Find(q Query, dest interface{}) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []map[string]interface{}
	for _, row := range s.tables[q.Table] {
		if !q.IncludeDeleted && !isNilValue(row["delete_at"]) {
			continue
		}
		ok, err := rowMatches(row, q.Filters)
		if err != nil {
			return 0, err
		}
		if ok {
			matched = append(matched, row)
		}
	}

	if len(q.Order) > 0 {
		orderRows(matched, q.Order)
	}

	total := int64(len(matched))
	if q.Range != nil {
		from, to := q.Range.From, q.Range.To
		if from >= len(matched) {
			matched = nil
		} else {
			if to >= len(matched) {
				to = len(matched) - 1
			}
			matched = matched[from : to+1]
		}
	}

	if err := decodeRows(matched, dest); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *MemStore) Update(table, keyColumn string, key interface{}, patch map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.tables[table] {
		if !isNilValue(row["delete_at"]) || !valuesEqual(row[keyColumn], key) {
			continue
		}
		for col, v := range patch {
			row[col] = v
		}
		return nil
	}
	return ErrNotFound
}

func (s *MemStore) Delete(table, keyColumn string, key interface{}) error {
	now := time.Now()
	return s.Update(table, keyColumn, key, map[string]interface{}{"delete_at": &now})
}

func rowMatches(row map[string]interface{}, filters []Filter) (bool, error) {
	for _, f := range filters {
		switch f.Op {
		case OpEq:
			if !valuesEqual(row[f.Field], f.Value) {
				return false, nil
			}
		case OpIn:
			rv := reflect.ValueOf(f.Value)
			if rv.Kind() != reflect.Slice {
				return false, fmt.Errorf("in-set filter on %s needs a slice", f.Field)
			}
			found := false
			for i := 0; i < rv.Len(); i++ {
				if valuesEqual(row[f.Field], rv.Index(i).Interface()) {
					found = true
					break
				}
			}
			if !found {
				return false, nil
			}
		case OpLt, OpLte, OpGte:
			c, ok := compareValues(row[f.Field], f.Value)
			if !ok {
				return false, nil
			}
			switch f.Op {
			case OpLt:
				if c >= 0 {
					return false, nil
				}
			case OpLte:
				if c > 0 {
					return false, nil
				}
			case OpGte:
				if c < 0 {
					return false, nil
				}
			}
		case OpContainsAny:
			needle := strings.ToLower(fmt.Sprintf("%v", f.Value))
			found := false
			for _, field := range f.Fields {
				if s, ok := asString(row[field]); ok &&
					strings.Contains(strings.ToLower(s), needle) {
					found = true
					break
				}
			}
			if !found {
				return false, nil
			}
		default:
			return false, fmt.Errorf("unsupported filter op: %s", f.Op)
		}
	}
	return true, nil
}

func orderRows(rows []map[string]interface{}, orders []Order) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, o := range orders {
			c, ok := compareValues(rows[i][o.Field], rows[j][o.Field])
			if !ok || c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// valuesEqual compares after pointer deref and numeric normalization.
func valuesEqual(a, b interface{}) bool {
	na, aok := normalize(a)
	nb, bok := normalize(b)
	if !aok || !bok {
		return false
	}
	return na == nb
}

// compareValues returns -1/0/1 and whether the pair was comparable. Nil on
// either side is not comparable, matching SQL NULL semantics.
func compareValues(a, b interface{}) (int, bool) {
	na, aok := normalize(a)
	nb, bok := normalize(b)
	if !aok || !bok {
		return 0, false
	}
	switch av := na.(type) {
	case float64:
		bv, ok := nb.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	case string:
		bv, ok := nb.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	}
	return 0, false
}

// normalize reduces a value to float64 (numbers, times) or string. The bool
// result is false for nils and unsupported types.
func normalize(v interface{}) (interface{}, bool) {
	if isNilValue(v) {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if t, ok := rv.Interface().(time.Time); ok {
		return float64(t.UnixNano()), true
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Bool:
		if rv.Bool() {
			return float64(1), true
		}
		return float64(0), true
	}
	return nil, false
}

func asString(v interface{}) (string, bool) {
	if isNilValue(v) {
		return "", false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func isNilValue(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return rv.IsNil()
	}
	return false
}

// structToRow flattens a model struct into a column map keyed by the
// gorm column tags.
func structToRow(row interface{}) (map[string]interface{}, error) {
	rv := reflect.ValueOf(row)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("insert expects a struct, got %T", row)
	}
	rec := make(map[string]interface{})
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		col := columnName(rt.Field(i))
		if col == "" {
			continue
		}
		rec[col] = rv.Field(i).Interface()
	}
	return rec, nil
}

// decodeRows populates dest (*[]T) from column maps.
func decodeRows(rows []map[string]interface{}, dest interface{}) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("find expects a pointer to a slice, got %T", dest)
	}
	sliceVal := dv.Elem()
	elemType := sliceVal.Type().Elem()
	out := reflect.MakeSlice(sliceVal.Type(), 0, len(rows))
	for _, row := range rows {
		elem := reflect.New(elemType).Elem()
		for i := 0; i < elemType.NumField(); i++ {
			col := columnName(elemType.Field(i))
			if col == "" {
				continue
			}
			v, present := row[col]
			if !present {
				continue
			}
			if err := assignValue(elem.Field(i), v); err != nil {
				return fmt.Errorf("column %s: %w", col, err)
			}
		}
		out = reflect.Append(out, elem)
	}
	sliceVal.Set(out)
	return nil
}

func columnName(f reflect.StructField) string {
	tag := f.Tag.Get("gorm")
	for _, part := range strings.Split(tag, ";") {
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}

// assignValue sets a struct field from a stored or patched value, bridging
// pointer-ness and numeric width differences.
func assignValue(field reflect.Value, v interface{}) error {
	if isNilValue(v) {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return nil
	}
	if field.Kind() == reflect.Ptr {
		p := reflect.New(field.Type().Elem())
		if err := assignValue(p.Elem(), v); err != nil {
			return err
		}
		field.Set(p)
		return nil
	}
	if rv.Kind() == reflect.Ptr {
		return assignValue(field, rv.Elem().Interface())
	}
	if rv.Type().ConvertibleTo(field.Type()) {
		field.Set(rv.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", v, field.Type())
}
