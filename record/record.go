// Package record flattens heterogeneous parsed records into uniform rows.
package record

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/ofx2csv/value"
)

// ErrNoRecords is returned when there is nothing to flatten.
var ErrNoRecords = errors.New("no records to flatten")

// Field is one named attribute of a record.
type Field struct {
	Name  string
	Value value.Value
}

// Record is an ordered attribute bag. Names are unique within a record.
type Record []Field

// Get returns the value stored under name.
func (r Record) Get(name string) (value.Value, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Names returns the attribute names in record order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// Union is an ordered set of attribute names.
type Union struct {
	names []string
	index map[string]struct{}
}

// UnionOf collects every attribute name seen in records, in first-seen order.
func UnionOf(records []Record) *Union {
	u := &Union{index: make(map[string]struct{})}
	for _, r := range records {
		for _, f := range r {
			u.Add(f.Name)
		}
	}
	return u
}

// Add inserts name unless it is already present.
func (u *Union) Add(name string) {
	if u.index == nil {
		u.index = make(map[string]struct{})
	}
	if _, ok := u.index[name]; ok {
		return
	}
	u.index[name] = struct{}{}
	u.names = append(u.names, name)
}

func (u *Union) Has(name string) bool {
	_, ok := u.index[name]
	return ok
}

func (u *Union) Len() int { return len(u.names) }

// Names returns a copy of the names in insertion order.
func (u *Union) Names() []string {
	out := make([]string, len(u.names))
	copy(out, u.names)
	return out
}

// Equal reports whether u and names hold the same set, ignoring order.
func (u *Union) Equal(names []string) bool {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if !u.Has(n) {
			return false
		}
		seen[n] = struct{}{}
	}
	return len(seen) == u.Len()
}

// Row is a flattened record: names paired with rendered cell text.
type Row struct {
	keys   []string
	values map[string]string
}

// NewRow builds a row from parallel keys and values.
func NewRow(keys, values []string) Row {
	r := Row{keys: make([]string, 0, len(keys)), values: make(map[string]string, len(keys))}
	for i, k := range keys {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		r.Set(k, v)
	}
	return r
}

// Set stores v under k, appending k if it is new.
func (r *Row) Set(k, v string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[k]; !ok {
		r.keys = append(r.keys, k)
	}
	r.values[k] = v
}

// Keys returns the row's keys in order.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Get returns the cell stored under k.
func (r Row) Get(k string) (string, bool) {
	v, ok := r.values[k]
	return v, ok
}

// Flatten turns records into rows keyed by the union of their attribute
// names. Attributes missing from a record are emitted as empty strings.
func Flatten(records []Record, log zerolog.Logger) ([]Row, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	union := UnionOf(records)
	names := union.Names()

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		cells := make([]string, len(names))
		for i, name := range names {
			if v, ok := rec.Get(name); ok {
				cells[i] = value.Stringify(v, log)
			}
		}
		rows = append(rows, NewRow(names, cells))
	}
	return rows, nil
}
