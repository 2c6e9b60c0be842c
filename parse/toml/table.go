package toml

import (
	"fmt"
	"sort"
)

// Table is an immutable mapping from single key segments to values. Nesting
// is ordinary composition, a Table value stored under one segment; the
// dotted lookups below traverse it at query time.
type Table struct {
	baseValue
	entries map[string]Value
}

// newTable takes ownership of entries; callers must not keep writing to it.
func newTable(entries map[string]Value, loc *Location) *Table {
	return &Table{baseValue: baseValue{kind: KindTable, loc: loc}, entries: entries}
}

// NewTable builds an immutable table directly from a map of entries, with
// no source location. The map is copied; the values are shared.
func NewTable(entries map[string]Value) *Table {
	snapshot := make(map[string]Value, len(entries))
	for k, v := range entries {
		snapshot[k] = v
	}
	return newTable(snapshot, nil)
}

// Len returns the number of direct entries.
func (t *Table) Len() int { return len(t.entries) }

// Keys returns the direct keys in sorted order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AsMap returns a shallow copy of the direct entries. The values themselves
// are immutable and safe to share.
func (t *Table) AsMap() map[string]Value {
	out := make(map[string]Value, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}

// Get returns the value reached by traversing key through nested tables.
// It never fails: a missing segment, or a non-table value met before the
// last segment, yields (nil, false).
func (t *Table) Get(key Key) (Value, bool) {
	current := t
	for i := 0; i < key.Len()-1; i++ {
		next, ok := current.entries[key.Part(i)]
		if !ok {
			return nil, false
		}
		sub, ok := next.(*Table)
		if !ok {
			return nil, false
		}
		current = sub
	}
	v, ok := current.entries[key.Last()]
	return v, ok
}

// GetPath is Get for a pre-dotted simple key like "server.ports.http". An
// exact single-segment entry wins before the path is split, which keeps
// quoted keys containing dots reachable. A path that does not parse as a
// simple key just reads as absent.
func (t *Table) GetPath(path string) (Value, bool) {
	if v, ok := t.entries[path]; ok {
		return v, true
	}
	key, err := ParseSimpleKey(path)
	if err != nil {
		return nil, false
	}
	return t.Get(key)
}

// Require returns the value at key, or a *MissingKeyError naming the full
// key and this table's location.
func (t *Table) Require(key Key) (Value, error) {
	if v, ok := t.Get(key); ok {
		return v, nil
	}
	return nil, &MissingKeyError{Key: key, Loc: t.loc}
}

// RequirePath is Require for a pre-dotted simple key. Unlike GetPath it
// reports a malformed path instead of treating it as absent.
func (t *Table) RequirePath(path string) (Value, error) {
	if v, ok := t.entries[path]; ok {
		return v, nil
	}
	key, err := ParseSimpleKey(path)
	if err != nil {
		return nil, err
	}
	return t.Require(key)
}

func (t *Table) AsTable() (*Table, error) { return t, nil }

// WithLocation returns a copy of the table pointing at loc. The entries are
// shared; they are immutable anyway.
func (t *Table) WithLocation(loc Location) *Table {
	return newTable(t.entries, &loc)
}

// Rebuild returns a mutable builder seeded with this table's entries, for
// layering more configuration on top of an already parsed document.
func (t *Table) Rebuild() *TableBuilder {
	b := NewTableBuilder()
	for k, v := range t.entries {
		b.entries[k] = v
	}
	if t.loc != nil {
		loc := *t.loc
		b.loc = &loc
	}
	return b
}

func (t *Table) Untyped() any {
	out := make(map[string]any, len(t.entries))
	for k, v := range t.entries {
		out[k] = v.Untyped()
	}
	return out
}

func (t *Table) String() string { return t.JSON() }

func (t *Table) JSON() string { return lenientJSON(t) }

func (t *Table) MarshalJSON() ([]byte, error) { return t.appendJSON(nil, true) }

func (t *Table) appendJSON(dst []byte, strict bool) ([]byte, error) {
	dst = append(dst, '{')
	for i, k := range t.Keys() {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendQuoted(dst, k)
		dst = append(dst, ':')
		var err error
		dst, err = t.entries[k].appendJSON(dst, strict)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, '}'), nil
}

// TableBuilder stages mutations before an immutable Table snapshot.
// Builders come from NewTableBuilder or Table.Rebuild, accumulate Put
// calls, and are consumed exactly once by Build.
//
// Finished single-segment assignments live in entries. A dotted Put stages
// a child builder per first segment instead, so that later writes under the
// same prefix keep merging; Build finalizes the children bottom-up.
type TableBuilder struct {
	entries  map[string]Value
	children map[string]*TableBuilder
	loc      *Location
	maxDepth int
	built    bool
}

// NewTableBuilder returns an empty builder with the default nesting budget.
func NewTableBuilder() *TableBuilder {
	return newTableBuilder(DefaultMaxKeyDepth)
}

func newTableBuilder(maxDepth int) *TableBuilder {
	return &TableBuilder{
		entries:  make(map[string]Value),
		children: make(map[string]*TableBuilder),
		maxDepth: maxDepth,
	}
}

// WithLocation stamps the builder, and therefore the built table, with loc.
func (b *TableBuilder) WithLocation(loc Location) *TableBuilder {
	b.loc = &loc
	return b
}

// Put merges value into the table at key, creating intermediate tables as
// needed. Writing through a path that crosses an existing non-table value
// discards that value: the later write wins, same as assigning the same key
// twice. Keys nested past the depth budget return an *OverflowError.
func (b *TableBuilder) Put(key Key, value Value) error {
	if b.built {
		panic("toml: builder used after Build")
	}
	return b.merge(key, value, 0)
}

// PutPath is Put with a pre-dotted simple key.
func (b *TableBuilder) PutPath(path string, value Value) error {
	key, err := ParseSimpleKey(path)
	if err != nil {
		return err
	}
	return b.Put(key, value)
}

func (b *TableBuilder) merge(key Key, value Value, depth int) error {
	if depth >= b.maxDepth {
		var loc *Location
		if l, ok := key.Location(); ok {
			loc = &l
		}
		return &OverflowError{
			Message: fmt.Sprintf("a key with %d levels of nesting is unreasonably large", depth+key.Len()),
			Loc:     loc,
		}
	}

	first := key.First()
	if key.Len() == 1 {
		b.entries[first] = value
		// a staged subtable under the same segment loses to the new value
		delete(b.children, first)
		return nil
	}

	child, ok := b.children[first]
	if !ok {
		child = newTableBuilder(b.maxDepth)
		if existing, present := b.entries[first]; present {
			if sub, isTable := existing.(*Table); isTable {
				child = sub.Rebuild()
				child.maxDepth = b.maxDepth
			}
			// an existing scalar is simply discarded: the deeper write wins
			delete(b.entries, first)
		}
		if child.loc == nil {
			if l, ok := key.Location(); ok {
				child.loc = &l
			}
		}
		b.children[first] = child
	}
	return child.merge(key.Slice(1, key.Len()), value, depth+1)
}

// Build finalizes every staged child bottom-up and snapshots the entries
// into an immutable Table. The builder is spent afterwards; further Put or
// Build calls panic.
func (b *TableBuilder) Build() *Table {
	if b.built {
		panic("toml: builder used after Build")
	}
	b.built = true
	for segment, child := range b.children {
		b.entries[segment] = child.Build()
	}
	snapshot := make(map[string]Value, len(b.entries))
	for k, v := range b.entries {
		snapshot[k] = v
	}
	return newTable(snapshot, b.loc)
}
