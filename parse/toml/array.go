package toml

// Array is an immutable ordered sequence of values. Element kinds are free
// to vary within one array.
type Array struct {
	baseValue
	items []Value
}

// NewArray builds an array value from the given items. The slice is copied,
// so later changes to it do not leak in.
func NewArray(items ...Value) *Array {
	copied := make([]Value, len(items))
	copy(copied, items)
	return &Array{baseValue: baseValue{kind: KindArray}, items: copied}
}

// Len returns the number of items.
func (v *Array) Len() int { return len(v.items) }

// Index returns the item at position i, panicking out of range like a
// slice would.
func (v *Array) Index(i int) Value { return v.items[i] }

// Items returns a copy of the items.
func (v *Array) Items() []Value {
	out := make([]Value, len(v.items))
	copy(out, v.items)
	return out
}

func (v *Array) AsArray() (*Array, error) { return v, nil }

func (v *Array) Untyped() any {
	out := make([]any, len(v.items))
	for i, item := range v.items {
		out[i] = item.Untyped()
	}
	return out
}

func (v *Array) String() string { return v.JSON() }

func (v *Array) JSON() string { return lenientJSON(v) }

func (v *Array) MarshalJSON() ([]byte, error) { return v.appendJSON(nil, true) }

func (v *Array) appendJSON(dst []byte, strict bool) ([]byte, error) {
	dst = append(dst, '[')
	for i, item := range v.items {
		if i > 0 {
			dst = append(dst, ',')
		}
		var err error
		dst, err = item.appendJSON(dst, strict)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, ']'), nil
}
