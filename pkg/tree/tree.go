package tree

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"
)

// Kind identifies the variant held by a Node
type Kind int

const (
	// KindScalar is a string, number, boolean or null leaf
	KindScalar Kind = iota
	// KindSequence is an ordered list of nodes
	KindSequence
	// KindMapping is a string-keyed map of nodes
	KindMapping
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Node is one value of a configuration tree.
type Node interface {
	Kind() Kind
	json.Marshaler
}

// Scalar holds a string, bool, int64, float64 or nil.
type Scalar struct {
	Value any
}

// Sequence is an ordered list of nodes.
type Sequence struct {
	Items []Node
}

// Mapping is a string-keyed set of nodes.
type Mapping struct {
	Entries map[string]Node
}

func (*Scalar) Kind() Kind   { return KindScalar }
func (*Sequence) Kind() Kind { return KindSequence }
func (*Mapping) Kind() Kind  { return KindMapping }

// NewMapping returns an empty mapping
func NewMapping() *Mapping {
	return &Mapping{Entries: make(map[string]Node)}
}

// NewScalar wraps a scalar value, normalizing numeric widths
func NewScalar(v any) *Scalar {
	n, err := FromNative(v)
	if s, ok := n.(*Scalar); ok && err == nil {
		return s
	}
	return &Scalar{Value: v}
}

// Get returns the entry for key
func (m *Mapping) Get(key string) (Node, bool) {
	n, ok := m.Entries[key]
	return n, ok
}

// Set assigns key, creating it when absent
func (m *Mapping) Set(key string, n Node) {
	if m.Entries == nil {
		m.Entries = make(map[string]Node)
	}
	m.Entries[key] = n
}

// Keys returns the mapping keys in sorted order
func (m *Mapping) Keys() []string {
	keys := make([]string, 0, len(m.Entries))
	for k := range m.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of items
func (s *Sequence) Len() int {
	return len(s.Items)
}

func (s *Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value)
}

func (s *Sequence) MarshalJSON() ([]byte, error) {
	items := s.Items
	if items == nil {
		items = []Node{}
	}
	return json.Marshal(items)
}

func (m *Mapping) MarshalJSON() ([]byte, error) {
	entries := m.Entries
	if entries == nil {
		entries = map[string]Node{}
	}
	return json.Marshal(entries)
}

// FromNative converts decoder output (JSON, YAML, TOML, HCL) into a Node.
func FromNative(v any) (Node, error) {
	switch val := v.(type) {
	case nil:
		return &Scalar{}, nil
	case Node:
		return val, nil
	case string:
		return &Scalar{Value: val}, nil
	case bool:
		return &Scalar{Value: val}, nil
	case int:
		return &Scalar{Value: int64(val)}, nil
	case int8:
		return &Scalar{Value: int64(val)}, nil
	case int16:
		return &Scalar{Value: int64(val)}, nil
	case int32:
		return &Scalar{Value: int64(val)}, nil
	case int64:
		return &Scalar{Value: val}, nil
	case uint:
		return fromUnsigned(uint64(val)), nil
	case uint8:
		return &Scalar{Value: int64(val)}, nil
	case uint16:
		return &Scalar{Value: int64(val)}, nil
	case uint32:
		return &Scalar{Value: int64(val)}, nil
	case uint64:
		return fromUnsigned(val), nil
	case float32:
		return &Scalar{Value: float64(val)}, nil
	case float64:
		return &Scalar{Value: val}, nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return &Scalar{Value: i}, nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", val.String(), err)
		}
		return &Scalar{Value: f}, nil
	case time.Time:
		return &Scalar{Value: val.Format(time.RFC3339)}, nil
	case []any:
		seq := &Sequence{Items: make([]Node, 0, len(val))}
		for i, item := range val {
			n, err := FromNative(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			seq.Items = append(seq.Items, n)
		}
		return seq, nil
	case map[string]any:
		m := &Mapping{Entries: make(map[string]Node, len(val))}
		for k, item := range val {
			n, err := FromNative(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			m.Entries[k] = n
		}
		return m, nil
	case map[any]any:
		m := &Mapping{Entries: make(map[string]Node, len(val))}
		for k, item := range val {
			key := fmt.Sprint(k)
			n, err := FromNative(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			m.Entries[key] = n
		}
		return m, nil
	}

	// Typed slices and maps ([]string, map[string]string, ...) from decoders
	// that do not produce interface{} containers.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return FromNative(items)
	case reflect.Map:
		entries := make(map[any]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries[iter.Key().Interface()] = iter.Value().Interface()
		}
		return FromNative(entries)
	}
	// Decoder-specific scalars such as TOML local dates.
	if tm, ok := v.(encoding.TextMarshaler); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return nil, err
		}
		return &Scalar{Value: string(text)}, nil
	}
	return nil, fmt.Errorf("unsupported value of type %T", v)
}

func fromUnsigned(u uint64) *Scalar {
	if u > math.MaxInt64 {
		return &Scalar{Value: float64(u)}
	}
	return &Scalar{Value: int64(u)}
}

// ToNative converts a Node into plain Go maps, slices and scalars, the shape
// text/template and encoding/json expect.
func ToNative(n Node) any {
	switch node := n.(type) {
	case *Scalar:
		return node.Value
	case *Sequence:
		out := make([]any, len(node.Items))
		for i, item := range node.Items {
			out[i] = ToNative(item)
		}
		return out
	case *Mapping:
		out := make(map[string]any, len(node.Entries))
		for k, item := range node.Entries {
			out[k] = ToNative(item)
		}
		return out
	}
	return nil
}

// Clone returns a deep copy of n
func Clone(n Node) Node {
	switch node := n.(type) {
	case *Scalar:
		return &Scalar{Value: node.Value}
	case *Sequence:
		out := &Sequence{Items: make([]Node, len(node.Items))}
		for i, item := range node.Items {
			out.Items[i] = Clone(item)
		}
		return out
	case *Mapping:
		out := &Mapping{Entries: make(map[string]Node, len(node.Entries))}
		for k, item := range node.Entries {
			out.Entries[k] = Clone(item)
		}
		return out
	}
	return nil
}

// Equal reports whether a and b hold the same structure and values
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Scalar:
		y, ok := b.(*Scalar)
		return ok && x.Value == y.Value
	case *Sequence:
		y, ok := b.(*Sequence)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Mapping:
		y, ok := b.(*Mapping)
		if !ok || len(x.Entries) != len(y.Entries) {
			return false
		}
		for k, xv := range x.Entries {
			yv, ok := y.Entries[k]
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	}
	return a == nil && b == nil
}
