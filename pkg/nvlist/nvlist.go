// Package nvlist decodes the native (little-endian) serialized form of the
// kernel's name/value pair lists, as returned in the destination buffer of
// ZFS control ioctls.
//
// Decoded lists own all of their data; nothing aliases the input buffer, so
// results stay valid after the caller reuses the buffer for the next call.
package nvlist

import "fmt"

// Type is the nvpair data type tag (data_type_t in include/sys/nvpair.h).
type Type int32

const (
	TypeBoolean Type = iota + 1 // no payload, presence is the value
	TypeByte
	TypeInt16
	TypeUint16
	TypeInt32
	TypeUint32
	TypeInt64
	TypeUint64
	TypeString
	TypeByteArray
	TypeInt16Array
	TypeUint16Array
	TypeInt32Array
	TypeUint32Array
	TypeInt64Array
	TypeUint64Array
	TypeStringArray
	TypeHrtime
	TypeNvlist
	TypeNvlistArray
	TypeBooleanValue
	TypeInt8
	TypeUint8
	TypeBooleanArray
	TypeInt8Array
	TypeUint8Array
	TypeDouble
)

var typeNames = map[Type]string{
	TypeBoolean:      "boolean",
	TypeByte:         "byte",
	TypeInt16:        "int16",
	TypeUint16:       "uint16",
	TypeInt32:        "int32",
	TypeUint32:       "uint32",
	TypeInt64:        "int64",
	TypeUint64:       "uint64",
	TypeString:       "string",
	TypeByteArray:    "byte[]",
	TypeInt16Array:   "int16[]",
	TypeUint16Array:  "uint16[]",
	TypeInt32Array:   "int32[]",
	TypeUint32Array:  "uint32[]",
	TypeInt64Array:   "int64[]",
	TypeUint64Array:  "uint64[]",
	TypeStringArray:  "string[]",
	TypeHrtime:       "hrtime",
	TypeNvlist:       "nvlist",
	TypeNvlistArray:  "nvlist[]",
	TypeBooleanValue: "boolean_value",
	TypeInt8:         "int8",
	TypeUint8:        "uint8",
	TypeBooleanArray: "boolean[]",
	TypeInt8Array:    "int8[]",
	TypeUint8Array:   "uint8[]",
	TypeDouble:       "double",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("type(%d)", int32(t))
}

// Pair is one entry of a List. Value holds the concrete Go representation
// for the pair's Type: bool, int8..uint64, float64, string, []byte,
// []int16..[]uint64, []bool, []string, *List or []*List. A Boolean marker
// pair stores true. Hrtime is stored as int64.
type Pair struct {
	Name  string
	Type  Type
	Value any
}

// List is an ordered name/value pair list. The kernel asserts name
// uniqueness (NV_UNIQUE_NAME); lookups trust it and return the first match.
type List struct {
	pairs []Pair
}

// NewList builds a list from pairs in order. Decoding is the normal way to
// obtain a List; this exists for fakes and fixtures.
func NewList(pairs ...Pair) *List {
	return &List{pairs: pairs}
}

// Len returns the number of pairs.
func (l *List) Len() int {
	return len(l.pairs)
}

// Pairs returns the pairs in wire order.
func (l *List) Pairs() []Pair {
	return l.pairs
}

// Keys returns the pair names in wire order.
func (l *List) Keys() []string {
	keys := make([]string, len(l.pairs))
	for i := range l.pairs {
		keys[i] = l.pairs[i].Name
	}
	return keys
}

// Lookup returns the pair with the given name.
func (l *List) Lookup(name string) (*Pair, bool) {
	for i := range l.pairs {
		if l.pairs[i].Name == name {
			return &l.pairs[i], true
		}
	}
	return nil, false
}

// Uint64 returns the named uint64 value.
func (l *List) Uint64(name string) (uint64, bool) {
	if p, ok := l.Lookup(name); ok {
		if v, ok := p.Value.(uint64); ok {
			return v, true
		}
	}
	return 0, false
}

// String returns the named string value.
func (l *List) String(name string) (string, bool) {
	if p, ok := l.Lookup(name); ok {
		if v, ok := p.Value.(string); ok {
			return v, true
		}
	}
	return "", false
}

// List returns the named embedded list.
func (l *List) List(name string) (*List, bool) {
	if p, ok := l.Lookup(name); ok {
		if v, ok := p.Value.(*List); ok {
			return v, true
		}
	}
	return nil, false
}

// Lists returns the named embedded list array.
func (l *List) Lists(name string) ([]*List, bool) {
	if p, ok := l.Lookup(name); ok {
		if v, ok := p.Value.([]*List); ok {
			return v, true
		}
	}
	return nil, false
}

// Uint64s returns the named uint64 array.
func (l *List) Uint64s(name string) ([]uint64, bool) {
	if p, ok := l.Lookup(name); ok {
		if v, ok := p.Value.([]uint64); ok {
			return v, true
		}
	}
	return nil, false
}
