package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Kind identifies the shape of a Value.
type Kind uint8

// Value kinds, covering the full JSON data model.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single key/value pair of an object. Objects are ordered
// sequences of members so payloads re-encode with their original key order.
type Member struct {
	Key   string
	Value Value
}

// Value is a closed tagged union over the JSON data model: object, array,
// string, number, bool, and null. The zero Value is null.
//
// Values are treated as immutable: the engine never modifies a Value it
// receives, and transformations always build new Values. Numbers keep their
// original literal text so re-encoding a payload is byte-faithful (no
// float64 round-trip drift on large integers or high-precision decimals).
type Value struct {
	kind Kind
	str  string // string payload, or the raw literal for numbers
	boo  bool
	arr  []Value
	obj  []Member
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boo: b}
}

// Number returns a numeric value from a float64.
func Number(f float64) Value {
	return Value{kind: KindNumber, str: strconv.FormatFloat(f, 'g', -1, 64)}
}

// NumberLiteral returns a numeric value carrying the given JSON literal text.
// The caller is responsible for the literal being valid JSON number syntax.
func NumberLiteral(raw string) Value {
	return Value{kind: KindNumber, str: raw}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Array returns an array value with the given items.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: items}
}

// Object returns an object value with the given members, in order.
func Object(members ...Member) Value {
	return Value{kind: KindObject, obj: members}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// StringValue returns the string payload and whether the value is a string.
func (v Value) StringValue() (string, bool) {
	return v.str, v.kind == KindString
}

// NumberValue returns the numeric payload as float64 and whether the value
// is a number that fits one.
func (v Value) NumberValue() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.str, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// NumberLiteralValue returns the raw number literal and whether the value is a number.
func (v Value) NumberLiteralValue() (string, bool) {
	return v.str, v.kind == KindNumber
}

// BoolValue returns the boolean payload and whether the value is a bool.
func (v Value) BoolValue() (bool, bool) {
	return v.boo, v.kind == KindBool
}

// Items returns the array items. The returned slice must not be mutated;
// use Clone for an independent copy.
func (v Value) Items() []Value {
	return v.arr
}

// Members returns the object members in order. The returned slice must not
// be mutated; use Clone for an independent copy.
func (v Value) Members() []Member {
	return v.obj
}

// Get looks up an object member by key. Returns the first match for
// duplicate keys.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.obj {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Len returns the number of items (array) or members (object), zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Clone returns a deep copy with no shared containers.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Clone()
		}
		return Value{kind: KindArray, arr: items}
	case KindObject:
		members := make([]Member, len(v.obj))
		for i, m := range v.obj {
			members[i] = Member{Key: m.Key, Value: m.Value.Clone()}
		}
		return Value{kind: KindObject, obj: members}
	default:
		return v
	}
}

// Equal reports deep equality, including object member order. Numbers are
// compared by literal text.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boo == other.boo
	case KindNumber, KindString:
		return v.str == other.str
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for i := range v.obj {
			if v.obj[i].Key != other.obj[i].Key || !v.obj[i].Value.Equal(other.obj[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// MarshalJSON encodes the value, preserving object member order and number literals.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.boo))
	case KindNumber:
		buf.WriteString(v.str)
	case KindString:
		encoded, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(encoded)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.obj {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// UnmarshalJSON decodes JSON into the value using token streaming, so object
// member order survives the trip through the engine.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	parsed, err := decodeValue(dec)
	if err != nil {
		return err
	}

	// Reject trailing bytes after the first value. Only a clean io.EOF
	// is acceptable; anything else is either a second value or garbage.
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after top-level value")
	}

	*v = parsed
	return nil
}

// ParseJSON decodes a JSON document into a Value.
func ParseJSON(data []byte) (Value, error) {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return Value{}, err
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var members []Member
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				child, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				members = append(members, Member{Key: key, Value: child})
			}
			// Consume the closing '}'
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Object(members...), nil
		case '[':
			var items []Value
			for dec.More() {
				child, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, child)
			}
			// Consume the closing ']'
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Array(items...), nil
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return String(t), nil
	case json.Number:
		return NumberLiteral(t.String()), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

// FromAny converts a decoded interface tree (map[string]any, []any, scalars)
// into a Value. Map key order is not recoverable, so members are sorted by
// key for determinism. Callers needing order fidelity should use ParseJSON.
func FromAny(data any) (Value, error) {
	switch t := data.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case int:
		return NumberLiteral(strconv.Itoa(t)), nil
	case int64:
		return NumberLiteral(strconv.FormatInt(t, 10)), nil
	case json.Number:
		return NumberLiteral(t.String()), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			converted, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = converted
		}
		return Array(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		members := make([]Member, 0, len(keys))
		for _, key := range keys {
			converted, err := FromAny(t[key])
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: key, Value: converted})
		}
		return Object(members...), nil
	default:
		return Value{}, fmt.Errorf("unsupported type %T", data)
	}
}

// ToAny converts the value into the interface tree shape produced by
// encoding/json (map[string]any, []any, scalars). Object order is lost.
func (v Value) ToAny() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boo
	case KindNumber:
		if f, ok := v.NumberValue(); ok {
			return f
		}
		return v.str
	case KindString:
		return v.str
	case KindArray:
		items := make([]any, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.ToAny()
		}
		return items
	case KindObject:
		members := make(map[string]any, len(v.obj))
		for _, m := range v.obj {
			members[m.Key] = m.Value.ToAny()
		}
		return members
	default:
		return nil
	}
}
