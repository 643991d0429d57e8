// Package ods implements the Object Data Structure binary container
// format: a self-describing, nested, tagged byte grammar inspired by
// NBT, plus keyed dotted-path navigation and in-place structural edits
// directly over the encoded byte image.
package ods

import "fmt"

// Type identifies the wire type of a Tag. It occupies a single byte in
// the encoded stream.
type Type uint8

// Built-in tag types, see the wire grammar described in SPEC_FULL.md §3.
const (
	TypeInvalid          Type = 0
	TypeString           Type = 1
	TypeInt              Type = 2
	TypeFloat            Type = 3
	TypeDouble           Type = 4
	TypeShort            Type = 5
	TypeLong             Type = 6
	TypeChar             Type = 7
	TypeByte             Type = 8
	TypeList             Type = 9
	TypeMap              Type = 10
	TypeObject           Type = 11
	TypeCompressedObject Type = 12
)

// reservedTypeMax is the highest type-id reserved for built-ins and
// future use; custom tags must register above it.
const reservedTypeMax = 15

func (t Type) String() string {
	switch t {
	case TypeInvalid:
		return "Invalid"
	case TypeString:
		return "String"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeDouble:
		return "Double"
	case TypeShort:
		return "Short"
	case TypeLong:
		return "Long"
	case TypeChar:
		return "Char"
	case TypeByte:
		return "Byte"
	case TypeList:
		return "List"
	case TypeMap:
		return "Map"
	case TypeObject:
		return "Object"
	case TypeCompressedObject:
		return "CompressedObject"
	default:
		if entry, ok := customTagRegistry.get(t); ok {
			return entry.codec.TypeName
		}
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// MapEntry is one (key, value) pair stored inside a Map tag. Key is the
// map's key; Value's own Name is always empty, per the Map-as-named-list
// convention (spec.md §3, §9): the key lives once, in MapEntry.Key, not
// duplicated into the child tag's name.
type MapEntry struct {
	Key   string
	Value Tag
}

// CompressedValue is the decoded, in-memory form of a CompressedObject
// tag's value: the name of the compressor used to wrap the child list,
// plus the children themselves (already decompressed and parsed).
type CompressedValue struct {
	CompressorName string
	Children       []Tag
}

// Tag is the atomic unit of ODS data: a (type, name, value) triple.
// Composite tags (List, Object, Map, CompressedObject) hold further Tags
// in their value.
type Tag struct {
	typ   Type
	name  string
	value any
}

// Type returns the tag's wire type.
func (t Tag) Type() Type { return t.typ }

// Name returns the tag's name as stored on the wire. List children always
// report an empty name; Map children report empty too (the key lives in
// the owning MapEntry).
func (t Tag) Name() string { return t.name }

// Value returns the tag's raw in-memory value. Callers typically prefer
// the typed accessors (StringValue, IntValue, ...) below.
func (t Tag) Value() any { return t.value }

// WithName returns a copy of t with its name replaced. Used when
// re-parenting a tag into a List (which clears names before encoding) and
// when moving a Map entry's key into or out of its child's name.
func (t Tag) WithName(name string) Tag {
	t.name = name
	return t
}

func newTag(typ Type, name string, value any) Tag {
	return Tag{typ: typ, name: name, value: value}
}

// NewStringTag builds a String tag. The value's UTF-8 byte length bounds
// the wire payload directly (no inner length prefix).
func NewStringTag(name, value string) Tag { return newTag(TypeString, name, value) }

// NewIntTag builds a 4-byte, big-endian, signed Int tag.
func NewIntTag(name string, value int32) Tag { return newTag(TypeInt, name, value) }

// NewFloatTag builds a 4-byte IEEE-754 big-endian Float tag.
func NewFloatTag(name string, value float32) Tag { return newTag(TypeFloat, name, value) }

// NewDoubleTag builds an 8-byte IEEE-754 big-endian Double tag.
func NewDoubleTag(name string, value float64) Tag { return newTag(TypeDouble, name, value) }

// NewShortTag builds a 2-byte, big-endian, signed Short tag.
func NewShortTag(name string, value int16) Tag { return newTag(TypeShort, name, value) }

// NewLongTag builds an 8-byte, big-endian, signed Long tag.
func NewLongTag(name string, value int64) Tag { return newTag(TypeLong, name, value) }

// NewCharTag builds a 2-byte, big-endian Char tag carrying one UTF-16
// code unit. Surrogate pairs are not representable in a single CharTag
// (spec.md §9); callers needing a full rune outside the BMP should use a
// StringTag instead.
func NewCharTag(name string, value uint16) Tag { return newTag(TypeChar, name, value) }

// NewByteTag builds a single-byte Byte tag.
func NewByteTag(name string, value byte) Tag { return newTag(TypeByte, name, value) }

// NewListTag builds a List tag. Every child's name is forced to empty at
// encode time regardless of what it carries in memory (spec.md §3, §9).
func NewListTag(name string, children []Tag) Tag { return newTag(TypeList, name, children) }

// NewObjectTag builds an Object tag; children keep their own names.
func NewObjectTag(name string, children []Tag) Tag { return newTag(TypeObject, name, children) }

// NewMapTag builds a Map tag from an ordered slice of entries. Using a
// slice rather than a native Go map preserves wire order on encode and
// tolerates duplicate keys the way the wire grammar does (first match
// wins on lookup; last write wins if later collapsed into a native map
// by the caller).
func NewMapTag(name string, entries []MapEntry) Tag { return newTag(TypeMap, name, entries) }

// NewCompressedObjectTag builds a CompressedObject tag. compressorName
// must name a registered Compressor (see the compressor package and
// RegisterCompressor) at encode time.
func NewCompressedObjectTag(name, compressorName string, children []Tag) Tag {
	return newTag(TypeCompressedObject, name, CompressedValue{CompressorName: compressorName, Children: children})
}

// NewInvalidTag builds an Invalid tag carrying opaque bytes. Only
// materialized by the decoder when tolerant mode is enabled and it meets
// type-id 0 or a type-id with no built-in or registered custom handler
// (spec.md §4.1, §7).
func NewInvalidTag(name string, raw []byte) Tag { return newTag(TypeInvalid, name, raw) }

// StringValue returns the tag's value as a string, and whether the tag
// actually is a String tag.
func (t Tag) StringValue() (string, bool) {
	v, ok := t.value.(string)
	return v, ok && t.typ == TypeString
}

// IntValue returns the tag's value as an int32, and whether the tag
// actually is an Int tag.
func (t Tag) IntValue() (int32, bool) {
	v, ok := t.value.(int32)
	return v, ok && t.typ == TypeInt
}

// FloatValue returns the tag's value as a float32, and whether the tag
// actually is a Float tag.
func (t Tag) FloatValue() (float32, bool) {
	v, ok := t.value.(float32)
	return v, ok && t.typ == TypeFloat
}

// DoubleValue returns the tag's value as a float64, and whether the tag
// actually is a Double tag.
func (t Tag) DoubleValue() (float64, bool) {
	v, ok := t.value.(float64)
	return v, ok && t.typ == TypeDouble
}

// ShortValue returns the tag's value as an int16, and whether the tag
// actually is a Short tag.
func (t Tag) ShortValue() (int16, bool) {
	v, ok := t.value.(int16)
	return v, ok && t.typ == TypeShort
}

// LongValue returns the tag's value as an int64, and whether the tag
// actually is a Long tag.
func (t Tag) LongValue() (int64, bool) {
	v, ok := t.value.(int64)
	return v, ok && t.typ == TypeLong
}

// CharValue returns the tag's value as a uint16 UTF-16 code unit, and
// whether the tag actually is a Char tag.
func (t Tag) CharValue() (uint16, bool) {
	v, ok := t.value.(uint16)
	return v, ok && t.typ == TypeChar
}

// ByteValue returns the tag's value as a byte, and whether the tag
// actually is a Byte tag.
func (t Tag) ByteValue() (byte, bool) {
	v, ok := t.value.(byte)
	return v, ok && t.typ == TypeByte
}

// Children returns the child tags of a List or Object tag, and whether
// the tag actually is one of those composite types.
func (t Tag) Children() ([]Tag, bool) {
	if t.typ != TypeList && t.typ != TypeObject {
		return nil, false
	}
	v, ok := t.value.([]Tag)
	return v, ok
}

// MapEntries returns the entries of a Map tag, and whether the tag
// actually is a Map tag.
func (t Tag) MapEntries() ([]MapEntry, bool) {
	if t.typ != TypeMap {
		return nil, false
	}
	v, ok := t.value.([]MapEntry)
	return v, ok
}

// Compressed returns the decoded CompressedValue of a CompressedObject
// tag, and whether the tag actually is one.
func (t Tag) Compressed() (CompressedValue, bool) {
	if t.typ != TypeCompressedObject {
		return CompressedValue{}, false
	}
	v, ok := t.value.(CompressedValue)
	return v, ok
}

// childList returns the flattened children of any composite tag
// (List, Object, Map, CompressedObject) as a []Tag suitable for
// re-encoding as a value region, or false if t is not composite.
func (t Tag) childList() ([]Tag, bool) {
	switch t.typ {
	case TypeList, TypeObject:
		v, ok := t.value.([]Tag)
		return v, ok
	case TypeMap:
		entries, ok := t.value.([]MapEntry)
		if !ok {
			return nil, false
		}
		children := make([]Tag, len(entries))
		for i, e := range entries {
			children[i] = e.Value.WithName(e.Key)
		}
		return children, true
	case TypeCompressedObject:
		cv, ok := t.value.(CompressedValue)
		if !ok {
			return nil, false
		}
		return cv.Children, true
	default:
		return nil, false
	}
}

// IsComposite reports whether t's value region is itself a list of
// child tags (List, Object, Map, CompressedObject).
func (t Tag) IsComposite() bool {
	switch t.typ {
	case TypeList, TypeObject, TypeMap, TypeCompressedObject:
		return true
	default:
		return false
	}
}
