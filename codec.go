package ods

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/b71729/bin"

	"github.com/ryandw11/ODS/compressor"
)

// headerFixedSize is the length in bytes of type(1) + body_size(4) +
// name_len(2): the fixed prologue preceding every tag's name and value
// (spec.md §3).
const headerFixedSize = 7

// WriteTag encodes t to w and returns the total number of bytes written,
// which equals bodySize(t) + 5 (spec.md §8, property 2).
func WriteTag(w io.Writer, t Tag) (int, error) {
	body, err := encodeBody(t)
	if err != nil {
		return 0, err
	}
	var prologue [5]byte
	prologue[0] = byte(t.typ)
	binary.BigEndian.PutUint32(prologue[1:5], uint32(int32(len(body))))
	if _, err := w.Write(prologue[:]); err != nil {
		return 0, IOErrorf(err, "write tag prologue")
	}
	if _, err := w.Write(body); err != nil {
		return 0, IOErrorf(err, "write tag body")
	}
	return len(prologue) + len(body), nil
}

// encodeBody assembles "name_len(2) + name + value" into a scratch
// buffer so its length is known before body_size is emitted to the real
// sink (spec.md §9's "buffer the body, prepend its length" pattern).
func encodeBody(t Tag) ([]byte, error) {
	var buf bytes.Buffer
	nameBytes := []byte(t.name)
	if len(nameBytes) > 0xFFFF {
		return nil, MalformedErrorf("tag name %q is %d bytes, exceeding the 65535-byte name_len field", t.name, len(nameBytes))
	}
	if err := binary.Write(&buf, binary.BigEndian, uint16(len(nameBytes))); err != nil {
		return nil, IOErrorf(err, "write name_len")
	}
	buf.Write(nameBytes)
	if err := encodeValue(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, t Tag) error {
	switch t.typ {
	case TypeInvalid:
		raw, _ := t.value.([]byte)
		buf.Write(raw)
	case TypeString:
		s, _ := t.value.(string)
		buf.WriteString(s)
	case TypeInt:
		v, _ := t.value.(int32)
		return binary.Write(buf, binary.BigEndian, v)
	case TypeFloat:
		v, _ := t.value.(float32)
		return binary.Write(buf, binary.BigEndian, math.Float32bits(v))
	case TypeDouble:
		v, _ := t.value.(float64)
		return binary.Write(buf, binary.BigEndian, math.Float64bits(v))
	case TypeShort:
		v, _ := t.value.(int16)
		return binary.Write(buf, binary.BigEndian, v)
	case TypeLong:
		v, _ := t.value.(int64)
		return binary.Write(buf, binary.BigEndian, v)
	case TypeChar:
		v, _ := t.value.(uint16)
		return binary.Write(buf, binary.BigEndian, v)
	case TypeByte:
		v, _ := t.value.(byte)
		return buf.WriteByte(v)
	case TypeList, TypeObject, TypeMap:
		// childList() already applies the Map-as-named-list dance (the
		// entry's key becomes its child's wire name); List's own
		// name-clearing rule is the one bit it can't express, since that
		// depends on which composite is doing the writing, not on the
		// child itself.
		children, _ := t.childList()
		for _, c := range children {
			if t.typ == TypeList {
				c = c.WithName("")
			}
			if _, err := WriteTag(buf, c); err != nil {
				return err
			}
		}
	case TypeCompressedObject:
		cv, _ := t.value.(CompressedValue)
		return encodeCompressedObject(buf, cv)
	default:
		entry, ok := customTagRegistry.get(t.typ)
		if !ok || entry.codec.Encode == nil {
			return InvalidCustomTagErrorf("no encoder registered for custom tag type %d", t.typ)
		}
		raw, err := entry.codec.Encode(t)
		if err != nil {
			return err
		}
		buf.Write(raw)
	}
	return nil
}

func encodeCompressedObject(buf *bytes.Buffer, cv CompressedValue) error {
	c, ok := compressor.Lookup(cv.CompressorName)
	if !ok {
		return UnknownCompressorErrorf("no compressor registered under name %q", cv.CompressorName)
	}
	nameBytes := []byte(cv.CompressorName)
	if len(nameBytes) > 0xFFFF {
		return MalformedErrorf("compressor name %q exceeds 65535 bytes", cv.CompressorName)
	}
	if err := binary.Write(buf, binary.BigEndian, uint16(len(nameBytes))); err != nil {
		return IOErrorf(err, "write compressor_name_len")
	}
	buf.Write(nameBytes)

	var inner bytes.Buffer
	for _, child := range cv.Children {
		if _, err := WriteTag(&inner, child); err != nil {
			return err
		}
	}
	w, err := c.WrapWriter(buf)
	if err != nil {
		return IOErrorf(err, "wrap compressor writer for %q", cv.CompressorName)
	}
	if _, err := w.Write(inner.Bytes()); err != nil {
		return IOErrorf(err, "write compressed child list")
	}
	if err := w.Close(); err != nil {
		return IOErrorf(err, "finalize compressed stream")
	}
	return nil
}

// ReadTag decodes a single top-level tag from r.
func ReadTag(r io.Reader) (Tag, error) {
	br := bin.NewReader(r, binary.BigEndian)
	return readTag(&br)
}

// Decode reads tags from r until EOF, returning them in wire order
// (spec.md §4.6 GetAll). A single byte is peeked before each tag to tell
// a clean end-of-stream apart from truncation mid-tag: only the former
// ends the loop without error.
func Decode(r io.Reader) ([]Tag, error) {
	br := bin.NewReader(r, binary.BigEndian)
	var tags []Tag
	var probe [1]byte
	for {
		if err := br.Peek(probe[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return tags, nil
			}
			return nil, IOErrorf(err, "peek next tag")
		}
		t, err := readTag(&br)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
}

// readTag decodes one tag's header, name, and value from br, recursing
// into composite value regions. The recursion bound is an absolute
// position within br's byte-counting stream, not a sub-slice, since br
// only exposes a monotonic position — this mirrors the teacher's
// stream-based ElementReader (element.go) rather than the slice-based
// scout walker in scout.go, which the two distinct teacher iterations
// (root package vs file/parser.go) each modeled one way.
func readTag(br *bin.Reader) (Tag, error) {
	var typByte [1]byte
	if err := br.ReadBytes(typByte[:]); err != nil {
		return Tag{}, IOErrorf(err, "read tag type")
	}
	typ := Type(typByte[0])

	var rawBodySize uint32
	if err := br.ReadUint32(&rawBodySize); err != nil {
		return Tag{}, IOErrorf(err, "read tag body_size")
	}
	bodySize := int32(rawBodySize)

	var nameLen uint16
	if err := br.ReadUint16(&nameLen); err != nil {
		return Tag{}, IOErrorf(err, "read tag name_len")
	}
	if bodySize < int32(2+nameLen) {
		return Tag{}, MalformedErrorf("tag body_size %d is smaller than 2+name_len %d", bodySize, nameLen)
	}

	var name string
	if nameLen > 0 {
		nameBytes := make([]byte, nameLen)
		if err := br.ReadBytes(nameBytes); err != nil {
			return Tag{}, IOErrorf(err, "read tag name")
		}
		name = string(nameBytes)
	}

	valueLen := int64(bodySize) - 2 - int64(nameLen)
	endPos := br.GetPosition() + valueLen

	value, err := decodeBuiltinValue(br, typ, name, endPos)
	if err != nil {
		return Tag{}, err
	}
	if typ > TypeCompressedObject {
		if _, ok := customTagRegistry.get(typ); !ok {
			// Only reachable in tolerant mode: the unknown type's raw
			// value is kept, but the tag itself becomes an Invalid tag.
			typ = TypeInvalid
		}
	}
	return newTag(typ, name, value), nil
}

func readExact(br *bin.Reader, n int64) ([]byte, error) {
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if err := br.ReadBytes(buf); err != nil {
		return nil, IOErrorf(err, "read %d value bytes", n)
	}
	return buf, nil
}

func decodeBuiltinValue(br *bin.Reader, typ Type, name string, endPos int64) (any, error) {
	switch typ {
	case TypeInvalid:
		if !IsTolerantMode() {
			return nil, UnknownTypeErrorf("tag type id %d (Invalid) is only accepted in tolerant mode", typ)
		}
		return readExact(br, endPos-br.GetPosition())
	case TypeString:
		raw, err := readExact(br, endPos-br.GetPosition())
		if err != nil {
			return nil, err
		}
		return string(raw), nil
	case TypeInt:
		var v uint32
		if err := br.ReadUint32(&v); err != nil {
			return nil, IOErrorf(err, "read int value")
		}
		return int32(v), nil
	case TypeFloat:
		var v uint32
		if err := br.ReadUint32(&v); err != nil {
			return nil, IOErrorf(err, "read float value")
		}
		return math.Float32frombits(v), nil
	case TypeDouble:
		var hi, lo uint32
		if err := br.ReadUint32(&hi); err != nil {
			return nil, IOErrorf(err, "read double value")
		}
		if err := br.ReadUint32(&lo); err != nil {
			return nil, IOErrorf(err, "read double value")
		}
		return math.Float64frombits(uint64(hi)<<32 | uint64(lo)), nil
	case TypeShort:
		var v uint16
		if err := br.ReadUint16(&v); err != nil {
			return nil, IOErrorf(err, "read short value")
		}
		return int16(v), nil
	case TypeLong:
		var hi, lo uint32
		if err := br.ReadUint32(&hi); err != nil {
			return nil, IOErrorf(err, "read long value")
		}
		if err := br.ReadUint32(&lo); err != nil {
			return nil, IOErrorf(err, "read long value")
		}
		return int64(uint64(hi)<<32 | uint64(lo)), nil
	case TypeChar:
		var v uint16
		if err := br.ReadUint16(&v); err != nil {
			return nil, IOErrorf(err, "read char value")
		}
		return v, nil
	case TypeByte:
		raw, err := readExact(br, 1)
		if err != nil {
			return nil, err
		}
		return raw[0], nil
	case TypeList, TypeObject:
		var children []Tag
		for br.GetPosition() < endPos {
			child, err := readTag(br)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return children, nil
	case TypeMap:
		var entries []MapEntry
		for br.GetPosition() < endPos {
			child, err := readTag(br)
			if err != nil {
				return nil, err
			}
			// The child's name is the map key; clear it in memory so it
			// isn't double-stored (spec.md §3, §9).
			entries = append(entries, MapEntry{Key: child.name, Value: child.WithName("")})
		}
		return entries, nil
	case TypeCompressedObject:
		return decodeCompressedObject(br, endPos)
	default:
		raw, err := readExact(br, endPos-br.GetPosition())
		if err != nil {
			return nil, err
		}
		if entry, ok := customTagRegistry.get(typ); ok {
			if entry.codec.Decode == nil {
				return nil, InvalidCustomTagErrorf("custom tag type %d (%s) has no decode constructor", typ, entry.codec.TypeName)
			}
			decoded, err := entry.codec.Decode(name, raw)
			if err != nil {
				return nil, err
			}
			return decoded.value, nil
		}
		if IsTolerantMode() {
			return raw, nil
		}
		return nil, UnknownTypeErrorf("unknown tag type id %d and tolerant mode is disabled", typ)
	}
}

func decodeCompressedObject(br *bin.Reader, endPos int64) (any, error) {
	var compressorNameLen uint16
	if err := br.ReadUint16(&compressorNameLen); err != nil {
		return nil, IOErrorf(err, "read compressor_name_len")
	}
	nameBytes, err := readExact(br, int64(compressorNameLen))
	if err != nil {
		return nil, err
	}
	compressorName := string(nameBytes)

	c, ok := compressor.Lookup(compressorName)
	if !ok {
		return nil, UnknownCompressorErrorf("no compressor registered under name %q", compressorName)
	}

	compressedLen := endPos - br.GetPosition()
	compressedBytes, err := readExact(br, compressedLen)
	if err != nil {
		return nil, err
	}
	rc, err := c.WrapReader(bytes.NewReader(compressedBytes))
	if err != nil {
		return nil, IOErrorf(err, "wrap compressor reader for %q", compressorName)
	}
	defer rc.Close()
	decompressed, err := io.ReadAll(rc)
	if err != nil {
		return nil, IOErrorf(err, "decompress CompressedObject body")
	}

	childBR := bin.NewReader(bytes.NewReader(decompressed), binary.BigEndian)
	var children []Tag
	innerEnd := int64(len(decompressed))
	for childBR.GetPosition() < innerEnd {
		child, err := readTag(&childBR)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return CompressedValue{CompressorName: compressorName, Children: children}, nil
}
