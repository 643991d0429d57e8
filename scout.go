package ods

import (
	"encoding/binary"
	"strings"
)

// scoutFrame records one ancestor's coordinates within the byte buffer
// being scouted: its name, its body_size as currently stored on the
// wire, and the offset of its body_size field (one past its type byte).
// This is exactly what the editor needs to patch an ancestor's length
// prefix after a splice, without re-encoding it (spec.md §4.3).
type scoutFrame struct {
	name       string
	typ        Type
	bodySize   int32
	startIndex int
}

// typeIndex returns the offset of this frame's type byte.
func (f scoutFrame) typeIndex() int { return f.startIndex - 1 }

// valueEnd returns the offset one past this frame's value region, i.e.
// where the next sibling tag (or the end of the parent's value region)
// begins.
func (f scoutFrame) valueEnd() int {
	return f.startIndex + 4 + int(f.bodySize)
}

// scoutTrail is the result of walking a dotted key through an encoded
// byte image. children holds matched ancestor frames, outermost first.
// end holds the final matching tag's frame if and only if the full key
// resolved; otherwise end is nil and children holds exactly the matched
// prefix (possibly empty, if not even the first segment matched).
type scoutTrail struct {
	children []scoutFrame
	end      *scoutFrame
}

// scout walks key through buf, splitting on "." (spec.md §4.3). An empty
// key yields an empty trail (handled specially by callers, since the
// empty key denotes "the whole container" rather than any single tag).
func scout(buf []byte, key string) (scoutTrail, error) {
	if key == "" {
		return scoutTrail{}, nil
	}
	segments := strings.Split(key, ".")
	return scoutSegments(buf, 0, len(buf), segments, nil)
}

// scoutSegments walks segments[0] across the top-level tags in
// buf[start:end), recursing into the matched tag's value region (by
// offset, not by re-slicing) when more segments remain. This follows
// spec.md §9's recommended clean reimplementation: explicit (start, end)
// bounds into a single shared buffer, not absolute-position mutation of
// a shared cursor.
func scoutSegments(buf []byte, start, end int, segments []string, frames []scoutFrame) (scoutTrail, error) {
	target := segments[0]
	pos := start
	for pos < end {
		tagStart := pos
		if tagStart+headerFixedSize > end {
			return scoutTrail{}, MalformedErrorf("truncated tag header at offset %d", tagStart)
		}
		typ := Type(buf[tagStart])
		bodyStart := tagStart + 1
		bodySize := int32(binary.BigEndian.Uint32(buf[bodyStart : bodyStart+4]))
		nameLenStart := bodyStart + 4
		nameLen := binary.BigEndian.Uint16(buf[nameLenStart : nameLenStart+2])
		if bodySize < int32(2+nameLen) {
			return scoutTrail{}, MalformedErrorf("tag at offset %d has body_size %d smaller than 2+name_len %d", tagStart, bodySize, nameLen)
		}
		nameStart := nameLenStart + 2
		nameEnd := nameStart + int(nameLen)
		if nameEnd > end {
			return scoutTrail{}, MalformedErrorf("tag at offset %d has name extending past its enclosing region", tagStart)
		}
		valueStart := nameEnd
		valueLen := int(bodySize) - 2 - int(nameLen)
		valueEnd := valueStart + valueLen
		if valueEnd > end {
			return scoutTrail{}, MalformedErrorf("tag at offset %d has value extending past its enclosing region", tagStart)
		}

		if int(nameLen) == len(target) && string(buf[nameStart:nameEnd]) == target {
			frame := scoutFrame{name: target, typ: typ, bodySize: bodySize, startIndex: bodyStart}
			if len(segments) == 1 {
				return scoutTrail{children: frames, end: &frame}, nil
			}
			switch typ {
			case TypeCompressedObject:
				return scoutTrail{}, CompressedTraversalErrorf("key segment %q resolves to a CompressedObject tag; materialize it with Get and traverse the decoded children in memory instead", target)
			case TypeList, TypeObject, TypeMap:
				return scoutSegments(buf, valueStart, valueEnd, segments[1:], append(frames, frame))
			default:
				return scoutTrail{}, MalformedErrorf("key segment %q resolves to a %s tag, which has no child tags to descend into", target, typ)
			}
		}
		pos = valueEnd
	}
	return scoutTrail{children: frames, end: nil}, nil
}
