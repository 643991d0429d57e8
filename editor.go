package ods

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/ryandw11/ODS/internal/diag"
)

// patchAncestors rewrites each frame's body_size field in out by delta.
// Ancestor frames refer to disjoint 4-byte ranges, so application order
// is irrelevant; they are always applied to out (the post-splice
// buffer), never to the pre-splice buf, because every ancestor header
// lies strictly before the splice point and so occupies the same offset
// in both (spec.md §4.4's ancestor-patch-ordering note).
func patchAncestors(out []byte, frames []scoutFrame, delta int32) {
	for _, f := range frames {
		newSize := f.bodySize + delta
		binary.BigEndian.PutUint32(out[f.startIndex:f.startIndex+4], uint32(newSize))
	}
}

// spliceDelete removes the byte span described by e from buf and patches
// every frame in ancestors by the shrinkage (spec.md §4.4 delete).
func spliceDelete(buf []byte, ancestors []scoutFrame, e scoutFrame) []byte {
	removed := int(e.bodySize) + 5
	typeIdx := e.typeIndex()
	tailStart := e.valueEnd()

	out := make([]byte, 0, len(buf)-removed)
	out = append(out, buf[:typeIdx]...)
	out = append(out, buf[tailStart:]...)
	patchAncestors(out, ancestors, -int32(removed))
	return out
}

// spliceReplace overwrites the byte span described by e in buf with
// newTagBytes (a complete, self-contained encoded tag) and patches every
// frame in ancestors by the length delta (spec.md §4.4 replace).
func spliceReplace(buf []byte, ancestors []scoutFrame, e scoutFrame, newTagBytes []byte) []byte {
	oldLen := int(e.bodySize) + 5
	delta := int32(len(newTagBytes) - oldLen)
	typeIdx := e.typeIndex()
	tailStart := e.valueEnd()

	out := make([]byte, 0, len(buf)+int(delta))
	out = append(out, buf[:typeIdx]...)
	out = append(out, newTagBytes...)
	out = append(out, buf[tailStart:]...)
	patchAncestors(out, ancestors, delta)
	return out
}

// spliceInsert inserts newBytes (a complete, self-contained encoded tag,
// or a chain of them concatenated) immediately after the last frame in
// ancestors' value region, or at the end of buf if ancestors is empty
// (top-level append). Every frame in ancestors, including the last, grows
// by len(newBytes) (spec.md §4.4 insert).
func spliceInsert(buf []byte, ancestors []scoutFrame, newBytes []byte) []byte {
	insertAt := len(buf)
	if len(ancestors) > 0 {
		insertAt = ancestors[len(ancestors)-1].valueEnd()
	}

	out := make([]byte, 0, len(buf)+len(newBytes))
	out = append(out, buf[:insertAt]...)
	out = append(out, newBytes...)
	out = append(out, buf[insertAt:]...)
	patchAncestors(out, ancestors, int32(len(newBytes)))
	return out
}

// Delete removes the tag at key from buf. The bool result is true when a
// tag was actually removed. A key that does not resolve is not an error:
// it returns (buf, false, nil) unchanged (spec.md §9's mandated
// resolution of the teacher's ambiguous historical behavior: "absent end
// => return false, no write").
func Delete(buf []byte, key string) ([]byte, bool, error) {
	trail, err := scout(buf, key)
	if err != nil {
		return nil, false, err
	}
	if trail.end == nil {
		return buf, false, nil
	}
	out := spliceDelete(buf, trail.children, *trail.end)
	diag.Splice("delete", key, len(out)-len(buf))
	return out, true, nil
}

// Replace overwrites the tag at key in buf with newTag, keeping the key's
// resolved position but writing newTag's own name onto the wire. The
// bool result is true when a tag was actually replaced; a key that does
// not resolve returns (buf, false, nil) unchanged.
func Replace(buf []byte, key string, newTag Tag) ([]byte, bool, error) {
	trail, err := scout(buf, key)
	if err != nil {
		return nil, false, err
	}
	if trail.end == nil {
		return buf, false, nil
	}
	var encoded bytes.Buffer
	if _, err := WriteTag(&encoded, newTag); err != nil {
		return nil, false, err
	}
	out := spliceReplace(buf, trail.children, *trail.end, encoded.Bytes())
	diag.Splice("replace", key, len(out)-len(buf))
	return out, true, nil
}

// Set is the unified editor entry point (spec.md §4.4):
//   - tag == nil deletes key, failing with KeyNotFoundError if key is
//     absent (unlike Delete, which only reports absence via its bool).
//   - key == "" overwrites the entire container with the single tag.
//   - otherwise, a full key resolution behaves as Replace; a partial
//     resolution auto-creates the missing intermediate Objects; no
//     resolution at all appends the tag at the container's top level.
func Set(buf []byte, key string, tag *Tag) ([]byte, error) {
	if tag == nil {
		out, removed, err := Delete(buf, key)
		if err != nil {
			return nil, err
		}
		if !removed {
			return nil, KeyNotFoundErrorf("set(%q, nil): key does not resolve to an existing tag", key)
		}
		return out, nil
	}

	if key == "" {
		var encoded bytes.Buffer
		if _, err := WriteTag(&encoded, *tag); err != nil {
			return nil, err
		}
		return encoded.Bytes(), nil
	}

	trail, err := scout(buf, key)
	if err != nil {
		return nil, err
	}

	if trail.end != nil {
		var encoded bytes.Buffer
		if _, err := WriteTag(&encoded, *tag); err != nil {
			return nil, err
		}
		out := spliceReplace(buf, trail.children, *trail.end, encoded.Bytes())
		diag.Splice("set/replace", key, len(out)-len(buf))
		return out, nil
	}

	if len(trail.children) == 0 {
		var encoded bytes.Buffer
		if _, err := WriteTag(&encoded, *tag); err != nil {
			return nil, err
		}
		out := spliceInsert(buf, nil, encoded.Bytes())
		diag.Splice("set/insert-top", key, len(out)-len(buf))
		return out, nil
	}

	segments := strings.Split(key, ".")
	remaining := segments[len(trail.children):]

	chain := *tag
	for i := len(remaining) - 2; i >= 0; i-- {
		chain = NewObjectTag(remaining[i], []Tag{chain})
	}

	var encoded bytes.Buffer
	if _, err := WriteTag(&encoded, chain); err != nil {
		return nil, err
	}
	out := spliceInsert(buf, trail.children, encoded.Bytes())
	diag.Splice("set/insert-autocreate", key, len(out)-len(buf))
	return out, nil
}
