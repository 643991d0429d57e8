package ods

import "bytes"

// Find reports whether key resolves to a tag inside buf, without
// materializing it (spec.md §4.2). An empty key always resolves (it
// denotes the whole container).
func Find(buf []byte, key string) (bool, error) {
	if key == "" {
		return true, nil
	}
	trail, err := scout(buf, key)
	if err != nil {
		return false, err
	}
	return trail.end != nil, nil
}

// Get resolves key to a materialized Tag inside buf. The bool return is
// false (with a zero Tag and nil error) when the key is simply absent;
// errors are reserved for structurally invalid input or an attempt to
// descend into a CompressedObject by key. An empty key materializes the
// whole container as an unnamed Object tag wrapping its top-level tags.
func Get(buf []byte, key string) (Tag, bool, error) {
	if key == "" {
		children, err := Decode(bytes.NewReader(buf))
		if err != nil {
			return Tag{}, false, err
		}
		return NewObjectTag("", children), true, nil
	}
	trail, err := scout(buf, key)
	if err != nil {
		return Tag{}, false, err
	}
	if trail.end == nil {
		return Tag{}, false, nil
	}
	t, err := materializeFrame(buf, *trail.end)
	if err != nil {
		return Tag{}, false, err
	}
	return t, true, nil
}

// materializeFrame decodes the full tag spanned by frame out of buf by
// re-reading its self-delimiting byte span through the ordinary stream
// decoder (ReadTag), rather than duplicating per-type decode logic here.
func materializeFrame(buf []byte, frame scoutFrame) (Tag, error) {
	span := buf[frame.typeIndex():frame.valueEnd()]
	return ReadTag(bytes.NewReader(span))
}
