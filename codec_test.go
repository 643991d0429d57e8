package ods_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ods "github.com/ryandw11/ODS"
	_ "github.com/ryandw11/ODS/compressor"
)

func roundTrip(t *testing.T, tag ods.Tag) ods.Tag {
	t.Helper()
	var buf bytes.Buffer
	n, err := ods.WriteTag(&buf, tag)
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), n)

	got, err := ods.ReadTag(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	return got
}

func TestPrimitiveRoundTrip(t *testing.T) {
	cases := []ods.Tag{
		ods.NewStringTag("s", "hello, world"),
		ods.NewIntTag("i", -12345),
		ods.NewFloatTag("f", 3.25),
		ods.NewDoubleTag("d", -2.5),
		ods.NewShortTag("sh", -1),
		ods.NewLongTag("lo", 1<<40),
		ods.NewCharTag("c", 'Z'),
		ods.NewByteTag("b", 0xAB),
	}
	for _, tag := range cases {
		got := roundTrip(t, tag)
		assert.Equal(t, tag.Type(), got.Type())
		assert.Equal(t, tag.Name(), got.Name())
		assert.Equal(t, tag.Value(), got.Value())
	}
}

func TestBodySizeProperty(t *testing.T) {
	tag := ods.NewStringTag("key", "value")
	var buf bytes.Buffer
	n, err := ods.WriteTag(&buf, tag)
	require.NoError(t, err)

	wire := buf.Bytes()
	bodySize := int(wire[1])<<24 | int(wire[2])<<16 | int(wire[3])<<8 | int(wire[4])
	assert.Equal(t, n, bodySize+5)
}

func TestNestedObjectRoundTrip(t *testing.T) {
	original := ods.NewObjectTag("root", []ods.Tag{
		ods.NewIntTag("x", 1),
		ods.NewObjectTag("nested", []ods.Tag{
			ods.NewStringTag("y", "inner"),
		}),
	})
	got := roundTrip(t, original)
	children, ok := got.Children()
	require.True(t, ok)
	require.Len(t, children, 2)

	inner, ok := children[1].Children()
	require.True(t, ok)
	require.Len(t, inner, 1)
	v, ok := inner[0].StringValue()
	require.True(t, ok)
	assert.Equal(t, "inner", v)
}

func TestListClearsChildNames(t *testing.T) {
	list := ods.NewListTag("items", []ods.Tag{
		ods.NewIntTag("should-be-cleared", 1),
		ods.NewIntTag("also-cleared", 2),
	})
	got := roundTrip(t, list)
	children, ok := got.Children()
	require.True(t, ok)
	for _, c := range children {
		assert.Equal(t, "", c.Name())
	}
}

func TestMapRoundTrip(t *testing.T) {
	m := ods.NewMapTag("cfg", []ods.MapEntry{
		{Key: "alpha", Value: ods.NewIntTag("", 1)},
		{Key: "beta", Value: ods.NewIntTag("", 2)},
	})
	got := roundTrip(t, m)
	entries, ok := got.MapEntries()
	require.True(t, ok)
	require.Len(t, entries, 2)
	assert.Equal(t, "alpha", entries[0].Key)
	assert.Equal(t, "beta", entries[1].Key)
	v, _ := entries[0].Value.IntValue()
	assert.Equal(t, int32(1), v)
}

func TestMapDuplicateKeysFirstMatchWins(t *testing.T) {
	buf := &bytes.Buffer{}
	m := ods.NewMapTag("cfg", []ods.MapEntry{
		{Key: "dup", Value: ods.NewIntTag("", 1)},
		{Key: "dup", Value: ods.NewIntTag("", 2)},
	})
	_, err := ods.WriteTag(buf, m)
	require.NoError(t, err)

	tag, found, err := ods.Get(buf.Bytes(), "cfg.dup")
	require.NoError(t, err)
	require.True(t, found)
	v, _ := tag.IntValue()
	assert.Equal(t, int32(1), v)
}

func TestCompressedObjectRoundTrip(t *testing.T) {
	for _, compressorName := range []string{"identity", "gzip", "zlib", "zstd", "lz4"} {
		t.Run(compressorName, func(t *testing.T) {
			co := ods.NewCompressedObjectTag("payload", compressorName, []ods.Tag{
				ods.NewStringTag("msg", "compressed data here, compressed data here"),
				ods.NewIntTag("n", 7),
			})
			got := roundTrip(t, co)
			cv, ok := got.Compressed()
			require.True(t, ok)
			assert.Equal(t, compressorName, cv.CompressorName)
			require.Len(t, cv.Children, 2)
			s, _ := cv.Children[0].StringValue()
			assert.Equal(t, "compressed data here, compressed data here", s)
		})
	}
}

func TestDecodeMultipleTopLevelTags(t *testing.T) {
	var buf bytes.Buffer
	_, err := ods.WriteTag(&buf, ods.NewIntTag("a", 1))
	require.NoError(t, err)
	_, err = ods.WriteTag(&buf, ods.NewStringTag("b", "two"))
	require.NoError(t, err)

	tags, err := ods.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "a", tags[0].Name())
	assert.Equal(t, "b", tags[1].Name())
}

func TestDecodeTruncatedMidTagFails(t *testing.T) {
	var buf bytes.Buffer
	_, err := ods.WriteTag(&buf, ods.NewStringTag("a", "hello"))
	require.NoError(t, err)

	truncated := buf.Bytes()[:buf.Len()-2]
	_, err = ods.Decode(bytes.NewReader(truncated))
	assert.Error(t, err)
}

func TestUnknownTypeFailsWithoutTolerantMode(t *testing.T) {
	orig := ods.GetConfig()
	defer ods.OverrideConfig(orig)
	ods.SetTolerantMode(false)

	var buf bytes.Buffer
	buf.WriteByte(200) // unregistered, non-reserved type id
	buf.Write([]byte{0, 0, 0, 2})
	buf.Write([]byte{0, 0})

	_, err := ods.ReadTag(bytes.NewReader(buf.Bytes()))
	require.Error(t, err)
	var unknownErr *ods.UnknownTypeError
	assert.ErrorAs(t, err, &unknownErr)
}

func TestUnknownTypeToleratedAsInvalid(t *testing.T) {
	orig := ods.GetConfig()
	defer ods.OverrideConfig(orig)
	ods.SetTolerantMode(true)

	var buf bytes.Buffer
	buf.WriteByte(200)
	buf.Write([]byte{0, 0, 0, 4})
	buf.Write([]byte{0, 0})
	buf.Write([]byte{0xDE, 0xAD})

	tag, err := ods.ReadTag(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, ods.TypeInvalid, tag.Type())
}
