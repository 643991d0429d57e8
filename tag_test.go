package ods_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ods "github.com/ryandw11/ODS"
)

func TestTypedAccessors(t *testing.T) {
	str := ods.NewStringTag("name", "hello")
	v, ok := str.StringValue()
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
	_, ok = str.IntValue()
	assert.False(t, ok)

	i := ods.NewIntTag("age", 42)
	iv, ok := i.IntValue()
	assert.True(t, ok)
	assert.Equal(t, int32(42), iv)
}

func TestObjectChildren(t *testing.T) {
	obj := ods.NewObjectTag("root", []ods.Tag{
		ods.NewIntTag("a", 1),
		ods.NewStringTag("b", "two"),
	})
	children, ok := obj.Children()
	assert.True(t, ok)
	assert.Len(t, children, 2)
	assert.Equal(t, "a", children[0].Name())
}

func TestMapEntries(t *testing.T) {
	m := ods.NewMapTag("settings", []ods.MapEntry{
		{Key: "debug", Value: ods.NewByteTag("", 1)},
	})
	entries, ok := m.MapEntries()
	assert.True(t, ok)
	assert.Len(t, entries, 1)
	assert.Equal(t, "debug", entries[0].Key)
	// the entry's Value carries no name of its own; the key lives once.
	assert.Equal(t, "", entries[0].Value.Name())
}

func TestIsComposite(t *testing.T) {
	assert.True(t, ods.NewObjectTag("o", nil).IsComposite())
	assert.True(t, ods.NewListTag("l", nil).IsComposite())
	assert.True(t, ods.NewMapTag("m", nil).IsComposite())
	assert.False(t, ods.NewIntTag("i", 1).IsComposite())
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "String", ods.TypeString.String())
	assert.Equal(t, "CompressedObject", ods.TypeCompressedObject.String())
}
