package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIRValueSealed(t *testing.T) {
	var _ IRValue = IRNull{}
	var _ IRValue = IRString("test")
	var _ IRValue = IRInt(42)
	var _ IRValue = IRBool(true)
	var _ IRValue = IRArray{IRString("a"), IRInt(1)}
	var _ IRValue = IRObject{"key": IRString("value")}
}

func TestIRObjectSortedKeys(t *testing.T) {
	obj := IRObject{
		"zebra":  IRString("z"),
		"apple":  IRString("a"),
		"banana": IRString("b"),
	}

	assert.Equal(t, []string{"apple", "banana", "zebra"}, obj.SortedKeys())
}

func TestIRObjectSortedKeysRFC8785Order(t *testing.T) {
	obj := IRObject{
		"a": IRInt(1), "A": IRInt(2), "aa": IRInt(3),
		"aA": IRInt(4), "Aa": IRInt(5), "AA": IRInt(6),
	}

	expected := []string{"A", "AA", "Aa", "a", "aA", "aa"}
	assert.Equal(t, expected, obj.SortedKeys())
}

func TestUnmarshalIRValueRejectsFloat(t *testing.T) {
	_, err := UnmarshalIRValue([]byte(`1.5`))
	require.Error(t, err)
}

func TestUnmarshalIRValueRejectsNull(t *testing.T) {
	_, err := UnmarshalIRValue([]byte(`null`))
	require.Error(t, err)
}

func TestUnmarshalIRValueRoundTrip(t *testing.T) {
	data := []byte(`{"count":3,"name":"cart","tags":["a","b"],"active":true}`)

	val, err := UnmarshalIRValue(data)
	require.NoError(t, err)

	obj, ok := val.(IRObject)
	require.True(t, ok)
	assert.Equal(t, IRInt(3), obj["count"])
	assert.Equal(t, IRString("cart"), obj["name"])
	assert.Equal(t, IRBool(true), obj["active"])

	arr, ok := obj["tags"].(IRArray)
	require.True(t, ok)
	assert.Equal(t, IRArray{IRString("a"), IRString("b")}, arr)
}

func TestNewIRObjectFromPairs(t *testing.T) {
	obj := NewIRObjectFromPairs(O("name", NewIRString("cart")), O("count", NewIRInt(5)))

	assert.Equal(t, IRString("cart"), obj["name"])
	assert.Equal(t, IRInt(5), obj["count"])
}
