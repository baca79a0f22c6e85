package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONObject_KeepsInsertionOrder(t *testing.T) {
	obj := ObjectFrom("b", 1, "a", 2)
	obj.Set("c", 3)
	obj.Set("b", 4)

	assert.Equal(t, []string{"b", "a", "c"}, obj.Keys())
	v, ok := obj.Get("b")
	require.True(t, ok)
	assert.Equal(t, 4, v)
	assert.Equal(t, 3, obj.Len())
}

func TestJSONObject_ZeroValueIsUsable(t *testing.T) {
	obj := &JSONObject{}
	assert.Equal(t, 0, obj.Len())
	assert.False(t, obj.Has("a"))

	obj.Set("a", "x")

	assert.True(t, obj.Has("a"))
	assert.Equal(t, []string{"a"}, obj.Keys())
}

func TestJSONObject_NilLen(t *testing.T) {
	var obj *JSONObject
	assert.Equal(t, 0, obj.Len())
}

func TestEqual(t *testing.T) {
	var nilObj *JSONObject

	tests := []struct {
		name  string
		a, b  JSONValue
		equal bool
	}{
		{"same leaves", "x", "x", true},
		{"numbers by literal", json.Number("1.0"), json.Number("1.0"), true},
		{"different literals", json.Number("1.0"), json.Number("1"), false},
		{"member order ignored", ObjectFrom("a", 1, "b", 2), ObjectFrom("b", 2, "a", 1), true},
		{"missing member", ObjectFrom("a", 1), ObjectFrom("b", 1), false},
		{"arrays by position", JSONArray{1, "x"}, JSONArray{"x", 1}, false},
		{"nil objects", nilObj, nilObj, true},
		{"nil against empty", nilObj, ObjectFrom(), false},
		{"empty against nil", ObjectFrom(), nilObj, false},
		{"zero value against empty", &JSONObject{}, ObjectFrom(), true},
		{"object against array", ObjectFrom(), JSONArray{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, Equal(tt.a, tt.b))
		})
	}
}

func TestClone_IsIndependent(t *testing.T) {
	orig := ObjectFrom("list", JSONArray{"a", ObjectFrom("k", "v")})
	c := Clone(orig).(*JSONObject)

	list, _ := c.Get("list")
	list.(JSONArray)[1].(*JSONObject).Set("k", "changed")
	c.Set("extra", true)

	assert.True(t, Equal(orig, ObjectFrom("list", JSONArray{"a", ObjectFrom("k", "v")})))
	assert.Nil(t, Clone((*JSONObject)(nil)))
}
