package apispec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDataType(t *testing.T) {
	tests := []struct {
		tag    string
		want   DataType
		wantOK bool
	}{
		{"string", DataTypeString, true},
		{"uuid", DataTypeString, true},
		{"", DataTypeString, true},
		{"Integer", DataTypeInteger, true},
		{"long", DataTypeInteger, true},
		{"short", DataTypeShort, true},
		{"boolean", DataTypeBoolean, true},
		{"date", DataTypeDate, true},
		{"tzdate", DataTypeDate, true},
		{"list", DataTypeList, true},
		{"map", DataTypeMap, true},
		{"set", DataTypeSet, true},
		{"responseobject", DataTypeObject, true},
		{" LIST ", DataTypeList, true},
		{"float", DataTypeUnknown, false},
		{"planObject", DataTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, ok := ParseDataType(tt.tag)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindPrimitive, KindOf(DataTypeString, false))
	assert.Equal(t, KindList, KindOf(DataTypeList, false))
	assert.Equal(t, KindMap, KindOf(DataTypeMap, false))
	assert.Equal(t, KindSet, KindOf(DataTypeSet, false))
	assert.Equal(t, KindList, KindOf(DataTypeList, true))
	assert.Equal(t, KindList, KindOf(DataTypeSet, true))
	assert.Equal(t, KindObject, KindOf(DataTypeMap, true))
	assert.Equal(t, KindObject, KindOf(DataTypeUnknown, true))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "primitive", KindPrimitive.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
	assert.Equal(t, "unknown", DataTypeUnknown.String())
	assert.Equal(t, "object", DataTypeObject.String())
	assert.Equal(t, "DataType(42)", DataType(42).String())
}

func TestKind_CanNest(t *testing.T) {
	assert.True(t, KindList.CanNest())
	assert.True(t, KindObject.CanNest())
	assert.False(t, KindMap.CanNest())
	assert.False(t, KindSet.CanNest())
	assert.False(t, KindPrimitive.CanNest())
}
