package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resource-generator/internal/apispec"
)

func TestGoType(t *testing.T) {
	nested := []apispec.Parameter{{Name: "key"}}

	tests := []struct {
		name     string
		param    apispec.Parameter
		expected string
	}{
		{"string", apispec.Parameter{DataType: apispec.DataTypeString}, "string"},
		{"unknown", apispec.Parameter{DataType: apispec.DataTypeUnknown}, "string"},
		{"date", apispec.Parameter{DataType: apispec.DataTypeDate}, "string"},
		{"integer", apispec.Parameter{DataType: apispec.DataTypeInteger}, "int64"},
		{"short", apispec.Parameter{DataType: apispec.DataTypeShort}, "int16"},
		{"boolean", apispec.Parameter{DataType: apispec.DataTypeBoolean}, "bool"},
		{"list", apispec.Parameter{Kind: apispec.KindList, DataType: apispec.DataTypeList}, "[]string"},
		{"set", apispec.Parameter{Kind: apispec.KindSet, DataType: apispec.DataTypeSet}, "[]string"},
		{"map", apispec.Parameter{Kind: apispec.KindMap, DataType: apispec.DataTypeMap}, "map[string]string"},
		{"object", apispec.Parameter{DataType: apispec.DataTypeObject}, "any"},
		{"structured list", apispec.Parameter{
			Kind: apispec.KindList, DataType: apispec.DataTypeSet, SubParameters: nested,
		}, "[]Aux"},
		{"structured object", apispec.Parameter{
			Kind: apispec.KindObject, DataType: apispec.DataTypeMap, SubParameters: nested,
		}, "Aux"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GoType(tt.param, "Aux"))
		})
	}
}

func TestTypeBuilder_AuxTypes(t *testing.T) {
	params := []apispec.Parameter{
		{Name: "id", DataType: apispec.DataTypeString},
		{Name: "nic", Kind: apispec.KindList, DataType: apispec.DataTypeList, Description: "the nics",
			SubParameters: []apispec.Parameter{
				{Name: "ipaddress", DataType: apispec.DataTypeString},
				{Name: "secondaryip", Kind: apispec.KindList, DataType: apispec.DataTypeList,
					SubParameters: []apispec.Parameter{{Name: "id", DataType: apispec.DataTypeString}}},
			}},
	}

	tb := newTypeBuilder(nil, "DeployVMResponse")
	fields := tb.fields("DeployVMResponse", params)

	require.Len(t, fields, 2)
	assert.Equal(t, "ID", fields[0].Name)
	assert.Equal(t, "[]DeployVMResponseNic", fields[1].Type)

	require.Len(t, tb.aux, 2)
	assert.Equal(t, "DeployVMResponseNic", tb.aux[0].Name, "parents come before their children")
	assert.Equal(t, "the nics", tb.aux[0].Doc)
	assert.Equal(t, "[]DeployVMResponseNicSecondaryip", tb.aux[0].Fields[1].Type)
	assert.Equal(t, "DeployVMResponseNicSecondaryip", tb.aux[1].Name)
}

func TestTypeBuilder_ReservedAndDuplicateNames(t *testing.T) {
	params := []apispec.Parameter{
		{Name: "command"},
		{Name: "id"},
		{Name: "ID"},
	}

	fields := newTypeBuilder(nil).fields("X", params, "Command")

	assert.Equal(t, "Command2", fields[0].Name)
	assert.Equal(t, "ID", fields[1].Name)
	assert.Equal(t, "ID2", fields[2].Name)
	assert.Equal(t, "command", fields[0].JSONName)
}

func TestField_Tag(t *testing.T) {
	assert.Equal(t, "`json:\"name\"`", Field{JSONName: "name", Required: true}.Tag())
	assert.Equal(t, "`json:\"name,omitempty\"`", Field{JSONName: "name"}.Tag())
}

func TestTypeInfo(t *testing.T) {
	entries := typeInfo([]apispec.Parameter{
		{Name: "zoneid", DeclaredType: "uuid", DataType: apispec.DataTypeString},
		{Name: "page", DataType: apispec.DataTypeInteger},
		{Name: "nic", Kind: apispec.KindList, DataType: apispec.DataTypeList, SubParameters: []apispec.Parameter{
			{Name: "mtu", DataType: apispec.DataTypeInteger},
		}},
	})

	assert.Equal(t, []TypeInfoEntry{{"zoneid", "uuid"}, {"page", "integer"}}, entries)
}

func TestTypeBuilder_SharedNames(t *testing.T) {
	taken := map[string]struct{}{"AccountUser": {}}
	user := []apispec.Parameter{{
		Name: "user", Kind: apispec.KindList, DataType: apispec.DataTypeList,
		SubParameters: []apispec.Parameter{{Name: "id", DataType: apispec.DataTypeString}},
	}}

	first := newTypeBuilder(taken, "Account")
	fields := first.fields("Account", user)
	assert.Equal(t, "[]AccountUser2", fields[0].Type)

	second := newTypeBuilder(taken, "Account")
	second.fields("Account", user)
	require.Len(t, second.aux, 1)
	assert.Equal(t, "AccountUser3", second.aux[0].Name)
}

func TestCommentLines(t *testing.T) {
	assert.Equal(t, "", commentLines("\t", "  "))
	assert.Equal(t, "\t// one\n", commentLines("\t", "one"))
	assert.Equal(t, "// a\n//\n// b\n", commentLines("", "a\n\nb\n"))
}
