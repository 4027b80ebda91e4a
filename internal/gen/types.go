package gen

import (
	"strings"

	"resource-generator/internal/apispec"
)

// GoType maps a parameter to its Go type. aux names the generated type of a
// structured parameter and is ignored otherwise.
func GoType(p apispec.Parameter, aux string) string {
	if p.IsStructured() {
		if p.Kind == apispec.KindList {
			return "[]" + aux
		}

		return aux
	}

	switch p.DataType {
	case apispec.DataTypeInteger:
		return "int64"
	case apispec.DataTypeShort:
		return "int16"
	case apispec.DataTypeBoolean:
		return "bool"
	case apispec.DataTypeList, apispec.DataTypeSet:
		return "[]string"
	case apispec.DataTypeMap:
		return "map[string]string"
	case apispec.DataTypeObject:
		return "any"
	default:
		return "string"
	}
}

// Field is one rendered struct field.
type Field struct {
	Name     string
	JSONName string
	Type     string
	Doc      string
	Required bool
	// Param is the parameter the field was built from.
	Param apispec.Parameter
}

// Tag returns the struct tag of the field.
func (f Field) Tag() string {
	if f.Required {
		return "`json:\"" + f.JSONName + "\"`"
	}

	return "`json:\"" + f.JSONName + ",omitempty\"`"
}

// AuxType is a struct generated for a structured parameter.
type AuxType struct {
	Name   string
	Doc    string
	Fields []Field
}

// typeBuilder turns parameter sequences into fields, collecting one auxiliary
// type per structured parameter at every nesting level.
type typeBuilder struct {
	taken map[string]struct{}
	aux   []AuxType
}

// newTypeBuilder claims auxiliary names in taken, which is shared by every
// builder of one package. A nil taken starts an empty set.
func newTypeBuilder(taken map[string]struct{}, typeNames ...string) *typeBuilder {
	if taken == nil {
		taken = make(map[string]struct{})
	}

	for _, n := range typeNames {
		taken[n] = struct{}{}
	}

	return &typeBuilder{taken: taken}
}

// fields builds the fields of one struct. prefix names its auxiliary types.
func (b *typeBuilder) fields(prefix string, params []apispec.Parameter, reserved ...string) []Field {
	names := make(map[string]struct{}, len(params)+len(reserved))
	for _, r := range reserved {
		names[r] = struct{}{}
	}

	out := make([]Field, 0, len(params))

	for _, p := range params {
		goName := uniqueName(Exported(p.Name), names)

		aux := ""
		if p.IsStructured() {
			aux = uniqueName(prefix+goName, b.taken)
			idx := len(b.aux)
			b.aux = append(b.aux, AuxType{Name: aux, Doc: p.Description})
			sub := b.fields(aux, p.SubParameters)
			b.aux[idx].Fields = sub
		}

		out = append(out, Field{
			Name:     goName,
			JSONName: p.Name,
			Type:     GoType(p, aux),
			Doc:      p.Description,
			Required: p.Required,
			Param:    p,
		})
	}

	return out
}

// TypeInfoEntry is one parameter -> declared type pair.
type TypeInfoEntry struct {
	Name string
	Type string
}

// typeInfo lists the declared types of the plain parameters. Structured
// parameters have a generated type instead.
func typeInfo(params []apispec.Parameter) []TypeInfoEntry {
	out := make([]TypeInfoEntry, 0, len(params))

	for _, p := range params {
		if p.IsStructured() {
			continue
		}

		t := p.DeclaredType
		if t == "" {
			t = p.DataType.String()
		}

		out = append(out, TypeInfoEntry{Name: p.Name, Type: t})
	}

	return out
}

// commentLines formats free text as Go line comments with the given indent.
func commentLines(indent, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		b.WriteString(indent)

		if line == "" {
			b.WriteString("//\n")
			continue
		}

		b.WriteString("// ")
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}
