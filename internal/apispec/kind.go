package apispec

import "strings"

//go:generate go tool stringer -type=Kind,DataType -linecomment -output=kind_string.go

// Kind is the structural shape of a parameter.
type Kind int

const (
	_ Kind = iota // skip zero value, readers always assign a kind

	KindPrimitive // primitive
	KindList      // list
	KindMap       // map
	KindSet       // set
	KindObject    // object
)

// CanNest reports whether a parameter of this kind may carry SubParameters.
func (k Kind) CanNest() bool {
	return k == KindList || k == KindObject
}

// DataType is the closed enumeration of declared type tags.
type DataType int

const (
	DataTypeUnknown DataType = iota // unknown
	DataTypeString                  // string
	DataTypeInteger                 // integer
	DataTypeBoolean                 // boolean
	DataTypeDate                    // date
	DataTypeShort                   // short
	DataTypeList                    // list
	DataTypeMap                     // map
	DataTypeSet                     // set
	DataTypeObject                  // object
)

var dataTypeTags = map[string]DataType{
	"":               DataTypeString,
	"string":         DataTypeString,
	"uuid":           DataTypeString,
	"varchar":        DataTypeString,
	"integer":        DataTypeInteger,
	"int":            DataTypeInteger,
	"long":           DataTypeInteger,
	"boolean":        DataTypeBoolean,
	"date":           DataTypeDate,
	"tzdate":         DataTypeDate,
	"short":          DataTypeShort,
	"list":           DataTypeList,
	"map":            DataTypeMap,
	"set":            DataTypeSet,
	"object":         DataTypeObject,
	"responseobject": DataTypeObject,
}

// ParseDataType resolves a declared type tag. Tags are matched case-insensitively.
// An empty tag is a plain string. Any other unrecognized tag resolves to
// DataTypeUnknown and ok is false so callers can report it.
func ParseDataType(tag string) (dt DataType, ok bool) {
	dt, ok = dataTypeTags[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return DataTypeUnknown, false
	}

	return dt, true
}

// IsCollection reports whether values of this type hold several elements.
func (d DataType) IsCollection() bool {
	return d == DataTypeList || d == DataTypeMap || d == DataTypeSet
}

// KindOf derives the structural kind for a data type. Structured list and set
// values become lists of objects; any other structured value becomes an object.
func KindOf(dt DataType, structured bool) Kind {
	if structured {
		if dt == DataTypeList || dt == DataTypeSet {
			return KindList
		}

		return KindObject
	}

	switch dt {
	case DataTypeList:
		return KindList
	case DataTypeMap:
		return KindMap
	case DataTypeSet:
		return KindSet
	default:
		return KindPrimitive
	}
}
