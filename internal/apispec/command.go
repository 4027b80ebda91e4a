package apispec

// Command is one remote operation.
type Command struct {
	// Name is the wire identifier, e.g. "createAccount".
	Name string
	// Description is free text from the source document.
	Description string
	// IsAsync is carried through to generated code; the engine does not interpret it.
	IsAsync bool
	// Request holds the request parameters in document order.
	Request []Parameter
	// Response holds the response parameters in document order.
	Response []Parameter
}

// Parameter is one field of a command's request or response.
type Parameter struct {
	Name        string
	Description string
	// Required is only meaningful on the request side.
	Required bool
	Kind     Kind
	// DeclaredType is the raw tag found in the source ("uuid", "list", ...).
	DeclaredType string
	// DataType is DeclaredType resolved against the closed enumeration.
	DataType      DataType
	SubParameters []Parameter
}

// IsStructured reports whether the parameter carries nested fields.
func (p Parameter) IsStructured() bool {
	return len(p.SubParameters) > 0
}

// RequiredNames returns the names of required request parameters in order.
func (c Command) RequiredNames() []string {
	var names []string

	for _, p := range c.Request {
		if p.Required {
			names = append(names, p.Name)
		}
	}

	return names
}

// Names returns the names of the given commands in order.
func Names(cmds []Command) []string {
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}

	return names
}
