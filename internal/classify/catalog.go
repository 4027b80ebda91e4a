package classify

import (
	"resource-generator/internal/apispec"
	"resource-generator/internal/diagnostic"
	"resource-generator/internal/resource"
)

// Catalog is the result of a classification run.
type Catalog struct {
	// Groups are kept in the order their model was first seen.
	Groups []*resource.Group
	// Commands are all input commands in input order.
	Commands  []apispec.Command
	Decisions []Decision
	// Diagnostics holds the warnings and audit records of the run.
	Diagnostics diagnostic.Diagnostics

	index map[string]int
}

func newCatalog() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// Lookup returns the group of a model.
func (c *Catalog) Lookup(model string) (*resource.Group, bool) {
	i, ok := c.index[model]
	if !ok {
		return nil, false
	}

	return c.Groups[i], true
}

// Models returns the model names in first-seen order.
func (c *Catalog) Models() []string {
	names := make([]string, 0, len(c.Groups))
	for _, g := range c.Groups {
		names = append(names, g.ModelName)
	}

	return names
}

func (c *Catalog) group(model string) *resource.Group {
	if i, ok := c.index[model]; ok {
		return c.Groups[i]
	}

	g := resource.NewGroup(model)
	c.index[model] = len(c.Groups)
	c.Groups = append(c.Groups, g)

	return g
}
