package resource

import "resource-generator/internal/apispec"

// mergeRoles are the roles contributing to a model's fields, in priority order.
var mergeRoles = []string{RoleCreate, RoleUpdate}

// MergeFields returns the ordered, name-deduplicated union of the response and
// then request parameters of the group's create and update commands. The first
// occurrence of a name wins. A group with neither role yields no fields.
func MergeFields(g *Group) []apispec.Parameter {
	var fields []apispec.Parameter

	seen := make(map[string]struct{})

	add := func(params []apispec.Parameter) {
		for _, p := range params {
			if _, dup := seen[p.Name]; dup {
				continue
			}

			seen[p.Name] = struct{}{}
			fields = append(fields, p)
		}
	}

	for _, role := range mergeRoles {
		cmd, ok := g.Method(role)
		if !ok {
			continue
		}

		add(cmd.Response)
		add(cmd.Request)
	}

	return fields
}
