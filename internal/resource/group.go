package resource

import (
	"slices"

	"resource-generator/internal/apispec"
)

// Roles with a fixed meaning in generated resource code.
const (
	RoleCreate = "create"
	RoleUpdate = "update"
	RoleDelete = "delete"
	RoleList   = "list"
)

// Method binds a role to the command that fulfils it.
type Method struct {
	Role    string
	Command apispec.Command
}

// Group is the set of commands operating on one model.
type Group struct {
	ModelName string
	// Methods is kept in first-seen order.
	Methods []Method
	// MergedFields is filled by MergeFields.
	MergedFields []apispec.Parameter

	index map[string]int
}

// NewGroup returns an empty group for a model.
func NewGroup(model string) *Group {
	return &Group{
		ModelName: model,
		index:     make(map[string]int),
	}
}

// Add binds cmd to role. If the role is already taken, Add leaves the group
// unchanged and returns the command holding it.
func (g *Group) Add(role string, cmd apispec.Command) (apispec.Command, bool) {
	if g.index == nil {
		g.index = make(map[string]int)
	}

	if i, taken := g.index[role]; taken {
		return g.Methods[i].Command, false
	}

	g.index[role] = len(g.Methods)
	g.Methods = append(g.Methods, Method{Role: role, Command: cmd})

	return apispec.Command{}, true
}

// Method returns the command bound to role.
func (g *Group) Method(role string) (apispec.Command, bool) {
	i, ok := g.index[role]
	if !ok {
		return apispec.Command{}, false
	}

	return g.Methods[i].Command, true
}

// Roles returns the bound roles in first-seen order.
func (g *Group) Roles() []string {
	roles := make([]string, 0, len(g.Methods))
	for _, m := range g.Methods {
		roles = append(roles, m.Role)
	}

	return roles
}

// OtherMethods returns the methods whose role has no fixed meaning, in order.
func (g *Group) OtherMethods() []Method {
	return slices.DeleteFunc(slices.Clone(g.Methods), func(m Method) bool {
		switch m.Role {
		case RoleCreate, RoleUpdate, RoleDelete, RoleList:
			return true
		default:
			return false
		}
	})
}
