// Package classify assigns every command to a model and a role.
//
// The override table of the vocabulary is consulted first. Otherwise the command
// name is split at its first upper-case letter into a verb and a noun:
//
//	createVirtualMachine  -> verb "create", model "VirtualMachine", role "create"
//	listAffinityGroups    -> verb "list",   model "AffinityGroup",  role "list"
//	listCapacities        -> verb "list",   model "Capacity",       role "list"
//
// Commands that cannot be placed and roles claimed twice within one model are
// collected and reported together. Every decision is kept for audit.
package classify
