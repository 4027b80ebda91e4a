// Package apispec defines the canonical in-memory representation of a remote
// service's command set.
//
// Every spec reader produces []Command, and every downstream stage (classifier,
// field merger, emitter) consumes it. A Command is built once by a reader and
// is never mutated after it has been appended to the reader's output.
//
// Key types:
//   - Command: one remote operation with ordered request and response parameters
//   - Parameter: one field, possibly structured (SubParameters)
//   - Kind: the structural shape of a parameter (primitive, list, map, set, object)
//   - DataType: the closed enumeration of declared type tags
package apispec
