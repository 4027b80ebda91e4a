// Package reader turns a spec source into the canonical []apispec.Command.
//
// Two interchangeable readers implement Reader:
//   - XMLReader parses the hierarchical commands document (command/request/response/arg)
//   - DiscoveryReader parses the JSON answer of the listApis discovery command
//
// Both produce the same shape for the same logical command set, so everything
// downstream is reader-agnostic. Fetch retrieves the discovery document over HTTP.
package reader
