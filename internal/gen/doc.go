// Package gen renders Go source for commands and resources.
//
// Generation uses text/template and golang.org/x/tools/imports, which formats
// the output and drops unused imports.
//
// Output layout, relative to the output root:
//
//	<command>.go          request/response types of one command
//	base.go               shared base types, Command and Transport interfaces
//	client.go             Client with one method per command
//	manifest.go           list of generated commands
//	models/<model>.go     merged model struct of one resource
//	models/base.go        Copy helper
//	models/manifest.go    list of generated models
//	<model>/api.go        resource API wrapping the client
//
// Command files are rendered from fixed templates. Model and API files are
// resolved through a chain of TemplateSource strategies: "model/<ModelName>"
// falling back to "model/default", and likewise for "api".
package gen
