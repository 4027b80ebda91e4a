package gen

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/iancoleman/strcase"
)

const header = "// Code generated by resource-generator. DO NOT EDIT.\n\n"

var funcs = template.FuncMap{
	"comment":    commentLines,
	"quote":      strconv.Quote,
	"exported":   Exported,
	"snake":      SnakeName,
	"lowerCamel": strcase.ToLowerCamel,
	"join":       strings.Join,
	"bind":       bind,
}

// bind pairs resource API data with one of its methods for sub-templates.
func bind(api, method any) map[string]any {
	return map[string]any{"API": api, "Method": method}
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(text))
}

var commandTemplate = mustTemplate("command", header+`package {{.PackageName}}

// {{.TypeName}}Request is the request of the {{.Command.Name}} command.
{{if .Command.Description}}//
{{comment "" .Command.Description}}{{end}}type {{.TypeName}}Request struct {
	BaseCommand
{{range .RequestFields}}{{comment "\t" .Doc}}	{{.Name}} {{.Type}} {{.Tag}}
{{end}}}

// Command returns the wire name of the command.
func (*{{.TypeName}}Request) Command() string { return {{quote .Command.Name}} }

// IsAsync reports whether the command runs as an asynchronous job.
func (*{{.TypeName}}Request) IsAsync() bool { return {{.Command.IsAsync}} }

// Required lists the parameters that must be set.
func (*{{.TypeName}}Request) Required() []string {
{{if .Required}}	return []string{ {{- range $i, $n := .Required}}{{if $i}}, {{end}}{{quote $n}}{{end -}} }
{{else}}	return nil
{{end}}}

// TypeInfo maps every parameter to its declared type.
func (*{{.TypeName}}Request) TypeInfo() map[string]string {
	return map[string]string{
{{range .TypeInfo}}		{{quote .Name}}: {{quote .Type}},
{{end}}	}
}

// {{.TypeName}}Response is the response of the {{.Command.Name}} command.
type {{.TypeName}}Response struct {
	BaseResponse
{{range .ResponseFields}}{{comment "\t" .Doc}}	{{.Name}} {{.Type}} {{.Tag}}
{{end}}}

// TypeInfo maps every plain response field to its declared type.
func (*{{.TypeName}}Response) TypeInfo() map[string]string {
	return map[string]string{
{{range .ResponseTypeInfo}}		{{quote .Name}}: {{quote .Type}},
{{end}}	}
}
{{range .AuxTypes}}
// {{.Name}} is a nested value of {{$.TypeName}}Response.
{{if .Doc}}//
{{comment "" .Doc}}{{end}}type {{.Name}} struct {
{{range .Fields}}{{comment "\t" .Doc}}	{{.Name}} {{.Type}} {{.Tag}}
{{end}}}
{{end}}`)

var baseTemplate = mustTemplate("base", header+`package {{.PackageName}}

import (
	"context"
	"errors"
)

var (
	// ErrNoResults is returned when a lookup matches nothing.
	ErrNoResults = errors.New("no results")
	// ErrMultipleResults is returned when a lookup matches more than one result.
	ErrMultipleResults = errors.New("multiple results")
)

// Command is implemented by every request type.
type Command interface {
	Command() string
	IsAsync() bool
	Required() []string
	TypeInfo() map[string]string
}

// BaseCommand is embedded in every request type.
type BaseCommand struct{}

// BaseResponse is embedded in every response type.
type BaseResponse struct{}

// Transport sends a command with the given HTTP method and decodes the answer
// into response.
type Transport interface {
	Do(ctx context.Context, cmd Command, response any, method string) error
}
`)

var clientTemplate = mustTemplate("client", header+`package {{.PackageName}}

import (
	"context"
	"net/http"
)

// Client exposes every command. An empty method means GET.
type Client struct {
	transport Transport
}

// NewClient returns a client sending commands through t.
func NewClient(t Transport) *Client {
	return &Client{transport: t}
}

func (c *Client) do(ctx context.Context, cmd Command, response any, method string) error {
	if method == "" {
		method = http.MethodGet
	}

	return c.transport.Do(ctx, cmd, response, method)
}
{{range .Commands}}
// {{.TypeName}} sends the {{.Name}} command.
{{- if .ReturnsList}}
func (c *Client) {{.TypeName}}(ctx context.Context, req *{{.TypeName}}Request, method string) ([]{{.TypeName}}Response, error) {
	var resp []{{.TypeName}}Response
	if err := c.do(ctx, req, &resp, method); err != nil {
		return nil, err
	}

	return resp, nil
}
{{else}}
func (c *Client) {{.TypeName}}(ctx context.Context, req *{{.TypeName}}Request, method string) (*{{.TypeName}}Response, error) {
	resp := &{{.TypeName}}Response{}
	if err := c.do(ctx, req, resp, method); err != nil {
		return nil, err
	}

	return resp, nil
}
{{end}}{{end}}`)

var manifestTemplate = mustTemplate("manifest", header+`package {{.PackageName}}

// {{.VarName}} lists the generated {{.What}} in generation order.
var {{.VarName}} = []string{
{{range .Names}}	{{quote .}},
{{end}}}
`)

var modelsBaseTemplate = mustTemplate("models-base", header+`package {{.PackageName}}

import (
	"encoding/json"
	"errors"
)

// Copy moves the fields of src into dst by their JSON names. Fields whose types
// differ between the two are left unset.
func Copy(dst, src any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}

	var typeErr *json.UnmarshalTypeError
	if err := json.Unmarshal(data, dst); err != nil && !errors.As(err, &typeErr) {
		return err
	}

	return nil
}
`)
