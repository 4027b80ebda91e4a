package gen

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"
	"text/template"

	"resource-generator/internal/apispec"
	"resource-generator/internal/classify"
	"resource-generator/internal/diagnostic"
	"resource-generator/internal/resource"
)

var (
	// ErrNoImportPath is returned when resource code is generated without an import path.
	ErrNoImportPath = errors.New("import path of the generated package is required for resource APIs")
	// ErrReservedName is returned when a model would redeclare a name of the models package.
	ErrReservedName = errors.New("model name is reserved")
)

// Top-level names declared by the finalization files of each package.
var (
	commandPackageNames = []string{
		"Command", "BaseCommand", "BaseResponse", "Transport", "Client", "NewClient",
		"Commands", "ErrNoResults", "ErrMultipleResults",
	}
	modelsPackageNames = []string{"Copy", "Models"}
)

// Config holds configuration for code generation.
type Config struct {
	// PackageName is the package of command types, the client, and base types.
	PackageName string
	// ImportPath is the import path of the output root, i.e. of PackageName.
	ImportPath string
	// ModelsPackage is the package, and subdirectory, of resource models.
	ModelsPackage string
	// Resources enables model and API generation.
	Resources bool
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		PackageName:   "cloudstack",
		ModelsPackage: "models",
		Resources:     true,
	}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the slash-separated path relative to the output root.
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generator renders commands and resource groups.
type Generator struct {
	config  Config
	sources Chain
	logger  *slog.Logger
	parsed  map[string]*template.Template

	// Type names already declared in the command and models packages.
	commandTypes map[string]struct{}
	modelTypes   map[string]struct{}

	diags diagnostic.Diagnostics
}

// NewGenerator creates a Generator. A nil chain serves the built-in templates only.
func NewGenerator(config Config, sources Chain, logger *slog.Logger) *Generator {
	if config.PackageName == "" {
		config.PackageName = DefaultConfig().PackageName
	}

	if config.ModelsPackage == "" {
		config.ModelsPackage = DefaultConfig().ModelsPackage
	}

	if len(sources) == 0 {
		sources = Chain{DefaultSource()}
	}

	if logger == nil {
		logger = slog.Default()
	}

	g := &Generator{
		config:  config,
		sources: sources,
		logger:  logger,
		parsed:  make(map[string]*template.Template),
	}
	_ = g.Reserve(Units{})

	return g
}

// Reserve claims the type names of every unit before any of them is rendered,
// so that auxiliary types never redeclare a name of their package. It starts
// over on every call and clears the collected diagnostics.
func (g *Generator) Reserve(units Units) error {
	g.commandTypes = claim(commandPackageNames)
	for _, c := range units.Commands {
		typeName := Exported(c.Name)
		g.commandTypes[typeName+"Request"] = struct{}{}
		g.commandTypes[typeName+"Response"] = struct{}{}
	}

	g.modelTypes = claim(modelsPackageNames)
	g.diags = diagnostic.Diagnostics{}

	for _, m := range units.Models {
		if slices.Contains(modelsPackageNames, m) {
			return fmt.Errorf("%s: %w", m, ErrReservedName)
		}

		g.modelTypes[m] = struct{}{}
	}

	return nil
}

func claim(names []string) map[string]struct{} {
	taken := make(map[string]struct{}, len(names))
	for _, n := range names {
		taken[n] = struct{}{}
	}

	return taken
}

// Diagnostics returns what the generator noted since the last Reserve.
func (g *Generator) Diagnostics() diagnostic.Diagnostics {
	return g.diags
}

// Config returns the generator configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Context is passed to resource templates alongside their bindings.
type Context struct {
	CommandPackage string
	CommandImport  string
	ModelsPackage  string
	ModelsImport   string
}

func (g *Generator) context() Context {
	return Context{
		CommandPackage: g.config.PackageName,
		CommandImport:  g.config.ImportPath,
		ModelsPackage:  g.config.ModelsPackage,
		ModelsImport:   path.Join(g.config.ImportPath, g.config.ModelsPackage),
	}
}

type commandData struct {
	PackageName    string
	Command        apispec.Command
	TypeName       string
	RequestFields    []Field
	ResponseFields   []Field
	AuxTypes         []AuxType
	Required         []string
	TypeInfo         []TypeInfoEntry
	ResponseTypeInfo []TypeInfoEntry
}

// requestReserved are taken by the methods and embedded type of a request.
var requestReserved = []string{"BaseCommand", "Command", "IsAsync", "Required", "TypeInfo"}

// responseReserved are taken by the methods and embedded type of a response.
var responseReserved = []string{"BaseResponse", "TypeInfo"}

// CommandFilename is the output path of a command's types.
func CommandFilename(name string) string {
	return SnakeName(name) + ".go"
}

// GenerateCommand renders the request and response types of one command.
func (g *Generator) GenerateCommand(cmd apispec.Command) (*GeneratedFile, error) {
	typeName := Exported(cmd.Name)
	tb := newTypeBuilder(g.commandTypes, typeName+"Request", typeName+"Response")

	data := &commandData{
		PackageName:      g.config.PackageName,
		Command:          cmd,
		TypeName:         typeName,
		RequestFields:    tb.fields(typeName+"Request", cmd.Request, requestReserved...),
		ResponseFields:   tb.fields(typeName+"Response", responseParams(cmd.Response), responseReserved...),
		Required:         cmd.RequiredNames(),
		TypeInfo:         typeInfo(cmd.Request),
		ResponseTypeInfo: typeInfo(cmd.Response),
	}
	data.AuxTypes = tb.aux

	return g.render(commandTemplate, CommandFilename(cmd.Name), data)
}

// responseParams drops the request-only required flag.
func responseParams(params []apispec.Parameter) []apispec.Parameter {
	out := make([]apispec.Parameter, len(params))
	for i, p := range params {
		p.Required = false
		out[i] = p
	}

	return out
}

// ModelData is bound to "model/..." templates.
type ModelData struct {
	ModelName    string
	Methods      []resource.Method
	MergedFields []apispec.Parameter
	// Fields and AuxTypes are MergedFields rendered as Go struct fields.
	Fields   []Field
	AuxTypes []AuxType
	Context
}

// ModelFilename is the output path of a model.
func (g *Generator) ModelFilename(model string) string {
	return path.Join(g.config.ModelsPackage, SnakeName(model)+".go")
}

// GenerateModel renders the model struct of a resource group.
func (g *Generator) GenerateModel(group *resource.Group) (*GeneratedFile, error) {
	tb := newTypeBuilder(g.modelTypes, group.ModelName)

	data := &ModelData{
		ModelName:    group.ModelName,
		Methods:      group.Methods,
		MergedFields: group.MergedFields,
		Fields:       tb.fields(group.ModelName, responseParams(group.MergedFields)),
		Context:      g.context(),
	}
	data.AuxTypes = tb.aux

	tmpl, err := g.resolve("model", group.ModelName)
	if err != nil {
		return nil, err
	}

	return g.render(tmpl, g.ModelFilename(group.ModelName), data)
}

// MethodView describes one API method bound to a command.
type MethodView struct {
	Role string
	// Name is the API method name.
	Name         string
	Command      apispec.Command
	ClientMethod string
	RequestType  string
	ResponseType string
	// ReturnsList is set for list commands, whose client method returns a slice.
	ReturnsList bool
	HTTPMethod  string
}

// APIData is bound to "api/..." templates.
type APIData struct {
	ModelName    string
	PackageName  string
	VariableName string
	Methods      []MethodView
	MergedFields []apispec.Parameter
	Create       *MethodView
	Update       *MethodView
	Delete       *MethodView
	List         *MethodView
	// Others are the methods without a fixed role, in first-seen order.
	Others []MethodView
	Context
}

// apiReserved are the method names the default API template defines.
var apiReserved = []string{"Create", "Update", "Delete", "List", "Find"}

// apiPackage is the package, and directory, of a model's API.
func (g *Generator) apiPackage(model string) string {
	return PackageName(model, g.config.ModelsPackage)
}

// apiFilename is the output path of a resource API.
func (g *Generator) apiFilename(model string) string {
	return path.Join(g.apiPackage(model), "api.go")
}

// GenerateAPI renders the API wrapper of a resource group.
func (g *Generator) GenerateAPI(group *resource.Group) (*GeneratedFile, error) {
	if g.config.ImportPath == "" {
		return nil, fmt.Errorf("%s: %w", group.ModelName, ErrNoImportPath)
	}

	ctx := g.context()
	data := &APIData{
		ModelName:   group.ModelName,
		PackageName: g.apiPackage(group.ModelName),
		VariableName: VariableName(group.ModelName,
			"a", "ctx", "req", "resp", "out", "err", "item", "results", "i", "fmt", "context",
			ctx.CommandPackage, ctx.ModelsPackage),
		MergedFields: group.MergedFields,
		Context:      ctx,
	}

	taken := make(map[string]struct{})
	for _, n := range apiReserved {
		taken[n] = struct{}{}
	}

	fixed := map[string]**MethodView{
		resource.RoleCreate: &data.Create,
		resource.RoleUpdate: &data.Update,
		resource.RoleDelete: &data.Delete,
		resource.RoleList:   &data.List,
	}

	for _, m := range group.Methods {
		slot, ok := fixed[m.Role]
		if !ok {
			continue
		}

		view := methodView(m)
		view.Name = Exported(m.Role)
		*slot = &view
		data.Methods = append(data.Methods, view)
	}

	for _, m := range group.OtherMethods() {
		view := methodView(m)

		name := Exported(m.Role)
		if _, clash := taken[name]; clash {
			name = view.ClientMethod
		}

		view.Name = uniqueName(name, taken)
		data.Others = append(data.Others, view)
		data.Methods = append(data.Methods, view)
	}

	tmpl, err := g.resolve("api", group.ModelName)
	if err != nil {
		return nil, err
	}

	return g.render(tmpl, g.apiFilename(group.ModelName), data)
}

func methodView(m resource.Method) MethodView {
	typeName := Exported(m.Command.Name)
	view := MethodView{
		Role:         m.Role,
		Command:      m.Command,
		ClientMethod: typeName,
		RequestType:  typeName + "Request",
		ResponseType: typeName + "Response",
		ReturnsList:  ReturnsList(m.Command.Name),
		HTTPMethod:   "POST",
	}

	if view.ReturnsList {
		view.HTTPMethod = "GET"
	}

	return view
}

// ReturnsList reports whether a command answers with a list of records.
func ReturnsList(command string) bool {
	verb, noun := classify.Split(command)
	return verb == resource.RoleList && noun != ""
}

// Units are the generated units the finalization step covers.
type Units struct {
	Commands []apispec.Command
	Models   []string
}

type clientCommand struct {
	Name        string
	TypeName    string
	ReturnsList bool
}

type finalStep struct {
	tmpl     *template.Template
	filename string
	data     any
}

type manifestData struct {
	PackageName string
	VarName     string
	What        string
	Names       []string
}

// Finalize renders the shared base types, the client, and the manifests.
func (g *Generator) Finalize(units Units) ([]GeneratedFile, error) {
	cmds := make([]clientCommand, 0, len(units.Commands))
	names := make([]string, 0, len(units.Commands))

	for _, c := range units.Commands {
		cmds = append(cmds, clientCommand{Name: c.Name, TypeName: Exported(c.Name), ReturnsList: ReturnsList(c.Name)})
		names = append(names, c.Name)
	}

	pkg := struct{ PackageName string }{g.config.PackageName}

	steps := []finalStep{
		{baseTemplate, "base.go", pkg},
		{clientTemplate, "client.go", struct {
			PackageName string
			Commands    []clientCommand
		}{g.config.PackageName, cmds}},
		{manifestTemplate, "manifest.go", manifestData{g.config.PackageName, "Commands", "commands", names}},
	}

	if g.config.Resources {
		models := struct{ PackageName string }{g.config.ModelsPackage}
		steps = append(steps,
			finalStep{modelsBaseTemplate, path.Join(g.config.ModelsPackage, "base.go"), models},
			finalStep{manifestTemplate, path.Join(g.config.ModelsPackage, "manifest.go"),
				manifestData{g.config.ModelsPackage, "Models", "models", units.Models}},
		)
	}

	files := make([]GeneratedFile, 0, len(steps))

	for _, s := range steps {
		f, err := g.render(s.tmpl, s.filename, s.data)
		if err != nil {
			return nil, err
		}

		files = append(files, *f)
	}

	return files, nil
}

// resolve finds and parses the template of a kind for a model.
func (g *Generator) resolve(kind, model string) (*template.Template, error) {
	name, text, err := g.sources.Resolve(kind, model)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(name, "/default") {
		g.diags.AddInfo(diagnostic.CodeTemplateFallback,
			fmt.Sprintf("no %s template for model %s, using %s", kind, model, name), "", "")
	}

	if t, ok := g.parsed[name]; ok {
		return t, nil
	}

	t, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	g.parsed[name] = t

	return t, nil
}

func (g *Generator) render(tmpl *template.Template, filename string, data any) (*GeneratedFile, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s for %s: %w", tmpl.Name(), filename, err)
	}

	formatted, err := formatSource(filename, buf.Bytes())
	if err != nil {
		return nil, err
	}

	return &GeneratedFile{Filename: filename, Content: formatted}, nil
}
