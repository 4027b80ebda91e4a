package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"resource-generator/internal/apispec"
	"resource-generator/internal/classify"
	"resource-generator/internal/diagnostic"
	"resource-generator/internal/gen"
	"resource-generator/internal/reader"
	"resource-generator/internal/resource"
	"resource-generator/internal/sink"
	"resource-generator/internal/vocab"
)

// ErrNoSource is returned when neither a spec file nor a discovery URL is set.
var ErrNoSource = errors.New("no spec source: set a spec file or a discovery endpoint")

// Options configure one run.
type Options struct {
	// SpecPath is an XML or JSON spec file. It takes precedence over DiscoveryURL.
	SpecPath string
	// DiscoveryURL is fetched when SpecPath is empty.
	DiscoveryURL string
	HTTPClient   *http.Client

	OutputDir string
	Generator gen.Config

	// Vocabulary defaults to vocab.Default().
	Vocabulary *vocab.Vocabulary
	// Templates are consulted before the built-in templates.
	Templates []gen.TemplateSource

	// Check compares the output with OutputDir instead of writing it.
	Check bool
	// Sink replaces the sink derived from OutputDir and Check.
	Sink sink.OutputSink

	Logger *slog.Logger
}

// Result describes a finished run.
type Result struct {
	// Catalog is nil when resources are disabled.
	Catalog  *classify.Catalog
	Manifest *Manifest
	Files    []gen.GeneratedFile
	// Diagnostics holds what classification and generation noted.
	Diagnostics diagnostic.Diagnostics
	// Changed lists the stale files of a check run.
	Changed []string
}

// Run executes the whole pipeline. Any error aborts the run before files are
// written.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cmds, err := readCommands(ctx, opts, logger)
	if err != nil {
		return nil, err
	}

	var (
		catalog *classify.Catalog
		groups  []*resource.Group
		units   = gen.Units{Commands: cmds}
	)

	if opts.Generator.Resources {
		catalog, err = classify.New(opts.Vocabulary, logger).Classify(cmds)
		if err != nil {
			return nil, fmt.Errorf("classifying commands: %w", err)
		}

		for _, g := range catalog.Groups {
			g.MergedFields = resource.MergeFields(g)
		}

		groups = catalog.Groups
		units = gen.Units{Commands: catalog.Commands, Models: catalog.Models()}
	}

	sources := append(gen.Chain{}, opts.Templates...)
	sources = append(sources, gen.DefaultSource())
	generator := gen.NewGenerator(opts.Generator, sources, logger)

	if err := generator.Reserve(units); err != nil {
		return nil, err
	}

	files, manifest, err := render(generator, units.Commands, groups)
	if err != nil {
		var fe *gen.FormatError
		if errors.As(err, &fe) && !opts.Check && opts.Sink == nil && opts.OutputDir != "" {
			writeDebugUnformatted(ctx, opts.OutputDir, fe, logger)
		}

		return nil, err
	}

	out, check := outputSink(opts)

	if err := flush(ctx, out, files); err != nil {
		return nil, err
	}

	genDiags := generator.Diagnostics()
	genDiags.Log(logger)

	result := &Result{Catalog: catalog, Manifest: manifest, Files: files}
	if catalog != nil {
		result.Diagnostics.Merge(catalog.Diagnostics)
	}

	result.Diagnostics.Merge(genDiags)

	if check != nil {
		result.Changed = check.Changed()
		if err := check.Err(); err != nil {
			return result, err
		}

		logger.Info("generated files are up to date", slog.Int("files", len(files)))

		return result, nil
	}

	logger.Info("generated files",
		slog.Int("commands", len(manifest.CommandNames())),
		slog.Int("models", len(manifest.Models())),
		slog.Int("files", len(files)),
		slog.Int("default_templates", genDiags.Count(diagnostic.CodeTemplateFallback)),
	)

	return result, nil
}

func readCommands(ctx context.Context, opts Options, logger *slog.Logger) ([]apispec.Command, error) {
	switch {
	case opts.SpecPath != "":
		return reader.ReadFile(ctx, opts.SpecPath, logger)
	case opts.DiscoveryURL != "":
		return reader.Discover(ctx, opts.HTTPClient, opts.DiscoveryURL, logger)
	default:
		return nil, ErrNoSource
	}
}

// render produces every file in memory, recording each unit in a fresh manifest.
// Groups are only rendered when resources are enabled.
func render(g *gen.Generator, cmds []apispec.Command, groups []*resource.Group) ([]gen.GeneratedFile, *Manifest, error) {
	manifest := NewManifest()

	var files []gen.GeneratedFile

	for _, cmd := range cmds {
		f, err := g.GenerateCommand(cmd)
		if err != nil {
			return nil, nil, fmt.Errorf("generating %s: %w", cmd.Name, err)
		}

		files = append(files, *f)
		manifest.AddCommand(cmd, f.Filename)
	}

	if g.Config().Resources {
		for _, group := range groups {
			model, err := g.GenerateModel(group)
			if err != nil {
				return nil, nil, fmt.Errorf("generating model %s: %w", group.ModelName, err)
			}

			api, err := g.GenerateAPI(group)
			if err != nil {
				return nil, nil, fmt.Errorf("generating API %s: %w", group.ModelName, err)
			}

			files = append(files, *model, *api)
			manifest.AddModel(group.ModelName, model.Filename, api.Filename)
		}
	}

	final, err := g.Finalize(manifest.Units())
	if err != nil {
		return nil, nil, fmt.Errorf("finalizing: %w", err)
	}

	for _, f := range final {
		files = append(files, f)
		manifest.AddFile(f.Filename)
	}

	return files, manifest, nil
}

func outputSink(opts Options) (sink.OutputSink, *sink.CheckSink) {
	if opts.Sink != nil {
		if c, ok := opts.Sink.(*sink.CheckSink); ok {
			return c, c
		}

		return opts.Sink, nil
	}

	if opts.Check {
		c := sink.NewCheckSink(opts.OutputDir)
		return c, c
	}

	return sink.NewFilesystemSink(opts.OutputDir), nil
}

func flush(ctx context.Context, out sink.OutputSink, files []gen.GeneratedFile) error {
	for _, f := range files {
		if err := out.WriteFile(ctx, f.Filename, f.Content); err != nil {
			return fmt.Errorf("writing %s: %w", f.Filename, err)
		}
	}

	return nil
}

// writeDebugUnformatted writes the unformatted source next to the intended
// output. Failing here never hides the formatting error.
func writeDebugUnformatted(ctx context.Context, dir string, fe *gen.FormatError, logger *slog.Logger) {
	name := gen.DebugFilename(fe.Filename)

	if err := sink.NewFilesystemSink(dir).WriteFile(ctx, name, fe.Source); err != nil {
		logger.Warn("could not write unformatted source", slog.String("file", name), slog.Any("error", err))
		return
	}

	logger.Error("generated code does not format, unformatted source written",
		slog.String("file", name))
}
