package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"resource-generator/internal/config"
	"resource-generator/internal/gen"
	"resource-generator/internal/pipeline"
	"resource-generator/internal/vocab"
	"resource-generator/internal/watch"
)

type GenerateCmd struct {
	SourceFlags `embed:""`

	Out        string `help:"Output directory (default $RESOURCEGEN_OUT)." short:"o" type:"path"`
	Package    string `help:"Package name of the generated code (default $RESOURCEGEN_PACKAGE)."`
	ImportPath string `help:"Import path of the output directory; resolved from the enclosing module when empty." name:"import-path"`
	Resources  bool   `help:"Generate resource models and APIs." default:"true" negatable:""`
	Templates  string `help:"Directory of template overrides (<kind>/<Model>.tmpl)." type:"path"`
	Check      bool   `help:"Report stale generated files instead of writing them."`
	Watch      bool   `help:"Regenerate whenever the spec, vocabulary or templates change." short:"w"`
}

func (c *GenerateCmd) Run(rt *globals) error {
	opts, err := c.options(rt)
	if err != nil {
		return err
	}

	if !opts.Watch {
		return c.generate(rt.ctx, rt.logger, opts)
	}

	return c.watch(rt, opts)
}

// options resolves flags against the environment defaults.
func (c *GenerateCmd) options(rt *globals) (config.Generate, error) {
	discoveryURL, err := c.discoveryURL(rt.env)
	if err != nil {
		return config.Generate{}, err
	}

	opts := config.Generate{
		SpecPath:       c.Spec,
		DiscoveryURL:   discoveryURL,
		OutputDir:      orDefault(c.Out, rt.env.OutputDir),
		PackageName:    orDefault(c.Package, rt.env.PackageName),
		ImportPath:     orDefault(c.ImportPath, rt.env.ImportPath),
		Resources:      c.Resources,
		TemplateDir:    c.Templates,
		VocabularyPath: c.Vocabulary,
		Check:          c.Check,
		Watch:          c.Watch,
	}

	if opts.ImportPath == "" && opts.Resources {
		path, err := config.ResolveImportPath(opts.OutputDir)
		if err != nil {
			rt.logger.Warn("could not resolve import path of output directory",
				slog.String("dir", opts.OutputDir), slog.Any("error", err))
		} else {
			rt.logger.Debug("resolved import path", slog.String("import_path", path))
			opts.ImportPath = path
		}
	}

	if err := opts.Validate(); err != nil {
		return config.Generate{}, err
	}

	return opts, nil
}

// pipelineOptions loads the vocabulary and templates anew on every call.
func pipelineOptions(opts config.Generate, logger *slog.Logger) (pipeline.Options, error) {
	var v *vocab.Vocabulary
	if opts.VocabularyPath != "" {
		loaded, err := vocab.LoadFile(opts.VocabularyPath)
		if err != nil {
			return pipeline.Options{}, err
		}

		v = loaded
	}

	var templates []gen.TemplateSource
	if opts.TemplateDir != "" {
		src, err := gen.DirSource(opts.TemplateDir)
		if err != nil {
			return pipeline.Options{}, err
		}

		logger.Debug("loaded template overrides",
			slog.String("dir", opts.TemplateDir), slog.Any("templates", src.Names()))

		templates = append(templates, src)
	}

	cfg := gen.DefaultConfig()
	cfg.PackageName = opts.PackageName
	cfg.ImportPath = opts.ImportPath
	cfg.Resources = opts.Resources

	return pipeline.Options{
		SpecPath:     opts.SpecPath,
		DiscoveryURL: opts.DiscoveryURL,
		HTTPClient:   httpClient,
		OutputDir:    opts.OutputDir,
		Generator:    cfg,
		Vocabulary:   v,
		Templates:    templates,
		Check:        opts.Check,
		Logger:       logger,
	}, nil
}

func (c *GenerateCmd) generate(ctx context.Context, logger *slog.Logger, opts config.Generate) error {
	popts, err := pipelineOptions(opts, logger)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(ctx, popts)
	if result != nil {
		for _, path := range result.Changed {
			fmt.Fprintf(os.Stderr, "stale: %s\n", path)
		}
	}

	return err
}

func (c *GenerateCmd) watch(rt *globals, opts config.Generate) error {
	if err := c.generate(rt.ctx, rt.logger, opts); err != nil {
		rt.logger.Error("generation failed", slog.Any("error", err))
	}

	w, err := watch.New(watch.DefaultConfig(), func(ctx context.Context, _ []string) error {
		return c.generate(ctx, rt.logger, opts)
	}, rt.logger)
	if err != nil {
		return err
	}

	if err := w.AddFile(opts.SpecPath); err != nil {
		return err
	}

	if opts.VocabularyPath != "" {
		if err := w.AddFile(opts.VocabularyPath); err != nil {
			return err
		}
	}

	if opts.TemplateDir != "" {
		if err := w.AddDir(opts.TemplateDir); err != nil {
			return err
		}
	}

	rt.logger.Info("watching for changes", slog.String("spec", opts.SpecPath))

	return w.Run(rt.ctx)
}
