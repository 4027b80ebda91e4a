// Command resource-generator generates typed Go bindings for a CloudStack-style
// management API.
//
// It reads the command catalog from an XML spec file or from a live discovery
// endpoint, groups commands into resources and writes:
//   - one request/response file per command plus a client and manifest
//   - resource models and per-resource API wrappers
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"resource-generator/internal/config"
)

type CLI struct {
	Verbose bool `help:"Enable debug logging." short:"v"`

	Generate GenerateCmd `cmd:"" help:"Generate command types, client, models and resource APIs."`
	Classify ClassifyCmd `cmd:"" help:"Print how each command is assigned to a model and role."`
	Version  VersionCmd  `cmd:"" help:"Print version information."`
}

// globals is bound into every command's Run method.
type globals struct {
	ctx    context.Context
	logger *slog.Logger
	env    config.Env
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	_, err := os.Stdout.WriteString(Version() + "\n")
	return err
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("resource-generator"),
		kong.Description("Generate Go API bindings from a management server command catalog."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	env, err := config.LoadEnv()
	kctx.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = kctx.Run(&globals{ctx: ctx, logger: logger, env: env})
	stop()
	kctx.FatalIfErrorf(err)
}
