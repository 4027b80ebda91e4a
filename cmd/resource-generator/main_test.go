package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resource-generator/internal/config"
)

func parse(t *testing.T, args ...string) *CLI {
	t.Helper()

	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("resource-generator"), kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse(args)
	require.NoError(t, err)

	return cli
}

func testGlobals() *globals {
	return &globals{
		ctx:    context.Background(),
		logger: slog.New(slog.DiscardHandler),
		env: config.Env{
			Host:        "localhost",
			Port:        8096,
			Protocol:    "http",
			APIPath:     "client/api",
			OutputDir:   ".",
			PackageName: "cloudstack",
		},
	}
}

func TestGenerate_DiscoveryFromEnvironment(t *testing.T) {
	cli := parse(t, "generate", "--import-path", "example.com/cloudstack")

	opts, err := cli.Generate.options(testGlobals())
	require.NoError(t, err)

	assert.Empty(t, opts.SpecPath)
	assert.Equal(t, "http://localhost:8096/client/api?command=listApis&response=json", opts.DiscoveryURL)
	assert.Equal(t, ".", opts.OutputDir)
	assert.Equal(t, "cloudstack", opts.PackageName)
	assert.True(t, opts.Resources)
}

func TestGenerate_Host(t *testing.T) {
	cli := parse(t, "generate", "--host", "mgmt.example.com", "--no-resources")

	opts, err := cli.Generate.options(testGlobals())
	require.NoError(t, err)

	assert.Equal(t, "http://mgmt.example.com:8096/client/api?command=listApis&response=json", opts.DiscoveryURL)
	assert.False(t, opts.Resources)
}

func TestGenerate_SpecFile(t *testing.T) {
	spec := filepath.Join("..", "..", "internal", "reader", "testdata", "commands.xml")
	cli := parse(t, "generate", "-s", spec, "-o", "out", "--package", "acs", "--import-path", "example.com/acs", "--check")

	opts, err := cli.Generate.options(testGlobals())
	require.NoError(t, err)

	assert.Equal(t, mustAbs(t, spec), opts.SpecPath)
	assert.Empty(t, opts.DiscoveryURL)
	assert.Equal(t, "acs", opts.PackageName)
	assert.Equal(t, "example.com/acs", opts.ImportPath)
	assert.True(t, opts.Check)
}

func TestGenerate_ResolvesImportPath(t *testing.T) {
	cli := parse(t, "generate", "-s", "commands.xml", "-o", "generated")

	opts, err := cli.Generate.options(testGlobals())
	require.NoError(t, err)

	assert.Equal(t, "resource-generator/cmd/resource-generator/generated", opts.ImportPath)
}

func TestGenerate_InvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"watch without spec", []string{"generate", "--watch", "--import-path", "x/y"}, "Watch: needs SpecPath"},
		{"watch and check", []string{"generate", "-s", "a.xml", "--watch", "--check", "--import-path", "x/y"}, "cannot be combined with Check"},
		{"bad package", []string{"generate", "-s", "a.xml", "--package", "my-pkg", "--import-path", "x/y"}, "not a valid Go package name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := parse(t, tt.args...)

			_, err := cli.Generate.options(testGlobals())
			require.ErrorIs(t, err, config.ErrInvalidOptions)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParse_SourcesAreExclusive(t *testing.T) {
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"classify", "-s", "a.xml", "--host", "h"})
	assert.Error(t, err)
}

func mustAbs(t *testing.T, path string) string {
	t.Helper()

	abs, err := filepath.Abs(path)
	require.NoError(t, err)

	return abs
}
