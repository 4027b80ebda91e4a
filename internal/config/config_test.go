package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"CS_HOST", "CS_DISCOVERY_PORT", "CS_PROTOCOL", "CS_API_PATH",
		"RESOURCEGEN_OUT", "RESOURCEGEN_PACKAGE", "RESOURCEGEN_IMPORT_PATH",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	e, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, Env{
		Host:        "localhost",
		Port:        8096,
		Protocol:    "http",
		APIPath:     "client/api",
		OutputDir:   ".",
		PackageName: "cloudstack",
	}, e)
	assert.Equal(t, "http://localhost:8096/client/api", e.EndpointURL())
	assert.Equal(t, "http://mgmt.example.com:8096/client/api", e.EndpointFor("mgmt.example.com"))
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("CS_HOST", "10.0.0.5")
	t.Setenv("CS_DISCOVERY_PORT", "8080")
	t.Setenv("CS_PROTOCOL", "https")
	t.Setenv("CS_API_PATH", "/api")
	t.Setenv("RESOURCEGEN_PACKAGE", "acs")
	t.Setenv("RESOURCEGEN_IMPORT_PATH", "example.com/acs")

	e, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://10.0.0.5:8080/api", e.EndpointURL())
	assert.Equal(t, "acs", e.PackageName)
	assert.Equal(t, "example.com/acs", e.ImportPath)
}

func TestLoadEnv_BadPort(t *testing.T) {
	t.Setenv("CS_DISCOVERY_PORT", "eighty")

	_, err := LoadEnv()
	assert.ErrorContains(t, err, "parse env")
}

func validOptions() Generate {
	return Generate{
		SpecPath:    "commands.xml",
		OutputDir:   "out",
		PackageName: "cloudstack",
		ImportPath:  "example.com/cloudstack",
		Resources:   true,
	}
}

func TestGenerate_Validate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		modify func(g *Generate)
		errMsg string
	}{
		{"valid", func(*Generate) {}, ""},
		{"discovery instead of spec", func(g *Generate) {
			g.SpecPath = ""
			g.DiscoveryURL = "http://localhost:8096/client/api?command=listApis&response=json"
		}, ""},
		{"no source", func(g *Generate) { g.SpecPath = "" }, "SpecPath: is required when DiscoveryURL is not set"},
		{"bad url", func(g *Generate) { g.DiscoveryURL = "not a url" }, `DiscoveryURL: "not a url" is not a valid URL`},
		{"no output", func(g *Generate) { g.OutputDir = "" }, "OutputDir: is required"},
		{"bad package", func(g *Generate) { g.PackageName = "cloud-stack" }, `"cloud-stack" is not a valid Go package name`},
		{"keyword package", func(g *Generate) { g.PackageName = "type" }, `"type" is not a valid Go package name`},
		{"resources need import path", func(g *Generate) { g.ImportPath = "" }, "ImportPath: is required when Resources is true"},
		{"commands only", func(g *Generate) { g.ImportPath = ""; g.Resources = false }, ""},
		{"template dir", func(g *Generate) { g.TemplateDir = dir }, ""},
		{"missing template dir", func(g *Generate) { g.TemplateDir = filepath.Join(dir, "nope") }, "is not a directory"},
		{"missing vocabulary", func(g *Generate) { g.VocabularyPath = filepath.Join(dir, "nope.yaml") }, "is not a file"},
		{"watch", func(g *Generate) { g.Watch = true }, ""},
		{"watch and check", func(g *Generate) { g.Watch = true; g.Check = true }, "Watch: cannot be combined with Check"},
		{"watch discovery", func(g *Generate) {
			g.SpecPath = ""
			g.DiscoveryURL = "http://localhost:8096/client/api"
			g.Watch = true
		}, "Watch: needs SpecPath"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validOptions()
			tt.modify(&g)

			err := g.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrInvalidOptions)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGenerate_ValidateReportsAll(t *testing.T) {
	g := Generate{PackageName: "9lives", Resources: true}

	err := g.Validate()
	require.Error(t, err)

	for _, field := range []string{"SpecPath", "OutputDir", "PackageName", "ImportPath"} {
		assert.Contains(t, err.Error(), field+":")
	}
}

func TestResolveImportPath(t *testing.T) {
	got, err := ResolveImportPath(".")
	require.NoError(t, err)
	assert.Equal(t, "resource-generator/internal/config", got)

	got, err = ResolveImportPath(filepath.Join("generated", "cloudstack"))
	require.NoError(t, err)
	assert.Equal(t, "resource-generator/internal/config/generated/cloudstack", got)
}

func TestResolveImportPath_OutsideModule(t *testing.T) {
	_, err := ResolveImportPath(t.TempDir())
	assert.Error(t, err)
}
