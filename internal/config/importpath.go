package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// ErrNoModule is returned when the output directory is not inside a Go module.
var ErrNoModule = errors.New("output directory is not inside a Go module")

// ResolveImportPath derives the import path of dir from its enclosing Go module.
// dir does not need to exist yet.
func ResolveImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}

	probe := abs
	for {
		if info, err := os.Stat(probe); err == nil && info.IsDir() {
			break
		}

		parent := filepath.Dir(probe)
		if parent == probe {
			return "", fmt.Errorf("%w: %s", ErrNoModule, dir)
		}

		probe = parent
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedModule,
		Dir:  probe,
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return "", fmt.Errorf("failed to load package at %s: %w", probe, err)
	}

	if len(pkgs) == 0 || pkgs[0].Module == nil || pkgs[0].Module.Dir == "" {
		return "", fmt.Errorf("%w: %s", ErrNoModule, dir)
	}

	mod := pkgs[0].Module

	rel, err := filepath.Rel(mod.Dir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside %s", ErrNoModule, dir, mod.Dir)
	}

	return path.Join(mod.Path, filepath.ToSlash(rel)), nil
}
