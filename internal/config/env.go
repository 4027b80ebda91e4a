package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env holds the defaults read from environment variables.
type Env struct {
	// Discovery endpoint of the management server.
	Host     string `env:"CS_HOST"           envDefault:"localhost"`
	Port     int    `env:"CS_DISCOVERY_PORT" envDefault:"8096"`
	Protocol string `env:"CS_PROTOCOL"       envDefault:"http"`
	APIPath  string `env:"CS_API_PATH"       envDefault:"client/api"`

	OutputDir   string `env:"RESOURCEGEN_OUT"         envDefault:"."`
	PackageName string `env:"RESOURCEGEN_PACKAGE"     envDefault:"cloudstack"`
	ImportPath  string `env:"RESOURCEGEN_IMPORT_PATH"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	return nil
}

// LoadEnv returns the environment defaults.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}

	return e, nil
}

// EndpointURL is the API base URL of the configured host, without the discovery
// query, e.g. http://localhost:8096/client/api.
func (e Env) EndpointURL() string {
	u := url.URL{
		Scheme: e.Protocol,
		Host:   e.Host + ":" + strconv.Itoa(e.Port),
		Path:   "/" + strings.TrimLeft(e.APIPath, "/"),
	}

	return u.String()
}

// EndpointFor replaces the host of the configured endpoint.
func (e Env) EndpointFor(host string) string {
	e.Host = host
	return e.EndpointURL()
}
