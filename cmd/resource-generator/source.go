package main

import (
	"context"
	"net/http"
	"time"

	"resource-generator/internal/apispec"
	"resource-generator/internal/config"
	"resource-generator/internal/reader"
	"resource-generator/internal/vocab"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// SourceFlags select where commands and the vocabulary come from.
type SourceFlags struct {
	Spec       string `help:"XML or JSON command spec file." short:"s" type:"path" xor:"source"`
	Endpoint   string `help:"API URL of a management server to discover commands from." placeholder:"URL" xor:"source"`
	Host       string `help:"Discover from this host, building the URL from CS_PROTOCOL, CS_DISCOVERY_PORT and CS_API_PATH." xor:"source"`
	Vocabulary string `help:"Vocabulary YAML file with verbs and overrides." type:"path"`
}

// discoveryURL is empty when a spec file is given. Without any source flag
// the endpoint from the environment is used.
func (s *SourceFlags) discoveryURL(env config.Env) (string, error) {
	if s.Spec != "" {
		return "", nil
	}

	base := s.Endpoint
	if base == "" {
		base = env.EndpointFor(orDefault(s.Host, env.Host))
	}

	return reader.DiscoveryURL(base, reader.DiscoveryQuery{})
}

func (s *SourceFlags) vocabulary() (*vocab.Vocabulary, error) {
	if s.Vocabulary == "" {
		return nil, nil
	}

	return vocab.LoadFile(s.Vocabulary)
}

func (s *SourceFlags) read(ctx context.Context, rt *globals) ([]apispec.Command, error) {
	if s.Spec != "" {
		return reader.ReadFile(ctx, s.Spec, rt.logger)
	}

	target, err := s.discoveryURL(rt.env)
	if err != nil {
		return nil, err
	}

	return reader.Discover(ctx, httpClient, target, rt.logger)
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}

	return fallback
}
