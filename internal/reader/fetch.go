package reader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"

	"resource-generator/internal/apispec"
)

// ErrFetch is returned when the discovery document cannot be retrieved.
var ErrFetch = errors.New("discovery fetch failed")

// DiscoveryQuery is the query string of a listApis discovery request.
type DiscoveryQuery struct {
	Command  string `schema:"command"`
	Response string `schema:"response"`
	Name     string `schema:"name,omitempty"`
}

var queryEncoder = schema.NewEncoder()

// DiscoveryURL appends the discovery query to the API base URL, e.g.
// http://localhost:8096/client/api?command=listApis&response=json.
func DiscoveryURL(base string, q DiscoveryQuery) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", base, err)
	}

	if q.Command == "" {
		q.Command = "listApis"
	}

	if q.Response == "" {
		q.Response = "json"
	}

	values := u.Query()
	if err := queryEncoder.Encode(q, values); err != nil {
		return "", fmt.Errorf("encoding discovery query: %w", err)
	}

	u.RawQuery = values.Encode()

	return u.String(), nil
}

// Fetch performs one blocking GET of the discovery document. There are no retries:
// any transport error or non-2xx status fails the run.
func Fetch(ctx context.Context, client *http.Client, target string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrFetch, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetch, target, resp.Status)
	}

	return body, nil
}

// Discover fetches the discovery document and reads it.
func Discover(ctx context.Context, client *http.Client, target string, logger *slog.Logger) ([]apispec.Command, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("fetching command set", slog.String("url", target))

	body, err := Fetch(ctx, client, target)
	if err != nil {
		return nil, err
	}

	rd := &DiscoveryReader{Logger: logger}

	return rd.Read(ctx, bytes.NewReader(body))
}
