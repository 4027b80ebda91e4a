package reader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"resource-generator/internal/apispec"
)

// DefaultEnvelope is the top-level key of a listApis discovery answer.
const DefaultEnvelope = "listapisresponse"

// DiscoveryReader reads the JSON document returned by the listApis discovery command:
//
//	{"listapisresponse": {"count": 1, "api": [
//	  {"name": "createAccount", "isasync": false, "description": "...",
//	   "params": [{"name": "email", "required": true, "type": "string"}],
//	   "response": [{"name": "tags", "type": "set", "response": [{"name": "key"}]}]}
//	]}}
//
// Only the first JSON value of the stream is read.
type DiscoveryReader struct {
	// Envelope overrides DefaultEnvelope.
	Envelope string
	Logger   *slog.Logger
}

type jsonAPI struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	IsAsync     flexBool          `json:"isasync"`
	Params      []jsonParam       `json:"params"`
	Response    []json.RawMessage `json:"response"`
}

type jsonParam struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Required    flexBool `json:"required"`
	Type        string   `json:"type"`
}

type jsonResponse struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Type        string            `json:"type"`
	Response    []json.RawMessage `json:"response"`
}

// flexBool accepts both JSON booleans and the strings "true"/"false".
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = flexBool(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected boolean, got %s", data)
	}

	*b = flexBool(isTrue(s))

	return nil
}

// Read implements Reader.
func (d *DiscoveryReader) Read(ctx context.Context, r io.Reader) ([]apispec.Command, error) {
	envelope := d.Envelope
	if envelope == "" {
		envelope = DefaultEnvelope
	}

	var root map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	rawBody, ok := root[envelope]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q envelope", ErrMalformedResponse, envelope)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rawBody, &body); err != nil {
		return nil, fmt.Errorf("%w: %q is not an object: %w", ErrMalformedResponse, envelope, err)
	}

	if _, ok := body["count"]; !ok {
		return nil, fmt.Errorf("%w: missing count in %q", ErrMalformedResponse, envelope)
	}

	rawAPI, ok := body["api"]
	if !ok {
		return nil, fmt.Errorf("%w: missing api list in %q", ErrMalformedResponse, envelope)
	}

	var apis []jsonAPI
	if err := json.Unmarshal(rawAPI, &apis); err != nil {
		return nil, fmt.Errorf("%w: api list: %w", ErrMalformedResponse, err)
	}

	cmds := make([]apispec.Command, 0, len(apis))

	for i, api := range apis {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cmd, err := d.command(i, api)
		if err != nil {
			return nil, err
		}

		cmd, err = finish(cmd, d.Logger)
		if err != nil {
			return nil, err
		}

		cmds = append(cmds, cmd)
	}

	return cmds, nil
}

func (d *DiscoveryReader) command(index int, api jsonAPI) (apispec.Command, error) {
	cmd := apispec.Command{
		Name:        strings.TrimSpace(api.Name),
		Description: strings.TrimSpace(api.Description),
		IsAsync:     bool(api.IsAsync),
	}

	if cmd.Name == "" {
		return cmd, fmt.Errorf("api #%d: %w", index, apispec.ErrMissingName)
	}

	for i, p := range api.Params {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return cmd, fmt.Errorf("api %s: param #%d: %w", cmd.Name, i, apispec.ErrMissingName)
		}

		cmd.Request = append(cmd.Request,
			primitive(name, strings.TrimSpace(p.Description), strings.TrimSpace(p.Type), bool(p.Required)))
	}

	resp, err := responseEntries(api.Response)
	if err != nil {
		return cmd, fmt.Errorf("api %s: %w", cmd.Name, err)
	}

	cmd.Response = resp

	return cmd, nil
}

// responseEntries converts response records, skipping empty ones: some commands
// legitimately describe an empty response shape.
func responseEntries(raws []json.RawMessage) ([]apispec.Parameter, error) {
	var out []apispec.Parameter

	for i, raw := range raws {
		if isEmptyRecord(raw) {
			continue
		}

		var entry jsonResponse
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("response #%d: %w", i, err)
		}

		p, err := responseEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("response #%d: %w", i, err)
		}

		out = append(out, p)
	}

	return out, nil
}

func responseEntry(entry jsonResponse) (apispec.Parameter, error) {
	name := strings.TrimSpace(entry.Name)
	if name == "" {
		return apispec.Parameter{}, apispec.ErrMissingName
	}

	tag := strings.TrimSpace(entry.Type)
	p := primitive(name, strings.TrimSpace(entry.Description), tag, false)

	if !p.DataType.IsCollection() || len(entry.Response) == 0 {
		return p, nil
	}

	sub, err := responseEntries(entry.Response)
	if err != nil {
		return p, fmt.Errorf("%s: %w", name, err)
	}

	p.SubParameters = sub
	p.Kind = apispec.KindOf(p.DataType, len(sub) > 0)

	return p, nil
}

func isEmptyRecord(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return false
	}

	return len(m) == 0
}
