package reader

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resource-generator/internal/apispec"
)

func readJSON(t *testing.T, doc string) ([]apispec.Command, error) {
	t.Helper()

	rd := &DiscoveryReader{}

	return rd.Read(context.Background(), strings.NewReader(doc))
}

func TestDiscoveryReader_Fixture(t *testing.T) {
	f, err := os.Open("testdata/listapis.json")
	require.NoError(t, err)
	defer f.Close()

	cmds, err := (&DiscoveryReader{}).Read(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, cmds, 5)

	list := cmds[2]
	assert.Equal(t, "listWidgets", list.Name)
	require.Len(t, list.Response, 2, "empty response records are skipped")

	tags := cmds[0].Response[4]
	assert.Equal(t, "tags", tags.Name)
	assert.Equal(t, apispec.KindList, tags.Kind)
	require.Len(t, tags.SubParameters, 2)
	assert.Equal(t, "key", tags.SubParameters[0].Name)

	assert.True(t, cmds[3].IsAsync)
	assert.True(t, cmds[3].Request[0].Required)
}

func TestDiscoveryReader_Envelope(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		errMsg string
	}{
		{"missing envelope", `{"errorresponse": {"errorcode": 401}}`, `missing "listapisresponse" envelope`},
		{"missing count", `{"listapisresponse": {"api": []}}`, "missing count"},
		{"missing api", `{"listapisresponse": {"count": 0}}`, "missing api list"},
		{"envelope not an object", `{"listapisresponse": []}`, "is not an object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readJSON(t, tt.doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDiscoveryReader_CustomEnvelope(t *testing.T) {
	rd := &DiscoveryReader{Envelope: "listcommandsresponse"}
	cmds, err := rd.Read(context.Background(),
		strings.NewReader(`{"listcommandsresponse": {"count": 1, "api": [{"name": "listZones"}]}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"listZones"}, apispec.Names(cmds))
}

func TestDiscoveryReader_NotJSON(t *testing.T) {
	_, err := readJSON(t, `<xml/>`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestDiscoveryReader_MissingNames(t *testing.T) {
	_, err := readJSON(t, `{"listapisresponse": {"count": 1, "api": [{"description": "nameless"}]}}`)
	require.ErrorIs(t, err, apispec.ErrMissingName)
	assert.Contains(t, err.Error(), "api #0")

	_, err = readJSON(t, `{"listapisresponse": {"count": 1, "api": [{"name": "createFoo", "params": [{"type": "string"}]}]}}`)
	require.ErrorIs(t, err, apispec.ErrMissingName)
	assert.Contains(t, err.Error(), "api createFoo: param #0")

	_, err = readJSON(t, `{"listapisresponse": {"count": 1, "api": [{"name": "createFoo", "response": [{"type": "string"}]}]}}`)
	require.ErrorIs(t, err, apispec.ErrMissingName)
	assert.Contains(t, err.Error(), "api createFoo: response #0")
}

func TestDiscoveryReader_Collections(t *testing.T) {
	cmds, err := readJSON(t, `{"listapisresponse": {"count": 1, "api": [{"name": "listHosts", "isasync": "true",
		"params": [{"name": "ids", "type": "list", "required": "false"}],
		"response": [
			{"name": "details", "type": "map", "response": [{"name": "key"}]},
			{"name": "gpugroup", "type": "set", "response": [{"name": "gpugroupname"}, {}]},
			{"name": "capabilities", "type": "set"},
			{"name": "cpuspeed", "type": "long", "response": [{"name": "ignored"}]}
		]}]}}`)
	require.NoError(t, err)

	cmd := cmds[0]
	assert.True(t, cmd.IsAsync)
	assert.Equal(t, apispec.KindList, cmd.Request[0].Kind)
	assert.False(t, cmd.Request[0].Required)

	resp := cmd.Response
	assert.Equal(t, apispec.KindObject, resp[0].Kind)
	assert.Equal(t, apispec.DataTypeMap, resp[0].DataType)
	assert.Equal(t, apispec.KindList, resp[1].Kind)
	require.Len(t, resp[1].SubParameters, 1)
	assert.Equal(t, apispec.KindSet, resp[2].Kind)
	assert.Empty(t, resp[3].SubParameters, "only collections carry nested entries")
	assert.Equal(t, apispec.KindPrimitive, resp[3].Kind)

	assert.NoError(t, cmd.Validate())
}

func TestDiscoveryReader_OnlyFirstValue(t *testing.T) {
	cmds, err := readJSON(t, `{"listapisresponse": {"count": 1, "api": [{"name": "listZones"}]}}
{"garbage": true}`)
	require.NoError(t, err)
	assert.Len(t, cmds, 1)
}
