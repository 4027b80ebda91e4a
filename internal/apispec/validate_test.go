package apispec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_Validate(t *testing.T) {
	valid := Command{
		Name: "listTags",
		Response: []Parameter{
			{Name: "tags", Kind: KindList, SubParameters: []Parameter{
				{Name: "key", Kind: KindPrimitive},
				{Name: "value", Kind: KindPrimitive},
			}},
		},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		cmd     Command
		wantErr error
		errMsg  string
	}{
		{
			name:    "missing command name",
			cmd:     Command{},
			wantErr: ErrMissingName,
		},
		{
			name:    "missing parameter name",
			cmd:     Command{Name: "createFoo", Request: []Parameter{{Kind: KindPrimitive}}},
			wantErr: ErrMissingName,
			errMsg:  "createFoo.request[0]",
		},
		{
			name: "duplicate parameter",
			cmd: Command{Name: "createFoo", Request: []Parameter{
				{Name: "id", Kind: KindPrimitive},
				{Name: "id", Kind: KindPrimitive},
			}},
			wantErr: ErrInvalidParameter,
			errMsg:  "duplicate name",
		},
		{
			name: "nested primitive",
			cmd: Command{Name: "createFoo", Response: []Parameter{
				{Name: "x", Kind: KindMap, SubParameters: []Parameter{{Name: "y", Kind: KindPrimitive}}},
			}},
			wantErr: ErrInvalidParameter,
			errMsg:  "cannot carry sub-parameters",
		},
		{
			name: "duplicate nested",
			cmd: Command{Name: "createFoo", Response: []Parameter{
				{Name: "x", Kind: KindList, SubParameters: []Parameter{
					{Name: "y", Kind: KindPrimitive},
					{Name: "y", Kind: KindPrimitive},
				}},
			}},
			wantErr: ErrInvalidParameter,
			errMsg:  "createFoo.response.x.y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestDedupeParameters(t *testing.T) {
	in := []Parameter{
		{Name: "id"},
		{Name: "nic", Kind: KindList, SubParameters: []Parameter{
			{Name: "ip"},
			{Name: "ip"},
			{Name: "mac"},
		}},
		{Name: "id"},
		{Name: "name"},
	}

	out, dropped := DedupeParameters(in)

	require.Len(t, out, 3)
	assert.Equal(t, "id", out[0].Name)
	assert.Equal(t, "nic", out[1].Name)
	assert.Equal(t, "name", out[2].Name)
	require.Len(t, out[1].SubParameters, 2)
	assert.Equal(t, "ip", out[1].SubParameters[0].Name)
	assert.Equal(t, "mac", out[1].SubParameters[1].Name)
	assert.Equal(t, []string{"nic.ip", "id"}, dropped)

	// input is untouched
	assert.Len(t, in[1].SubParameters, 3)
}

func TestCommand_RequiredNames(t *testing.T) {
	cmd := Command{Name: "createAccount", Request: []Parameter{
		{Name: "email", Required: true},
		{Name: "domainid"},
		{Name: "username", Required: true},
	}}

	assert.Equal(t, []string{"email", "username"}, cmd.RequiredNames())
	assert.Nil(t, Command{}.RequiredNames())
}
