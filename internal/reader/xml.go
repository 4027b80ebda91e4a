package reader

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"resource-generator/internal/apispec"
)

// listMarker suffixes the name of a repeated response field.
const listMarker = "(*)"

// XMLReader reads the hierarchical commands document.
//
//	<commands>
//	  <command>
//	    <name>createAccount</name>
//	    <description>Creates an account</description>
//	    <isAsync>false</isAsync>
//	    <request>
//	      <arg><name>email</name><required>true</required><type>string</type></arg>
//	    </request>
//	    <response>
//	      <arg><name>tags(*)</name><arguments><arg><name>key</name></arg></arguments></arg>
//	    </response>
//	  </command>
//	</commands>
//
// Every command element is read, at any depth.
type XMLReader struct {
	Logger *slog.Logger
}

type xmlCommand struct {
	Name        string   `xml:"name"`
	Description string   `xml:"description"`
	IsAsync     string   `xml:"isAsync"`
	Request     *xmlArgs `xml:"request"`
	Response    *xmlArgs `xml:"response"`
}

type xmlArgs struct {
	Args []xmlArg `xml:"arg"`
}

type xmlArg struct {
	Name        string   `xml:"name"`
	Required    string   `xml:"required"`
	Description string   `xml:"description"`
	Type        string   `xml:"type"`
	DataType    string   `xml:"dataType"`
	Arguments   *xmlArgs `xml:"arguments"`
}

// Read implements Reader.
func (x *XMLReader) Read(ctx context.Context, r io.Reader) ([]apispec.Command, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var cmds []apispec.Command

	for index := 0; ; {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "command" {
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var raw xmlCommand
		if err := dec.DecodeElement(&raw, &start); err != nil {
			return nil, fmt.Errorf("%w: command #%d: %w", ErrMalformedDocument, index, err)
		}

		cmd, err := x.command(index, raw)
		if err != nil {
			return nil, err
		}

		cmd, err = finish(cmd, x.Logger)
		if err != nil {
			return nil, err
		}

		cmds = append(cmds, cmd)
		index++
	}

	return cmds, nil
}

func (x *XMLReader) command(index int, raw xmlCommand) (apispec.Command, error) {
	cmd := apispec.Command{
		Name:        strings.TrimSpace(raw.Name),
		Description: strings.TrimSpace(raw.Description),
		IsAsync:     isTrue(raw.IsAsync),
	}

	if cmd.Name == "" {
		return cmd, fmt.Errorf("command #%d: %w", index, apispec.ErrMissingName)
	}

	if raw.Request != nil {
		for i, a := range raw.Request.Args {
			name := strings.TrimSpace(a.Name)
			if name == "" {
				return cmd, fmt.Errorf("command %s: request arg #%d: %w", cmd.Name, i, apispec.ErrMissingName)
			}

			tag := strings.TrimSpace(a.Type)
			if tag == "" {
				tag = strings.TrimSpace(a.DataType)
			}

			cmd.Request = append(cmd.Request,
				primitive(name, strings.TrimSpace(a.Description), tag, isTrue(a.Required)))
		}
	}

	if raw.Response != nil {
		for i, a := range raw.Response.Args {
			p, err := responseArg(a)
			if err != nil {
				return cmd, fmt.Errorf("command %s: response arg #%d: %w", cmd.Name, i, err)
			}

			cmd.Response = append(cmd.Response, p)
		}
	}

	return cmd, nil
}

// responseArg converts a response arg. A name carrying the list marker becomes
// a list whose sub-parameters come from the nested arguments, at any depth.
func responseArg(a xmlArg) (apispec.Parameter, error) {
	name := strings.TrimSpace(a.Name)
	desc := strings.TrimSpace(a.Description)
	tag := strings.TrimSpace(a.DataType)

	idx := strings.Index(name, listMarker)
	if idx < 0 {
		if name == "" {
			return apispec.Parameter{}, apispec.ErrMissingName
		}

		return primitive(name, desc, tag, false), nil
	}

	name = strings.TrimSpace(name[:idx])
	if name == "" {
		return apispec.Parameter{}, apispec.ErrMissingName
	}

	if tag == "" {
		tag = "list"
	}

	p := apispec.Parameter{
		Name:         name,
		Description:  desc,
		Kind:         apispec.KindList,
		DeclaredType: tag,
		DataType:     apispec.DataTypeList,
	}

	if a.Arguments != nil {
		for i, sub := range a.Arguments.Args {
			sp, err := responseArg(sub)
			if err != nil {
				return p, fmt.Errorf("%s: arg #%d: %w", name, i, err)
			}

			p.SubParameters = append(p.SubParameters, sp)
		}
	}

	return p, nil
}
