package gen

import (
	"go/token"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// initialisms are upper-cased when they form a whole token.
var initialisms = map[string]string{
	"acl":  "ACL",
	"api":  "API",
	"cidr": "CIDR",
	"cpu":  "CPU",
	"dns":  "DNS",
	"gpu":  "GPU",
	"http": "HTTP",
	"id":   "ID",
	"ids":  "IDs",
	"ip":   "IP",
	"ldap": "LDAP",
	"os":   "OS",
	"ssh":  "SSH",
	"ssl":  "SSL",
	"uri":  "URI",
	"url":  "URL",
	"uuid": "UUID",
	"vlan": "VLAN",
	"vm":   "VM",
	"vpc":  "VPC",
	"vpn":  "VPN",
}

// Exported turns a wire name into an exported Go identifier:
// "createWidget" -> "CreateWidget", "zoneid" -> "Zoneid", "id" -> "ID".
func Exported(name string) string {
	tokens := tokenizeCamelCase(name)
	if len(tokens) == 0 {
		return "X"
	}

	var b strings.Builder

	for _, tok := range tokens {
		if up, ok := initialisms[strings.ToLower(tok)]; ok {
			b.WriteString(up)
			continue
		}

		runes := []rune(tok)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}

	out := b.String()
	if !unicode.IsLetter([]rune(out)[0]) {
		out = "X" + out
	}

	return out
}

// SnakeName is used for file and package names: "VirtualMachine" -> "virtual_machine".
func SnakeName(name string) string {
	return strcase.ToSnake(name)
}

// PackageName is the snake_case package of a model's API. Names that are not
// valid package names, or are listed in reserved, get an "_api" suffix.
func PackageName(model string, reserved ...string) string {
	name := SnakeName(model)
	if !token.IsIdentifier(name) || slices.Contains(reserved, name) {
		name += "_api"
	}

	return name
}

// VariableName is a lowerCamel identifier for a model value that does not clash
// with Go keywords or the names used by generated code.
func VariableName(model string, reserved ...string) string {
	v := strcase.ToLowerCamel(model)
	if v == "" {
		v = "value"
	}

	if token.IsKeyword(v) || slices.Contains(reserved, v) {
		v += "Value"
	}

	return v
}

// uniqueName returns name, or name with a numeric suffix when taken.
func uniqueName(name string, taken map[string]struct{}) string {
	candidate := name
	for i := 2; ; i++ {
		if _, ok := taken[candidate]; !ok {
			taken[candidate] = struct{}{}
			return candidate
		}

		candidate = name + strconv.Itoa(i)
	}
}

// tokenizeCamelCase splits an identifier into tokens on case changes and on any
// rune that is neither a letter nor a digit.
// Examples:
//   - "createWidget" -> ["create", "Widget"]
//   - "listVPCOfferings" -> ["list", "VPC", "Offerings"]
//   - "details[0].key" -> ["details", "0", "key"]
func tokenizeCamelCase(s string) []string {
	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prev)

	// "orderID" -> split before 'I'
	if isUpper && !isPrevUpper && !isSeparator(prev) {
		return true
	}

	// "XMLParser" -> "XML" + "Parser", split before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return isUpper && isPrevUpper && hasNextLower
}
