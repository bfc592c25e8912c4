package jsonapi

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/stoewer/go-strcase"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/jsonapi-openapi/openapi"
)

// FormatPolicy is a name formatting policy.
type FormatPolicy string

const (
	FormatNone       FormatPolicy = ""
	FormatDasherize  FormatPolicy = "dasherize"
	FormatCamelize   FormatPolicy = "camelize"
	FormatCapitalize FormatPolicy = "capitalize"
	FormatUnderscore FormatPolicy = "underscore"
)

// ParseFormatPolicy parses a policy name. "none", "false" and the empty
// string disable formatting.
func ParseFormatPolicy(s string) (FormatPolicy, error) {
	switch p := FormatPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case FormatDasherize, FormatCamelize, FormatCapitalize, FormatUnderscore:
		return p, nil
	case FormatNone, "none", "false":
		return FormatNone, nil
	}
	return FormatNone, fmt.Errorf("jsonapi: unknown format policy %q", s)
}

func (p *FormatPolicy) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseFormatPolicy(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Apply formats a name: "owner_member" becomes "owner-member", "ownerMember",
// "OwnerMember" or stays "owner_member". Dasherize and underscore first split
// camel case words, so "line2Address" dasherizes to "line2-address". The camel
// policies only join on "_" and "-" and keep the casing of each word.
func (p FormatPolicy) Apply(name string) string {
	switch p {
	case FormatDasherize:
		return strcase.KebabCase(underscore(name))
	case FormatCamelize:
		return lowerFirst(camelize(name))
	case FormatCapitalize:
		return camelize(name)
	case FormatUnderscore:
		return strcase.SnakeCase(underscore(name))
	}
	return name
}

var (
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	wordBoundary    = regexp.MustCompile(`([a-z\d])([A-Z])`)
)

// underscore splits camel case words with "_" and lowers the result:
// "HTTPServer" becomes "http_server".
func underscore(name string) string {
	name = acronymBoundary.ReplaceAllString(name, "${1}_${2}")
	name = wordBoundary.ReplaceAllString(name, "${1}_${2}")
	return strings.ToLower(strings.ReplaceAll(name, "-", "_"))
}

// camelize upper-cases the first letter of every "_" or "-" separated word
// and drops the separators.
func camelize(name string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' }) {
		r, size := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(word[size:])
	}
	return b.String()
}

func lowerFirst(name string) string {
	if name == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}

// reservedMembers are the structural member names of JSON:API documents.
// They keep their spelling under every policy outside attributes and
// relationship names.
var reservedMembers = []string{
	"data", "type", "id", "attributes", "relationships",
	"links", "meta", "included", "self", "related",
}

// memberLevel tells the formatter whose names the properties of a schema are.
type memberLevel int

const (
	// structural properties are JSON:API members such as data or links.
	levelStructural memberLevel = iota
	// levelFields properties are relationship names. Their values are
	// relationship objects again.
	levelFields
	// levelUser properties are attribute names and everything below them.
	levelUser
)

// NameFormatter rewrites the property names of finished schemas.
type NameFormatter struct {
	Policy FormatPolicy
	// Components resolves $ref subtrees. Nil leaves references alone.
	Components *openapi.SchemaRegistry
}

// Format renames the properties and required entries of schema and every
// schema below it in place. Shared subtrees are visited once.
func (nf NameFormatter) Format(schema *openapi.Schema) {
	if nf.Policy == FormatNone {
		return
	}
	nf.walk(schema, levelStructural, make(map[*openapi.Schema]bool))
}

func (nf NameFormatter) walk(schema *openapi.Schema, level memberLevel, visited map[*openapi.Schema]bool) {
	schema = nf.Components.Resolve(schema)
	if schema == nil || visited[schema] {
		return
	}
	visited[schema] = true

	if schema.Properties != nil {
		for _, key := range schema.Properties.Keys() {
			child, _ := schema.Properties.Get(key)
			nf.walk(child, childLevel(level, key), visited)
			if name := nf.name(key, level); name != key {
				schema.Properties.Rename(key, name)
			}
		}
	}
	for i, key := range schema.Required {
		schema.Required[i] = nf.name(key, level)
	}

	nf.walk(schema.Items, level, visited)
	nf.walk(schema.AdditionalProperties, level, visited)
	for _, group := range [][]*openapi.Schema{schema.AllOf, schema.OneOf, schema.AnyOf} {
		for _, s := range group {
			nf.walk(s, level, visited)
		}
	}
}

func childLevel(level memberLevel, key string) memberLevel {
	switch level {
	case levelUser:
		return levelUser
	case levelFields:
		return levelStructural
	}
	switch key {
	case "attributes":
		return levelUser
	case "relationships":
		return levelFields
	}
	return levelStructural
}

func (nf NameFormatter) name(key string, level memberLevel) string {
	if level == levelStructural && slices.Contains(reservedMembers, key) {
		return key
	}
	return nf.Policy.Apply(key)
}
