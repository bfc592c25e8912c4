package jsonapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/jsonapi-openapi/openapi"
)

func TestParseFormatPolicy(t *testing.T) {
	tests := []struct {
		in   string
		want FormatPolicy
	}{
		{"dasherize", FormatDasherize},
		{"Camelize", FormatCamelize},
		{" capitalize ", FormatCapitalize},
		{"underscore", FormatUnderscore},
		{"", FormatNone},
		{"none", FormatNone},
		{"false", FormatNone},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormatPolicy(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseFormatPolicy("shout")
		assert.Error(t, err)
	})
}

func TestFormatPolicyUnmarshalYAML(t *testing.T) {
	var s Settings
	err := yaml.Unmarshal([]byte("formatFieldNames: dasherize\nformatTypes: none\npluralizeTypes: true\n"), &s)
	require.NoError(t, err)
	assert.Equal(t, FormatDasherize, s.FormatFieldNames)
	assert.Equal(t, FormatNone, s.FormatTypes)
	assert.True(t, s.PluralizeTypes)

	err = yaml.Unmarshal([]byte("formatFieldNames: loud\n"), &s)
	assert.Error(t, err)
}

func TestFormatPolicyApply(t *testing.T) {
	tests := []struct {
		policy FormatPolicy
		want   string
	}{
		{FormatNone, "owner_member"},
		{FormatDasherize, "owner-member"},
		{FormatCamelize, "ownerMember"},
		{FormatCapitalize, "OwnerMember"},
		{FormatUnderscore, "owner_member"},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Apply("owner_member"))
		})
	}

	assert.Equal(t, "owner_member", FormatUnderscore.Apply("ownerMember"))

	t.Run("word boundaries", func(t *testing.T) {
		tests := []struct {
			policy FormatPolicy
			in     string
			want   string
		}{
			{FormatDasherize, "line2Address", "line2-address"},
			{FormatDasherize, "HTTPServer", "http-server"},
			{FormatDasherize, "owner-member", "owner-member"},
			{FormatUnderscore, "line2Address", "line2_address"},
			{FormatUnderscore, "HTTPServer", "http_server"},
			{FormatCamelize, "line2Address", "line2Address"},
			{FormatCamelize, "line_2_address", "line2Address"},
			{FormatCamelize, "HTTPServer", "hTTPServer"},
			{FormatCamelize, "owner-member", "ownerMember"},
			{FormatCapitalize, "line2Address", "Line2Address"},
			{FormatCapitalize, "HTTPServer", "HTTPServer"},
			{FormatCapitalize, "http_server", "HttpServer"},
		}
		for _, tt := range tests {
			t.Run(string(tt.policy)+" "+tt.in, func(t *testing.T) {
				assert.Equal(t, tt.want, tt.policy.Apply(tt.in))
			})
		}
	})
}

func TestNameFormatter(t *testing.T) {
	str := func() *openapi.Schema { return &openapi.Schema{Type: openapi.TypeString("string")} }

	t.Run("renames nested properties and required entries", func(t *testing.T) {
		attributes := openapi.ObjectSchema(openapi.NewProperties().
			Set("first_name", str()).
			Set("last_name", str()), "first_name")
		data := openapi.ObjectSchema(openapi.NewProperties().
			Set("type", str()).
			Set("id", str()).
			Set("attributes", attributes))
		doc := openapi.ObjectSchema(openapi.NewProperties().Set("data", openapi.ArrayOf(data)))

		NameFormatter{Policy: FormatDasherize}.Format(doc)

		assert.Equal(t, []string{"data"}, keys(t, doc))
		assert.Equal(t, []string{"type", "id", "attributes"}, keys(t, data))
		assert.Equal(t, []string{"first-name", "last-name"}, keys(t, attributes))
		assert.Equal(t, []string{"first-name"}, attributes.Required)
	})

	t.Run("reserved members keep their names", func(t *testing.T) {
		links := openapi.ObjectSchema(openapi.NewProperties().Set("self", str()).Set("related", str()))
		s := openapi.ObjectSchema(openapi.NewProperties().
			Set("relationships", openapi.ObjectSchema(openapi.NewProperties().
				Set("owner_member", openapi.ObjectSchema(openapi.NewProperties().Set("links", links))))).
			Set("meta", str()).
			Set("included", str()))

		NameFormatter{Policy: FormatCapitalize}.Format(s)

		assert.Equal(t, []string{"relationships", "meta", "included"}, keys(t, s))
		assert.Equal(t, []string{"OwnerMember"}, keys(t, property(t, s, "relationships")))
		assert.Equal(t, []string{"self", "related"}, keys(t, links))
	})

	t.Run("attribute and relationship names are not reserved", func(t *testing.T) {
		attributes := openapi.ObjectSchema(openapi.NewProperties().
			Set("meta", openapi.ObjectSchema(openapi.NewProperties().Set("links", str()))).
			Set("line2Address", str()), "meta")
		relationships := openapi.ObjectSchema(openapi.NewProperties().
			Set("links", openapi.ObjectSchema(openapi.NewProperties().
				Set("data", str()).
				Set("meta", str()))))
		s := openapi.ObjectSchema(openapi.NewProperties().
			Set("attributes", attributes).
			Set("relationships", relationships))

		NameFormatter{Policy: FormatCapitalize}.Format(s)

		assert.Equal(t, []string{"attributes", "relationships"}, keys(t, s))
		assert.Equal(t, []string{"Meta", "Line2Address"}, keys(t, attributes))
		assert.Equal(t, []string{"Meta"}, attributes.Required)
		assert.Equal(t, []string{"Links"}, keys(t, property(t, attributes, "Meta")))
		assert.Equal(t, []string{"Links"}, keys(t, relationships))
		assert.Equal(t, []string{"data", "meta"}, keys(t, property(t, relationships, "Links")))
	})

	t.Run("follows component references once", func(t *testing.T) {
		reg := openapi.NewSchemaRegistry()
		shared := openapi.ObjectSchema(openapi.NewProperties().Set("last_name", str()))
		ref := reg.Add("Member", shared)
		s := openapi.ObjectSchema(openapi.NewProperties().
			Set("one", ref).
			Set("two", openapi.RefTo("Member")))

		NameFormatter{Policy: FormatCamelize, Components: reg}.Format(s)

		assert.Equal(t, []string{"lastName"}, keys(t, shared))
	})

	t.Run("composition keywords", func(t *testing.T) {
		inner := openapi.ObjectSchema(openapi.NewProperties().Set("first_name", str()))
		extra := openapi.ObjectSchema(openapi.NewProperties().Set("last_name", str()))
		s := &openapi.Schema{
			OneOf:                []*openapi.Schema{inner},
			AdditionalProperties: extra,
		}

		NameFormatter{Policy: FormatDasherize}.Format(s)

		assert.Equal(t, []string{"first-name"}, keys(t, inner))
		assert.Equal(t, []string{"last-name"}, keys(t, extra))
	})

	t.Run("none leaves schema alone", func(t *testing.T) {
		s := openapi.ObjectSchema(openapi.NewProperties().Set("first_name", str()))
		NameFormatter{}.Format(s)
		assert.Equal(t, []string{"first_name"}, keys(t, s))
	})
}
