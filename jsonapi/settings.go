package jsonapi

import (
	"github.com/sirupsen/logrus"

	"github.com/vitalvas/jsonapi-openapi/openapi"
)

// DefaultURLFieldName is the field rendering the self link of a resource.
const DefaultURLFieldName = "url"

// Settings configures how resources are rendered as JSON:API documents.
type Settings struct {
	// FormatFieldNames is applied to attribute, relationship and include
	// path names.
	FormatFieldNames FormatPolicy `yaml:"formatFieldNames"`
	// FormatTypes is applied to resource types derived from model names.
	FormatTypes FormatPolicy `yaml:"formatTypes"`
	// PluralizeTypes pluralizes resource types derived from model names.
	PluralizeTypes bool `yaml:"pluralizeTypes"`

	// URLFieldName is the field rendered as links.self. It is never an
	// attribute or a relationship.
	URLFieldName string `yaml:"urlFieldName"`

	// StripReadOnlyFromRequest drops read-only fields from request bodies.
	StripReadOnlyFromRequest bool `yaml:"stripReadOnlyFromRequest"`
	// StripWriteOnlyFromResponse drops write-only fields from responses.
	StripWriteOnlyFromResponse bool `yaml:"stripWriteOnlyFromResponse"`

	// Logger receives build warnings. Nil uses the logger of the spec.
	Logger logrus.FieldLogger `yaml:"-"`
}

// DefaultSettings returns settings without name formatting or stripping.
func DefaultSettings() Settings {
	return Settings{URLFieldName: DefaultURLFieldName}
}

// urlField returns the configured URL field name.
func (s Settings) urlField() string {
	if s.URLFieldName == "" {
		return DefaultURLFieldName
	}
	return s.URLFieldName
}

// log returns the warning logger for an operation.
func (s Settings) log(c *openapi.Context) logrus.FieldLogger {
	if s.Logger == nil {
		return c.Log()
	}
	fields := logrus.Fields{"method": c.Endpoint.Method, "path": c.Endpoint.Path}
	if c.View != nil {
		fields["view"] = c.View.Name
	}
	return s.Logger.WithFields(fields)
}

// logger returns the configured logger or the standard one.
func (s Settings) logger() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}

// strip reports whether the strip policy removes f in mode m.
func (s Settings) strip(readOnly, writeOnly bool, m openapi.Mode) bool {
	if s.StripReadOnlyFromRequest && readOnly && m.IsRequest() {
		return true
	}
	return s.StripWriteOnlyFromResponse && writeOnly && m == openapi.ModeResponse
}
