package jsonapi

import (
	"github.com/vitalvas/jsonapi-openapi/openapi"
)

// Inspectors returns the JSON:API inspectors placed in front of the given
// host configuration.
func Inspectors(host openapi.Inspectors, s Settings) openapi.Inspectors {
	return openapi.Inspectors{
		Fields: append([]openapi.FieldInspector{
			XPropertiesFilter{},
			SerializerInspector{Settings: s},
			IntegerIDFieldInspector{},
			IntegerPrimaryKeyRelatedFieldInspector{},
			ManyRelatedFieldInspector{},
		}, host.Fields...),
		Paginators: append([]openapi.PaginatorInspector{PaginationInspector{}}, host.Paginators...),
		Filters:    append([]openapi.FilterInspector{FilterInspector{}}, host.Filters...),
		Views:      append([]openapi.ViewInspector{ViewInspector{Settings: s}}, host.Views...),
	}
}

// Register installs the JSON:API inspectors on spec. Views that do not
// use the JSON:API media type keep their plain REST description.
func Register(spec *openapi.Spec, s Settings) *openapi.Spec {
	return spec.SetInspectors(Inspectors(spec.Inspectors(), s))
}
