// Package jsonapi renders resource descriptors as JSON:API documents in
// OpenAPI schemas.
//
// The package plugs into openapi.Spec as a set of inspectors. A view whose
// parsers or renderers use the application/vnd.api+json media type gets
// request bodies shaped as {data} and responses shaped as
// {data, included}. Fields are split into attributes and relationships,
// integer identifiers become strings, and the include query parameter
// lists every include path the response offers.
//
//	spec := openapi.NewSpec(openapi.Info{Title: "Projects", Version: "1.0.0"}, reg)
//	jsonapi.Register(spec, jsonapi.Settings{
//		FormatFieldNames: jsonapi.FormatDasherize,
//		FormatTypes:      jsonapi.FormatDasherize,
//		PluralizeTypes:   true,
//	})
//	spec.ViewSet("ProjectViewSet", "projects", project).
//		WithMediaType(jsonapi.MediaType)
//	doc, err := spec.Build()
//
// See: https://jsonapi.org/format/
package jsonapi
