// Package openapi builds OpenAPI v3.1.0 documents from resource descriptors
// and the views that serve them.
//
// The package targets the OpenAPI Specification v3.1.0 and uses JSON Schema
// Draft 2020-12 for schemas. Nothing is served over HTTP: a Spec collects
// views, inspects them and returns a Document that can be encoded as JSON or
// YAML.
//
// See: https://spec.openapis.org/oas/v3.1.0
// See: https://json-schema.org/draft/2020-12/json-schema-core
//
// # Spec Builder
//
// Describe models and resources in a resource.Registry, then register views:
//
//	reg := resource.NewRegistry()
//	spec := openapi.NewSpec(openapi.Info{Title: "Projects", Version: "1.0.0"}, reg)
//
//	spec.ViewSet("ProjectViewSet", "projects", project).
//	    Paginate(&resource.Paginator{})
//
//	spec.APIView("HealthView", "/health/", nil, http.MethodGet).
//	    Op(http.MethodGet).
//	    Response(http.StatusOK, "Service is healthy")
//
//	doc, err := spec.Build()
//
// A viewset routes list and create on "/<prefix>/" and retrieve, update,
// partial_update and destroy on "/<prefix>/{<lookup>}/". The lookup is the
// model primary key unless set with View.Lookup, which also accepts typed
// macros such as "id:int" or "id:uuid".
//
// # Operation Overrides
//
// View.Op returns the builder of one action or HTTP method. Declared
// responses replace the derived response of the same status; declaring any
// 2xx response drops the derived success response entirely:
//
//	v.Op("retrieve").
//	    Summary("Get a project").
//	    Response(http.StatusOK, summary).
//	    Response(http.StatusNotFound, "Project not found")
//
//	v.Op("create").Request(openapi.Many(project))
//
// # View Groups
//
// Use Group to apply shared defaults to a logical group of views: media
// types, pagination, filters, tags, security and shared responses.
//
//	api := spec.Group().
//	    Tags("projects").
//	    MediaType("application/json").
//	    Response(http.StatusForbidden, "Permission denied")
//
//	api.ViewSet("ProjectViewSet", "projects", project)
//
// # Inspectors
//
// Schemas are produced by ordered inspector lists. Each inspector returns a
// Result: Produced ends the probe, Failed aborts the build and Deferred
// passes the object to the next inspector. DefaultInspectors describes plain
// REST views; other wire formats install their own inspectors in front of
// them (see the jsonapi package).
//
// Field inspectors that implement ResultFilter post-process the schema
// produced for a field. After a producer is found, the filters of every
// inspector probed so far run in reverse order.
//
// Resources rendered by the default serializer inspector are stored once in
// components/schemas and referenced with $ref. A resource name ending in
// "Serializer" loses the suffix; two resources sanitizing to the same name
// get a numeric suffix ("Project", "Project2"). Recursive resources resolve
// to a $ref of themselves.
//
// # Encoding
//
// MarshalJSON and MarshalYAML encode a Document. Both keep the declaration
// order of schema properties.
//
//	if err := openapi.Encode(os.Stdout, doc, openapi.FormatYAML); err != nil {
//	    return err
//	}
package openapi
