// Package resource describes the metadata a REST framework exposes about its
// resources: models with typed columns and relations, resource descriptors
// (serializers) with ordered field descriptors, included-resource
// declarations, paginators and filter backends.
//
// The schema pipeline in package openapi and the JSON:API plugin in package
// jsonapi only read these descriptors. They are built once, usually by
// package manifest or by hand, and are never mutated by schema generation.
//
// # Models
//
//	member := resource.NewModel("Member",
//	    resource.Column{Name: "id", Type: resource.ColumnAuto, PrimaryKey: true},
//	    resource.Column{Name: "first_name", Type: resource.ColumnString},
//	)
//	project := resource.NewModel("Project",
//	    resource.Column{Name: "id", Type: resource.ColumnAuto, PrimaryKey: true},
//	    resource.Column{Name: "members", Type: resource.ColumnManyToMany,
//	        Related: "Member", RelatedName: "projects"},
//	)
//
// # Resources
//
//	projects := resource.New("ProjectSerializer", project,
//	    resource.Attr("id", resource.KindInteger),
//	    resource.Attr("name", resource.KindString),
//	    resource.Rel("members", resource.RelationResource).ToMany(),
//	)
//	projects.Include("members", "MemberSerializer")
//
// Included declarations reference other resources directly, by registry name,
// or with the special name "self". References are resolved lazily by
// Registry.Included, so mutually recursive declarations are allowed.
package resource
