package jsonapi

import (
	"fmt"
	"net/http"

	"github.com/vitalvas/jsonapi-openapi/openapi"
	"github.com/vitalvas/jsonapi-openapi/resource"
)

// Classification splits the fields of a resource into the members of a
// JSON:API resource object.
type Classification struct {
	// ID is nil when the resource has no identifier.
	ID                    *resource.Field
	Attributes            *openapi.Properties
	RequiredAttributes    []string
	Relationships         *openapi.Properties
	RequiredRelationships []string
	Links                 *openapi.Properties
}

// Classifier builds resource object members from field descriptors.
type Classifier struct {
	Settings Settings
}

// Identifier returns the field rendered as "id": the field named id, the
// field reading the model primary key or, for model-backed resources, a
// placeholder bound to r and sourced from the primary key.
func (cl Classifier) Identifier(r *resource.Resource) (*resource.Field, error) {
	pk := r.Model.PrimaryKey()
	if id := r.Field("id"); id != nil {
		if pk != nil && pk.Name != "id" {
			for _, f := range r.Fields {
				if f != id && f.SourceAttr() == pk.Name {
					return nil, fmt.Errorf("%w: %s: if serializer includes primary key it cannot define other field as id", ErrDeclaration, r.Name)
				}
			}
		}
		return id, nil
	}
	if pk == nil {
		return nil, nil
	}
	if f := r.FieldBySource(pk.Name); f != nil {
		return f, nil
	}

	f := resource.Attr("id", pk.Type.Kind())
	if pk.Name != "id" {
		f.Source = pk.Name
	}
	if pk.Type.IsAuto() {
		f.ReadOnly = true
	} else {
		f.Required = true
	}
	return f.Bind(r), nil
}

// Classify sorts the fields of r into attributes, relationships and links
// for the mode of c.
func (cl Classifier) Classify(c *openapi.Context, r *resource.Resource) (*Classification, error) {
	id, err := cl.Identifier(r)
	if err != nil {
		return nil, err
	}
	if id == nil && !(c.Mode.IsRequest() && c.Method() == http.MethodPost) {
		viewName := ""
		if c.View != nil {
			viewName = c.View.Name
		}
		cl.Settings.log(c).WithField("resource", r.Name).
			Warnf("%s.%s does not contain id field as every resource should", viewName, r.Name)
	}

	out := &Classification{
		ID:            id,
		Attributes:    openapi.NewProperties(),
		Relationships: openapi.NewProperties(),
		Links:         openapi.NewProperties(),
	}
	urlField := cl.Settings.urlField()
	requestOrUnknown := c.Mode.RequestOrUnknown()

	for _, f := range r.Fields {
		if id != nil && f.Name == id.Name {
			continue
		}
		if f.Name == urlField {
			continue
		}
		if cl.Settings.strip(f.ReadOnly, f.WriteOnly, c.Mode) {
			continue
		}

		if f.IsRelation() {
			rel, err := cl.relationship(c, r, f)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", r.Name, f.Name, err)
			}
			out.Relationships.Set(f.Name, rel)
			if requestOrUnknown && f.Required && !f.ReadOnly {
				out.RequiredRelationships = append(out.RequiredRelationships, f.Name)
			}
			continue
		}

		schema, err := c.ProbeField(f)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", r.Name, f.Name, err)
		}
		if schema == nil {
			continue
		}
		out.Attributes.Set(f.Name, schema)
		if requestOrUnknown && f.Required && !f.ReadOnly {
			out.RequiredAttributes = append(out.RequiredAttributes, f.Name)
		}
	}

	if u := r.Field(urlField); u != nil && !c.Mode.IsRequest() {
		switch u.Relation {
		case resource.RelationHyperlinkedIdentity, resource.RelationHyperlinked:
			out.Links.Set("self", &openapi.Schema{Type: openapi.TypeString("string"), Format: "uri"})
		}
	}
	return out, nil
}

// relationship builds the relationship object of f.
func (cl Classifier) relationship(c *openapi.Context, r *resource.Resource, f *resource.Field) (*openapi.Schema, error) {
	idSchema, err := cl.relationID(c, f)
	if err != nil {
		return nil, err
	}
	typeName, err := cl.RelatedType(c.Registry, r, f)
	if err != nil {
		return nil, err
	}
	requestOrUnknown := c.Mode.RequestOrUnknown()

	item := openapi.ObjectSchema(openapi.NewProperties().
		Set("id", idSchema).
		Set("type", typeSchema(typeName, f.ReadOnly)))
	if requestOrUnknown && !f.ReadOnly {
		item.Required = []string{"id", "type"}
	}
	data := item
	if f.Many {
		data = openapi.ArrayOf(item)
	}

	props := openapi.NewProperties().Set("data", data)
	if !c.Mode.IsRequest() && f.Relation == resource.RelationResource {
		links := openapi.NewProperties()
		if f.RelatedLink {
			links.Set("related", linkSchema())
		}
		if f.SelfLink {
			links.Set("self", linkSchema())
		}
		if links.Len() > 0 {
			props.Set("links", openapi.ObjectSchema(links))
		}
	}

	rel := openapi.ObjectSchema(props)
	if requestOrUnknown && f.Required && !f.ReadOnly {
		rel.Required = []string{"data"}
	}
	if f.ReadOnly {
		rel.ReadOnly = true
		rel.SetExtension("readOnly", true)
	}
	return rel, nil
}

// relationID returns the schema of the id member of a relationship item.
// Nested resources contribute the schema of their own identifier.
func (cl Classifier) relationID(c *openapi.Context, f *resource.Field) (*openapi.Schema, error) {
	if f.Relation == resource.RelationNested && f.Nested != nil {
		idf, err := cl.Identifier(f.Nested)
		if err != nil {
			return nil, err
		}
		if idf == nil {
			return &openapi.Schema{Type: openapi.TypeString("string")}, nil
		}
		return c.ProbeField(idf)
	}
	schema, err := c.ProbeField(f)
	if err != nil {
		return nil, err
	}
	if schema == nil {
		schema = &openapi.Schema{Type: openapi.TypeString("string")}
	}
	return schema, nil
}

// RelatedType resolves the resource type a relation points to: the field's
// explicit type, the included declaration of the same name, the nested
// resource, or the related model.
func (cl Classifier) RelatedType(reg *resource.Registry, r *resource.Resource, f *resource.Field) (string, error) {
	if f.RelatedType != "" {
		return f.RelatedType, nil
	}
	if _, ok := r.IncludeFor(f.Name); ok {
		included, err := reg.Included(r)
		if err != nil {
			return "", err
		}
		for _, inc := range included {
			if inc.Name == f.Name {
				return cl.Settings.ResourceType(inc.Resource), nil
			}
		}
	}
	if f.Nested != nil {
		return cl.Settings.ResourceType(f.Nested), nil
	}
	model, err := reg.RelatedModel(f)
	if err != nil {
		return "", err
	}
	if model != nil {
		return cl.Settings.ModelType(model), nil
	}
	return "", fmt.Errorf("%w: unable to extract resource name for %s.%s serializer field", ErrUnresolvedType, r.Name, f.Name)
}

func typeSchema(name string, readOnly bool) *openapi.Schema {
	return &openapi.Schema{Type: openapi.TypeString("string"), Pattern: name, ReadOnly: readOnly}
}

func linkSchema() *openapi.Schema {
	return &openapi.Schema{Type: openapi.TypeString("string"), Format: "uri", ReadOnly: true}
}
