package openapi

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vitalvas/jsonapi-openapi/resource"
)

type projectFixture struct {
	reg     *resource.Registry
	project *resource.Resource
	member  *resource.Resource
}

func newProjectFixture(t *testing.T) projectFixture {
	t.Helper()

	memberModel := resource.NewModel("Member",
		resource.Column{Name: "id", Type: resource.ColumnAuto, PrimaryKey: true},
		resource.Column{Name: "first_name", Type: resource.ColumnString},
		resource.Column{Name: "last_name", Type: resource.ColumnString},
	)
	projectModel := resource.NewModel("Project",
		resource.Column{Name: "id", Type: resource.ColumnAuto, PrimaryKey: true},
		resource.Column{Name: "name", Type: resource.ColumnString},
		resource.Column{Name: "archived", Type: resource.ColumnBoolean},
		resource.Column{Name: "members", Type: resource.ColumnManyToMany, Related: "Member", RelatedName: "projects"},
		resource.Column{Name: "owner_member", Type: resource.ColumnForeignKey, Related: "Member", RelatedName: "owned_projects"},
	)

	member := resource.New("MemberSerializer", memberModel,
		resource.Attr("id", resource.KindInteger).AsReadOnly(),
		resource.Attr("first_name", resource.KindString).AsRequired(),
		resource.Attr("last_name", resource.KindString),
	)
	project := resource.New("ProjectSerializer", projectModel,
		resource.Attr("id", resource.KindInteger).AsReadOnly(),
		resource.Attr("name", resource.KindString).AsRequired(),
		resource.Attr("archived", resource.KindBoolean),
		resource.Rel("members", resource.RelationPrimaryKey).ToMany(),
		resource.Rel("owner_member", resource.RelationPrimaryKey),
	)

	reg := resource.NewRegistry()
	require.NoError(t, reg.AddModel(memberModel, projectModel))
	require.NoError(t, reg.AddResource(member, project))
	return projectFixture{reg: reg, project: project, member: member}
}

func (fx projectFixture) spec() *Spec {
	return NewSpec(Info{Title: "Projects", Version: "1.0.0"}, fx.reg)
}

func buildDoc(t *testing.T, spec *Spec) *Document {
	t.Helper()
	doc, err := spec.Build()
	require.NoError(t, err)
	return doc
}

func contentSchema(t *testing.T, content map[string]*MediaType, mediaType string) *Schema {
	t.Helper()
	require.Contains(t, content, mediaType)
	return content[mediaType].Schema
}

func property(t *testing.T, s *Schema, name string) *Schema {
	t.Helper()
	require.NotNil(t, s)
	got, ok := s.Properties.Get(name)
	require.Truef(t, ok, "property %q not found in %v", name, s.Properties.Keys())
	return got
}
