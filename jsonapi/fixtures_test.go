package jsonapi

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/jsonapi-openapi/openapi"
	"github.com/vitalvas/jsonapi-openapi/resource"
)

type fixture struct {
	reg          *resource.Registry
	memberModel  *resource.Model
	projectModel *resource.Model
	project      *resource.Resource
	member       *resource.Resource
}

func newFixture(t *testing.T) fixture {
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
		resource.Column{Name: "sub_projects", Type: resource.ColumnManyToMany, Related: resource.SelfRef},
	)

	member := resource.New("MemberSerializer", memberModel,
		resource.Attr("id", resource.KindInteger).AsReadOnly(),
		resource.Attr("first_name", resource.KindString),
		resource.Attr("last_name", resource.KindString),
	)
	project := resource.New("ProjectSerializer", projectModel,
		resource.Attr("id", resource.KindInteger).AsReadOnly(),
		resource.Attr("name", resource.KindString),
		resource.Attr("archived", resource.KindBoolean),
		resource.Rel("members", resource.RelationResource).ToMany(),
	)

	reg := resource.NewRegistry()
	require.NoError(t, reg.AddModel(memberModel, projectModel))
	require.NoError(t, reg.AddResource(member, project))
	return fixture{
		reg:          reg,
		memberModel:  memberModel,
		projectModel: projectModel,
		project:      project,
		member:       member,
	}
}

// withIncludes declares the recursive included resources of projects and
// members.
func (fx fixture) withIncludes() fixture {
	fx.project.Include("members", "MemberSerializer").Include("sub_projects", resource.SelfRef)
	fx.member.Include("projects", "ProjectSerializer")
	return fx
}

func testSettings() Settings {
	return Settings{
		FormatFieldNames:           FormatDasherize,
		FormatTypes:                FormatDasherize,
		PluralizeTypes:             true,
		StripReadOnlyFromRequest:   true,
		StripWriteOnlyFromResponse: true,
	}
}

func (fx fixture) spec(s Settings) *openapi.Spec {
	spec := openapi.NewSpec(openapi.Info{Title: "Projects", Version: "1.0.0"}, fx.reg)
	return Register(spec, s)
}

// context returns an operation context on a JSON:API view of r.
func (fx fixture) context(s Settings, method string, mode openapi.Mode) (*openapi.Context, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	view := openapi.NewAPIView("ProjectView", "/projects/", fx.project, method).WithMediaType(MediaType)
	c := openapi.NewContext(view, view.Endpoints()[0], fx.reg, nil, Inspectors(openapi.DefaultInspectors(), s), logger)
	return c.WithMode(mode), hook
}

func buildDoc(t *testing.T, spec *openapi.Spec) *openapi.Document {
	t.Helper()
	doc, err := spec.Build()
	require.NoError(t, err)
	return doc
}

func responseSchema(t *testing.T, op *openapi.Operation, status string) *openapi.Schema {
	t.Helper()
	require.NotNil(t, op)
	resp, ok := op.Responses[status]
	require.Truef(t, ok, "response %s not found", status)
	require.Contains(t, resp.Content, MediaType)
	return resp.Content[MediaType].Schema
}

func requestSchema(t *testing.T, op *openapi.Operation) *openapi.Schema {
	t.Helper()
	require.NotNil(t, op)
	require.NotNil(t, op.RequestBody)
	require.Contains(t, op.RequestBody.Content, MediaType)
	return op.RequestBody.Content[MediaType].Schema
}

func property(t *testing.T, s *openapi.Schema, path ...string) *openapi.Schema {
	t.Helper()
	for _, name := range path {
		require.NotNil(t, s)
		require.NotNilf(t, s.Properties, "no properties for %q", name)
		got, ok := s.Properties.Get(name)
		require.Truef(t, ok, "property %q not found in %v", name, s.Properties.Keys())
		s = got
	}
	return s
}

func keys(t *testing.T, s *openapi.Schema) []string {
	t.Helper()
	require.NotNil(t, s)
	require.NotNil(t, s.Properties)
	return s.Properties.Keys()
}

func paramNames(params []*openapi.Parameter) []string {
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name)
	}
	return names
}
