package openapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/jsonapi-openapi/resource"
)

func TestViewGroup(t *testing.T) {
	fx := newProjectFixture(t)

	t.Run("shared metadata", func(t *testing.T) {
		spec := fx.spec()
		api := spec.Group().
			Tags("team").
			Security(SecurityRequirement{"token": {}}).
			Parameter(&Parameter{Name: "X-Request-ID", In: "header", Schema: &Schema{Type: TypeString("string")}}).
			ExternalDocs("https://example.com/team", "Team docs").
			Response(http.StatusForbidden, "Permission denied").
			ResponseDescription(http.StatusForbidden, "Forbidden for this team")

		api.ViewSet("MemberViewSet", "members", fx.member, ActionList, ActionRetrieve)
		doc := buildDoc(t, spec)

		list := doc.Paths["/members/"].Get
		assert.Equal(t, []string{"team"}, list.Tags)
		assert.Equal(t, []SecurityRequirement{{"token": {}}}, list.Security)
		require.Len(t, list.Parameters, 1)
		assert.Equal(t, "X-Request-ID", list.Parameters[0].Name)
		assert.Equal(t, "https://example.com/team", list.ExternalDocs.URL)
		require.Contains(t, list.Responses, "403")
		assert.Equal(t, "Forbidden for this team", list.Responses["403"].Description)
		assert.Contains(t, list.Responses, "200")
	})

	t.Run("public group and deprecation", func(t *testing.T) {
		spec := fx.spec().SetSecurity(SecurityRequirement{"token": {}})
		spec.Group().Security().Deprecated().
			APIView("StatusView", "/status/", nil, http.MethodGet)
		doc := buildDoc(t, spec)

		get := doc.Paths["/status/"].Get
		assert.NotNil(t, get.Security)
		assert.Empty(t, get.Security)
		assert.True(t, get.Deprecated)
	})

	t.Run("view defaults", func(t *testing.T) {
		spec := fx.spec()
		group := spec.Group().
			MediaType("application/vnd.example+json").
			Paginate(&resource.Paginator{Style: resource.LimitOffset}).
			Filter(resource.FilterBackend{Kind: resource.FilterSearch}).
			Inspector(DefaultViewInspector{})
		v := group.ViewSet("MemberViewSet", "members", fx.member, ActionList)

		assert.Equal(t, []string{"application/vnd.example+json"}, v.ParserTypes())
		assert.Equal(t, []string{"application/vnd.example+json"}, v.RendererTypes())
		assert.Equal(t, resource.LimitOffset, v.Paginator.Style)
		assert.Len(t, v.FilterBackends, 1)
		assert.NotNil(t, v.Inspector)
		assert.Equal(t, []*View{v}, spec.Views())

		doc := buildDoc(t, spec)
		var names []string
		for _, p := range doc.Paths["/members/"].Get.Parameters {
			names = append(names, p.Name)
		}
		assert.Equal(t, []string{"search", "limit", "offset"}, names)
	})

	t.Run("operation overrides group response", func(t *testing.T) {
		spec := fx.spec()
		v := spec.Group().
			Response(http.StatusNotFound, "Group not found").
			ViewSet("MemberViewSet", "members", fx.member, ActionRetrieve)
		v.Op("retrieve").Response(http.StatusNotFound, "Member not found").Tags("members-extra")
		doc := buildDoc(t, spec)

		get := doc.Paths["/members/{id}/"].Get
		assert.Equal(t, "Member not found", get.Responses["404"].Description)
		assert.Equal(t, []string{"members-extra"}, get.Tags)
	})

	t.Run("group response replaces by status", func(t *testing.T) {
		g := fx.spec().Group().
			Response(http.StatusConflict, "first").
			Response(http.StatusConflict, "second")
		require.Len(t, g.defaults.responses, 1)
		assert.Equal(t, "second", g.defaults.responses[0].Body.Description)
	})
}
