package openapi

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/jsonapi-openapi/resource"
)

func TestComponentName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ProjectSerializer", "Project"},
		{"Project", "Project"},
		{"Serializer", "Serializer"},
		{"api.Project", "api.Project"},
		{"Project[Member]", "Project_Member_"},
		{"Member With Space", "Member_With_Space"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComponentName(tt.input))
		})
	}
}

func TestSchemaRegistry(t *testing.T) {
	t.Run("component is built once", func(t *testing.T) {
		reg := NewSchemaRegistry()
		r := resource.New("ProjectSerializer", nil)
		calls := 0
		build := func() (*Schema, error) {
			calls++
			return ObjectSchema(NewProperties()), nil
		}

		ref1, err := reg.Component(r, "", build)
		require.NoError(t, err)
		ref2, err := reg.Component(r, "", build)
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
		assert.Equal(t, "#/components/schemas/Project", ref1.Ref)
		assert.Equal(t, ref1.Ref, ref2.Ref)
		assert.Contains(t, reg.Schemas(), "Project")
	})

	t.Run("variants get their own component", func(t *testing.T) {
		reg := NewSchemaRegistry()
		r := resource.New("Project", nil)
		plain, err := reg.Component(r, "", func() (*Schema, error) { return &Schema{}, nil })
		require.NoError(t, err)
		included, err := reg.Component(r, "Included", func() (*Schema, error) { return &Schema{}, nil })
		require.NoError(t, err)

		assert.Equal(t, "#/components/schemas/Project", plain.Ref)
		assert.Equal(t, "#/components/schemas/ProjectIncluded", included.Ref)
	})

	t.Run("name collision gets numeric suffix", func(t *testing.T) {
		reg := NewSchemaRegistry()
		a := resource.New("Project", nil)
		b := resource.New("ProjectSerializer", nil)

		refA, err := reg.Component(a, "", func() (*Schema, error) { return &Schema{}, nil })
		require.NoError(t, err)
		refB, err := reg.Component(b, "", func() (*Schema, error) { return &Schema{}, nil })
		require.NoError(t, err)

		assert.Equal(t, "#/components/schemas/Project", refA.Ref)
		assert.Equal(t, "#/components/schemas/Project2", refB.Ref)
	})

	t.Run("recursive build sees the reference", func(t *testing.T) {
		reg := NewSchemaRegistry()
		r := resource.New("Category", nil)

		var inner *Schema
		ref, err := reg.Component(r, "", func() (*Schema, error) {
			var err error
			inner, err = reg.Component(r, "", func() (*Schema, error) {
				t.Fatal("recursive component must not be rebuilt")
				return nil, nil
			})
			if err != nil {
				return nil, err
			}
			return ObjectSchema(NewProperties().Set("parent", inner)), nil
		})
		require.NoError(t, err)
		assert.Equal(t, ref.Ref, inner.Ref)
	})

	t.Run("failed build can be retried", func(t *testing.T) {
		reg := NewSchemaRegistry()
		r := resource.New("Broken", nil)
		boom := errors.New("boom")

		_, err := reg.Component(r, "", func() (*Schema, error) { return nil, boom })
		require.ErrorIs(t, err, boom)

		_, err = reg.Component(r, "", func() (*Schema, error) { return &Schema{}, nil })
		require.NoError(t, err)
		assert.Contains(t, reg.Schemas(), "Broken")
	})

	t.Run("add and resolve", func(t *testing.T) {
		reg := NewSchemaRegistry()
		target := &Schema{Type: TypeString("string")}
		ref := reg.Add("Token", target)

		assert.Same(t, target, reg.Resolve(ref))
		plain := &Schema{Type: TypeString("integer")}
		assert.Same(t, plain, reg.Resolve(plain))
		unknown := RefTo("Unknown")
		assert.Same(t, unknown, reg.Resolve(unknown))
	})

	t.Run("nil registry resolves nothing", func(t *testing.T) {
		var reg *SchemaRegistry
		ref := RefTo("Token")
		assert.Same(t, ref, reg.Resolve(ref))
	})
}

func TestKindSchema(t *testing.T) {
	tests := []struct {
		kind   resource.Kind
		typ    string
		format string
	}{
		{resource.KindString, "string", ""},
		{resource.KindInteger, "integer", ""},
		{resource.KindNumber, "number", ""},
		{resource.KindBoolean, "boolean", ""},
		{resource.KindDate, "string", "date"},
		{resource.KindDateTime, "string", "date-time"},
		{resource.KindUUID, "string", "uuid"},
		{resource.KindURL, "string", "uri"},
		{resource.KindEmail, "string", "email"},
		{resource.KindObject, "object", ""},
		{resource.KindList, "array", ""},
		{resource.KindFile, "string", "binary"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			s := KindSchema(tt.kind)
			assert.Equal(t, TypeString(tt.typ), s.Type)
			assert.Equal(t, tt.format, s.Format)
		})
	}
}

func TestDecorate(t *testing.T) {
	t.Run("help, default and choices", func(t *testing.T) {
		f := resource.Attr("status", resource.KindString)
		f.Help = "Project status"
		f.Default = "active"
		f.Choices = []string{"active", "archived"}

		s := decorate(&Schema{Type: TypeString("string")}, f)
		assert.Equal(t, "Project status", s.Description)
		assert.Equal(t, "active", s.Default)
		assert.Equal(t, []any{"active", "archived"}, s.Enum)
	})

	t.Run("uuid example is stable per field", func(t *testing.T) {
		r := resource.New("Project", nil, resource.Attr("uid", resource.KindUUID))
		f := r.Field("uid")

		first := decorate(KindSchema(f.Kind), f)
		second := decorate(KindSchema(f.Kind), f)
		require.NotNil(t, first.Example)
		assert.Equal(t, first.Example, second.Example)
		_, err := uuid.Parse(first.Example.(string))
		assert.NoError(t, err)
	})

	t.Run("constraints", func(t *testing.T) {
		f := resource.Attr("email", resource.KindString)
		f.Constraints = "maxLength=100,format=email,example=a@b.c"

		s := decorate(&Schema{Type: TypeString("string")}, f)
		require.NotNil(t, s.MaxLength)
		assert.Equal(t, 100, *s.MaxLength)
		assert.Equal(t, "email", s.Format)
		assert.Equal(t, "a@b.c", s.Example)
	})

	t.Run("nullable", func(t *testing.T) {
		f := resource.Attr("archived", resource.KindBoolean)
		f.AllowNull = true

		s := decorate(KindSchema(f.Kind), f)
		assert.Equal(t, TypeArray("boolean", "null"), s.Type)
	})
}

func TestApplyOpenAPITag(t *testing.T) {
	t.Run("numeric bounds", func(t *testing.T) {
		s := &Schema{Type: TypeString("integer")}
		applyOpenAPITag(s, "minimum=1, maximum=10, exclusiveMaximum=11, multipleOf=2")
		require.NotNil(t, s.Minimum)
		require.NotNil(t, s.Maximum)
		require.NotNil(t, s.ExclusiveMaximum)
		require.NotNil(t, s.MultipleOf)
		assert.Equal(t, 1.0, *s.Minimum)
		assert.Equal(t, 10.0, *s.Maximum)
		assert.Equal(t, 11.0, *s.ExclusiveMaximum)
		assert.Equal(t, 2.0, *s.MultipleOf)
	})

	t.Run("typed example and enum", func(t *testing.T) {
		s := &Schema{Type: TypeString("integer")}
		applyOpenAPITag(s, "example=42,enum=1|2|3")
		assert.Equal(t, int64(42), s.Example)
		assert.Equal(t, []any{"1", "2", "3"}, s.Enum)
	})

	t.Run("flags", func(t *testing.T) {
		s := &Schema{Type: TypeString("array")}
		applyOpenAPITag(s, "deprecated,uniqueItems,title=Tags")
		assert.True(t, s.Deprecated)
		assert.True(t, s.UniqueItems)
		assert.Equal(t, "Tags", s.Title)
	})

	t.Run("invalid numbers are ignored", func(t *testing.T) {
		s := &Schema{Type: TypeString("string")}
		applyOpenAPITag(s, "minLength=abc")
		assert.Nil(t, s.MinLength)
	})
}

func TestApplyNullable(t *testing.T) {
	s := &Schema{Type: TypeString("string")}
	applyNullable(s)
	applyNullable(s)
	assert.Equal(t, TypeArray("string", "null"), s.Type)

	ref := RefTo("Project")
	applyNullable(ref)
	assert.True(t, ref.Type.IsZero())
}
