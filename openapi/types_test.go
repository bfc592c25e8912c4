package openapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaType(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		tests := []struct {
			name     string
			input    SchemaType
			expected string
		}{
			{"single type marshals as string", TypeString("string"), `"string"`},
			{"multiple types marshal as array", TypeArray("string", "null"), `["string","null"]`},
			{"empty type marshals as null", SchemaType{}, "null"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				data, err := json.Marshal(tt.input)
				require.NoError(t, err)
				assert.JSONEq(t, tt.expected, string(data))
			})
		}
	})

	t.Run("unmarshal", func(t *testing.T) {
		tests := []struct {
			name     string
			input    string
			expected []string
			wantErr  bool
		}{
			{"single string", `"integer"`, []string{"integer"}, false},
			{"array", `["string","null"]`, []string{"string", "null"}, false},
			{"invalid", `123`, nil, true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var st SchemaType
				err := json.Unmarshal([]byte(tt.input), &st)
				if tt.wantErr {
					assert.Error(t, err)
				} else {
					require.NoError(t, err)
					assert.Equal(t, tt.expected, st.Values())
				}
			})
		}
	})

	t.Run("Is", func(t *testing.T) {
		assert.True(t, TypeArray("string", "null").Is("null"))
		assert.False(t, TypeString("string").Is("null"))
	})

	t.Run("IsZero", func(t *testing.T) {
		var empty SchemaType
		assert.True(t, empty.IsZero())
		assert.False(t, TypeString("string").IsZero())
	})
}

func TestDocumentJSON(t *testing.T) {
	t.Run("minimal document", func(t *testing.T) {
		doc := Document{
			OpenAPI: "3.1.0",
			Info: Info{
				Title:   "Test API",
				Version: "1.0.0",
			},
		}
		data, err := json.Marshal(doc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"openapi":"3.1.0","info":{"title":"Test API","version":"1.0.0"}}`, string(data))
	})

	t.Run("response description is always present", func(t *testing.T) {
		data, err := json.Marshal(&Response{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"description":""}`, string(data))
	})
}

func TestSchemaJSON(t *testing.T) {
	t.Run("omits empty type", func(t *testing.T) {
		data, err := json.Marshal(&Schema{Ref: "#/components/schemas/Project"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"$ref":"#/components/schemas/Project"}`, string(data))
	})

	t.Run("extensions are emitted inline in key order", func(t *testing.T) {
		s := &Schema{Type: TypeString("object")}
		s.SetExtension("x-writeOnly", true)
		s.SetExtension("readOnly", true)

		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Equal(t, `{"type":"object","x-readOnly":true,"x-writeOnly":true}`, string(data))
	})

	t.Run("extensions on an empty schema", func(t *testing.T) {
		s := &Schema{}
		s.SetExtension("readOnly", true)

		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Equal(t, `{"x-readOnly":true}`, string(data))
	})

	t.Run("unmarshal collects extensions", func(t *testing.T) {
		var s Schema
		require.NoError(t, json.Unmarshal([]byte(`{"type":"string","x-readOnly":true,"format":"uri"}`), &s))
		assert.Equal(t, TypeString("string"), s.Type)
		assert.Equal(t, "uri", s.Format)
		assert.Equal(t, map[string]any{"x-readOnly": true}, s.Extensions)
	})

	t.Run("nested schemas keep property order", func(t *testing.T) {
		s := ObjectSchema(NewProperties().
			Set("type", &Schema{Type: TypeString("string")}).
			Set("id", &Schema{Type: TypeString("string")}).
			Set("attributes", ObjectSchema(NewProperties().
				Set("name", &Schema{Type: TypeString("string")}).
				Set("archived", &Schema{Type: TypeString("boolean")}))),
			"type")

		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Equal(t,
			`{"type":"object","properties":{"type":{"type":"string"},"id":{"type":"string"},`+
				`"attributes":{"type":"object","properties":{"name":{"type":"string"},"archived":{"type":"boolean"}}}},`+
				`"required":["type"]}`,
			string(data))
	})
}

func TestProperties(t *testing.T) {
	str := func() *Schema { return &Schema{Type: TypeString("string")} }

	t.Run("set keeps insertion order and replaces in place", func(t *testing.T) {
		p := NewProperties().Set("b", str()).Set("a", str()).Set("c", str())
		replacement := &Schema{Type: TypeString("integer")}
		p.Set("a", replacement)

		assert.Equal(t, []string{"b", "a", "c"}, p.Keys())
		got, ok := p.Get("a")
		require.True(t, ok)
		assert.Same(t, replacement, got)
	})

	t.Run("zero value is usable", func(t *testing.T) {
		var p Properties
		p.Set("name", str())
		assert.Equal(t, 1, p.Len())
		assert.True(t, p.Has("name"))
	})

	t.Run("nil receiver", func(t *testing.T) {
		var p *Properties
		assert.Equal(t, 0, p.Len())
		assert.Nil(t, p.Keys())
		assert.False(t, p.Has("x"))
		p.Delete("x")
	})

	t.Run("delete", func(t *testing.T) {
		p := NewProperties().Set("a", str()).Set("b", str()).Set("c", str())
		p.Delete("b")
		p.Delete("missing")
		assert.Equal(t, []string{"a", "c"}, p.Keys())
	})

	t.Run("rename keeps position", func(t *testing.T) {
		p := NewProperties().Set("first_name", str()).Set("last_name", str())
		p.Rename("first_name", "first-name")
		assert.Equal(t, []string{"first-name", "last_name"}, p.Keys())
		assert.False(t, p.Has("first_name"))
	})

	t.Run("rename onto an existing property drops the old one", func(t *testing.T) {
		a, b := str(), str()
		p := NewProperties().Set("a", a).Set("b", b).Set("c", str())
		p.Rename("c", "a")
		assert.Equal(t, []string{"b", "a"}, p.Keys())
		got, _ := p.Get("a")
		assert.NotSame(t, a, got)
	})

	t.Run("each visits in order", func(t *testing.T) {
		p := NewProperties().Set("x", str()).Set("y", str())
		var seen []string
		p.Each(func(name string, _ *Schema) { seen = append(seen, name) })
		assert.Equal(t, []string{"x", "y"}, seen)
	})

	t.Run("json round trip keeps order", func(t *testing.T) {
		input := `{"zeta":{"type":"string"},"alpha":{"type":"integer"},"mid":{"$ref":"#/components/schemas/Mid"}}`
		var p Properties
		require.NoError(t, json.Unmarshal([]byte(input), &p))
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, p.Keys())

		data, err := json.Marshal(&p)
		require.NoError(t, err)
		assert.Equal(t, input, string(data))
	})

	t.Run("unmarshal rejects non-objects", func(t *testing.T) {
		var p Properties
		assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &p))
	})
}
