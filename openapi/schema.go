package openapi

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vitalvas/jsonapi-openapi/resource"
)

// ComponentPrefix is the $ref prefix of component schemas.
const ComponentPrefix = "#/components/schemas/"

// SchemaRegistry collects named component schemas for resource descriptors
// and hands out $ref schemas pointing at them.
//
// See: https://spec.openapis.org/oas/v3.1.0#components-object (schemas)
type SchemaRegistry struct {
	schemas map[string]*Schema
	visited map[componentKey]bool
	names   map[componentKey]string // key -> chosen schema name
	owners  map[string]componentKey // schema name -> key that claimed it
}

// componentKey identifies one component: a resource plus a variant suffix
// such as "Included". Plain schemas registered by name use a nil resource.
type componentKey struct {
	res     *resource.Resource
	variant string
	name    string
}

// NewSchemaRegistry creates an empty registry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{
		schemas: make(map[string]*Schema),
		visited: make(map[componentKey]bool),
		names:   make(map[componentKey]string),
		owners:  make(map[string]componentKey),
	}
}

// Schemas returns the collected component schemas.
func (g *SchemaRegistry) Schemas() map[string]*Schema {
	return g.schemas
}

// Add registers a schema under an explicit name and returns a $ref to it.
// An existing schema with the same name is replaced.
func (g *SchemaRegistry) Add(name string, schema *Schema) *Schema {
	key := componentKey{name: name}
	g.names[key] = name
	g.owners[name] = key
	g.schemas[name] = schema
	return RefTo(name)
}

// Component returns a $ref to the component of r with the given variant,
// building it on first use. The name is claimed before build runs so
// that recursive references to the same component resolve to the $ref.
func (g *SchemaRegistry) Component(r *resource.Resource, variant string, build func() (*Schema, error)) (*Schema, error) {
	key := componentKey{res: r, variant: variant}
	name := g.schemaName(key)
	if !g.visited[key] {
		g.visited[key] = true
		schema, err := build()
		if err != nil {
			delete(g.visited, key)
			return nil, err
		}
		g.schemas[name] = schema
	}
	return RefTo(name), nil
}

// Resolve follows a component $ref. Other schemas are returned unchanged.
func (g *SchemaRegistry) Resolve(s *Schema) *Schema {
	if s == nil || g == nil || !strings.HasPrefix(s.Ref, ComponentPrefix) {
		return s
	}
	if target, ok := g.schemas[strings.TrimPrefix(s.Ref, ComponentPrefix)]; ok {
		return target
	}
	return s
}

// RefTo returns a $ref schema for a component name.
func RefTo(name string) *Schema {
	return &Schema{Ref: ComponentPrefix + name}
}

// ComponentName derives a component name from a resource descriptor name.
// A trailing "Serializer" is dropped, so "ProjectSerializer" becomes
// "Project".
func ComponentName(name string) string {
	if trimmed := strings.TrimSuffix(name, "Serializer"); trimmed != "" {
		name = trimmed
	}
	return sanitizeSchemaName(name)
}

// schemaName returns a unique schema name for the key. When two resources
// sanitize to the same name, the later one gets a numeric suffix
// (e.g. "Project2").
func (g *SchemaRegistry) schemaName(key componentKey) string {
	if name, ok := g.names[key]; ok {
		return name
	}

	name := ComponentName(key.res.Name) + key.variant
	if existing, ok := g.owners[name]; ok && existing != key {
		base := name
		for i := 2; ; i++ {
			candidate := base + strconv.Itoa(i)
			if _, ok := g.owners[candidate]; !ok {
				name = candidate
				break
			}
		}
	}

	g.names[key] = name
	g.owners[name] = key
	return name
}

// sanitizeSchemaName keeps the characters allowed in component keys
// (letters, digits, ".", "-" and "_") and replaces the rest with "_".
//
// See: https://spec.openapis.org/oas/v3.1.0#components-object (fixed fields)
func sanitizeSchemaName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// KindSchema maps a field value kind to a JSON Schema type and format.
//
// See: https://spec.openapis.org/oas/v3.1.0#data-types
func KindSchema(k resource.Kind) *Schema {
	switch k {
	case resource.KindInteger:
		return &Schema{Type: TypeString("integer")}
	case resource.KindNumber:
		return &Schema{Type: TypeString("number")}
	case resource.KindBoolean:
		return &Schema{Type: TypeString("boolean")}
	case resource.KindDate:
		return &Schema{Type: TypeString("string"), Format: "date"}
	case resource.KindDateTime:
		return &Schema{Type: TypeString("string"), Format: "date-time"}
	case resource.KindUUID:
		return &Schema{Type: TypeString("string"), Format: "uuid"}
	case resource.KindURL:
		return &Schema{Type: TypeString("string"), Format: "uri"}
	case resource.KindEmail:
		return &Schema{Type: TypeString("string"), Format: "email"}
	case resource.KindObject:
		return &Schema{Type: TypeString("object"), AdditionalProperties: &Schema{}}
	case resource.KindList:
		return &Schema{Type: TypeString("array"), Items: &Schema{}}
	case resource.KindFile:
		return &Schema{Type: TypeString("string"), Format: "binary"}
	}
	return &Schema{Type: TypeString("string")}
}

// decorate applies the descriptive attributes of f to a leaf schema.
func decorate(schema *Schema, f *resource.Field) *Schema {
	if f.Help != "" {
		schema.Description = f.Help
	}
	if f.Default != nil {
		schema.Default = f.Default
	}
	if len(f.Choices) > 0 {
		schema.Enum = make([]any, len(f.Choices))
		for i, c := range f.Choices {
			schema.Enum[i] = c
		}
	}
	if f.Kind == resource.KindUUID && schema.Example == nil {
		schema.Example = exampleUUID(f)
	}
	applyOpenAPITag(schema, f.Constraints)
	if f.AllowNull {
		applyNullable(schema)
	}
	return schema
}

// exampleUUID returns a stable example value derived from the field path.
func exampleUUID(f *resource.Field) string {
	owner := ""
	if p := f.Parent(); p != nil {
		owner = p.Name
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(owner+"."+f.Name)).String()
}

// applyOpenAPITag parses a constraint tag and applies it to the schema.
// Tag keys map to JSON Schema and OpenAPI Schema Object keywords.
//
// See: https://spec.openapis.org/oas/v3.1.0#schema-object
// See: https://json-schema.org/draft/2020-12/json-schema-validation
func applyOpenAPITag(schema *Schema, tag string) {
	if tag == "" {
		return
	}

	for part := range strings.SplitSeq(tag, ",") {
		key, value, hasValue := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if hasValue {
			value = strings.TrimSpace(value)
		}

		switch key {
		case "description":
			schema.Description = value
		case "example":
			schema.Example = parseExampleValue(schema, value)
		case "format":
			schema.Format = value
		case "minimum":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				schema.Minimum = &v
			}
		case "maximum":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				schema.Maximum = &v
			}
		case "exclusiveMinimum":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				schema.ExclusiveMinimum = &v
			}
		case "exclusiveMaximum":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				schema.ExclusiveMaximum = &v
			}
		case "minLength":
			if v, err := strconv.Atoi(value); err == nil {
				schema.MinLength = &v
			}
		case "maxLength":
			if v, err := strconv.Atoi(value); err == nil {
				schema.MaxLength = &v
			}
		case "pattern":
			schema.Pattern = value
		case "enum":
			values := strings.Split(value, "|")
			schema.Enum = make([]any, len(values))
			for i, v := range values {
				schema.Enum[i] = v
			}
		case "deprecated":
			schema.Deprecated = true
		case "title":
			schema.Title = value
		case "multipleOf":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				schema.MultipleOf = &v
			}
		case "minItems":
			if v, err := strconv.Atoi(value); err == nil {
				schema.MinItems = &v
			}
		case "maxItems":
			if v, err := strconv.Atoi(value); err == nil {
				schema.MaxItems = &v
			}
		case "uniqueItems":
			schema.UniqueItems = true
		case "const":
			schema.Const = parseExampleValue(schema, value)
		}
	}
}

// parseExampleValue converts a tag value to the Go type matching the
// schema's type.
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-9.5
func parseExampleValue(schema *Schema, value string) any {
	types := schema.Type.Values()
	if len(types) == 0 {
		return value
	}

	switch types[0] {
	case "integer":
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	case "number":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	case "boolean":
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return value
}

// applyNullable modifies a schema to allow null values by converting
// the type to an array (e.g., "string" becomes ["string", "null"]).
// In JSON Schema Draft 2020-12, nullable is expressed via type arrays
// rather than the OpenAPI 3.0 "nullable" keyword.
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.1.1
func applyNullable(schema *Schema) {
	if schema.Ref != "" {
		return
	}
	types := schema.Type.Values()
	if len(types) > 0 && !schema.Type.Is("null") {
		schema.Type = TypeArray(append(types, "null")...)
	}
}

// ObjectSchema creates an object schema with ordered properties.
func ObjectSchema(props *Properties, required ...string) *Schema {
	return &Schema{Type: TypeString("object"), Properties: props, Required: required}
}

// ArrayOf creates an array schema with the given item schema.
func ArrayOf(items *Schema) *Schema {
	return &Schema{Type: TypeString("array"), Items: items}
}
