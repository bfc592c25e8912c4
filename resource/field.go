package resource

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the value type of a non-relation field.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindNumber
	KindBoolean
	KindDate
	KindDateTime
	KindUUID
	KindURL
	KindEmail
	KindChoice
	KindObject
	KindList
	KindFile
)

var kindNames = map[Kind]string{
	KindString:   "string",
	KindInteger:  "integer",
	KindNumber:   "number",
	KindBoolean:  "boolean",
	KindDate:     "date",
	KindDateTime: "datetime",
	KindUUID:     "uuid",
	KindURL:      "url",
	KindEmail:    "email",
	KindChoice:   "choice",
	KindObject:   "object",
	KindList:     "list",
	KindFile:     "file",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the lower-case kind name used in manifests.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("resource: unknown field kind %q", s)
}

// UnmarshalYAML decodes a kind from its name.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseKind(node.Value)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Relation classifies how a field references another resource.
type Relation int

const (
	RelationNone Relation = iota
	// RelationPrimaryKey is a plain primary key reference.
	RelationPrimaryKey
	// RelationResource is a resource reference that may declare related
	// and self links.
	RelationResource
	// RelationSerializerMethod is a resource reference computed by a method.
	RelationSerializerMethod
	// RelationHyperlinked references the related object by URL.
	RelationHyperlinked
	// RelationHyperlinkedIdentity is the URL of the object itself.
	RelationHyperlinkedIdentity
	// RelationNested embeds another resource descriptor as the value.
	RelationNested
)

var relationNames = map[Relation]string{
	RelationNone:                "none",
	RelationPrimaryKey:          "primarykey",
	RelationResource:            "resource",
	RelationSerializerMethod:    "method",
	RelationHyperlinked:         "hyperlinked",
	RelationHyperlinkedIdentity: "identity",
	RelationNested:              "nested",
}

func (r Relation) String() string {
	if name, ok := relationNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Relation(%d)", int(r))
}

// ParseRelation parses the lower-case relation name used in manifests.
func ParseRelation(s string) (Relation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for r, name := range relationNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("resource: unknown relation %q", s)
}

// UnmarshalYAML decodes a relation from its name.
func (r *Relation) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseRelation(node.Value)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Field describes one named value or reference of a resource.
type Field struct {
	Name string
	// Source is the dotted attribute path on the model; empty means Name.
	Source   string
	Kind     Kind
	Relation Relation
	Many     bool

	ReadOnly  bool
	WriteOnly bool
	Required  bool
	AllowNull bool

	// RelatedType is an explicit resource type for relation fields.
	RelatedType string
	// RelatedModel names the target model of a relation when it cannot be
	// derived from the parent model.
	RelatedModel string
	// Nested is the resource descriptor used as the value of the field.
	Nested *Resource

	// RelatedLink and SelfLink report whether the relation renders
	// "related" and "self" links.
	RelatedLink bool
	SelfLink    bool

	Help    string
	Default any
	Choices []string
	// Constraints uses the comma separated key=value grammar of the
	// openapi struct tag, e.g. "maxLength=100,format=email".
	Constraints string

	parent *Resource
}

// Attr creates a non-relation field.
func Attr(name string, kind Kind) *Field {
	return &Field{Name: name, Kind: kind}
}

// Rel creates a relation field.
func Rel(name string, relation Relation) *Field {
	return &Field{Name: name, Relation: relation}
}

// NestedField creates a field whose value is another resource.
func NestedField(name string, nested *Resource) *Field {
	return &Field{Name: name, Relation: RelationNested, Nested: nested, Kind: KindObject}
}

// ToMany marks a relation as referencing many objects.
func (f *Field) ToMany() *Field {
	f.Many = true
	return f
}

// AsReadOnly marks the field read-only.
func (f *Field) AsReadOnly() *Field {
	f.ReadOnly = true
	f.Required = false
	return f
}

// AsWriteOnly marks the field write-only.
func (f *Field) AsWriteOnly() *Field {
	f.WriteOnly = true
	return f
}

// AsRequired marks the field required.
func (f *Field) AsRequired() *Field {
	f.Required = true
	return f
}

// From sets the source attribute path.
func (f *Field) From(source string) *Field {
	f.Source = source
	return f
}

// Targets sets the related model name of a relation.
func (f *Field) Targets(model string) *Field {
	f.RelatedModel = model
	return f
}

// Typed sets an explicit related resource type.
func (f *Field) Typed(resourceType string) *Field {
	f.RelatedType = resourceType
	return f
}

// WithLinks enables the related and self links of a resource relation.
func (f *Field) WithLinks(related, self bool) *Field {
	f.RelatedLink = related
	f.SelfLink = self
	return f
}

// IsRelation reports whether the field references another resource.
func (f *Field) IsRelation() bool {
	return f.Relation != RelationNone
}

// SourceAttr returns the model attribute path the field reads from.
func (f *Field) SourceAttr() string {
	if f.Source != "" {
		return f.Source
	}
	return f.Name
}

// Parent returns the resource the field is bound to.
func (f *Field) Parent() *Resource {
	return f.parent
}

// Bind attaches the field to its owning resource. A field can only be
// bound once; binding a bound field to another resource panics.
func (f *Field) Bind(parent *Resource) *Field {
	if f.parent != nil && f.parent != parent {
		panic(fmt.Sprintf("resource: field %q is already bound to %s", f.Name, f.parent.Name))
	}
	f.parent = parent
	return f
}

// Child returns the to-one view of a to-many relation: a copy with Many
// cleared, bound to the same parent. For other fields it returns f.
func (f *Field) Child() *Field {
	if !f.Many {
		return f
	}
	child := *f
	child.Many = false
	return &child
}
