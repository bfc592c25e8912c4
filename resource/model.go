package resource

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColumnType is the storage type of a model column.
type ColumnType int

const (
	ColumnString ColumnType = iota
	ColumnText
	ColumnAuto
	ColumnBigAuto
	ColumnSmallInteger
	ColumnInteger
	ColumnBigInteger
	ColumnBoolean
	ColumnFloat
	ColumnDecimal
	ColumnDate
	ColumnDateTime
	ColumnUUID
	ColumnForeignKey
	ColumnOneToOne
	ColumnManyToMany
)

var columnTypeNames = map[ColumnType]string{
	ColumnString:       "string",
	ColumnText:         "text",
	ColumnAuto:         "auto",
	ColumnBigAuto:      "bigauto",
	ColumnSmallInteger: "smallint",
	ColumnInteger:      "integer",
	ColumnBigInteger:   "bigint",
	ColumnBoolean:      "boolean",
	ColumnFloat:        "float",
	ColumnDecimal:      "decimal",
	ColumnDate:         "date",
	ColumnDateTime:     "datetime",
	ColumnUUID:         "uuid",
	ColumnForeignKey:   "foreignkey",
	ColumnOneToOne:     "onetoone",
	ColumnManyToMany:   "manytomany",
}

func (t ColumnType) String() string {
	if name, ok := columnTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// ParseColumnType parses the lower-case column type name used in manifests.
func ParseColumnType(s string) (ColumnType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range columnTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("resource: unknown column type %q", s)
}

// UnmarshalYAML decodes a column type from its name.
func (t *ColumnType) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseColumnType(node.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// IsInteger reports whether values of the column are stored as integers.
func (t ColumnType) IsInteger() bool {
	switch t {
	case ColumnAuto, ColumnBigAuto, ColumnSmallInteger, ColumnInteger, ColumnBigInteger:
		return true
	}
	return false
}

// Is64Bit reports whether the integer column is 64 bits wide.
func (t ColumnType) Is64Bit() bool {
	return t == ColumnBigAuto || t == ColumnBigInteger
}

// IsAuto reports whether the column value is assigned by the database.
func (t ColumnType) IsAuto() bool {
	return t == ColumnAuto || t == ColumnBigAuto
}

// IsRelation reports whether the column references another model.
func (t ColumnType) IsRelation() bool {
	return t == ColumnForeignKey || t == ColumnOneToOne || t == ColumnManyToMany
}

// Kind returns the field kind a serializer derives for a column of this type.
func (t ColumnType) Kind() Kind {
	switch t {
	case ColumnAuto, ColumnBigAuto, ColumnSmallInteger, ColumnInteger, ColumnBigInteger:
		return KindInteger
	case ColumnBoolean:
		return KindBoolean
	case ColumnFloat, ColumnDecimal:
		return KindNumber
	case ColumnDate:
		return KindDate
	case ColumnDateTime:
		return KindDateTime
	case ColumnUUID:
		return KindUUID
	}
	return KindString
}

// Column is a single model column. Relation columns name the related model
// and, optionally, the accessor the related model uses for the reverse side.
type Column struct {
	Name        string     `yaml:"name"`
	Type        ColumnType `yaml:"type"`
	PrimaryKey  bool       `yaml:"primaryKey"`
	Related     string     `yaml:"related"`
	RelatedName string     `yaml:"relatedName"`
}

// Model describes a persisted entity.
type Model struct {
	Name string
	// ResourceName overrides the resource type derived from Name.
	ResourceName string
	Columns      []*Column
}

// NewModel creates a model with the given columns in declaration order.
func NewModel(name string, columns ...Column) *Model {
	m := &Model{Name: name}
	for i := range columns {
		c := columns[i]
		m.Columns = append(m.Columns, &c)
	}
	return m
}

// Column returns the column with the given name. The alias "pk" resolves to
// the primary key.
func (m *Model) Column(name string) *Column {
	if m == nil {
		return nil
	}
	if name == "pk" {
		return m.PrimaryKey()
	}
	for _, c := range m.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// PrimaryKey returns the primary key column, or nil when the model has none.
func (m *Model) PrimaryKey() *Column {
	if m == nil {
		return nil
	}
	for _, c := range m.Columns {
		if c.PrimaryKey {
			return c
		}
	}
	return nil
}
