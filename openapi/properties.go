package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Properties is an insertion-ordered map of property name to schema. The
// zero value is ready to use.
//
// See: https://json-schema.org/draft/2020-12/json-schema-core#section-10.3.2.1 (properties)
type Properties struct {
	keys   []string
	values map[string]*Schema
}

// NewProperties creates an empty property map.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]*Schema)}
}

// Set adds or replaces a property. New names are appended.
func (p *Properties) Set(name string, schema *Schema) *Properties {
	if p.values == nil {
		p.values = make(map[string]*Schema)
	}
	if _, ok := p.values[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.values[name] = schema
	return p
}

// Get returns the schema of a property.
func (p *Properties) Get(name string) (*Schema, bool) {
	if p == nil {
		return nil, false
	}
	s, ok := p.values[name]
	return s, ok
}

// Has reports whether the property exists.
func (p *Properties) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Delete removes a property.
func (p *Properties) Delete(name string) {
	if p == nil {
		return
	}
	if _, ok := p.values[name]; !ok {
		return
	}
	delete(p.values, name)
	for i, k := range p.keys {
		if k == name {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Rename changes the name of a property in place, keeping its position.
// Renaming onto an existing different property replaces that property's
// value and drops its old position.
func (p *Properties) Rename(from, to string) {
	if p == nil || from == to {
		return
	}
	schema, ok := p.values[from]
	if !ok {
		return
	}
	if _, clash := p.values[to]; clash {
		p.Delete(to)
	}
	for i, k := range p.keys {
		if k == from {
			p.keys[i] = to
			break
		}
	}
	delete(p.values, from)
	p.values[to] = schema
}

// Keys returns the property names in order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Each calls fn for every property in order.
func (p *Properties) Each(fn func(name string, schema *Schema)) {
	if p == nil {
		return
	}
	for _, k := range p.keys {
		fn(k, p.values[k])
	}
}

// MarshalJSON encodes the properties as a JSON object in insertion order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the order of its members.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties: expected object, got %v", tok)
	}

	*p = Properties{values: make(map[string]*Schema)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("properties: expected key, got %v", tok)
		}
		var schema Schema
		if err := dec.Decode(&schema); err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		p.Set(name, &schema)
	}
	_, err = dec.Token()
	return err
}
