package resource

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// PaginationStyle selects how a paginator addresses pages.
type PaginationStyle int

const (
	PageNumber PaginationStyle = iota
	LimitOffset
)

// UnmarshalYAML decodes "page" / "pagenumber" or "limitoffset".
func (s *PaginationStyle) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(node.Value) {
	case "page", "pagenumber", "page-number":
		*s = PageNumber
	case "limitoffset", "limit-offset":
		*s = LimitOffset
	default:
		return fmt.Errorf("resource: unknown pagination style %q", node.Value)
	}
	return nil
}

// Paginator describes the pagination of a list view. Empty parameter names
// fall back to the defaults of the style.
type Paginator struct {
	Style PaginationStyle
	// JSONAPI marks paginators that render JSON:API links and meta.
	JSONAPI bool

	PageParam   string
	SizeParam   string
	LimitParam  string
	OffsetParam string
}

// Params returns the query parameter names used by the paginator.
func (p *Paginator) Params() []string {
	if p.Style == LimitOffset {
		return []string{p.limitParam(), p.offsetParam()}
	}
	return []string{p.pageParam(), p.sizeParam()}
}

func (p *Paginator) pageParam() string {
	switch {
	case p.PageParam != "":
		return p.PageParam
	case p.JSONAPI:
		return "page[number]"
	}
	return "page"
}

func (p *Paginator) sizeParam() string {
	switch {
	case p.SizeParam != "":
		return p.SizeParam
	case p.JSONAPI:
		return "page[size]"
	}
	return "page_size"
}

func (p *Paginator) limitParam() string {
	switch {
	case p.LimitParam != "":
		return p.LimitParam
	case p.JSONAPI:
		return "page[limit]"
	}
	return "limit"
}

func (p *Paginator) offsetParam() string {
	switch {
	case p.OffsetParam != "":
		return p.OffsetParam
	case p.JSONAPI:
		return "page[offset]"
	}
	return "offset"
}
