package jsonapi

import (
	"mime"
	"strings"

	"github.com/vitalvas/jsonapi-openapi/openapi"
)

// MediaType is the JSON:API media type.
//
// See: https://jsonapi.org/format/#content-negotiation
const MediaType = "application/vnd.api+json"

// IsMediaType reports whether mt names the JSON:API media type, ignoring
// parameters such as "ext" or "profile".
func IsMediaType(mt string) bool {
	base, _, err := mime.ParseMediaType(mt)
	if err != nil {
		base = strings.TrimSpace(strings.SplitN(mt, ";", 2)[0])
	}
	return strings.EqualFold(base, MediaType)
}

func anyMediaType(types []string) bool {
	for _, mt := range types {
		if IsMediaType(mt) {
			return true
		}
	}
	return false
}

// IsRequest reports whether the view parses JSON:API request bodies.
func IsRequest(v *openapi.View) bool {
	return v != nil && anyMediaType(v.ParserTypes())
}

// IsResponse reports whether the view renders JSON:API responses.
func IsResponse(v *openapi.View) bool {
	return v != nil && anyMediaType(v.RendererTypes())
}

// Is reports whether the view speaks JSON:API in either direction.
func Is(v *openapi.View) bool {
	return IsRequest(v) || IsResponse(v)
}
