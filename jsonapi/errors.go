package jsonapi

import (
	"errors"
	"fmt"

	"github.com/vitalvas/jsonapi-openapi/openapi"
)

var (
	// ErrDeclaration is returned for resource declarations that cannot be
	// rendered as JSON:API documents.
	ErrDeclaration = errors.New("jsonapi: invalid resource declaration")

	// ErrUnresolvedType is returned when the resource type of a relationship
	// cannot be determined.
	ErrUnresolvedType = errors.New("jsonapi: unable to resolve resource type")

	// ErrPagination is returned when a paginated response has no array
	// data member.
	ErrPagination = fmt.Errorf("jsonapi: %w", openapi.ErrPagination)
)
