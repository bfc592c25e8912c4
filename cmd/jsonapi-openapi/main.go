// Command jsonapi-openapi renders OpenAPI documents for JSON:API services
// described by a YAML manifest.
//
//	jsonapi-openapi generate api.yaml --format yaml --output openapi.yaml
//	jsonapi-openapi paths api.yaml ProjectSerializer
package main

import (
	"os"
)

func main() {
	if err := New().Execute(); err != nil {
		os.Exit(1)
	}
}
