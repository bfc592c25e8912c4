package jsonapi

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vitalvas/jsonapi-openapi/resource"
)

// MaxIncludedPathDepth bounds the length of reported include paths.
const MaxIncludedPathDepth = 20

type walkFrame struct {
	path      []string
	ancestors []*resource.Resource
	res       *resource.Resource
}

// IncludedPaths walks the included declarations of root depth first and
// returns the include paths a client may request together with every
// reachable resource, in discovery order.
//
// Paths that lead back to a resource on their own chain are reported once
// with a "[recursive]" marker, or "[recursive through: <path>]" when the
// cycle spans more than one hop. A resource already expanded on another
// branch is reported but not expanded again.
func IncludedPaths(reg *resource.Registry, root *resource.Resource, s Settings) ([]string, []*resource.Resource, error) {
	var (
		paths     []string
		reachable []*resource.Resource
		seen      = make(map[*resource.Resource]bool)
		expanded  = make(map[*resource.Resource]bool)
		warned    bool
	)

	stack := []walkFrame{{res: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(top.path) > MaxIncludedPathDepth {
			if !warned {
				s.logger().WithFields(logrus.Fields{
					"resource": root.Name,
					"limit":    MaxIncludedPathDepth,
				}).Warnf("Exceeded max included path limit (%d), ignoring longer paths", MaxIncludedPathDepth)
				warned = true
			}
			continue
		}

		joined := strings.Join(top.path, ".")
		if idx := slices.Index(top.ancestors, top.res); idx >= 0 {
			if idx == len(top.ancestors)-1 {
				paths = append(paths, joined+" [recursive]")
			} else {
				paths = append(paths, fmt.Sprintf("%s [recursive through: %s]", joined, strings.Join(top.path[idx:], ".")))
			}
			continue
		}
		if joined != "" {
			paths = append(paths, joined)
		}

		if expanded[top.res] {
			continue
		}
		expanded[top.res] = true

		included, err := reg.Included(top.res)
		if err != nil {
			return nil, nil, err
		}
		ancestors := append(slices.Clone(top.ancestors), top.res)
		for _, inc := range included {
			if !seen[inc.Resource] {
				seen[inc.Resource] = true
				reachable = append(reachable, inc.Resource)
			}
			stack = append(stack, walkFrame{
				path:      append(slices.Clone(top.path), s.FormatFieldNames.Apply(inc.Name)),
				ancestors: ancestors,
				res:       inc.Resource,
			})
		}
	}
	return paths, reachable, nil
}
