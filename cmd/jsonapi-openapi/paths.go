package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitalvas/jsonapi-openapi/jsonapi"
	"github.com/vitalvas/jsonapi-openapi/manifest"
)

func NewPaths(root *Root) *cobra.Command {
	p := &Paths{root: root}
	cmd := &cobra.Command{
		Use:          "paths [flags] MANIFEST RESOURCE",
		SilenceUsage: true,
		Short:        "Print the include paths a client may request for a resource",
		Args:         cobra.ExactArgs(2),
		RunE:         p.Run,
	}
	cmd.Flags().BoolVar(&p.Types, "types", false, "Also print the resource type of every reachable resource")
	return cmd
}

type Paths struct {
	Types bool

	root *Root
}

func (p *Paths) Run(cmd *cobra.Command, args []string) error {
	m, err := manifest.Load(args[0])
	if err != nil {
		return err
	}
	reg, err := m.Registry()
	if err != nil {
		return err
	}
	r, err := reg.Resource(args[1])
	if err != nil {
		return err
	}

	settings := m.Settings()
	settings.Logger = p.root.logger
	paths, reachable, err := jsonapi.IncludedPaths(reg, r, settings)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, path := range paths {
		fmt.Fprintln(out, path)
	}
	if p.Types {
		for _, res := range reachable {
			fmt.Fprintf(out, "%s\t%s\n", res.Name, settings.ResourceType(res))
		}
	}
	return nil
}
