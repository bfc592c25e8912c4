package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitalvas/jsonapi-openapi/manifest"
	"github.com/vitalvas/jsonapi-openapi/openapi"
)

func NewGenerate(root *Root) *cobra.Command {
	g := &Generate{root: root}
	cmd := &cobra.Command{
		Use:          "generate [flags] MANIFEST",
		SilenceUsage: true,
		Short:        "Render the OpenAPI document of a manifest",
		Args:         cobra.ExactArgs(1),
		RunE:         g.Run,
	}
	cmd.Flags().StringVarP(&g.Format, "format", "f", "json", "Output format (json, yaml)")
	cmd.Flags().StringVarP(&g.Output, "output", "o", "", "Write the document to a file instead of stdout")
	return cmd
}

type Generate struct {
	Format string
	Output string

	root *Root
}

func (g *Generate) Run(cmd *cobra.Command, args []string) error {
	format, err := openapi.ParseFormat(g.Format)
	if err != nil {
		return err
	}

	m, err := manifest.Load(args[0])
	if err != nil {
		return err
	}
	spec, err := m.Spec(g.root.logger)
	if err != nil {
		return err
	}
	doc, err := spec.Build()
	if err != nil {
		return err
	}

	if g.Output == "" {
		return openapi.Encode(cmd.OutOrStdout(), doc, format)
	}

	f, err := os.Create(g.Output)
	if err != nil {
		return err
	}
	if err := openapi.Encode(f, doc, format); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", g.Output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", g.Output, err)
	}
	return nil
}
