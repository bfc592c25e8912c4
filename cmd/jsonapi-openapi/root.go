package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Root holds the flags shared by every command.
type Root struct {
	LogLevel  string
	LogFormat string

	logger *logrus.Logger
}

// New returns the root command with every subcommand attached.
func New() *cobra.Command {
	root := &Root{logger: logrus.New()}
	cmd := &cobra.Command{
		Use:          "jsonapi-openapi",
		Short:        "Generate OpenAPI documents for JSON:API services",
		SilenceUsage: true,
		Example: `
# Render the document of a manifest as YAML
jsonapi-openapi generate api.yaml --format yaml`,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: root.PersistentPre,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&root.LogLevel, "log-level", "warning", "Log level (debug, info, warning, error)")
	cmd.PersistentFlags().StringVar(&root.LogFormat, "log-format", "text", "Log format (text, json)")

	cmd.AddCommand(
		NewGenerate(root),
		NewPaths(root),
	)
	return cmd
}

// PersistentPre configures the logger from the flags. Log output goes to
// stderr so it never mixes with the rendered document.
func (r *Root) PersistentPre(cmd *cobra.Command, _ []string) error {
	level, err := logrus.ParseLevel(r.LogLevel)
	if err != nil {
		return err
	}
	r.logger.SetLevel(level)
	r.logger.SetOutput(cmd.ErrOrStderr())

	switch r.LogFormat {
	case "text":
		r.logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		r.logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", r.LogFormat)
	}
	return nil
}
