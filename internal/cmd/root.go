// Package cmd implements the kform command line.
package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/renato0307/kform/internal/k8s"
	"github.com/renato0307/kform/internal/logging"
)

// version is set at build time with -ldflags "-X ...cmd.version=..."
var version = "dev"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	logFile    string
	logLevel   string
	logFormat  string
	kubeconfig string
	context    string
	timeout    time.Duration
	output     string
	copy       bool
}

// NewRootCmd builds the kform command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "kform",
		Short: "kform builds editable forms from Kubernetes OpenAPI schemas",
		Long: `kform projects a Kubernetes OpenAPI schema onto a list of field paths and
produces a reduced form schema, rendering hints and a mapping for map fields.
It converts objects between their Kubernetes shape and the form shape.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Init(logging.Config{
				File:       opts.logFile,
				Level:      opts.logLevel,
				Format:     opts.logFormat,
				MaxSizeMB:  10,
				MaxBackups: 3,
			})
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.logFile, "log-file", "", `Write logs to this file ("-" for stderr)`)
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")
	flags.StringVar(&opts.kubeconfig, "kubeconfig", "", "Path to kubeconfig file (default: $HOME/.kube/config)")
	flags.StringVar(&opts.context, "context", "", "Kubernetes context to use")
	flags.DurationVar(&opts.timeout, "timeout", k8s.OpenAPIFetchTimeout, "Timeout for cluster requests")
	flags.StringVarP(&opts.output, "output", "o", k8s.FormatYAML, "Output format (yaml, json)")
	flags.BoolVar(&opts.copy, "copy", false, "Also copy the output to the clipboard")

	root.AddCommand(
		newProjectCmd(opts),
		newToFormCmd(opts),
		newToSourceCmd(opts),
		newPatchCmd(opts),
		newPreviewCmd(opts),
		newAPIVersionsCmd(opts),
	)

	return root
}

// Execute runs the command line.
func Execute() error {
	return NewRootCmd().Execute()
}
