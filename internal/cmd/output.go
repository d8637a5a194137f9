package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renato0307/kform/internal/k8s"
)

// printObject writes a Kubernetes-shaped object.
func printObject(cmd *cobra.Command, opts *rootOptions, obj map[string]any) error {
	text, err := k8s.FormatObject(obj, opts.output)
	if err != nil {
		return err
	}
	return emit(cmd, opts, text)
}

// printValue writes any JSON-compatible value.
func printValue(cmd *cobra.Command, opts *rootOptions, v any) error {
	text, err := k8s.FormatValue(v, opts.output)
	if err != nil {
		return err
	}
	return emit(cmd, opts, text)
}

func emit(cmd *cobra.Command, opts *rootOptions, text string) error {
	if _, err := fmt.Fprint(cmd.OutOrStdout(), text); err != nil {
		return err
	}
	if !opts.copy {
		return nil
	}
	msg, err := copyToClipboard(text)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), msg)
	return nil
}
