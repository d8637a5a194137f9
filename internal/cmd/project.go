package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProjectCmd(opts *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "project DEFINITION",
		Short: "Build the form schema, UI hints and field mapping of a form definition",
		Example: `  kform project deployment-form.yaml
  kform project deployment-form.yaml -o json --copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := loadForm(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			for _, d := range result.Diagnostics {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: "+d.String())
			}
			if strict && len(result.Diagnostics) > 0 {
				return fmt.Errorf("%d field paths could not be resolved", len(result.Diagnostics))
			}

			return printValue(cmd, opts, result)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when a field path does not resolve")
	return cmd
}
