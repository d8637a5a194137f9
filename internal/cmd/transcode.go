package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renato0307/kform/internal/transcode"
)

func newToFormCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "to-form DEFINITION OBJECT",
		Short: "Convert a Kubernetes object to form data",
		Long: `Convert a Kubernetes object to form data. Map fields named by the form
definition move to the top level as arrays of {key, value} records.
OBJECT is a YAML or JSON file, or - for stdin.`,
		Example: `  kubectl get deploy web -o yaml | kform to-form deployment-form.yaml -`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := loadForm(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			obj, err := readObject(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}

			data, err := transcode.ToFormData(obj, result.Mapping)
			if err != nil {
				return err
			}
			return printValue(cmd, opts, data)
		},
	}
}

func newToSourceCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "to-source DEFINITION FORMDATA",
		Short: "Convert form data back to a Kubernetes object",
		Example: `  kform to-source deployment-form.yaml submitted.json | kubectl apply -f -`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := loadForm(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			data, err := readObject(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}

			obj, err := transcode.ToSourceData(data, result.Mapping)
			if err != nil {
				return err
			}
			return printObject(cmd, opts, obj)
		},
	}
}

func newPatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "patch DEFINITION ORIGINAL FORMDATA",
		Short: "Compute the JSON merge patch that applies form data to an object",
		Example: `  kform patch deployment-form.yaml current.yaml submitted.json > patch.json
  kubectl patch deploy web --type merge --patch-file patch.json`,
		Args: cobra.MatchAll(cobra.ExactArgs(3), func(cmd *cobra.Command, args []string) error {
			// stdin can only be read once
			if args[1] == stdinPath && args[2] == stdinPath {
				return fmt.Errorf("ORIGINAL and FORMDATA cannot both be read from stdin")
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := loadForm(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			original, err := readObject(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}
			data, err := readObject(args[2], cmd.InOrStdin())
			if err != nil {
				return err
			}

			patch, err := transcode.MergePatch(original, data, result.Mapping)
			if err != nil {
				return err
			}
			return emit(cmd, opts, string(patch)+"\n")
		},
	}
}
