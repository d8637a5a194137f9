package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renato0307/kform/internal/k8s"
)

func newAPIVersionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "api-versions",
		Short: "List the group versions the cluster publishes OpenAPI v3 schemas for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher, err := k8s.NewOpenAPIFetcher(opts.kubeconfig, opts.context)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			gvs, err := fetcher.GroupVersions(ctx)
			if err != nil {
				return err
			}
			for _, gv := range gvs {
				fmt.Fprintln(cmd.OutOrStdout(), gv)
			}
			return nil
		},
	}
}
