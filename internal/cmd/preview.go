package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/renato0307/kform/internal/preview"
)

func newPreviewCmd(opts *rootOptions) *cobra.Command {
	var (
		theme  string
		static bool
	)

	cmd := &cobra.Command{
		Use:   "preview DEFINITION",
		Short: "Show how a form definition renders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := loadForm(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			title := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			if static {
				text := preview.Render(result, preview.GetTheme(theme), preview.Options{
					Descriptions: true,
					Diagnostics:  true,
				})
				return emit(cmd, opts, text+"\n")
			}
			return preview.Run(title, result, preview.GetTheme(theme))
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "charm",
		fmt.Sprintf("Theme to use (%s)", strings.Join(preview.AvailableThemes(), ", ")))
	cmd.Flags().BoolVar(&static, "static", false, "Print the preview instead of opening the interactive view")
	return cmd
}
