package main

import (
	"fmt"

	"mycloud-drive/internal/assistant"

	"github.com/spf13/cobra"
)

func newFilesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List your files grouped by kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := opts.client().ListFiles(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, group := range assistant.GroupFiles(files, assistant.ClassifyFile) {
				fmt.Fprintf(out, "%s %s\n", group.Kind.Icon(), group.Kind.Label())
				if len(group.Files) == 0 {
					fmt.Fprintln(out, "  No files")
				}
				for _, f := range group.Files {
					fmt.Fprintf(out, "  %s\n", f)
				}
			}
			return nil
		},
	}
}
