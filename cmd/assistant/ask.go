package main

import (
	"fmt"
	"strings"

	"mycloud-drive/internal/assistant"

	"github.com/spf13/cobra"
)

func newAskCmd(opts *options) *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the assistant one question and print the conversation",
		Long: `Sends a single question with the files selected by --file.

Example:
  assistant ask --file report.pdf --file budget.csv "What changed since last quarter?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := opts.logger()
			defer log.Sync()

			client := opts.client()
			a := assistant.New(client, client, nil, opts.cfg.Assistant.RequestTimeout, log)
			a.OpenPanel(ctx)

			for _, f := range files {
				if !a.ToggleFile(f) {
					return fmt.Errorf("file %q is not in your drive", f)
				}
			}

			if _, err := a.Submit(ctx, strings.Join(args, " ")); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			a.Transcript.Each(func(msg assistant.Message) {
				label := "Assistant"
				if msg.Origin == assistant.OriginUser {
					label = "You"
				}
				fmt.Fprintf(out, "%s: %s\n\n", label, msg.Text)
			})
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "file to include as context (repeatable)")
	return cmd
}
