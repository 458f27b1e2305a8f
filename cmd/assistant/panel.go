package main

import (
	"fmt"

	"mycloud-drive/internal/assistant"
	"mycloud-drive/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newPanelCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "panel",
		Short: "Open the interactive file browser and assistant panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := opts.logger()
			defer log.Sync()

			client := opts.client()
			bus := assistant.NewBusNotifier(log)
			defer bus.Close()

			relay, err := assistant.NewWebsocketRelay(opts.baseURL, opts.cfg.Assistant.EventsPath, opts.credentials(), bus, log)
			if err != nil {
				return fmt.Errorf("events relay: %w", err)
			}
			go relay.Run(ctx)

			a := assistant.New(client, client, bus, opts.cfg.Assistant.RequestTimeout, log)
			browser := assistant.NewFileBrowser(client, bus, log)

			model := tui.New(ctx, a, browser, log)
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
}
