package main

import (
	"mycloud-drive/internal/assistant"
	"mycloud-drive/internal/config"
	"mycloud-drive/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	baseURL  string
	username string
	password string
	cfg      *config.Config
}

func (o *options) client() *assistant.Client {
	return assistant.NewClient(o.baseURL, o.credentials())
}

func (o *options) credentials() assistant.Credentials {
	return assistant.Credentials{Username: o.username, Password: o.password}
}

// logger writes to a file only; the terminal belongs to the command output.
func (o *options) logger() logger.ILogger {
	return logger.NewIsolatedLogger(o.cfg.Assistant.LogFilePath)
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	opts := &options{cfg: cfg}

	root := &cobra.Command{
		Use:   "assistant",
		Short: "MyCloud Drive terminal client",
		Long: `assistant browses your MyCloud Drive files and asks the AI assistant
questions about the ones you select.

Run "assistant panel" for the interactive interface.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.baseURL, "url", cfg.Assistant.BaseURL, "backend base URL")
	flags.StringVarP(&opts.username, "user", "u", cfg.Assistant.Username, "username (MYCLOUD_USER)")
	flags.StringVarP(&opts.password, "password", "p", cfg.Assistant.Password, "password (MYCLOUD_PASS)")

	root.AddCommand(
		newPanelCmd(opts),
		newAskCmd(opts),
		newFilesCmd(opts),
		newUploadCmd(opts),
		newDownloadCmd(opts),
		newDeleteCmd(opts),
	)
	return root
}
