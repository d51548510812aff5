package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ytapi/internal/config"
	"ytapi/internal/logging"
	"ytapi/internal/util"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "info <url>",
		Short:         "Print video metadata as JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := util.NormalizeURL(args[0])
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			cfg := config.Load()
			caps, err := detect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			logger := logging.Discard()
			if cfg.Verbose {
				logger = newLogger(cmd, cfg)
			}
			info, err := newService(cfg, caps, logger, nil, nil).Info(cmd.Context(), url)
			if err != nil {
				return &ExitError{Code: ExitDownloadError, Err: fmt.Errorf("info: %w", err)}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}
}
