package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"ytapi/internal/config"
	"ytapi/internal/dirs"
	"ytapi/internal/util/deps"
)

var (
	doctorOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	doctorWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	doctorBad  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	doctorKey  = lipgloss.NewStyle().Bold(true).Width(12)
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Diagnose external dependencies (yt-dlp/youtube-dl, ffmpeg)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			out := cmd.OutOrStdout()

			caps, err := deps.Detect(cmd.Context(), nil, cfg.DLBinary, cfg.FFmpegBinary)
			if err != nil {
				fmt.Fprintln(out, doctorKey.Render("Downloader")+doctorBad.Render("✗ "+err.Error()))
				return &ExitError{Code: ExitMissingDep, Err: err}
			}
			fmt.Fprintln(out, doctorKey.Render("Downloader")+doctorOK.Render("✓ "+caps.DownloaderPath))

			switch {
			case caps.FFmpeg:
				fmt.Fprintln(out, doctorKey.Render("FFmpeg")+doctorOK.Render("✓ "+caps.FFmpegPath))
			case caps.FFmpegPath != "":
				fmt.Fprintln(out, doctorKey.Render("FFmpeg")+doctorWarn.Render("! "+caps.FFmpegPath+" does not run"))
			default:
				fmt.Fprintln(out, doctorKey.Render("FFmpeg")+doctorWarn.Render("! not found (downloads limited to single-stream formats)"))
			}

			if err := dirs.Ensure(cfg.TempDir); err != nil {
				fmt.Fprintln(out, doctorKey.Render("Temp dir")+doctorBad.Render("✗ "+err.Error()))
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			fmt.Fprintln(out, doctorKey.Render("Temp dir")+doctorOK.Render("✓ "+cfg.TempDir))
			return nil
		},
	}
}
