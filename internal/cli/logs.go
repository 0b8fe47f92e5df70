package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/softwrhq/hurricane/internal/config"
	"github.com/softwrhq/hurricane/internal/logtail"
)

func logsCmd(flags *globalFlags) *cobra.Command {
	var (
		lines int
		level string
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the dashboard log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var minLevel slog.Level
			if err := minLevel.UnmarshalText([]byte(level)); err != nil {
				return fmt.Errorf("invalid level %q: %w", level, err)
			}
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			raw, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(raw) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no log entries in %s\n", cfg.LogFile)
				return nil
			}
			for _, e := range logtail.Filter(raw, minLevel) {
				if !e.Parsed {
					fmt.Fprintln(out, e.Raw)
					continue
				}
				var b strings.Builder
				fmt.Fprintf(&b, "%s %-5s %s", e.Time.Local().Format("15:04:05"), e.Level, e.Message)
				for _, a := range e.Attrs {
					fmt.Fprintf(&b, " %s=%s", a.Key, a.Value)
				}
				fmt.Fprintln(out, b.String())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 200, "number of trailing lines to read (0 for all)")
	cmd.Flags().StringVarP(&level, "level", "l", "info", "minimum level (debug, info, warn, error)")
	return cmd
}
