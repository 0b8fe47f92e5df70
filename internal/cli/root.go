// Package cli defines the hurricane command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/softwrhq/hurricane/internal/app"
	"github.com/softwrhq/hurricane/internal/hurricane"
	"github.com/softwrhq/hurricane/internal/prefs"
)

// Version information set at build time.
var (
	Version = "dev"
	Commit  = "none"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	prefsPath  string
	envFile    string
	poll       time.Duration
	verbose    bool
	json       bool
}

func (g *globalFlags) options(stderr io.Writer) app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		PrefsPath:  g.prefsPath,
		EnvFile:    g.envFile,
		PollEvery:  g.poll,
		Verbose:    g.verbose,
		Stderr:     stderr,
	}
}

// NewRootCommand builds the hurricane command. Without a subcommand it
// starts the dashboard.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "hurricane",
		Short: "Find and answer Reddit leads from the terminal",
		Long: `hurricane is a terminal client for the Hurricane lead finder.

Run without arguments to open the dashboard, or use a subcommand
to call a single API operation and print the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), flags.options(cmd.ErrOrStderr()))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/hurricane/config.toml)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "preferences file (default "+prefs.DefaultPath()+")")
	pf.StringVar(&flags.envFile, "env-file", "", "dotenv file to load (default .env)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&flags.json, "json", false, "print results as JSON")
	root.Flags().DurationVar(&flags.poll, "poll", 0, "background refresh interval (default from config)")

	tui := &cobra.Command{
		Use:   "tui",
		Short: "Open the dashboard",
		Args:  cobra.NoArgs,
		RunE:  root.RunE,
	}
	tui.Flags().AddFlag(root.Flags().Lookup("poll"))

	root.AddCommand(
		tui,
		authCmd(flags),
		profileCmd(flags),
		accountCmd(flags),
		projectCmd(flags),
		keywordsCmd(flags),
		subredditsCmd(flags),
		leadsCmd(flags),
		repliesCmd(flags),
		metricsCmd(flags),
		contactCmd(flags),
		feedbackCmd(flags),
		logsCmd(flags),
		versionCmd(),
	)
	return root
}

// runAPI wires a CLI runtime, runs fn, and saves the session afterwards.
func runAPI(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, rt *app.Runtime) error) (err error) {
	opts := flags.options(cmd.ErrOrStderr())
	opts.Navigator = cliNavigator{out: cmd.OutOrStdout()}

	rt, err := app.Setup(opts, app.ModeCLI)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, rt)
}

// cliNavigator prints links the user has to open; site paths have no
// meaning outside the web dashboard.
type cliNavigator struct {
	out io.Writer
}

var _ hurricane.Navigator = cliNavigator{}

func (n cliNavigator) Navigate(target string) {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		fmt.Fprintf(n.out, "Open this URL to sign in:\n  %s\n", target)
	}
}

// printResult writes v as indented JSON when --json is set, otherwise
// calls table.
func printResult(cmd *cobra.Command, flags *globalFlags, v any, table func(w *tabwriter.Writer)) error {
	out := cmd.OutOrStdout()
	if flags.json || table == nil {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hurricane %s (%s)\n", Version, Commit)
		},
	}
}
