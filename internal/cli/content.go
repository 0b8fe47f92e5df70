package cli

import (
	"context"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/softwrhq/hurricane/internal/app"
	"github.com/softwrhq/hurricane/internal/hurricane"
)

// termsCommands holds the list/add/set trio shared by keywords and
// subreddits.
type termsCommands struct {
	use, short, header string
	list               func(ctx context.Context, api hurricane.API) ([]string, any, error)
	create             func(ctx context.Context, api hurricane.API, terms []string) error
	update             func(ctx context.Context, api hurricane.API, terms []string) ([]string, any, error)
}

func (t termsCommands) build(flags *globalFlags) *cobra.Command {
	printTerms := func(cmd *cobra.Command, names []string, raw any) error {
		return printResult(cmd, flags, raw, func(w *tabwriter.Writer) {
			fmt.Fprintln(w, t.header)
			for _, name := range names {
				fmt.Fprintln(w, name)
			}
		})
	}

	cmd := &cobra.Command{
		Use:   t.use,
		Short: t.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				names, raw, err := t.list(ctx, rt.Client)
				if err != nil {
					return err
				}
				return printTerms(cmd, names, raw)
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add TERM...",
		Short: "Add " + t.use,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				return t.create(ctx, rt.Client, args)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set TERM...",
		Short: "Replace all " + t.use,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				names, raw, err := t.update(ctx, rt.Client, args)
				if err != nil {
					return err
				}
				return printTerms(cmd, names, raw)
			})
		},
	})

	return cmd
}

func keywordNames(rows []hurricane.Keyword) []string {
	names := make([]string, 0, len(rows))
	for _, k := range rows {
		names = append(names, k.KeywordName)
	}
	return names
}

func subredditNames(rows []hurricane.Subreddit) []string {
	names := make([]string, 0, len(rows))
	for _, s := range rows {
		names = append(names, "r/"+s.SubredditName)
	}
	return names
}

func keywordsCmd(flags *globalFlags) *cobra.Command {
	return termsCommands{
		use:    "keywords",
		short:  "List and manage tracked keywords",
		header: "KEYWORD",
		list: func(ctx context.Context, api hurricane.API) ([]string, any, error) {
			rows, err := api.Keywords(ctx)
			return keywordNames(rows), rows, err
		},
		create: func(ctx context.Context, api hurricane.API, terms []string) error {
			return api.CreateKeywords(ctx, terms)
		},
		update: func(ctx context.Context, api hurricane.API, terms []string) ([]string, any, error) {
			rows, err := api.UpdateKeywords(ctx, terms)
			return keywordNames(rows), rows, err
		},
	}.build(flags)
}

func subredditsCmd(flags *globalFlags) *cobra.Command {
	return termsCommands{
		use:    "subreddits",
		short:  "List and manage watched subreddits",
		header: "SUBREDDIT",
		list: func(ctx context.Context, api hurricane.API) ([]string, any, error) {
			rows, err := api.Subreddits(ctx)
			return subredditNames(rows), rows, err
		},
		create: func(ctx context.Context, api hurricane.API, terms []string) error {
			return api.CreateSubreddits(ctx, terms)
		},
		update: func(ctx context.Context, api hurricane.API, terms []string) ([]string, any, error) {
			rows, err := api.UpdateSubreddits(ctx, terms)
			return subredditNames(rows), rows, err
		},
	}.build(flags)
}

func leadsCmd(flags *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "List leads, best quality first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				leads, err := rt.Client.Leads(ctx)
				if err != nil {
					return err
				}
				leads = sortLeads(leads)
				if limit > 0 && len(leads) > limit {
					leads = leads[:limit]
				}
				return printResult(cmd, flags, leads, func(w *tabwriter.Writer) {
					fmt.Fprintln(w, "ID\tQUALITY\tSUBREDDIT\tTITLE")
					for _, p := range leads {
						fmt.Fprintf(w, "%s\t%.0f%%\tr/%s\t%s\n", p.ID, p.Quality()*100, p.Subreddit, p.Title)
					}
				})
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most N leads")

	cmd.AddCommand(&cobra.Command{
		Use:   "scan",
		Short: "Search Reddit for new leads now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				raw, err := rt.Client.ScanLeads(ctx)
				if err != nil {
					return err
				}
				if len(raw) == 0 {
					return nil
				}
				// The scan payload has no fixed shape; always print it as JSON.
				return printResult(cmd, flags, raw, nil)
			})
		},
	})
	return cmd
}

// sortLeads orders by quality descending, newest first on ties.
func sortLeads(leads []hurricane.RedditPost) []hurricane.RedditPost {
	out := slices.Clone(leads)
	slices.SortStableFunc(out, func(a, b hurricane.RedditPost) int {
		if qa, qb := a.Quality(), b.Quality(); qa != qb {
			if qa > qb {
				return -1
			}
			return 1
		}
		return b.ParsedCreatedTime().Compare(a.ParsedCreatedTime())
	})
	return out
}

func repliesCmd(flags *globalFlags) *cobra.Command {
	var details bool
	cmd := &cobra.Command{
		Use:   "replies",
		Short: "List generated replies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				if details {
					rows, err := rt.Client.RepliesWithPostDetails(ctx)
					if err != nil {
						return err
					}
					return printResult(cmd, flags, rows, func(w *tabwriter.Writer) {
						fmt.Fprintln(w, "ID\tSUBREDDIT\tPOST\tREPLY")
						for _, r := range rows {
							fmt.Fprintf(w, "%d\tr/%s\t%s\t%s\n", r.ReplyID, r.PostSubreddit, clip(r.PostTitle, 40), clip(r.ReplyText, 60))
						}
					})
				}
				rows, err := rt.Client.Replies(ctx)
				if err != nil {
					return err
				}
				return printResult(cmd, flags, rows, func(w *tabwriter.Writer) {
					fmt.Fprintln(w, "ID\tPOST\tREPLY")
					for _, r := range rows {
						fmt.Fprintf(w, "%d\t%s\t%s\n", r.ID, r.RedditPostID, clip(r.ReplyText, 80))
					}
				})
			})
		},
	}
	cmd.Flags().BoolVarP(&details, "details", "d", false, "include the post each reply answers")

	cmd.AddCommand(&cobra.Command{
		Use:   "generate POST_ID",
		Short: "Generate a reply for a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				reply, err := rt.Client.GenerateReply(ctx, args[0])
				if err != nil {
					return err
				}
				return printResult(cmd, flags, reply, func(w *tabwriter.Writer) {
					fmt.Fprintln(w, reply.ReplyText)
				})
			})
		},
	})
	return cmd
}

func metricsCmd(flags *globalFlags) *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show dashboard metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if period != "" && !slices.Contains(hurricane.MetricsPeriods, period) {
				return fmt.Errorf("unknown period %q (want one of %v)", period, hurricane.MetricsPeriods)
			}
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				m, err := rt.Client.DashboardMetrics(ctx, period)
				if err != nil {
					return err
				}
				return printResult(cmd, flags, m, func(w *tabwriter.Writer) {
					fmt.Fprintln(w, "METRIC\tCOUNT\tGROWTH")
					fmt.Fprintf(w, "Leads\t%d\t%+.1f%%\n", m.LeadsCount, m.LeadsGrowth)
					fmt.Fprintf(w, "Replies\t%d\t%+.1f%%\n", m.RepliesCount, m.RepliesGrowth)
					fmt.Fprintf(w, "Keywords\t%d\t%+.1f%%\n", m.KeywordsCount, m.KeywordsGrowth)
					fmt.Fprintf(w, "Subreddits\t%d\t%+.1f%%\n", m.SubredditsCount, m.SubredditsGrowth)
					for _, top := range m.TopSubreddits {
						fmt.Fprintf(w, "Top r/%s\t%d\t\n", top.Name, top.Count)
					}
					for _, top := range m.TopKeywords {
						fmt.Fprintf(w, "Top %q\t%d\t\n", top.Name, top.Count)
					}
				})
			})
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", "", "7d, 30d or 90d (server default when empty)")
	return cmd
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
