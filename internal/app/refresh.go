package app

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/softwrhq/hurricane/internal/hurricane"
	"github.com/softwrhq/hurricane/internal/state"
	"github.com/softwrhq/hurricane/internal/toast"
)

const refreshFailedMessage = "Failed to refresh dashboard"

// Source is the subset of the API a dashboard refresh reads.
type Source interface {
	DashboardMetrics(ctx context.Context, period string) (hurricane.DashboardMetrics, error)
	UserWithSubscription(ctx context.Context) (hurricane.UserWithSubscription, error)
	Leads(ctx context.Context) ([]hurricane.RedditPost, error)
	RepliesWithPostDetails(ctx context.Context) ([]hurricane.ReplyWithPostDetails, error)
	Keywords(ctx context.Context) ([]hurricane.Keyword, error)
	Subreddits(ctx context.Context) ([]hurricane.Subreddit, error)
}

// Load fetches every dashboard section concurrently. The first failure
// cancels the remaining requests.
func Load(ctx context.Context, src Source, period string) (state.Data, error) {
	var data state.Data
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		m, err := src.DashboardMetrics(gctx, period)
		data.Metrics, data.HasMetrics = m, err == nil
		return err
	})
	g.Go(func() error {
		acct, err := src.UserWithSubscription(gctx)
		data.Account, data.HasAccount = acct, err == nil
		return err
	})
	g.Go(func() (err error) {
		data.Leads, err = src.Leads(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Replies, err = src.RepliesWithPostDetails(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Keywords, err = src.Keywords(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Subreddits, err = src.Subreddits(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return state.Data{}, err
	}
	return data, nil
}

// Refresh loads the dashboard and records the outcome in store.
func Refresh(ctx context.Context, store *state.Store, src Source, period string) error {
	data, err := Load(ctx, src, period)
	store.Update(data, err)
	return err
}

// RefreshAndNotify is Refresh for reloads the user asked for: a failure
// raises a single error toast. A cancelled context raises nothing.
func RefreshAndNotify(ctx context.Context, store *state.Store, src Source, period string, n toast.Notifier) error {
	err := Refresh(ctx, store, src, period)
	if err == nil || ctx.Err() != nil || n == nil {
		return err
	}
	message := refreshFailedMessage
	var apiErr *hurricane.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		message = apiErr.Message
	}
	n.Enqueue(message, toast.Error)
	return err
}
