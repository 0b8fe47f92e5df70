package hurricane

import (
	"context"
	"encoding/json"
)

// API is the set of calls the dashboard makes. *Client implements it; tests
// substitute fakes.
type API interface {
	AuthURL(ctx context.Context) (string, error)
	FinishAuth(ctx context.Context, code string) (AuthResult, error)
	Profile(ctx context.Context) (User, error)
	CreateProject(ctx context.Context, name, websiteURL, description string) error
	CreateSubreddits(ctx context.Context, subreddits []string) error
	CreateKeywords(ctx context.Context, keywords []string) error
	ScanLeads(ctx context.Context) (json.RawMessage, error)
	Leads(ctx context.Context) ([]RedditPost, error)
	Replies(ctx context.Context) ([]Reply, error)
	Subreddits(ctx context.Context) ([]Subreddit, error)
	Keywords(ctx context.Context) ([]Keyword, error)
	DashboardMetrics(ctx context.Context, period string) (DashboardMetrics, error)
	GenerateReply(ctx context.Context, postID string) (Reply, error)
	UpdateSubreddits(ctx context.Context, subreddits []string) ([]Subreddit, error)
	UpdateKeywords(ctx context.Context, keywords []string) ([]Keyword, error)
	UserWithSubscription(ctx context.Context) (UserWithSubscription, error)
	UpdateUser(ctx context.Context, fullName, email string) (UserWithSubscription, error)
	UpdateUserPassword(ctx context.Context, current, next, confirm string) (UserWithSubscription, error)
	Logout(ctx context.Context) error
	DeleteUser(ctx context.Context) error
	CreateContact(ctx context.Context, name, email, subject, text string) error
	CreateFeedback(ctx context.Context, kind, message string) error
	RepliesWithPostDetails(ctx context.Context) ([]ReplyWithPostDetails, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)
