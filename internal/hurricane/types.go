package hurricane

import (
	"encoding/json"
	"strconv"
	"time"
)

// User mirrors a row of the users table as returned by /api/user/profile.
type User struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	PasswordHash *string `json:"password_hash"`
	FullName     string  `json:"full_name"`
	UserRole     string  `json:"user_role"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	DeletedAt    *string `json:"deleted_at"`
}

// Subreddit is a tracked community.
type Subreddit struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user_id"`
	SubredditName string  `json:"subreddit_name"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
	DeletedAt     *string `json:"deleted_at"`
}

// Keyword is a tracked search term.
type Keyword struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	KeywordName string  `json:"keyword_name"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	DeletedAt   *string `json:"deleted_at"`
}

// RedditPost is a lead: a post that matched the user's keywords.
type RedditPost struct {
	ID             string   `json:"id"`
	UserID         int64    `json:"user_id"`
	RedditPostName string   `json:"reddit_post_name"`
	Title          string   `json:"title"`
	Author         string   `json:"author"`
	Subreddit      string   `json:"subreddit"`
	RedditPostURL  string   `json:"reddit_post_url"`
	Permalink      string   `json:"permalink"`
	Score          int      `json:"score"`
	NumComments    int      `json:"num_comments"`
	CreatedUTC     string   `json:"created_utc"`
	CreatedTime    string   `json:"created_time"`
	SelfText       *string  `json:"self_text"`
	KeywordMatches int      `json:"keyword_matches"`
	AccuracyScore  string   `json:"accuracy_score"`
	QualityScore   string   `json:"quality_score"`
	MatchedWords   []string `json:"matched_words"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
	DeletedAt      *string  `json:"deleted_at"`
}

// Quality returns the quality score as a float, or 0 when unparsable.
func (p RedditPost) Quality() float64 {
	return parseDecimal(p.QualityScore)
}

// Accuracy returns the accuracy score as a float, or 0 when unparsable.
func (p RedditPost) Accuracy() float64 {
	return parseDecimal(p.AccuracyScore)
}

// ParsedCreatedTime returns the post creation time when parsable.
func (p RedditPost) ParsedCreatedTime() time.Time {
	return parseTime(p.CreatedTime)
}

// Reply is a generated reply to a lead.
type Reply struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"user_id"`
	RedditPostID string  `json:"reddit_post_id"`
	ReplyText    string  `json:"reply_text"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	DeletedAt    *string `json:"deleted_at"`
}

// ReplyWithPostDetails joins a reply with the post it answers.
type ReplyWithPostDetails struct {
	ReplyID          int64   `json:"reply_id"`
	ReplyUserID      int64   `json:"reply_user_id"`
	RedditPostID     string  `json:"reddit_post_id"`
	ReplyText        string  `json:"reply_text"`
	ReplyCreatedAt   string  `json:"reply_created_at"`
	ReplyUpdatedAt   string  `json:"reply_updated_at"`
	PostID           string  `json:"post_id"`
	PostTitle        string  `json:"post_title"`
	PostAuthor       string  `json:"post_author"`
	PostSubreddit    string  `json:"post_subreddit"`
	PostURL          string  `json:"post_url"`
	PostPermalink    string  `json:"post_permalink"`
	PostScore        int     `json:"post_score"`
	PostNumComments  int     `json:"post_num_comments"`
	PostCreatedTime  string  `json:"post_created_time"`
	PostSelfText     *string `json:"post_self_text"`
	PostQualityScore *string `json:"post_quality_score"`
}

// Project describes the product the user is finding leads for.
type Project struct {
	ID                 int64   `json:"id"`
	UserID             int64   `json:"user_id"`
	ProjectName        string  `json:"project_name"`
	WebsiteURL         *string `json:"website_url"`
	ProjectDescription *string `json:"project_description"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
	DeletedAt          *string `json:"deleted_at"`
}

// Subscription statuses.
const (
	SubscriptionTrial     = "trial"
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

// UnlimitedSearches is the monthly search limit sentinel for unmetered plans.
const UnlimitedSearches = -1

// Subscription mirrors the subscriptions table.
type Subscription struct {
	ID                    int64   `json:"id"`
	UserID                int64   `json:"user_id"`
	SubscriptionStatus    string  `json:"subscription_status"`
	TrialStartDate        string  `json:"trial_start_date"`
	TrialEndDate          string  `json:"trial_end_date"`
	SubscriptionStartDate *string `json:"subscription_start_date"`
	SubscriptionEndDate   *string `json:"subscription_end_date"`
	DodoCustomerID        *string `json:"dodo_customer_id"`
	DodoSubscriptionID    *string `json:"dodo_subscription_id"`
	LastPaymentDate       *string `json:"last_payment_date"`
	NextBillingDate       *string `json:"next_billing_date"`
	MonthlySearchesUsed   int     `json:"monthly_searches_used"`
	MonthlySearchLimit    int     `json:"monthly_search_limit"`
	CancelledAt           *string `json:"cancelled_at"`
	CancellationReason    *string `json:"cancellation_reason"`
	CreatedAt             string  `json:"created_at"`
	UpdatedAt             string  `json:"updated_at"`
}

// NullableSubscriptionStatus is the API's encoding of a nullable enum column.
type NullableSubscriptionStatus struct {
	SubscriptionStatus string `json:"subscription_status"`
	Valid              bool   `json:"valid"`
}

// UserWithSubscription is the user row joined with its subscription.
type UserWithSubscription struct {
	ID                    int64                       `json:"id"`
	Email                 string                      `json:"email"`
	PasswordHash          *string                     `json:"password_hash"`
	FullName              string                      `json:"full_name"`
	UserRole              string                      `json:"user_role"`
	UserCreatedAt         string                      `json:"user_created_at"`
	UserUpdatedAt         string                      `json:"user_updated_at"`
	SubscriptionID        *int64                      `json:"subscription_id"`
	SubscriptionStatus    *NullableSubscriptionStatus `json:"subscription_status"`
	TrialStartDate        *string                     `json:"trial_start_date"`
	TrialEndDate          *string                     `json:"trial_end_date"`
	SubscriptionStartDate *string                     `json:"subscription_start_date"`
	SubscriptionEndDate   *string                     `json:"subscription_end_date"`
	MonthlySearchesUsed   *int                        `json:"monthly_searches_used"`
	MonthlySearchLimit    *int                        `json:"monthly_search_limit"`
	CancelledAt           *string                     `json:"cancelled_at"`
	CancellationReason    *string                     `json:"cancellation_reason"`
	SubscriptionCreatedAt *string                     `json:"subscription_created_at"`
	SubscriptionUpdatedAt *string                     `json:"subscription_updated_at"`
}

// Status returns the subscription status, or "" when the user has none.
func (u UserWithSubscription) Status() string {
	if u.SubscriptionStatus == nil || !u.SubscriptionStatus.Valid {
		return ""
	}
	return u.SubscriptionStatus.SubscriptionStatus
}

// SearchUsage formats monthly usage as "used/limit", with "∞" for unlimited.
func (u UserWithSubscription) SearchUsage() string {
	used := 0
	if u.MonthlySearchesUsed != nil {
		used = *u.MonthlySearchesUsed
	}
	if u.MonthlySearchLimit == nil {
		return strconv.Itoa(used) + "/-"
	}
	if *u.MonthlySearchLimit == UnlimitedSearches {
		return strconv.Itoa(used) + "/∞"
	}
	return strconv.Itoa(used) + "/" + strconv.Itoa(*u.MonthlySearchLimit)
}

// Session mirrors a server-side session row.
type Session struct {
	ID           string          `json:"id"`
	UserID       int64           `json:"user_id"`
	CreatedAt    string          `json:"created_at"`
	ExpiresAt    string          `json:"expires_at"`
	LastActivity string          `json:"last_activity"`
	IPAddress    *string         `json:"ip_address"`
	UserAgent    *string         `json:"user_agent"`
	SessionData  json.RawMessage `json:"session_data"`
	IsActive     bool            `json:"is_active"`
}

// UserSchedule tracks the automatic scan schedule for a user.
type UserSchedule struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"`
	LastRun    *string `json:"last_run"`
	NextRun    *string `json:"next_run"`
	IsActive   bool    `json:"is_active"`
	Processing bool    `json:"processing"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// Metrics periods accepted by /api/dashboard/metrics.
var MetricsPeriods = []string{"7d", "30d", "90d"}

// DashboardMetrics summarises activity over a period.
type DashboardMetrics struct {
	LeadsCount       int     `json:"leads_count"`
	RepliesCount     int     `json:"replies_count"`
	SubredditsCount  int     `json:"subreddits_count"`
	KeywordsCount    int     `json:"keywords_count"`
	LeadsGrowth      float64 `json:"leads_growth"`
	RepliesGrowth    float64 `json:"replies_growth"`
	SubredditsGrowth float64 `json:"subreddits_growth"`
	KeywordsGrowth   float64 `json:"keywords_growth"`
	Period           string  `json:"period"`
	PeriodDays       int     `json:"period_days"`
	Message          string  `json:"message,omitempty"`

	// Present only when the API serves the advanced breakdown.
	LeadsByDay    []DailyMetric  `json:"leads_by_day,omitempty"`
	RepliesByDay  []DailyMetric  `json:"replies_by_day,omitempty"`
	TopSubreddits []TopPerformer `json:"top_subreddits,omitempty"`
	TopKeywords   []TopPerformer `json:"top_keywords,omitempty"`
}

// DailyMetric is one bar of a daily chart. Date is YYYY-MM-DD.
type DailyMetric struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TopPerformer ranks a subreddit or keyword by lead volume.
type TopPerformer struct {
	Name        string  `json:"name"`
	Count       int     `json:"count"`
	AvgAccuracy float64 `json:"avg_accuracy"`
	AvgQuality  float64 `json:"avg_quality"`
}

// AuthURL is the Google OAuth consent URL.
type AuthURL struct {
	URL string `json:"url"`
}

// Auth intents returned by FinishAuth.
const (
	IntentLogin  = "login"
	IntentSignup = "signup"
)

// AuthResult reports whether the OAuth exchange logged in an existing user.
type AuthResult struct {
	Intent string `json:"intent"`
}

const apiTimestampLayout = "2006-01-02 15:04:05"

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(apiTimestampLayout, value, time.UTC); err == nil {
		return t
	}
	return time.Time{}
}

func parseDecimal(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
