package hurricane

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

var (
	opAuthURL = operation{
		name: "auth.url", method: http.MethodGet, path: "/api/google/auth",
		started:   "Authentication started",
		success:   "Authentication URL fetched successfully",
		failure:   "Failed to get authentication URL",
		completed: "Authentication operation completed",
	}
	opFinishAuth = operation{
		name: "auth.finish", method: http.MethodPost, path: "/api/google/auth/finish",
		started:   "Authentication started",
		success:   "Authentication successful",
		failure:   "Failed to authenticate",
		completed: "Authentication completed",
	}
	opProfile = operation{
		name: "user.profile", method: http.MethodGet, path: "/api/user/profile",
		started:   "Request started",
		success:   "Request successful",
		failure:   "Request failed",
		completed: "Request completed",
	}
	opCreateProject = operation{
		name: "projects.create", method: http.MethodPost, path: "/api/user/projects/create",
		started:   "Project operation started",
		success:   "Project created successfully",
		failure:   "Failed to create project",
		completed: "Project operation completed",
	}
	opCreateSubreddits = operation{
		name: "subreddits.create", method: http.MethodPost, path: "/api/user/subreddits/create",
		started:   "Subreddits operation started",
		success:   "Subreddits created successfully",
		failure:   "Failed to create subreddits",
		completed: "Subreddits operation completed",
	}
	opCreateKeywords = operation{
		name: "keywords.create", method: http.MethodPost, path: "/api/user/keywords/create",
		started:   "Keywords operation started",
		success:   "Keywords created successfully",
		failure:   "Failed to create keywords",
		completed: "Keywords operation completed",
	}
	opScanLeads = operation{
		name: "leads.scan", method: http.MethodGet, path: "/api/user/leads/scan",
		started:   "Leads scanning started",
		success:   "Leads scanned successfully",
		failure:   "Failed to scan leads",
		completed: "Leads scanning complete",
	}
	opLeads = operation{
		name: "leads.get", method: http.MethodGet, path: "/api/user/leads/get",
		started:   "Leads operation started",
		success:   "Leads fetched successfully",
		failure:   "Failed to fetch leads",
		completed: "Leads operation completed",
	}
	opReplies = operation{
		name: "replies.get", method: http.MethodGet, path: "/api/user/replies/get",
		started:   "Replies operation started",
		success:   "Replies fetched successfully",
		failure:   "Failed to fetch replies",
		completed: "Replies operation completed",
	}
	opSubreddits = operation{
		name: "subreddits.get", method: http.MethodGet, path: "/api/user/subreddits/get",
		started:   "Subreddits operation started",
		success:   "Subreddits fetched successfully",
		failure:   "Failed to fetch subreddits",
		completed: "Subreddits operation completed",
	}
	opKeywords = operation{
		name: "keywords.get", method: http.MethodGet, path: "/api/user/keywords/get",
		started:   "Keywords operation started",
		success:   "Keywords fetched successfully",
		failure:   "Failed to fetch keywords",
		completed: "Keywords operation completed",
	}
	opDashboardMetrics = operation{
		name: "dashboard.metrics", method: http.MethodGet, path: "/api/dashboard/metrics",
		started:   "Dashboard metrics operation started",
		success:   "Dashboard metrics fetched successfully",
		failure:   "Failed to fetch dashboard metrics",
		completed: "Dashboard metrics operation completed",
	}
	opGenerateReply = operation{
		name: "reply.generate", method: http.MethodPost, path: "/api/user/reply/generate", loading: true,
		started:   "Reply generation started",
		success:   "Reply generated successfully",
		failure:   "Failed to generate reply",
		completed: "Reply generation completed",
	}
	opUpdateSubreddits = operation{
		name: "subreddits.update", method: http.MethodPost, path: "/api/user/subreddits/update", loading: true,
		started:   "Subreddits operation started",
		success:   "Subreddits updated successfully",
		failure:   "Failed to update subreddits",
		completed: "Subreddits operation completed",
	}
	opUpdateKeywords = operation{
		name: "keywords.update", method: http.MethodPost, path: "/api/user/keywords/update", loading: true,
		started:   "Keywords operation started",
		success:   "Keywords updated successfully",
		failure:   "Failed to update keywords",
		completed: "Keywords operation completed",
	}
	opUserWithSubscription = operation{
		name: "subscription.get", method: http.MethodGet, path: "/api/user/subscription/get", loading: true,
		started:   "User operation started",
		success:   "User with subscription fetched successfully",
		failure:   "Failed to get user with subscription",
		completed: "User operation completed",
	}
	opUpdateUser = operation{
		name: "user.update", method: http.MethodPost, path: "/api/user/update", loading: true,
		started:   "User operation started",
		success:   "User updated successfully",
		failure:   "Failed to update user",
		completed: "User operation completed",
	}
	opUpdatePassword = operation{
		name: "user.password", method: http.MethodPost, path: "/api/user/update/password", loading: true,
		started:   "User password operation started",
		success:   "User password updated successfully",
		failure:   "Failed to update user password",
		completed: "User password operation completed",
	}
	opLogout = operation{
		name: "user.logout", method: http.MethodPost, path: "/api/user/logout", loading: true,
		started:   "User logout operation started",
		success:   "User logged out successfully",
		failure:   "Failed to logout user",
		completed: "User logout operation completed",
	}
	opDeleteUser = operation{
		name: "user.delete", method: http.MethodPost, path: "/api/user/delete", loading: true,
		started:   "User delete operation started",
		success:   "User deleted successfully",
		failure:   "Failed to delete user",
		completed: "User delete operation completed",
	}
	opContact = operation{
		name: "contact.create", method: http.MethodPost, path: "/api/user/contact/create", loading: true,
		started:   "Message send operation started",
		success:   "Thank you for your message! We'll get back to you soon.",
		failure:   "Failed to send message",
		completed: "Message send operation completed",
	}
	opFeedback = operation{
		name: "feedback.create", method: http.MethodPost, path: "/api/user/feedback/create", loading: true,
		started:   "Feedback send operation started",
		success:   "Thank you for your feedback! We'll get back to you soon.",
		failure:   "Failed to send feedback",
		completed: "Feedback send operation completed",
	}
	opRepliesWithPostDetails = operation{
		name: "replies.details", method: http.MethodGet, path: "/api/user/replies/get/with/post/details", loading: true,
		started:   "User replies with post details operation started",
		success:   "User replies with post details fetched successfully",
		failure:   "Failed to get user replies with post details",
		completed: "User replies with post details operation completed",
	}
)

type userPayload struct {
	User struct {
		User UserWithSubscription `json:"User"`
	} `json:"user"`
}

// termsBody sends a nil list as [] so the API never sees null.
func termsBody(key string, terms []string) map[string][]string {
	if terms == nil {
		terms = []string{}
	}
	return map[string][]string{key: terms}
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(field + " required")
	}
	return nil
}

// AuthURL fetches the Google consent URL and navigates to it.
func (c *Client) AuthURL(ctx context.Context) (string, error) {
	var payload envelope[AuthURL]
	if err := c.call(ctx, opAuthURL, request{}, &payload); err != nil {
		return "", err
	}
	c.navigate(payload.Data.URL)
	return payload.Data.URL, nil
}

// FinishAuth exchanges a Google authorization code for a session. Existing
// users land on the dashboard, new users on setup. A failed exchange sends
// the user back to the landing page after the redirect delay.
func (c *Client) FinishAuth(ctx context.Context, code string) (AuthResult, error) {
	var payload envelope[AuthResult]
	err := c.call(ctx, opFinishAuth, request{
		body:    map[string]string{"google_auth_code": code},
		invalid: required("auth code", code),
	}, &payload)
	if err != nil {
		c.navigateLater("/")
		return AuthResult{}, err
	}
	if payload.Data.Intent == IntentLogin {
		c.navigate("/dashboard")
	} else {
		c.navigate("/setup")
	}
	return payload.Data, nil
}

// Profile fetches the signed-in user. It doubles as the session check: a
// 401 redirects to the landing page.
func (c *Client) Profile(ctx context.Context) (User, error) {
	var payload envelope[struct {
		User User `json:"user"`
	}]
	if err := c.call(ctx, opProfile, request{}, &payload); err != nil {
		return User{}, err
	}
	return payload.Data.User, nil
}

// CreateProject registers the product leads are found for.
func (c *Client) CreateProject(ctx context.Context, name, websiteURL, description string) error {
	return c.call(ctx, opCreateProject, request{
		body: map[string]string{
			"project_name":        name,
			"website_url":         websiteURL,
			"project_description": description,
		},
		invalid: required("project name", name),
	}, nil)
}

// CreateSubreddits adds subreddits to track.
func (c *Client) CreateSubreddits(ctx context.Context, subreddits []string) error {
	return c.call(ctx, opCreateSubreddits, request{body: termsBody("subreddits", subreddits)}, nil)
}

// CreateKeywords adds keywords to track.
func (c *Client) CreateKeywords(ctx context.Context, keywords []string) error {
	return c.call(ctx, opCreateKeywords, request{body: termsBody("keywords", keywords)}, nil)
}

// ScanLeads triggers a scan and returns the API's raw response body.
func (c *Client) ScanLeads(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.call(ctx, opScanLeads, request{}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Leads lists posts that matched the user's keywords.
func (c *Client) Leads(ctx context.Context) ([]RedditPost, error) {
	var payload envelope[struct {
		Leads []RedditPost `json:"leads"`
	}]
	if err := c.call(ctx, opLeads, request{}, &payload); err != nil {
		return nil, err
	}
	return payload.Data.Leads, nil
}

// Replies lists generated replies.
func (c *Client) Replies(ctx context.Context) ([]Reply, error) {
	var payload envelope[struct {
		Replies []Reply `json:"replies"`
	}]
	if err := c.call(ctx, opReplies, request{}, &payload); err != nil {
		return nil, err
	}
	return payload.Data.Replies, nil
}

// Subreddits lists tracked subreddits.
func (c *Client) Subreddits(ctx context.Context) ([]Subreddit, error) {
	var payload envelope[struct {
		Subreddits []Subreddit `json:"subreddits"`
	}]
	if err := c.call(ctx, opSubreddits, request{}, &payload); err != nil {
		return nil, err
	}
	return payload.Data.Subreddits, nil
}

// Keywords lists tracked keywords.
func (c *Client) Keywords(ctx context.Context) ([]Keyword, error) {
	var payload envelope[struct {
		Keywords []Keyword `json:"keywords"`
	}]
	if err := c.call(ctx, opKeywords, request{}, &payload); err != nil {
		return nil, err
	}
	return payload.Data.Keywords, nil
}

// DashboardMetrics fetches activity counts. An empty period uses the API's
// default window.
func (c *Client) DashboardMetrics(ctx context.Context, period string) (DashboardMetrics, error) {
	var query url.Values
	if p := strings.TrimSpace(period); p != "" {
		query = url.Values{"period": []string{p}}
	}
	var payload envelope[DashboardMetrics]
	if err := c.call(ctx, opDashboardMetrics, request{query: query}, &payload); err != nil {
		return DashboardMetrics{}, err
	}
	return payload.Data, nil
}

// GenerateReply asks the API to draft a reply for a lead.
func (c *Client) GenerateReply(ctx context.Context, postID string) (Reply, error) {
	var payload envelope[Reply]
	err := c.call(ctx, opGenerateReply, request{
		body:    map[string]string{"post_id": postID},
		invalid: required("post id", postID),
	}, &payload)
	if err != nil {
		return Reply{}, err
	}
	return payload.Data, nil
}

// UpdateSubreddits replaces the tracked subreddit set.
func (c *Client) UpdateSubreddits(ctx context.Context, subreddits []string) ([]Subreddit, error) {
	var payload envelope[[]Subreddit]
	err := c.call(ctx, opUpdateSubreddits, request{body: termsBody("subreddits", subreddits)}, &payload)
	if err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// UpdateKeywords replaces the tracked keyword set.
func (c *Client) UpdateKeywords(ctx context.Context, keywords []string) ([]Keyword, error) {
	var payload envelope[[]Keyword]
	err := c.call(ctx, opUpdateKeywords, request{body: termsBody("keywords", keywords)}, &payload)
	if err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// UserWithSubscription fetches the user joined with billing metadata.
func (c *Client) UserWithSubscription(ctx context.Context) (UserWithSubscription, error) {
	var payload envelope[userPayload]
	if err := c.call(ctx, opUserWithSubscription, request{}, &payload); err != nil {
		return UserWithSubscription{}, err
	}
	return payload.Data.User.User, nil
}

// UpdateUser changes the user's name and email.
func (c *Client) UpdateUser(ctx context.Context, fullName, email string) (UserWithSubscription, error) {
	var payload envelope[userPayload]
	err := c.call(ctx, opUpdateUser, request{
		body: map[string]string{"full_name": fullName, "email": email},
	}, &payload)
	if err != nil {
		return UserWithSubscription{}, err
	}
	return payload.Data.User.User, nil
}

// UpdateUserPassword changes the user's password.
func (c *Client) UpdateUserPassword(ctx context.Context, current, next, confirm string) (UserWithSubscription, error) {
	var payload envelope[userPayload]
	err := c.call(ctx, opUpdatePassword, request{
		body: map[string]string{
			"current_password": current,
			"new_password":     next,
			"confirm_password": confirm,
		},
	}, &payload)
	if err != nil {
		return UserWithSubscription{}, err
	}
	return payload.Data.User.User, nil
}

// Logout ends the session and returns to the landing page.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.call(ctx, opLogout, request{}, nil); err != nil {
		return err
	}
	c.navigateLater("/")
	return nil
}

// DeleteUser deletes the account and returns to the landing page.
func (c *Client) DeleteUser(ctx context.Context) error {
	if err := c.call(ctx, opDeleteUser, request{}, nil); err != nil {
		return err
	}
	c.navigateLater("/")
	return nil
}

// CreateContact submits the contact form.
func (c *Client) CreateContact(ctx context.Context, name, email, subject, text string) error {
	return c.call(ctx, opContact, request{
		body: map[string]string{
			"sender_name":     name,
			"sender_email":    email,
			"message_subject": subject,
			"message_text":    text,
		},
	}, nil)
}

// CreateFeedback submits product feedback.
func (c *Client) CreateFeedback(ctx context.Context, kind, message string) error {
	return c.call(ctx, opFeedback, request{
		body: map[string]string{
			"feedback_type":    kind,
			"feedback_message": message,
		},
	}, nil)
}

// RepliesWithPostDetails lists replies joined with their posts.
func (c *Client) RepliesWithPostDetails(ctx context.Context) ([]ReplyWithPostDetails, error) {
	var payload envelope[struct {
		Replies []ReplyWithPostDetails `json:"replies"`
	}]
	if err := c.call(ctx, opRepliesWithPostDetails, request{}, &payload); err != nil {
		return nil, err
	}
	return payload.Data.Replies, nil
}
