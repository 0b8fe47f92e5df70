package ui

import (
	"net/url"
	"strings"
)

// View represents the current active view.
type View int

const (
	ViewDashboard View = iota
	ViewLeads
	ViewReplies
	ViewKeywords
	ViewSubreddits
	ViewSettings
	ViewLogs
)

var viewOrder = []View{ViewDashboard, ViewLeads, ViewReplies, ViewKeywords, ViewSubreddits, ViewSettings, ViewLogs}

// String returns the sidebar label.
func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewLeads:
		return "Leads"
	case ViewReplies:
		return "Replies"
	case ViewKeywords:
		return "Keywords"
	case ViewSubreddits:
		return "Subreddits"
	case ViewSettings:
		return "Settings"
	case ViewLogs:
		return "Logs"
	default:
		return "Unknown"
	}
}

func (v View) icon() string {
	switch v {
	case ViewDashboard:
		return "◆"
	case ViewLeads:
		return "★"
	case ViewReplies:
		return "✎"
	case ViewKeywords:
		return "#"
	case ViewSubreddits:
		return "r/"
	case ViewSettings:
		return "⚙"
	case ViewLogs:
		return "≡"
	default:
		return "?"
	}
}

func nextView(v View, step int) View {
	for i, candidate := range viewOrder {
		if candidate == v {
			n := len(viewOrder)
			return viewOrder[((i+step)%n+n)%n]
		}
	}
	return ViewDashboard
}

// route is where a navigation request lands in the terminal UI.
type route struct {
	view      View
	signedOut bool
	external  string // absolute URL the user must open in a browser
}

// resolveRoute maps a site path or absolute URL to a view. The web
// dashboard's "/" is its landing page; here it means the session ended.
func resolveRoute(target string) route {
	target = strings.TrimSpace(target)
	if u, err := url.Parse(target); err == nil && u.IsAbs() {
		return route{view: ViewSettings, external: target}
	}
	path := target
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSuffix(path, "/")
	switch path {
	case "":
		return route{view: ViewSettings, signedOut: true}
	case "/dashboard":
		return route{view: ViewDashboard}
	case "/setup":
		return route{view: ViewKeywords}
	case "/dashboard/leads", "/leads":
		return route{view: ViewLeads}
	case "/dashboard/replies", "/replies":
		return route{view: ViewReplies}
	case "/dashboard/settings", "/settings":
		return route{view: ViewSettings}
	default:
		return route{view: ViewDashboard}
	}
}
