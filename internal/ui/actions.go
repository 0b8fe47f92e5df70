package ui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/softwrhq/hurricane/internal/hurricane"
	"github.com/softwrhq/hurricane/internal/logtail"
)

// Operation names carried by actionDoneMsg.
const (
	actionRefresh   = "refresh"
	actionScan      = "scan"
	actionAddTerms  = "add"
	actionSetTerms  = "update"
	actionAuthURL   = "auth.url"
	actionAuthDone  = "auth.finish"
	actionSignOut   = "logout"
	actionFeedback  = "feedback"
	feedbackGeneral = "general"
)

// actionDoneMsg reports a finished API call. The client has already queued
// the user-facing toast.
type actionDoneMsg struct {
	op          string
	err         error
	refresh     bool
	saveSession bool
}

type replyGeneratedMsg struct {
	postID string
	reply  hurricane.Reply
	err    error
}

type logLoadedMsg struct {
	entries []logtail.Entry
	err     error
}

func (m Model) actionContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, ActionTimeout)
}

// apiCmd runs fn against the API off the UI goroutine.
func (m Model) apiCmd(op string, refresh, saveSession bool, fn func(ctx context.Context, api hurricane.API) error) tea.Cmd {
	if m.api == nil {
		return nil
	}
	api := m.api
	return func() tea.Msg {
		ctx, cancel := m.actionContext()
		defer cancel()
		err := fn(ctx, api)
		return actionDoneMsg{op: op, err: err, refresh: refresh, saveSession: saveSession}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	if m.refresh == nil {
		return fetchSnapshotCmd(m.store)
	}
	refresh := m.refresh
	return func() tea.Msg {
		ctx, cancel := m.actionContext()
		defer cancel()
		return actionDoneMsg{op: actionRefresh, err: refresh(ctx)}
	}
}

func (m Model) scanCmd() tea.Cmd {
	return m.apiCmd(actionScan, true, false, func(ctx context.Context, api hurricane.API) error {
		_, err := api.ScanLeads(ctx)
		return err
	})
}

func (m Model) generateReplyCmd(postID string) tea.Cmd {
	if m.api == nil {
		return nil
	}
	api := m.api
	return func() tea.Msg {
		ctx, cancel := m.actionContext()
		defer cancel()
		reply, err := api.GenerateReply(ctx, postID)
		return replyGeneratedMsg{postID: postID, reply: reply, err: err}
	}
}

func (m Model) addTermsCmd(v View, terms []string) tea.Cmd {
	if len(terms) == 0 {
		return nil
	}
	return m.apiCmd(actionAddTerms, true, false, func(ctx context.Context, api hurricane.API) error {
		if v == ViewSubreddits {
			return api.CreateSubreddits(ctx, terms)
		}
		return api.CreateKeywords(ctx, terms)
	})
}

// setTermsCmd replaces the tracked list; the update endpoints take the full set.
func (m Model) setTermsCmd(v View, terms []string) tea.Cmd {
	return m.apiCmd(actionSetTerms, true, false, func(ctx context.Context, api hurricane.API) error {
		var err error
		if v == ViewSubreddits {
			_, err = api.UpdateSubreddits(ctx, terms)
		} else {
			_, err = api.UpdateKeywords(ctx, terms)
		}
		return err
	})
}

func (m Model) signInCmd() tea.Cmd {
	return m.apiCmd(actionAuthURL, false, false, func(ctx context.Context, api hurricane.API) error {
		_, err := api.AuthURL(ctx)
		return err
	})
}

func (m Model) finishAuthCmd(code string) tea.Cmd {
	return m.apiCmd(actionAuthDone, true, true, func(ctx context.Context, api hurricane.API) error {
		_, err := api.FinishAuth(ctx, code)
		return err
	})
}

func (m Model) signOutCmd() tea.Cmd {
	return m.apiCmd(actionSignOut, false, true, func(ctx context.Context, api hurricane.API) error {
		return api.Logout(ctx)
	})
}

func (m Model) feedbackCmd(message string) tea.Cmd {
	return m.apiCmd(actionFeedback, false, false, func(ctx context.Context, api hurricane.API) error {
		return api.CreateFeedback(ctx, feedbackGeneral, message)
	})
}

func (m Model) loadLogsCmd() tea.Cmd {
	path := m.logFile
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		if err != nil {
			return logLoadedMsg{err: err}
		}
		return logLoadedMsg{entries: logtail.Filter(lines, slog.LevelInfo)}
	}
}

func (m Model) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Debug("action failed", "op", msg.op, "error", msg.err)
	}
	if msg.saveSession && m.saveSession != nil {
		if err := m.saveSession(); err != nil {
			m.logger.Warn("save session failed", "error", err)
		}
	}

	switch {
	case msg.op == actionRefresh:
		return m, fetchSnapshotCmd(m.store)
	case msg.op == actionAuthURL && msg.err == nil:
		m.modal = newInputModal(
			"Sign in",
			"Open the link shown in Settings, then paste the authorization code.",
			"authorization code",
			m.finishAuthCmd,
		)
		return m, m.modal.(*inputModal).focus()
	case msg.op == actionAuthDone && msg.err == nil:
		m.signedOut = false
		m.authURL = ""
	}

	if msg.refresh {
		return m, m.refreshCmd()
	}
	return m, fetchSnapshotCmd(m.store)
}
