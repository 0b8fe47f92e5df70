package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/softwrhq/hurricane/internal/hurricane"
	"github.com/softwrhq/hurricane/internal/logtail"
	"github.com/softwrhq/hurricane/internal/state"
	"github.com/softwrhq/hurricane/internal/toast"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	API       hurricane.API
	Store     *state.Store
	Bridge    *Bridge
	PollTick  time.Duration
	ThemeName string
	LogFile   string

	// Refresh reloads the dashboard snapshot into Store.
	Refresh func(ctx context.Context) error
	// SavePrefs persists the theme plus the store's sidebar and period.
	SavePrefs func(theme string) error
	// SaveSession persists the login cookies after sign-in or sign-out.
	SaveSession func() error
	Logger      *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	api         hurricane.API
	store       *state.Store
	bridge      *Bridge
	pollTick    time.Duration
	logFile     string
	refresh     func(ctx context.Context) error
	savePrefs   func(theme string) error
	saveSession func() error
	logger      *slog.Logger
	keys        keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	modal       Modal

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Components
	spinner    spinner.Model
	leadsTable table.Model

	// Per-view selection for list views
	cursor map[View]int

	// Session state
	signedOut bool
	authURL   string

	// Most recent generated reply, shown on the leads view
	lastReply   *hurricane.Reply
	lastReplyTo string

	// Log view state
	logEntries []logtail.Entry
	logErr     error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	m := Model{
		ctx:         ctx,
		api:         opts.API,
		store:       store,
		bridge:      opts.Bridge,
		pollTick:    pollTick,
		logFile:     opts.LogFile,
		refresh:     opts.Refresh,
		savePrefs:   opts.SavePrefs,
		saveSession: opts.SaveSession,
		logger:      logger.With("component", "ui"),
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewDashboard,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		leadsTable:  newLeadsTable(),
		cursor:      make(map[View]int),
		snapshot:    store.Snapshot(),
	}
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.pollTick),
		fetchSnapshotCmd(m.store),
		m.spinner.Tick,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layoutLeadsTable()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.updateLeadsTable()
		m.clampCursors()
		return m, nil

	case redrawMsg:
		return m, fetchSnapshotCmd(m.store)

	case navigateMsg:
		m.applyRoute(resolveRoute(msg.target))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case actionDoneMsg:
		return m.handleActionDone(msg)

	case replyGeneratedMsg:
		if msg.err == nil {
			reply := msg.reply
			m.lastReply = &reply
			m.lastReplyTo = msg.postID
		}
		return m, m.refreshCmd()

	case logLoadedMsg:
		// Follow the tail unless the user moved up.
		following := len(m.logEntries) == 0 || m.cursor[ViewLogs] >= len(m.logEntries)-1
		m.logEntries = msg.entries
		m.logErr = msg.err
		if following && len(m.logEntries) > 0 {
			m.cursor[ViewLogs] = len(m.logEntries) - 1
		}
		m.clampCursors()
		return m, nil
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var done bool
		m.modal, cmd, done = m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		}
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var done bool
		m.modal, cmd, done = m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.persistPrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.store.ToggleSidebar()
		m.layoutLeadsTable()
		m.persistPrefs()
		return m, nil

	case key.Matches(msg, m.keys.SkipToast):
		// An empty message drops the current notification.
		if q := m.store.Toasts(); q != nil {
			q.Enqueue("", toast.Info)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Tab):
		return m.switchView(nextView(m.currentView, 1))

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchView(nextView(m.currentView, -1))

	case key.Matches(msg, m.keys.Escape):
		return m.switchView(ViewDashboard)

	case key.Matches(msg, m.keys.ViewDashboard):
		return m.switchView(ViewDashboard)
	case key.Matches(msg, m.keys.ViewLeads):
		return m.switchView(ViewLeads)
	case key.Matches(msg, m.keys.ViewReplies):
		return m.switchView(ViewReplies)
	case key.Matches(msg, m.keys.ViewKeywords):
		return m.switchView(ViewKeywords)
	case key.Matches(msg, m.keys.ViewSubreddits):
		return m.switchView(ViewSubreddits)
	case key.Matches(msg, m.keys.ViewSettings):
		return m.switchView(ViewSettings)
	case key.Matches(msg, m.keys.ViewLogs):
		return m.switchView(ViewLogs)

	case key.Matches(msg, m.keys.Scan):
		return m, m.scanCmd()

	case key.Matches(msg, m.keys.PrevPeriod):
		return m.shiftPeriod(-1)
	case key.Matches(msg, m.keys.NextPeriod):
		return m.shiftPeriod(1)

	case key.Matches(msg, m.keys.SignIn):
		return m, m.signInCmd()
	case key.Matches(msg, m.keys.SignOut):
		m.modal = newConfirmModal("Sign out of Hurricane?", m.signOutCmd())
		return m, nil
	}

	// View-specific keys
	switch m.currentView {
	case ViewLeads:
		return m.handleLeadsKey(msg)
	case ViewReplies, ViewLogs:
		m.moveCursor(msg)
		return m, nil
	case ViewKeywords, ViewSubreddits:
		return m.handleTermsKey(msg)
	case ViewSettings:
		return m.handleSettingsKey(msg)
	}

	return m, nil
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	if v == ViewLogs {
		return m, m.loadLogsCmd()
	}
	return m, nil
}

func (m *Model) applyRoute(r route) {
	m.currentView = r.view
	if r.external != "" {
		m.authURL = r.external
		return
	}
	m.signedOut = r.signedOut
	if !r.signedOut {
		m.authURL = ""
	}
}

// shiftPeriod moves the metrics window and reloads the dashboard.
func (m Model) shiftPeriod(step int) (tea.Model, tea.Cmd) {
	periods := hurricane.MetricsPeriods
	current := 0
	for i, p := range periods {
		if p == m.store.MetricsPeriod() {
			current = i
		}
	}
	next := current + step
	if next < 0 || next >= len(periods) {
		return m, nil
	}
	m.store.SetMetricsPeriod(periods[next])
	m.persistPrefs()
	return m, m.refreshCmd()
}

func (m *Model) persistPrefs() {
	if m.savePrefs == nil {
		return
	}
	if err := m.savePrefs(m.theme.Name); err != nil {
		m.logger.Warn("save preferences failed", "error", err)
	}
}

// moveCursor handles up/down for the simple list views.
func (m *Model) moveCursor(msg tea.KeyMsg) {
	count := m.listLen(m.currentView)
	if count == 0 {
		return
	}
	cur := m.cursor[m.currentView]
	switch {
	case key.Matches(msg, m.keys.Down):
		if cur < count-1 {
			cur++
		}
	case key.Matches(msg, m.keys.Up):
		if cur > 0 {
			cur--
		}
	case key.Matches(msg, m.keys.Top):
		cur = 0
	case key.Matches(msg, m.keys.Bottom):
		cur = count - 1
	}
	m.cursor[m.currentView] = cur
}

func (m Model) listLen(v View) int {
	switch v {
	case ViewReplies:
		return len(m.snapshot.Replies)
	case ViewKeywords:
		return len(m.snapshot.Keywords)
	case ViewSubreddits:
		return len(m.snapshot.Subreddits)
	case ViewLogs:
		return len(m.logEntries)
	default:
		return 0
	}
}

func (m *Model) clampCursors() {
	for v, cur := range m.cursor {
		n := m.listLen(v)
		switch {
		case n == 0:
			m.cursor[v] = 0
		case cur >= n:
			m.cursor[v] = n - 1
		}
	}
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{fetchSnapshotCmd(m.store)}
	if m.currentView == ViewLogs {
		cmds = append(cmds, m.loadLogsCmd())
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// renderMain lays out header, sidebar, content and the toast line.
func (m Model) renderMain() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	toastLine := m.renderToast()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if toastLine != "" {
		bodyHeight -= lipgloss.Height(toastLine)
	}
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	sidebar := m.renderSidebar(bodyHeight)
	contentWidth := m.width - lipgloss.Width(sidebar)
	content := lipgloss.NewStyle().
		Width(contentWidth).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Padding(0, 1).
		Render(m.renderContent(contentWidth - 2))

	parts := []string{header, lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)}
	if toastLine != "" {
		parts = append(parts, toastLine)
	}
	parts = append(parts, footer)
	return strings.Join(parts, "\n")
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent(width int) string {
	switch m.currentView {
	case ViewDashboard:
		return m.renderDashboard(width)
	case ViewLeads:
		return m.renderLeads(width)
	case ViewReplies:
		return m.renderReplies(width)
	case ViewKeywords:
		return m.renderKeywords(width)
	case ViewSubreddits:
		return m.renderSubreddits(width)
	case ViewSettings:
		return m.renderSettings(width)
	case ViewLogs:
		return m.renderLogs(width)
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type redrawMsg struct{}

type navigateMsg struct {
	target string
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if opts.Bridge != nil {
		opts.Bridge.attach(p)
		defer opts.Bridge.detach()
	}
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
