// Package tui provides the interactive Bubble Tea dashboard for subman.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/config"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/pipeline"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/store"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/timeline"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/tui/components"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// SubsLoadedMsg is sent when the subscription list has been (re)read from
// the database.
type SubsLoadedMsg struct {
	Subs []model.Subscription
	Err  error
}

// mutationDoneMsg reports the outcome of an insert/update/delete/move.
type mutationDoneMsg struct {
	err error
}

// Tab indexes, matching components.Tabs order.
const (
	tabTimeline = iota
	tabOverview
	tabSubscriptions
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 110
	maxContentWidth  = 160
	minContentHeight = 5

	renewalHorizon = 90 * 24 * time.Hour
)

// App is the root Bubble Tea model.
type App struct {
	cfg    config.Config
	dbPath string
	today  time.Time

	// Data
	subs    []model.Subscription
	loaded  bool
	loadErr error

	// Derived on every data change
	window   timeline.Window
	stats    model.SummaryStats
	monthly  []model.MonthSpend
	renewals []model.Renewal

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	statusMsg string

	// Per-tab state
	subsState subsState
	settings  settingsState

	// Entry form (huh), active when form != nil. formVals is shared with
	// the form's inputs by pointer and must survive model copies.
	form       *huh.Form
	formMode   formMode
	formVals   *entryForm
	formTarget model.Subscription
}

// NewApp creates the root TUI model.
func NewApp(cfg config.Config, dbPath string, today time.Time) App {
	return App{
		cfg:    cfg,
		dbPath: dbPath,
		today:  today,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadSubsCmd(a.dbPath),
	)
}

// recompute rebuilds the derived timeline and aggregate views from the
// current subscription list.
func (a *App) recompute() {
	current := timeline.MonthStart(a.today)
	start := current.AddDate(0, -a.cfg.Timeline.MonthsBefore, 0)
	end := current.AddDate(0, a.cfg.Timeline.MonthsAfter, 0)

	w, err := timeline.ComputeRange(&start, &end, a.today)
	if err != nil {
		// Only reachable with a negative months config; fall back to defaults.
		w, _ = timeline.ComputeRange(nil, nil, a.today)
	}
	a.window = w

	a.stats = pipeline.Summarize(a.subs, a.today)
	a.monthly = pipeline.MonthlySpend(a.subs, w)
	a.renewals = pipeline.UpcomingRenewals(a.subs, a.today, renewalHorizon)

	if a.subsState.cursor >= len(a.subs) {
		a.subsState.cursor = len(a.subs) - 1
	}
	if a.subsState.cursor < 0 {
		a.subsState.cursor = 0
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.form != nil {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabSubscriptions && a.subsState.cursor > 0 {
				a.subsState.cursor--
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.activeTab == tabSubscriptions && a.subsState.cursor < len(a.subs)-1 {
				a.subsState.cursor++
			}
			return a, nil

		case tea.MouseButtonLeft:
			// Tab bar occupies the first line
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// An active form intercepts all keys
		if a.form != nil {
			return a.updateForm(msg)
		}

		// Settings tab text input intercepts all keys while editing
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		a.statusMsg = ""

		// Subscriptions tab keybindings
		if a.activeTab == tabSubscriptions {
			switch key {
			case "j", "down":
				if a.subsState.cursor < len(a.subs)-1 {
					a.subsState.cursor++
				}
				return a, nil
			case "k", "up":
				if a.subsState.cursor > 0 {
					a.subsState.cursor--
				}
				return a, nil
			case "g":
				a.subsState.cursor = 0
				return a, nil
			case "G":
				if len(a.subs) > 0 {
					a.subsState.cursor = len(a.subs) - 1
				}
				return a, nil
			case "J":
				return a.moveSelected(1)
			case "K":
				return a.moveSelected(-1)
			case "e":
				if sel, ok := a.selected(); ok && !sel.IsCategory() {
					return a.openEditForm(sel)
				}
				return a, nil
			case "d":
				if sel, ok := a.selected(); ok {
					return a.openDeleteForm(sel)
				}
				return a, nil
			}
		}

		// Settings tab navigation (non-editing mode)
		if a.activeTab == tabSettings {
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "a":
			return a.openAddForm()
		case "r":
			return a, loadSubsCmd(a.dbPath)
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(key) == 1 {
				if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case SubsLoadedMsg:
		a.loaded = true
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.subs = msg.Subs
			a.recompute()
		}
		return a, nil

	case mutationDoneMsg:
		if msg.err != nil {
			a.statusMsg = msg.err.Error()
			return a, nil
		}
		return a, loadSubsCmd(a.dbPath)
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}

	return a, nil
}

func (a App) selected() (model.Subscription, bool) {
	if a.subsState.cursor < 0 || a.subsState.cursor >= len(a.subs) {
		return model.Subscription{}, false
	}
	return a.subs[a.subsState.cursor], true
}

// moveSelected shifts the selected entry by delta in the display order and
// persists the new order.
func (a App) moveSelected(delta int) (tea.Model, tea.Cmd) {
	sel, ok := a.selected()
	if !ok {
		return a, nil
	}
	newIndex := a.subsState.cursor + delta
	if newIndex < 0 || newIndex >= len(a.subs) {
		return a, nil
	}
	a.subsState.cursor = newIndex
	return a, moveCmd(a.dbPath, sel.ID, newIndex)
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.form != nil {
		return a.viewForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  subman needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	body := logoStyle.Render("◈ subman") +
		subtitleStyle.Render(" · Subscription Timeline") +
		"\n\n" + subtitleStyle.Render("Opening database...")

	card := cardStyle.Render(body)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"t o s x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate list"},
		{"g G", "First / Last entry"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"a", "Add subscription"},
		{"e", "Edit selected"},
		{"d", "Delete selected"},
		{"J K", "Reorder selected"},
		{"r", "Reload from database"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, len(pipeline.Services(a.subs)), a.today.Format("02 Jan 2006"))

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch {
	case a.loadErr != nil:
		errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Background)
		content = "\n  " + errStyle.Render(a.loadErr.Error())
	case a.activeTab == tabTimeline:
		content = a.renderTimelineTab(cw)
	case a.activeTab == tabOverview:
		content = a.renderOverviewTab(cw)
	case a.activeTab == tabSubscriptions:
		content = a.renderSubscriptionsTab(cw, contentH)
	case a.activeTab == tabSettings:
		content = a.renderSettingsTab(cw)
	}

	if a.statusMsg != "" {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Background)
		content += "\n  " + warnStyle.Render(a.statusMsg)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Data commands ──────────────────────────────────────────────

// loadSubsCmd reads the full subscription list from the database.
func loadSubsCmd(dbPath string) tea.Cmd {
	return func() tea.Msg {
		s, err := store.Open(dbPath)
		if err != nil {
			return SubsLoadedMsg{Err: err}
		}
		defer func() { _ = s.Close() }()

		subs, err := s.List()
		return SubsLoadedMsg{Subs: subs, Err: err}
	}
}

func insertCmd(dbPath string, sub model.Subscription) tea.Cmd {
	return func() tea.Msg {
		s, err := store.Open(dbPath)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		defer func() { _ = s.Close() }()
		_, err = s.Insert(sub)
		return mutationDoneMsg{err: err}
	}
}

func updateCmd(dbPath string, sub model.Subscription) tea.Cmd {
	return func() tea.Msg {
		s, err := store.Open(dbPath)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		defer func() { _ = s.Close() }()
		return mutationDoneMsg{err: s.Update(sub)}
	}
}

func deleteCmd(dbPath, id string) tea.Cmd {
	return func() tea.Msg {
		s, err := store.Open(dbPath)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		defer func() { _ = s.Close() }()
		return mutationDoneMsg{err: s.Delete(id)}
	}
}

func moveCmd(dbPath, id string, newIndex int) tea.Cmd {
	return func() tea.Msg {
		s, err := store.Open(dbPath)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		defer func() { _ = s.Close() }()
		return mutationDoneMsg{err: s.Move(id, newIndex)}
	}
}

// ─── Layout helpers ─────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
