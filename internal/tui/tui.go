// Package tui is the interactive terminal front end. It renders whatever
// screen the navigator has on top and redraws on every bus event.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vmunix/cinebrowse/internal/app"
	"github.com/vmunix/cinebrowse/internal/events"
	"github.com/vmunix/cinebrowse/internal/tmdb"
	"github.com/vmunix/cinebrowse/internal/view"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

// eventMsg carries a bus event into the update loop.
type eventMsg struct{ events.Event }

// busClosedMsg is sent once the subscription channel is closed.
type busClosedMsg struct{}

type shareResultMsg struct {
	title string
	err   error
}

var tabLabels = map[app.Tab]string{
	app.TabHome:   "Home",
	app.TabSearch: "Search",
	app.TabGenres: "Categories",
}

// Model is the bubbletea model over a started Navigator.
type Model struct {
	nav    *app.Navigator
	theme  *view.Theme
	events <-chan events.Event

	light styles
	dark  styles

	mode   Mode
	input  textinput.Model
	spin   spinner.Model
	cursor int
	top    view.Controller // screen the cursor belongs to
	status string

	width  int
	height int
}

// New creates the model. sub is a bus subscription used to trigger
// redraws; nav must already be started.
func New(nav *app.Navigator, theme *view.Theme, sub <-chan events.Event) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search movies"
	ti.Prompt = "/ "
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		nav:    nav,
		theme:  theme,
		events: sub,
		light:  newStyles(false),
		dark:   newStyles(true),
		input:  ti,
		spin:   sp,
		top:    nav.Current(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.spin.Tick)
}

func (m *Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	ch := m.events
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return busClosedMsg{}
		}
		return eventMsg{e}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case eventMsg:
		m.sync()
		return m, m.waitForEvent()

	case busClosedMsg:
		return m, tea.Quit

	case shareResultMsg:
		if msg.err != nil {
			m.status = "Share failed: " + msg.err.Error()
		} else {
			m.status = "Copied share text for " + msg.title
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.mode == ModeSearch {
			return m.handleSearchMode(msg)
		}
		return m.handleNormalMode(msg)
	}
	return m, nil
}

func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.switchTab(1)
	case "shift+tab":
		m.switchTab(-1)
	case "1", "2", "3":
		m.nav.SwitchTab(app.Tabs[msg.String()[0]-'1'])
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.content().entries())-1 {
			m.cursor++
		}
	case "enter":
		m.open()
	case "esc", "backspace":
		m.nav.GoBack()
	case "/":
		m.nav.SwitchTab(app.TabSearch)
		m.mode = ModeSearch
		m.status = ""
		m.sync()
		return m, m.input.Focus()
	case "t":
		m.nav.ToggleTheme()
	case "s":
		return m, m.share()
	case "r":
		if m.nav.Retry() {
			m.status = "Retrying…"
		}
	}
	m.sync()
	return m, nil
}

func (m *Model) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.nav.SubmitSearch(m.input.Value())
		m.input.Blur()
		m.mode = ModeNormal
		m.sync()
		return m, nil
	case tea.KeyEsc:
		m.input.Blur()
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) switchTab(step int) {
	cur := m.nav.Tab()
	n := len(app.Tabs)
	m.nav.SwitchTab(app.Tabs[(int(cur)+step+n)%n])
}

func (m *Model) open() {
	e, ok := m.selected()
	if !ok {
		return
	}
	switch {
	case e.movie != nil:
		m.nav.SelectMovie(e.movie.ID)
	case e.genre != nil:
		m.nav.SelectGenre(e.genre.ID)
	}
}

// share hands the movie in focus to the navigator's sharer. On a detail
// screen that is the movie shown; elsewhere the selected movie.
func (m *Model) share() tea.Cmd {
	target, ok := m.shareTarget()
	if !ok {
		m.status = "Select a movie to share"
		return nil
	}
	nav := m.nav
	return func() tea.Msg {
		return shareResultMsg{title: target.Title, err: nav.Share(target)}
	}
}

func (m *Model) shareTarget() (tmdb.MovieSummary, bool) {
	c := m.content()
	if c.detail != nil {
		return c.detail.MovieSummary, true
	}
	if e, ok := m.selected(); ok && e.movie != nil {
		return *e.movie, true
	}
	return tmdb.MovieSummary{}, false
}

func (m *Model) selected() (entry, bool) {
	entries := m.content().entries()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return entry{}, false
	}
	return entries[m.cursor], true
}

// sync resets the cursor when the top screen changed and keeps it in range.
func (m *Model) sync() {
	if top := m.nav.Current(); top != m.top {
		m.top = top
		m.cursor = 0
		if s, ok := top.(*view.Search); ok && m.mode == ModeNormal {
			m.input.SetValue(s.State().Query)
		}
	}
	if n := len(m.content().entries()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *Model) content() content {
	if m.top == nil {
		return content{}
	}
	return screenContent(m.top)
}

func (m *Model) styles() styles {
	if m.theme.Dark() {
		return m.dark
	}
	return m.light
}

// View implements tea.Model.
func (m *Model) View() string {
	width, height := m.width, m.height
	if width == 0 || height == 0 {
		width, height = 80, 24
	}
	st := m.styles()

	header := m.renderTabs(st)
	footer := m.renderStatusBar(st, width)
	body, selLine := m.renderBody(st, width)

	// Keep the selected line on screen.
	room := max(height-lipgloss.Height(header)-lipgloss.Height(footer)-1, 1)
	lines := strings.Split(body, "\n")
	start := 0
	if selLine >= room {
		start = selLine - room + 1
	}
	end := min(start+room, len(lines))
	lines = lines[min(start, end):end]

	return header + "\n" + strings.Join(lines, "\n") + "\n" + footer
}

func (m *Model) renderTabs(st styles) string {
	var tabs []string
	active := m.nav.Tab()
	for _, t := range app.Tabs {
		if t == active {
			tabs = append(tabs, st.activeTab.Render(tabLabels[t]))
		} else {
			tabs = append(tabs, st.tab.Render(tabLabels[t]))
		}
	}
	return st.title.Render("cinebrowse") + "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderBody returns the screen body and the line index of the selection.
func (m *Model) renderBody(st styles, width int) (string, int) {
	var b strings.Builder
	lineCount := func() int { return strings.Count(b.String(), "\n") }
	c := m.content()

	if _, ok := m.top.(*view.Search); ok {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if _, ok := m.top.(*view.Detail); ok && c.detail == nil && len(c.header) == 0 {
		b.WriteString(m.spin.View() + " Loading…\n")
	}
	if d := c.detail; d != nil {
		title := d.Title
		if y := d.Year(); y > 0 {
			title = fmt.Sprintf("%s (%d)", title, y)
		}
		b.WriteString(st.title.Render(title) + "\n")
		b.WriteString(st.muted.Render(detailMeta(d)) + "\n")
		if d.Overview != "" {
			b.WriteString(lipgloss.NewStyle().Width(max(width-2, 20)).Render(d.Overview) + "\n")
		}
	}
	for _, line := range c.header {
		b.WriteString(st.err.Render(line) + "\n")
	}
	if f := c.featured; f != nil {
		b.WriteString(st.featured.Render("Featured  "+st.title.Render(truncate(movieLabel(*f), width-16))) + "\n")
	}

	selLine := 0
	idx := 0
	for _, sec := range c.sections {
		b.WriteString(st.section.Render(sec.title) + "\n")
		switch sec.phase {
		case view.PhaseLoading:
			b.WriteString("  " + m.spin.View() + st.muted.Render(" Loading…") + "\n")
			continue
		case view.PhaseFailed:
			b.WriteString("  " + st.err.Render(sec.reason) + st.muted.Render("  (r to retry)") + "\n")
			continue
		}
		if len(sec.entries) == 0 {
			b.WriteString("  " + st.muted.Render(sec.empty) + "\n")
			continue
		}
		for _, e := range sec.entries {
			label := truncate(e.label, width-4)
			if idx == m.cursor {
				selLine = lineCount()
				b.WriteString(st.selected.Render("▸ "+label) + "\n")
			} else {
				b.WriteString("  " + st.item.Render(label) + "\n")
			}
			idx++
		}
	}
	return strings.TrimRight(b.String(), "\n"), selLine
}

func (m *Model) renderStatusBar(st styles, width int) string {
	help := "tab switch · ↑↓ move · enter open · esc back · / search · t theme · s share · r retry · q quit"
	if m.mode == ModeSearch {
		help = "enter search · esc cancel"
	}
	left := help
	if m.status != "" {
		left = m.status
	}
	bar := st.status.Width(width).Render(truncate(left, width-2))
	return bar
}

func truncate(s string, n int) string {
	if n <= 1 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Run starts a navigator over a and runs the terminal UI until the user
// quits or ctx ends.
func Run(ctx context.Context, a *app.App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub := a.Bus().SubscribeAll(64)
	defer a.Bus().Unsubscribe(sub)

	nav := a.NewNavigator(app.WithSharer(clipboard.WriteAll))
	nav.Start(ctx)
	defer nav.Close()

	p := tea.NewProgram(New(nav, a.Theme(), sub), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
