package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/teaoverlay"
	"github.com/jask/teaoverlay/internal/config"
	"github.com/jask/teaoverlay/internal/history"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Padding(0, 2)
	toastStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	historyStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type appMode string

const (
	modeNormal  appMode = "normal"
	modeCompose appMode = "compose"
	modeHistory appMode = "history"
)

type keyMap struct {
	Toast   key.Binding
	Timed   key.Binding
	Custom  key.Binding
	PopLast key.Binding
	Clear   key.Binding
	History key.Binding
	Close   key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toast:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toast")),
		Timed:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "timed toast")),
		Custom:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "custom toast")),
		PopLast: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dismiss last")),
		Clear:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "dismiss all")),
		History: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) helpLine() string {
	parts := make([]string, 0, 7)
	for _, b := range []key.Binding{k.Toast, k.Timed, k.Custom, k.PopLast, k.Clear, k.History, k.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ·  ")
}

// expiredMsg fires when a timed toast's lifetime runs out.
type expiredMsg struct {
	id   teaoverlay.ID
	body string
}

type model struct {
	ctx    context.Context
	cfg    config.Config
	store  *history.Store
	host   *teaoverlay.Host[string]
	keys   keyMap
	mode   appMode
	input  textinput.Model
	filter textinput.Model

	entries []history.Entry
	corner  teaoverlay.Corner
	toast   lipgloss.Style
	status  string
	seq     int
	width   int
	height  int
}

func newModel(ctx context.Context, cfg config.Config, store *history.Store) model {
	input := textinput.New()
	input.Placeholder = "toast text"
	input.CharLimit = 80
	filter := textinput.New()
	filter.Placeholder = "type to filter"
	filter.CharLimit = 40

	m := model{
		ctx:    ctx,
		cfg:    cfg,
		store:  store,
		keys:   defaultKeys(),
		mode:   modeNormal,
		input:  input,
		filter: filter,
		corner: teaoverlay.ParseCorner(cfg.UI.Corner),
		toast:  toastStyle.BorderForeground(lipgloss.Color(cfg.UI.Accent)),
		status: "Ready",
	}
	m.host = teaoverlay.NewHost(teaoverlay.Default, teaoverlay.WithCompose[string](overlayCompose(cfg.UI.MaxVisible)))
	return m
}

// overlayCompose shows the newest maxVisible toasts with a spill counter on
// top, stacked against the anchored edge.
func overlayCompose(maxVisible int) teaoverlay.ComposeFunc[string] {
	return func(contents []string) string {
		if len(contents) == 0 {
			return ""
		}
		hidden := 0
		if maxVisible > 0 && len(contents) > maxVisible {
			hidden = len(contents) - maxVisible
			contents = contents[hidden:]
		}
		blocks := make([]string, 0, len(contents)+1)
		if hidden > 0 {
			blocks = append(blocks, statusStyle.Render(fmt.Sprintf("… %d more", hidden)))
		}
		blocks = append(blocks, contents...)
		return lipgloss.JoinVertical(lipgloss.Right, blocks...)
	}
}

func (m model) Init() tea.Cmd {
	return m.host.Activate()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case teaoverlay.RefreshMsg:
		return m, m.host.Update(msg)

	case expiredMsg:
		teaoverlay.Dismiss(msg.id)
		m.record(history.Entry{OverlayID: int64(msg.id), Kind: history.KindExpired, Body: msg.body})
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeCompose:
		switch {
		case key.Matches(msg, m.keys.Close):
			m.mode = modeNormal
			m.input.Reset()
			return m, nil
		case msg.Type == tea.KeyEnter:
			body := strings.TrimSpace(m.input.Value())
			m.mode = modeNormal
			m.input.Reset()
			if body != "" {
				m.pushToast(body)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case modeHistory:
		switch {
		case msg.String() == "ctrl+c":
			m.host.Deactivate()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Close):
			m.mode = modeNormal
			m.filter.Reset()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.host.Deactivate()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toast):
		m.seq++
		m.pushToast(fmt.Sprintf("note #%d", m.seq))
		return m, nil
	case key.Matches(msg, m.keys.Timed):
		return m, m.pushTimed()
	case key.Matches(msg, m.keys.Custom):
		m.mode = modeCompose
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.PopLast):
		m.popLast()
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.clearAll()
		return m, nil
	case key.Matches(msg, m.keys.History):
		m.openHistory()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *model) pushToast(body string) {
	teaoverlay.Push(m.toast.Render(body))
	m.record(history.Entry{OverlayID: int64(teaoverlay.NoID), Kind: history.KindPushed, Body: body})
	m.status = fmt.Sprintf("pushed %q", body)
}

func (m *model) pushTimed() tea.Cmd {
	ttl := time.Duration(m.cfg.UI.ToastSeconds) * time.Second
	var id teaoverlay.ID
	var body string
	teaoverlay.PushWith(func(assigned teaoverlay.ID) string {
		id = assigned
		body = fmt.Sprintf("toast #%d, gone in %s", assigned, ttl)
		return m.toast.Render(body)
	})
	m.record(history.Entry{OverlayID: int64(id), Kind: history.KindPushed, Body: body})
	m.status = fmt.Sprintf("pushed timed toast #%d", id)
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return expiredMsg{id: id, body: body}
	})
}

func (m *model) popLast() {
	items := teaoverlay.Items()
	teaoverlay.DismissLast()
	if len(items) == 0 {
		m.status = "nothing to dismiss"
		return
	}
	last := items[len(items)-1]
	m.record(history.Entry{OverlayID: int64(last.ID), Kind: history.KindDismissed, Body: ansi.Strip(last.Content)})
	m.status = "dismissed last overlay"
}

func (m *model) clearAll() {
	n := teaoverlay.Default.Len()
	teaoverlay.DismissAll()
	if n > 0 {
		m.record(history.Entry{OverlayID: int64(teaoverlay.NoID), Kind: history.KindDismissed, Body: fmt.Sprintf("cleared %d overlays", n)})
	}
	m.status = fmt.Sprintf("cleared %d overlays", n)
}

func (m *model) openHistory() {
	entries, err := m.store.List(m.ctx)
	if err != nil {
		m.status = fmt.Sprintf("history: %v", err)
		return
	}
	m.entries = entries
	m.mode = modeHistory
	m.filter.Focus()
}

func (m *model) record(e history.Entry) {
	if err := m.store.Record(m.ctx, e); err != nil {
		m.status = fmt.Sprintf("history: %v", err)
	}
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	base := m.baseView()
	if m.mode == modeHistory {
		base = teaoverlay.CompositeAnchor(base, m.historyView(), teaoverlay.Center, 0, m.width, m.height)
	}
	overlay := m.host.View()
	if overlay == "" {
		return base
	}
	return teaoverlay.CompositeAnchor(base, overlay, m.corner, m.cfg.UI.Margin, m.width, m.height)
}

func (m model) baseView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("teaoverlay demo"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "active overlays: %d\n", m.host.Len())
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.mode == modeCompose {
		b.WriteString("\nnew toast: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	content := b.String()
	lines := strings.Count(content, "\n") + 1
	for lines < m.height-1 {
		content += "\n"
		lines++
	}
	return content + footerStyle.Render(m.keys.helpLine())
}

func (m model) historyView() string {
	ranked := history.Rank(m.entries, m.filter.Value())

	var b strings.Builder
	b.WriteString(titleStyle.Render("history"))
	b.WriteString("\nfilter: ")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	maxRows := m.height - 10
	if maxRows < 1 {
		maxRows = 1
	}
	if len(ranked) == 0 {
		b.WriteString(statusStyle.Render("no matches"))
	}
	for i, e := range ranked {
		if i >= maxRows {
			b.WriteString(statusStyle.Render(fmt.Sprintf("… %d more", len(ranked)-maxRows)))
			break
		}
		line := fmt.Sprintf("%s  %-9s  %s", e.CreatedAt.Format("15:04:05"), e.Kind, e.Body)
		b.WriteString(ansi.Truncate(line, m.width-10, "…"))
		b.WriteString("\n")
	}
	return historyStyle.Render(strings.TrimRight(b.String(), "\n"))
}
