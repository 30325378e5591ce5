// Package tui provides an interactive terminal dashboard for live keyword
// scanning.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Geun-Oh/sift/internal/entry"
	"github.com/Geun-Oh/sift/internal/monitor"
	"github.com/Geun-Oh/sift/internal/scanner"
	"github.com/Geun-Oh/sift/internal/sink"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(1).
			PaddingRight(1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#353533"))

	hitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6600")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	searchStyle = lipgloss.NewStyle().
			Reverse(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// LineMsg delivers a selected line to the TUI.
type LineMsg entry.Line

// TickMsg triggers periodic UI updates.
type TickMsg time.Time

// DoneMsg signals the source has finished.
type DoneMsg struct{}

// Model is the bubbletea model for the dashboard.
type Model struct {
	lines      []string
	maxLines   int
	width      int
	height     int
	scrollPos  int // 0 = bottom (auto-scroll), >0 = scrolled up
	paused     bool
	pauseQueue []string

	searching   bool
	searchQuery string

	Stats  *monitor.Stats
	Hits   *monitor.HitCounter
	Source string

	done bool
}

// NewModel creates a new TUI model.
func NewModel(stats *monitor.Stats, hits *monitor.HitCounter, sourceName string) Model {
	return Model{
		maxLines: 1000,
		Stats:    stats,
		Hits:     hits,
		Source:   sourceName,
	}
}

// Init starts the tick timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.WindowSize())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case LineMsg:
		l := entry.Line(msg)
		m.addLine(m.formatLine(&l))
		return m, nil

	case TickMsg:
		return m, tickCmd()

	case DoneMsg:
		m.done = true
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.Type {
		case tea.KeyEsc:
			m.searching = false
			m.searchQuery = ""
		case tea.KeyEnter:
			m.searching = false
			m.jumpToMatch()
		case tea.KeyBackspace:
			if q := []rune(m.searchQuery); len(q) > 0 {
				m.searchQuery = string(q[:len(q)-1])
			}
		case tea.KeyRunes, tea.KeySpace:
			m.searchQuery += string(msg.Runes)
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "p":
		m.paused = !m.paused
		if !m.paused {
			m.lines = append(m.lines, m.pauseQueue...)
			m.pauseQueue = nil
			m.trim()
		}
	case "/":
		m.searching = true
		m.searchQuery = ""
	case "up", "k":
		if m.scrollPos < len(m.lines)-1 {
			m.scrollPos++
		}
	case "down", "j":
		if m.scrollPos > 0 {
			m.scrollPos--
		}
	case "g":
		m.scrollPos = 0
	case "G":
		if len(m.lines) > 0 {
			m.scrollPos = len(m.lines) - 1
		}
	}
	return m, nil
}

func (m *Model) addLine(line string) {
	if m.paused {
		m.pauseQueue = append(m.pauseQueue, line)
		return
	}
	m.lines = append(m.lines, line)
	m.trim()
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sb strings.Builder

	title := titleStyle.Render(fmt.Sprintf(" sift watch: %s ", m.Source))
	status := "▶ RUNNING"
	switch {
	case m.done:
		status = "✔ DONE"
	case m.paused:
		status = "⏸ PAUSED"
	}
	statusText := statusBarStyle.Render(fmt.Sprintf(" %s  %d lines ", status, m.Stats.Total()))
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(statusText)
	if gap < 0 {
		gap = 0
	}
	sb.WriteString(title + statusBarStyle.Render(strings.Repeat(" ", gap)) + statusText)
	sb.WriteString("\n")

	top := m.topKeywords()
	if top != "" {
		sb.WriteString(top)
		sb.WriteString("\n")
	}
	if m.searching {
		sb.WriteString(fmt.Sprintf(" / %s█\n", m.searchQuery))
	}

	header := 1
	if top != "" {
		header++
	}
	if m.searching {
		header++
	}
	viewport := m.height - header - 2
	if viewport < 1 {
		viewport = 1
	}

	visible := m.visibleLines(viewport)
	for _, line := range visible {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	for i := len(visible); i < viewport; i++ {
		sb.WriteString("\n")
	}

	stats := fmt.Sprintf(" Matched: %d │ Hits: %d │ %.0f lines/s",
		m.Stats.Matched(), m.Stats.Hits(), m.Stats.Rate())
	if m.scrollPos > 0 {
		stats += fmt.Sprintf(" │ ↑ %d", m.scrollPos)
	}
	sb.WriteString(statusBarStyle.Render(padRight(stats, m.width)))
	sb.WriteString("\n")

	help := " [/]Search  [p]Pause  [↑↓]Scroll  [g]Bottom  [q]Quit"
	if m.paused {
		help += fmt.Sprintf("  (queued: %d)", len(m.pauseQueue))
	}
	sb.WriteString(helpStyle.Render(help))

	return sb.String()
}

func (m *Model) formatLine(l *entry.Line) string {
	ts := l.Timestamp.Format("15:04:05")
	text := truncate(l.Text, m.width-12)
	if l.Context {
		return dimStyle.Render(fmt.Sprintf("%s   %s", ts, text))
	}
	hits := visibleHits(l.Hits, text, text != l.Text)
	return fmt.Sprintf("%s %s %s", dimStyle.Render(ts), hitStyle.Render("●"), sink.Highlight(text, hits, hitStyle.Render))
}

// topKeywords renders the five most frequent keywords as one line.
func (m *Model) topKeywords() string {
	if m.Hits == nil {
		return ""
	}
	rows := m.Hits.Top(5)
	if len(rows) == 0 {
		return ""
	}
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = fmt.Sprintf("%s %d", hitStyle.Render(r.Keyword), r.Count)
	}
	return " " + strings.Join(parts, "  ")
}

func (m *Model) visibleLines(height int) []string {
	if len(m.lines) == 0 {
		return nil
	}

	end := len(m.lines) - m.scrollPos
	if end < 0 {
		end = 0
	}
	start := end - height
	if start < 0 {
		start = 0
	}

	out := make([]string, 0, end-start)
	for _, line := range m.lines[start:end] {
		if m.searchQuery != "" && !m.searching && strings.Contains(line, m.searchQuery) {
			line = strings.ReplaceAll(line, m.searchQuery, searchStyle.Render(m.searchQuery))
		}
		out = append(out, line)
	}
	return out
}

// jumpToMatch scrolls to the most recent line containing the query.
func (m *Model) jumpToMatch() {
	if m.searchQuery == "" {
		return
	}
	for i := len(m.lines) - 1; i >= 0; i-- {
		if strings.Contains(m.lines[i], m.searchQuery) {
			m.scrollPos = len(m.lines) - i - 1
			return
		}
	}
}

func (m *Model) trim() {
	if len(m.lines) > m.maxLines {
		m.lines = m.lines[len(m.lines)-m.maxLines:]
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// truncate shortens s to at most maxLen runes.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}

// visibleHits drops hits that do not fit in the displayed text. A truncated
// text ends with an ellipsis that is not part of the line.
func visibleHits(hits []scanner.Match, text string, truncated bool) []scanner.Match {
	n := len([]rune(text))
	if truncated {
		n--
	}
	var out []scanner.Match
	for _, h := range hits {
		if h.End <= n {
			out = append(out, h)
		}
	}
	return out
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
