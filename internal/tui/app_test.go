package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Geun-Oh/sift/internal/entry"
	"github.com/Geun-Oh/sift/internal/monitor"
	"github.com/Geun-Oh/sift/internal/scanner"
)

func newTestModel() Model {
	m := NewModel(monitor.NewStats(), monitor.NewHitCounter(), "file:app.log")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	return next.(Model)
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func hit(text string, matches ...scanner.Match) LineMsg {
	return LineMsg(entry.Line{Timestamp: time.Now(), Text: text, Hits: matches})
}

func TestModelReceivesLines(t *testing.T) {
	m := newTestModel()
	m = send(t, m, hit("a cat sat", scanner.Match{Keyword: "cat", Start: 2, End: 5}))
	m = send(t, m, LineMsg(entry.Line{Text: "context", Context: true}))

	require.Len(t, m.lines, 2)
	assert.Contains(t, m.lines[0], "cat")
	assert.Contains(t, m.View(), "sift watch: file:app.log")
}

func TestModelPause(t *testing.T) {
	m := newTestModel()
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	assert.True(t, m.paused)

	m = send(t, m, hit("queued"))
	assert.Empty(t, m.lines)
	assert.Len(t, m.pauseQueue, 1)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	assert.False(t, m.paused)
	assert.Len(t, m.lines, 1)
	assert.Empty(t, m.pauseQueue)
}

func TestModelSearchScrolls(t *testing.T) {
	m := newTestModel()
	for _, text := range []string{"alpha", "needle here", "beta", "gamma"} {
		m = send(t, m, hit(text))
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.True(t, m.searching)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("needlx")})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	assert.Equal(t, "needle", m.searchQuery)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	assert.Equal(t, 2, m.scrollPos)
}

func TestModelDone(t *testing.T) {
	m := newTestModel()
	m = send(t, m, DoneMsg{})
	assert.Contains(t, m.View(), "DONE")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestTopKeywords(t *testing.T) {
	m := newTestModel()
	assert.Empty(t, m.topKeywords())

	m.Hits.Add("cat", "cat", "dog")
	top := m.topKeywords()
	assert.Contains(t, top, "cat")
	assert.Contains(t, top, "2")
}

func TestVisibleHits(t *testing.T) {
	hits := []scanner.Match{{Keyword: "ab", Start: 0, End: 2}, {Keyword: "cd", Start: 3, End: 5}}

	assert.Len(t, visibleHits(hits, "ab cd", false), 2)
	assert.Len(t, visibleHits(hits, "ab c…", true), 1)
	assert.Equal(t, "abc…", truncate("abcdef", 4))
	assert.Equal(t, "敏感词", truncate("敏感词", 4))
}
