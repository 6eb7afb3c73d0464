package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/content"
	"github.com/abhisek/tango/internal/progress"
	"github.com/abhisek/tango/internal/router"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/screens/history"
	sessionscreen "github.com/abhisek/tango/internal/screens/session"
	sess "github.com/abhisek/tango/internal/session"
	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/layout"
	"github.com/abhisek/tango/internal/ui/theme"
	"github.com/abhisek/tango/internal/vocab"
)

// timeStep is how much +/- change the session time limit.
const timeStep = 60

// maxTimeLimit caps the time limit picked on the home screen.
const maxTimeLimit = 30 * 60

type topicsLoadedMsg struct {
	Topics []vocab.Topic
	Err    error
}

// Defaults are the starting choices of the setup form.
type Defaults struct {
	Mode      sess.Mode
	TimeLimit int
	TestCount int
}

// HomeScreen is the session setup screen: pick a source, a mode and an
// optional time limit.
type HomeScreen struct {
	deps     sessionscreen.Deps
	history  progress.History
	defaults Defaults

	topics []vocab.Topic
	menu   components.Menu
	loaded bool
	errMsg string

	mode      sess.Mode
	timeLimit int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. history may be nil, which hides the
// history entry.
func New(deps sessionscreen.Deps, hist progress.History, defaults Defaults) *HomeScreen {
	if defaults.TimeLimit < 0 {
		defaults.TimeLimit = 0
	}
	h := &HomeScreen{
		deps:      deps,
		history:   hist,
		defaults:  defaults,
		mode:      defaults.Mode,
		timeLimit: defaults.TimeLimit,
	}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	store := h.deps.Content
	return func() tea.Msg {
		if store == nil {
			return topicsLoadedMsg{}
		}
		topics, err := store.Topics(context.Background())
		return topicsLoadedMsg{Topics: topics, Err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Tab", Description: "Mode"},
		{Key: "+/-", Description: "Time limit"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case topicsLoadedMsg:
		h.loaded = true
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
		}
		h.topics = msg.Topics
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.menuItems())
		if selected < h.menu.Len() {
			h.menu.Selected = selected
		}
		return h, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "m":
			h.mode = h.mode.Next()
			return h, nil
		case "+", "=", "right":
			h.timeLimit = min(h.timeLimit+timeStep, maxTimeLimit)
			return h, nil
		case "-", "left":
			h.timeLimit = max(h.timeLimit-timeStep, 0)
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("単語  Tango"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Vocabulary study"))
	b.WriteString("\n\n")

	limit := "stopwatch"
	if h.timeLimit > 0 {
		limit = layout.FormatClock(h.timeLimit) + " limit"
	}
	settings := fmt.Sprintf("Mode: %s    Timer: %s",
		theme.Selected.Render(h.mode.String()), theme.Selected.Render(limit))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, settings))
	b.WriteString("\n\n")

	switch {
	case h.errMsg != "":
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render("Could not load topics: "+h.errMsg)))
		b.WriteString("\n\n")
	case h.loaded && len(h.topics) == 0:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("No topics yet. Add some with `tango import deck.json`.")))
		b.WriteString("\n\n")
	case !h.loaded:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("Loading topics...")))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))
	return b.String()
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	items := []components.MenuItem{
		{Label: "Review due items", Action: h.start(sess.SourceReview, "", "Review")},
		{Label: "Random test", Hint: fmt.Sprintf("%d items", h.testCount()), Action: h.start(sess.SourceTest, "", "Test")},
	}
	for _, t := range h.topics {
		items = append(items, components.MenuItem{
			Label:    t.Name,
			Hint:     fmt.Sprintf("%d items", t.ItemCount),
			Action:   h.start(sess.SourceTopic, t.ID, t.Name),
			Disabled: t.ItemCount == 0,
		})
	}
	if h.history != nil {
		hist, user := h.history, h.deps.UserID
		items = append(items, components.MenuItem{Label: "History", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(hist, user)}
			}
		}})
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
		return tea.Quit
	}})
	return items
}

// start returns a menu action that opens a session with the current mode
// and time limit.
func (h *HomeScreen) start(source sess.Source, topicID, title string) func() tea.Cmd {
	return func() tea.Cmd {
		cfg := sess.Config{
			Source:    source,
			TopicID:   topicID,
			Count:     h.testCount(),
			Mode:      h.mode,
			TimeLimit: h.timeLimit,
		}
		s := sessionscreen.New(cfg, title, h.deps)
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: s}
		}
	}
}

func (h *HomeScreen) testCount() int {
	if h.defaults.TestCount > 0 {
		return h.defaults.TestCount
	}
	return content.DefaultTestCount
}
