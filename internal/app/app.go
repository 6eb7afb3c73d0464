package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/content"
	"github.com/abhisek/tango/internal/progress"
	"github.com/abhisek/tango/internal/router"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/screens/home"
	sessionscreen "github.com/abhisek/tango/internal/screens/session"
	"github.com/abhisek/tango/internal/session"
	"github.com/abhisek/tango/internal/ui/layout"
)

// Options wires the TUI to its backends.
type Options struct {
	Content  content.Store
	Progress progress.Service
	// History is optional; without it the home screen hides history.
	History  progress.History
	UserID   string
	Logger   *slog.Logger
	Defaults home.Defaults

	// Study opens a session straight away instead of waiting on the home
	// screen. StudyTitle names it in the header.
	Study      *session.Config
	StudyTitle string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  tea.Cmd
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	deps := sessionscreen.Deps{
		Content: opts.Content,
		UserID:  opts.UserID,
		Logger:  log,
	}
	if opts.Progress != nil {
		deps.Reporter = progress.NewReporter(opts.Progress, log.With("component", "progress"))
	}

	homeScreen := home.New(deps, opts.History, opts.Defaults)
	m := AppModel{
		router: router.New(homeScreen),
		start:  homeScreen.Init(),
	}
	if opts.Study != nil {
		s := sessionscreen.New(*opts.Study, opts.StudyTitle, deps)
		m.start = tea.Batch(m.start, func() tea.Msg {
			return router.PushScreenMsg{Screen: s}
		})
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.start
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := newAppModel(opts)
	p := tea.NewProgram(m)
	_, err := p.Run()
	m.router.CloseAll()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
