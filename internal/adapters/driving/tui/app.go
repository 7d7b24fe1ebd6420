package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui/keymap"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui/messages"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui/styles"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui/views/menu"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui/views/query"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
type App struct {
	ports  *Ports
	styles *styles.Styles

	menuView  *menu.View
	queryView *query.View

	currentView messages.ViewType

	// action is the menu choice to run once the program exits.
	action messages.Action
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	topK := ports.TopK
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		styles:      s,
		menuView:    menu.NewView(s, km, menu.Items(ports.Query != nil)),
		queryView:   query.NewView(s, km, ports.Query, topK),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context used for queries.
func (a *App) WithContext(ctx context.Context) *App {
	a.queryView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("Aven Knowledge Base")
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.queryView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewQuery:
			a.queryView, cmd = a.queryView.Update(msg)
		default:
			a.menuView, cmd = a.menuView.Update(msg)
		}
		return a, cmd

	case messages.ActionChosen:
		a.action = msg.Action
		return a, tea.Quit

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewQuery {
			a.queryView.Reset()
			return a, a.queryView.Init()
		}
		return a, nil
	}

	if a.currentView == messages.ViewQuery {
		a.queryView, cmd = a.queryView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if a.currentView == messages.ViewQuery {
		return a.queryView.View()
	}
	return a.menuView.View()
}

// Action returns the action chosen from the menu, if any.
func (a *App) Action() messages.Action {
	return a.action
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Run shows the menu until the user quits or picks an action, and returns
// that action.
func Run(ctx context.Context, ports *Ports, opts ...tea.ProgramOption) (messages.Action, error) {
	app, err := NewApp(ports)
	if err != nil {
		return messages.ActionNone, err
	}
	app.WithContext(ctx)

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(app, opts...).Run()
	if err != nil {
		return messages.ActionNone, fmt.Errorf("TUI error: %w", err)
	}
	if m, ok := final.(*App); ok {
		return m.Action(), nil
	}
	return messages.ActionNone, nil
}
