// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui/keymap"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui/messages"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui/styles"
)

// Item represents a single menu option.
// Exactly one of Action, View or Quit applies.
type Item struct {
	Label       string
	Description string
	Action      messages.Action
	View        messages.ViewType
	Quit        bool
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	help     help.Model
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// Items returns the menu entries. The query entry is only offered when
// a query service is available.
func Items(withQuery bool) []Item {
	items := []Item{
		{Label: "Setup", Description: "Scrape the website and build the index", Action: messages.ActionSetup},
		{Label: "Test", Description: "Check the embedding service and the index", Action: messages.ActionTest},
	}
	if withQuery {
		items = append(items, Item{Label: "Ask", Description: "Query the knowledge base", View: messages.ViewQuery})
	}
	return append(items,
		Item{Label: "Help", Description: "Show command usage", Action: messages.ActionHelp},
		Item{Label: "Quit", Quit: true},
	)
}

// NewView creates a new menu view.
func NewView(s *styles.Styles, km *keymap.KeyMap, items []Item) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if items == nil {
		items = Items(false)
	}

	return &View{
		styles: s,
		keymap: km,
		help:   help.New(),
		items:  items,
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}
		case key.Matches(msg, v.keymap.Down):
			if v.selected < len(v.items)-1 {
				v.selected++
			}
		case key.Matches(msg, v.keymap.Select):
			return v, v.choose(v.items[v.selected])
		case key.Matches(msg, v.keymap.Quit):
			return v, tea.Quit
		}
	}

	return v, nil
}

func (v *View) choose(item Item) tea.Cmd {
	switch {
	case item.Quit:
		return tea.Quit
	case item.Action != messages.ActionNone:
		return func() tea.Msg { return messages.ActionChosen{Action: item.Action} }
	default:
		return func() tea.Msg { return messages.ViewChanged{View: item.View} }
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Aven Knowledge Base"))
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Customer support retrieval pipeline"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor, label := "  ", v.styles.Normal.Render(item.Label)
		if i == v.selected {
			cursor, label = "> ", v.styles.Selected.Render(item.Label)
		}
		b.WriteString(cursor + label)
		if item.Description != "" {
			b.WriteString("  " + v.styles.Muted.Render(item.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.help.ShortHelpView(v.keymap.ShortHelp()))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.help.Width = width
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
