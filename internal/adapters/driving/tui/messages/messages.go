// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewQuery is the question input and results view.
	ViewQuery
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewQuery:
		return "query"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// Action is a command chosen from the menu that runs after the TUI exits.
type Action int

// Menu actions.
const (
	ActionNone Action = iota
	ActionSetup
	ActionTest
	ActionHelp
)

// String returns the command name of the action.
func (a Action) String() string {
	switch a {
	case ActionSetup:
		return "setup"
	case ActionTest:
		return "test"
	case ActionHelp:
		return "help"
	default:
		return ""
	}
}

// ActionChosen is sent when the user picks an action from the menu.
type ActionChosen struct {
	Action Action
}

// QueryCompleted carries query results back to the query view.
type QueryCompleted struct {
	Query   string
	Results []domain.QueryResult
	Err     error
}
