// Package query provides the question and results view for the TUI.
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui/keymap"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui/messages"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui/styles"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driving"
)

// previewChars caps the content shown per result.
const previewChars = 300

// View represents the query view with an input and a results list.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	help    help.Model
	input   textinput.Model
	spinner spinner.Model

	service driving.QueryService
	topK    int
	ctx     context.Context

	query   string
	results []domain.QueryResult
	err     error
	loading bool

	width  int
	height int
}

// NewView creates a new query view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.QueryService, topK int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ti := textinput.New()
	ti.Placeholder = "How do HELOC loans work?"
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &View{
		styles:  s,
		keymap:  km,
		help:    help.New(),
		input:   ti,
		spinner: sp,
		service: service,
		topK:    topK,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for queries.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the input and any results.
func (v *View) Reset() {
	v.input.Reset()
	v.input.Focus()
	v.query = ""
	v.results = nil
	v.err = nil
	v.loading = false
}

// Update handles messages for the query view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.QueryCompleted:
		if msg.Query != v.query {
			return v, nil
		}
		v.loading = false
		v.results = msg.Results
		v.err = msg.Err
		return v, nil

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }

	case v.input.Focused() && key.Matches(msg, v.keymap.Submit):
		text := strings.TrimSpace(v.input.Value())
		if text == "" || v.service == nil {
			return v, nil
		}
		v.query = text
		v.loading = true
		v.results = nil
		v.err = nil
		v.input.Blur()
		return v, tea.Batch(v.spinner.Tick, v.search(text))

	case !v.input.Focused() && key.Matches(msg, v.keymap.NewQuery):
		v.Reset()
		return v, textinput.Blink
	}

	if !v.input.Focused() {
		return v, nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) search(text string) tea.Cmd {
	ctx, service, topK := v.ctx, v.service, v.topK
	return func() tea.Msg {
		results, err := service.Query(ctx, text, topK)
		return messages.QueryCompleted{Query: text, Results: results, Err: err}
	}
}

// View renders the query view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Ask the knowledge base"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.InputField.Render(v.input.View()))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.spinner.View() + " Searching...")
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	case v.query != "" && len(v.results) == 0:
		b.WriteString(v.styles.Warning.Render("No results found."))
		b.WriteString("\n")
	default:
		for i, r := range v.results {
			b.WriteString(v.renderResult(i, r))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.help.ShortHelpView(v.keymap.QueryHelp()))
	return b.String()
}

func (v *View) renderResult(i int, r domain.QueryResult) string {
	title := r.Title
	if title == "" {
		title = r.URL
	}
	header := fmt.Sprintf("%d. %s  %s", i+1, v.styles.Normal.Bold(true).Render(title), v.styles.Relevance(r.Score))
	body := v.styles.Muted.Render(r.URL) + "\n" + v.styles.Normal.Render(preview(r.Content))

	width := v.width - 4
	if width < 20 {
		width = 20
	}
	return v.styles.Result.Width(width).Render(header + "\n" + body)
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= previewChars {
		return s
	}
	return string(r[:previewChars]) + "..."
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.help.Width = width
}

// Query returns the last submitted query.
func (v *View) Query() string {
	return v.query
}

// Results returns the current results.
func (v *View) Results() []domain.QueryResult {
	return v.results
}

// Loading reports whether a query is in flight.
func (v *View) Loading() bool {
	return v.loading
}
