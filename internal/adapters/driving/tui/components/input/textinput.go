// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/hublogin/internal/adapters/driving/tui/styles"
)

// CodeLabel labels the authorization code field.
const CodeLabel = "Authorization Code"

// CodeInput wraps a bubbles textinput for pasting an authorization code.
// The value is kept exactly as typed or pasted.
type CodeInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewCodeInput creates a new, unfocused code input.
func NewCodeInput(s *styles.Styles) *CodeInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Paste the code from Globus..."
	ti.Prompt = ""
	ti.CharLimit = 0 // unlimited; the code is submitted as pasted
	ti.Width = 50

	return &CodeInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the code input.
func (c *CodeInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (c *CodeInput) Update(msg tea.Msg) (*CodeInput, tea.Cmd) {
	var cmd tea.Cmd
	c.textinput, cmd = c.textinput.Update(msg)
	return c, cmd
}

// View renders the label and the input.
func (c *CodeInput) View() string {
	field := c.styles.InputField
	if c.textinput.Focused() {
		field = c.styles.InputFieldFocused
	}
	label := c.styles.Normal.Render(CodeLabel)
	return lipgloss.JoinVertical(lipgloss.Left, label, field.Render(c.textinput.View()))
}

// Value returns the current input value.
func (c *CodeInput) Value() string {
	return c.textinput.Value()
}

// SetValue sets the input value.
func (c *CodeInput) SetValue(value string) {
	c.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (c *CodeInput) Focus() tea.Cmd {
	return c.textinput.Focus()
}

// Blur removes focus from the input.
func (c *CodeInput) Blur() {
	c.textinput.Blur()
}

// Focused returns whether the input is focused.
func (c *CodeInput) Focused() bool {
	return c.textinput.Focused()
}

// SetWidth sets the width of the input.
func (c *CodeInput) SetWidth(width int) {
	c.width = width
	// Account for border and padding
	inputWidth := width - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	c.textinput.Width = inputWidth
}

// Width returns the current width.
func (c *CodeInput) Width() int {
	return c.width
}

// Reset clears the input.
func (c *CodeInput) Reset() {
	c.textinput.Reset()
}
