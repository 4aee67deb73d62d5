// Package login provides the two-step Globus login panel for the TUI.
//
// Step one opens the external login page; step two accepts the authorization
// code the user copies back from Globus and posts it to the callback endpoint.
package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/hublogin/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/hublogin/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/hublogin/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/hublogin/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hublogin/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hublogin/internal/core/domain"
	"github.com/custodia-labs/hublogin/internal/core/ports/driving"
)

// Labels rendered by the panel.
const (
	LabelLogIn       = "Log In to Globus"
	LabelContinue    = "Continue"
	LabelShowDetails = "Show details"
	LabelHideDetails = "Hide Details"

	stepOneTitle = "1. Log In to Globus to obtain an Authorization Code for this transfer"
	stepTwoTitle = "2. Copy and paste the Authorization Code you just received from Globus"
)

// Focus identifies the focused control.
type Focus int

const (
	FocusLogin Focus = iota
	FocusCode
	FocusContinue
	FocusDetails
)

// View is the login panel.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusBar *status.Bar
	service   driving.LoginService
	ctx       context.Context

	hubResponse domain.HubResponse
	detailLines []string

	codeInput *input.CodeInput
	inputCode string
	// continueLatched is set by the first non-empty code and never cleared
	// until the view is reset.
	continueLatched bool
	inFlight        bool
	apiError        *domain.CallbackError

	detailsShown bool
	focus        Focus

	loginURL string
	openErr  error

	width  int
	height int
}

// NewView creates a login panel for hubResponse.
func NewView(s *styles.Styles, service driving.LoginService, hubResponse domain.HubResponse) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	v := &View{
		styles:      s,
		keymap:      km,
		statusBar:   status.NewBar(s, km),
		service:     service,
		ctx:         context.Background(),
		hubResponse: hubResponse,
		codeInput:   input.NewCodeInput(s),
		focus:       FocusLogin,
		width:       80,
		height:      24,
	}
	if hubResponse.HasDetails() {
		v.detailLines = domain.SplitDetails(*hubResponse.Details)
	}
	return v
}

// WithContext sets the context used for login and callback requests.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.codeInput.Init()
}

// Update handles messages for the login panel.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.LoginOpened:
		v.loginURL = msg.URL
		v.openErr = msg.Err
		return v, nil

	case messages.CallbackCompleted:
		v.inFlight = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.statusBar.Clear()
		return v, nil
	}

	// Forward remaining messages (cursor blink) to the code field.
	var cmd tea.Cmd
	v.codeInput, cmd = v.codeInput.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.ErrorOnly() {
		if key.Matches(msg, v.keymap.Dismiss) {
			v.dismissError()
		}
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keymap.Next):
		return v, v.moveFocus(1)
	case key.Matches(msg, v.keymap.Prev):
		return v, v.moveFocus(-1)
	case key.Matches(msg, v.keymap.Activate):
		return v, v.activate()
	}

	if v.focus != FocusCode {
		return v, nil
	}

	var cmd tea.Cmd
	v.codeInput, cmd = v.codeInput.Update(msg)
	if value := v.codeInput.Value(); value != v.inputCode {
		v.setCode(value)
	}
	return v, cmd
}

// activate presses the focused control. Enter in the code field submits.
func (v *View) activate() tea.Cmd {
	switch v.focus {
	case FocusLogin:
		return v.openLogin()
	case FocusCode, FocusContinue:
		return v.submit()
	case FocusDetails:
		v.ToggleDetails()
	}
	return nil
}

// openLogin opens the login URL without waiting for the browser.
func (v *View) openLogin() tea.Cmd {
	ctx, service, resp := v.ctx, v.service, v.hubResponse
	return func() tea.Msg {
		loginURL, err := service.OpenLogin(ctx, resp)
		return messages.LoginOpened{URL: loginURL, Err: err}
	}
}

// setCode stores the raw field value and latches the continue control.
func (v *View) setCode(value string) {
	v.inputCode = value
	if value != "" {
		v.continueLatched = true
	}
}

// submit starts one callback request. It is a no-op while the continue
// control is disabled, which includes the time a request is in flight.
func (v *View) submit() tea.Cmd {
	if !v.ContinueEnabled() {
		return nil
	}

	v.inFlight = true
	v.apiError = nil
	v.statusBar.SetState(status.StateSubmitting)

	ctx, service, code := v.ctx, v.service, v.inputCode
	return func() tea.Msg {
		return messages.CallbackCompleted{Err: service.SubmitCode(ctx, code)}
	}
}

func (v *View) setError(err error) {
	cbErr, ok := domain.AsCallbackError(err)
	if !ok {
		cbErr = &domain.CallbackError{StatusText: "Request Failed", Details: err.Error(), Err: err}
	}
	v.apiError = cbErr
	v.statusBar.SetState(status.StateError)
	v.statusBar.SetMessage(cbErr.Headline())
}

// dismissError closes the banner and returns to the form for another attempt.
func (v *View) dismissError() {
	v.apiError = nil
	v.statusBar.Clear()
}

// ToggleDetails shows or hides the details panel. It does nothing when the
// hub response carries no details.
func (v *View) ToggleDetails() {
	if !v.hubResponse.HasDetails() {
		return
	}
	v.detailsShown = !v.detailsShown
}

func (v *View) focusOrder() []Focus {
	order := []Focus{FocusLogin, FocusCode, FocusContinue}
	if v.hubResponse.HasDetails() {
		order = append(order, FocusDetails)
	}
	return order
}

func (v *View) moveFocus(delta int) tea.Cmd {
	order := v.focusOrder()
	idx := 0
	for i, f := range order {
		if f == v.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	return v.setFocus(order[idx])
}

func (v *View) setFocus(f Focus) tea.Cmd {
	v.focus = f
	if f == FocusCode {
		return v.codeInput.Focus()
	}
	v.codeInput.Blur()
	return nil
}

// View renders the panel: the error banner when a callback failed, the
// two-step form otherwise.
func (v *View) View() string {
	if v.ErrorOnly() {
		return v.renderError()
	}
	return v.renderForm()
}

func (v *View) renderError() string {
	var b strings.Builder

	body := v.styles.Title.Render(v.apiError.Headline())
	if v.apiError.Details != "" {
		body += " " + strings.Join(domain.SplitDetails(v.apiError.Details), "\n")
	}
	b.WriteString(v.styles.ErrorBanner.Width(v.contentWidth()).Render(body))
	b.WriteString("\n\n")
	b.WriteString(v.statusBar.View())

	return b.String()
}

func (v *View) renderForm() string {
	steps := []string{v.renderStepOne(), v.renderStepTwo()}
	if v.hubResponse.HasDetails() {
		steps = append(steps, v.renderDetails())
	}

	stepStyle := v.styles.Step.Width(v.contentWidth())
	rendered := make([]string, len(steps))
	for i, s := range steps {
		rendered[i] = stepStyle.Render(s)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rendered...) + "\n" + v.statusBar.View()
}

func (v *View) renderStepOne() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(stepOneTitle))
	b.WriteString("\n")
	b.WriteString(v.renderButton(LabelLogIn, v.focus == FocusLogin, true))

	if v.loginURL != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Login page: " + v.loginURL))
	}
	if v.openErr != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Could not open a browser: " + v.openErr.Error()))
	}
	return b.String()
}

func (v *View) renderStepTwo() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(stepTwoTitle))
	b.WriteString("\n")
	b.WriteString(v.codeInput.View())
	b.WriteString("\n")
	b.WriteString(v.renderButton(LabelContinue, v.focus == FocusContinue, v.ContinueEnabled()))
	return b.String()
}

func (v *View) renderDetails() string {
	var b strings.Builder
	b.WriteString(v.renderButton(v.DetailsLabel(), v.focus == FocusDetails, true))
	if v.detailsShown {
		b.WriteString("\n")
		b.WriteString(v.styles.Details.Render(strings.Join(v.detailLines, "\n")))
	}
	return b.String()
}

func (v *View) renderButton(label string, focused, enabled bool) string {
	switch {
	case !enabled:
		return v.styles.ButtonDisabled.Render(label)
	case focused:
		return v.styles.ButtonFocused.Render(label)
	default:
		return v.styles.Button.Render(label)
	}
}

func (v *View) contentWidth() int {
	w := v.width - 2
	if w < 40 {
		w = 40
	}
	return w
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.codeInput.SetWidth(v.contentWidth() - 4)
	v.statusBar.SetWidth(width)
}

// Reset returns the panel to its initial state, as on remount.
func (v *View) Reset() {
	v.codeInput.Reset()
	v.inputCode = ""
	v.continueLatched = false
	v.inFlight = false
	v.apiError = nil
	v.detailsShown = false
	v.loginURL = ""
	v.openErr = nil
	v.statusBar.Clear()
	v.setFocus(FocusLogin)
}

// InputCode returns the code as last typed.
func (v *View) InputCode() string {
	return v.inputCode
}

// ContinueEnabled reports whether the continue control can be pressed.
func (v *View) ContinueEnabled() bool {
	return v.continueLatched && !v.inFlight
}

// InFlight reports whether a callback request is pending.
func (v *View) InFlight() bool {
	return v.inFlight
}

// APIError returns the stored callback error, or nil.
func (v *View) APIError() *domain.CallbackError {
	return v.apiError
}

// ErrorOnly reports whether the panel renders only the error banner.
func (v *View) ErrorOnly() bool {
	return v.apiError != nil
}

// DetailsShown reports whether the details panel is visible.
func (v *View) DetailsShown() bool {
	return v.detailsShown
}

// DetailsLabel returns the current label of the details toggle.
func (v *View) DetailsLabel() string {
	if v.detailsShown {
		return LabelHideDetails
	}
	return LabelShowDetails
}

// DetailLines returns the hub response details split into display lines.
func (v *View) DetailLines() []string {
	return v.detailLines
}

// Focused returns the focused control.
func (v *View) Focused() Focus {
	return v.focus
}

// LoginURL returns the last opened login URL.
func (v *View) LoginURL() string {
	return v.loginURL
}
