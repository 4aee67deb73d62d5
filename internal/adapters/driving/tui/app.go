package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/hublogin/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/hublogin/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hublogin/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hublogin/internal/adapters/driving/tui/views/login"
	"github.com/custodia-labs/hublogin/internal/core/domain"
)

// App is the TUI application following the Elm architecture.
// It hosts the login panel and exits once a code has been accepted.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the global keybindings.
	keymap *keymap.KeyMap

	// loginView is the two-step login panel.
	loginView *login.View

	// succeeded is set once the callback endpoint accepted a code.
	succeeded bool

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:     ports,
		ctx:       context.Background(),
		styles:    s,
		keymap:    keymap.DefaultKeyMap(),
		loginView: login.NewView(s, ports.Login, ports.HubResponse),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.loginView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(domain.DefaultLoginWindow().Name),
		a.loginView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.loginView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keymap.Quit) {
			return a, tea.Quit
		}

	case messages.CallbackCompleted:
		a.loginView, cmd = a.loginView.Update(msg)
		if msg.Err == nil {
			a.succeeded = true
			return a, tea.Quit
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	a.loginView, cmd = a.loginView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.loginView.View()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Succeeded reports whether the callback endpoint accepted a code.
func (a *App) Succeeded() bool {
	return a.succeeded
}

// LoginView returns the hosted login panel.
func (a *App) LoginView() *login.View {
	return a.loginView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.loginView.SetDimensions(width, height)
}
