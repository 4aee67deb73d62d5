// Package cli provides the cobra command tree for hublogin.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hublogin/internal/adapters/driven/browser"
	"github.com/custodia-labs/hublogin/internal/adapters/driven/config/file"
	"github.com/custodia-labs/hublogin/internal/adapters/driven/hubapi"
	"github.com/custodia-labs/hublogin/internal/core/ports/driving"
	"github.com/custodia-labs/hublogin/internal/core/services"
	"github.com/custodia-labs/hublogin/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flag values.
var (
	verbose   bool
	configDir string
	serverURL string
	token     string
)

// Services holds the driving ports used by the commands.
type Services struct {
	Login      driving.LoginService
	Settings   driving.SettingsService
	ConfigPath string
}

var (
	loginService    driving.LoginService
	settingsService driving.SettingsService
	configPath      string

	// injected is true when SetServices supplied the ports, skipping wiring.
	injected bool
)

var rootCmd = &cobra.Command{
	Use:   "hublogin",
	Short: "Log in to Globus from the terminal",
	Long: `hublogin drives the manual Globus login flow of a Jupyter server
running the globus-jupyterlab extension.

Step 1 opens the Globus login page in your browser. Step 2 takes the
authorization code Globus shows you and sends it to the server.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.hublogin)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server-url", "", "Jupyter server base URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Jupyter server API token")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices injects the driving ports, bypassing config-based wiring.
// Passing nil restores wiring from flags and the config file.
func SetServices(s *Services) {
	if s == nil {
		loginService, settingsService, configPath = nil, nil, ""
		injected = false
		return
	}
	loginService = s.Login
	settingsService = s.Settings
	configPath = s.ConfigPath
	injected = true
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if injected {
		return nil
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	configPath = store.Path()
	logger.Debug("config: %s", configPath)

	settingsSvc := services.NewSettingsService(store)
	settingsService = settingsSvc

	settings, err := settingsSvc.Get()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if serverURL != "" {
		settings.ServerURL = serverURL
	}
	if token != "" {
		settings.Token = token
	}

	client, err := hubapi.NewClient(settings.ServerURL,
		hubapi.WithToken(settings.Token),
		hubapi.WithXSRFToken(settings.XSRFToken),
	)
	if err != nil {
		// config commands must still work against a broken server URL
		logger.Warn("hub client unavailable: %v", err)
		loginService = nil
		return nil
	}

	loginService = services.NewLoginService(client, browser.NewOpener(),
		services.WithDefaultLoginURL(settings.LoginURL),
		services.WithBrowser(settings.OpenBrowser),
	)
	logger.Debug("server: %s", settings.ServerURL)
	return nil
}

func requireLogin() (driving.LoginService, error) {
	if loginService == nil {
		return nil, errors.New("login service not configured: check server.url")
	}
	return loginService, nil
}
