package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hublogin/internal/adapters/driving/tui"
	"github.com/custodia-labs/hublogin/internal/core/domain"
	"github.com/custodia-labs/hublogin/internal/logger"
)

// logFileName is the verbose log written while the TUI owns the terminal.
const logFileName = "hublogin.log"

var (
	loginURLFlag    string
	loginDetails    string
	hubResponseFile string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Run the interactive Globus login panel",
	Long: `Run the two-step Globus login panel.

Step 1 opens the Globus login page. Step 2 takes the authorization code
and sends it to the server's oauth_callback_manual endpoint.

Controls:
  Tab/↓, Shift+Tab/↑ - Move focus
  Enter              - Activate / Continue
  Esc                - Dismiss error
  Ctrl+C             - Quit`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginURLFlag, "login-url", "", "login URL returned by the hub")
	loginCmd.Flags().StringVar(&loginDetails, "details", "", "details text returned by the hub")
	loginCmd.Flags().StringVar(&hubResponseFile, "hub-response", "", "JSON file with login_url and details")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	svc, err := requireLogin()
	if err != nil {
		return err
	}

	resp, err := buildHubResponse(cmd)
	if err != nil {
		return err
	}

	if logger.IsVerbose() && configPath != "" {
		restore, err := logger.ToFile(filepath.Join(filepath.Dir(configPath), logFileName))
		if err != nil {
			return err
		}
		defer func() { _ = restore() }()
	}

	app, err := tui.NewApp(tui.NewPorts(svc, resp))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if app.Succeeded() {
		cmd.Println("Globus login complete.")
	}
	return nil
}

// buildHubResponse reads the hub response file, then applies flag overrides.
func buildHubResponse(cmd *cobra.Command) (domain.HubResponse, error) {
	var resp domain.HubResponse

	if hubResponseFile != "" {
		data, err := os.ReadFile(hubResponseFile)
		if err != nil {
			return resp, fmt.Errorf("read hub response: %w", err)
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			return resp, fmt.Errorf("%w: %v", domain.ErrInvalidHubResponse, err)
		}
	}

	if cmd.Flags().Changed("login-url") {
		v := loginURLFlag
		resp.LoginURL = &v
	}
	if cmd.Flags().Changed("details") {
		v := loginDetails
		resp.Details = &v
	}
	return resp, nil
}
