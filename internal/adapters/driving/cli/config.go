package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage hublogin configuration",
	Long: `View and edit the settings stored in config.toml.

Keys:
  server.url          Jupyter server base URL
  server.token        Jupyter server API token
  server.xsrf_token   XSRF token sent with requests
  login.url           login URL used when the hub returns none
  login.open_browser  open the login page in a browser (true/false)`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	if configPath != "" {
		cmd.Printf("File: %s\n", configPath)
	}
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  URL: %s\n", settings.ServerURL)
	cmd.Printf("  Token: %s\n", maskSecret(settings.Token))
	cmd.Printf("  XSRF Token: %s\n", maskSecret(settings.XSRFToken))
	cmd.Println()

	cmd.Println("[Login]")
	if settings.LoginURL != "" {
		cmd.Printf("  URL: %s\n", settings.LoginURL)
	} else {
		cmd.Printf("  URL: (server default)\n")
	}
	cmd.Printf("  Open Browser: %t\n", settings.OpenBrowser)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

// maskSecret shows only the last four characters of a secret.
func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
