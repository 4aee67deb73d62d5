package cli

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hublogin/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hublogin/internal/core/domain"
	"github.com/custodia-labs/hublogin/internal/core/services"
)

// MockLoginService implements driving.LoginService for CLI tests.
type MockLoginService struct {
	mu        sync.Mutex
	Submitted []string
	SubmitErr error
}

func (m *MockLoginService) LoginURL(resp domain.HubResponse) string {
	if resp.HasLoginURL() {
		return *resp.LoginURL
	}
	return "http://localhost:8888/globus-jupyterlab/login"
}

func (m *MockLoginService) OpenLogin(_ context.Context, resp domain.HubResponse) (string, error) {
	return m.LoginURL(resp), nil
}

func (m *MockLoginService) SubmitCode(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Submitted = append(m.Submitted, code)
	return m.SubmitErr
}

var testLogin = &MockLoginService{}

func TestMain(m *testing.M) {
	SetServices(&Services{
		Login:      testLogin,
		Settings:   services.NewSettingsService(memory.NewConfigStore()),
		ConfigPath: "/tmp/hublogin-test/config.toml",
	})
	os.Exit(m.Run())
}

// useLogin swaps the injected login service for the duration of a test.
func useLogin(t *testing.T, svc *MockLoginService) {
	t.Helper()
	prev := loginService
	loginService = svc
	t.Cleanup(func() { loginService = prev })
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "hublogin", rootCmd.Use)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "config-dir", "server-url", "token"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"login", "callback", "config", "version"} {
		assert.True(t, names[want], "%s command should be registered", want)
	}
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("1.2.3")

	assert.Equal(t, "1.2.3", version)
}

func TestRequireLogin_NotConfigured(t *testing.T) {
	prev := loginService
	loginService = nil
	defer func() { loginService = prev }()

	_, err := requireLogin()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.url")
}

func TestSetup_WiresFromConfigDir(t *testing.T) {
	prevLogin, prevSettings, prevPath := loginService, settingsService, configPath
	SetServices(nil)
	defer func() {
		SetServices(&Services{Login: prevLogin, Settings: prevSettings, ConfigPath: prevPath})
		configDir, serverURL = "", ""
	}()

	configDir = t.TempDir()
	serverURL = "http://hub.example.org/user/alice/"

	require.NoError(t, setup(rootCmd, nil))

	assert.NotNil(t, loginService)
	assert.NotNil(t, settingsService)
	assert.Contains(t, configPath, configDir)
	assert.Equal(t,
		"http://hub.example.org/user/alice/globus-jupyterlab/login",
		loginService.LoginURL(domain.HubResponse{}))
}

func TestSetup_InvalidServerURLKeepsConfig(t *testing.T) {
	prevLogin, prevSettings, prevPath := loginService, settingsService, configPath
	SetServices(nil)
	defer func() {
		SetServices(&Services{Login: prevLogin, Settings: prevSettings, ConfigPath: prevPath})
		configDir, serverURL = "", ""
	}()

	configDir = t.TempDir()
	serverURL = "not a url"

	require.NoError(t, setup(rootCmd, nil))

	assert.Nil(t, loginService)
	assert.NotNil(t, settingsService)
}
