package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hublogin/internal/core/domain"
)

// resetLoginFlags clears login flag state shared across tests.
func resetLoginFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		for _, name := range []string{"login-url", "details", "hub-response"} {
			f := loginCmd.Flags().Lookup(name)
			_ = f.Value.Set("")
			f.Changed = false
		}
	})
}

func writeHubResponse(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hub.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoginCmd_Flags(t *testing.T) {
	for _, name := range []string{"login-url", "details", "hub-response"} {
		assert.NotNil(t, loginCmd.Flags().Lookup(name), name)
	}
}

func TestLoginCmd_LongDescription(t *testing.T) {
	assert.Contains(t, loginCmd.Long, "oauth_callback_manual")
	assert.Contains(t, loginCmd.Long, "Controls:")
}

func TestBuildHubResponse_Empty(t *testing.T) {
	resetLoginFlags(t)

	resp, err := buildHubResponse(loginCmd)

	require.NoError(t, err)
	assert.False(t, resp.HasLoginURL())
	assert.False(t, resp.HasDetails())
}

func TestBuildHubResponse_Flags(t *testing.T) {
	resetLoginFlags(t)
	require.NoError(t, loginCmd.Flags().Set("login-url", "https://auth.globus.org/x"))
	require.NoError(t, loginCmd.Flags().Set("details", "line1\nline2"))

	resp, err := buildHubResponse(loginCmd)

	require.NoError(t, err)
	require.True(t, resp.HasLoginURL())
	assert.Equal(t, "https://auth.globus.org/x", *resp.LoginURL)
	require.True(t, resp.HasDetails())
	assert.Equal(t, "line1\nline2", *resp.Details)
}

func TestBuildHubResponse_FileWithFlagOverride(t *testing.T) {
	resetLoginFlags(t)
	path := writeHubResponse(t, `{"login_url": "https://from-file", "details": "from file"}`)
	require.NoError(t, loginCmd.Flags().Set("hub-response", path))
	require.NoError(t, loginCmd.Flags().Set("login-url", "https://from-flag"))

	resp, err := buildHubResponse(loginCmd)

	require.NoError(t, err)
	assert.Equal(t, "https://from-flag", *resp.LoginURL)
	assert.Equal(t, "from file", *resp.Details)
}

func TestBuildHubResponse_InvalidJSON(t *testing.T) {
	resetLoginFlags(t)
	path := writeHubResponse(t, `{not json`)
	require.NoError(t, loginCmd.Flags().Set("hub-response", path))

	_, err := buildHubResponse(loginCmd)

	assert.ErrorIs(t, err, domain.ErrInvalidHubResponse)
}

func TestBuildHubResponse_MissingFile(t *testing.T) {
	resetLoginFlags(t)
	require.NoError(t, loginCmd.Flags().Set("hub-response", filepath.Join(t.TempDir(), "missing.json")))

	_, err := buildHubResponse(loginCmd)

	assert.Error(t, err)
}

func TestLoginCmd_NotConfigured(t *testing.T) {
	prev := loginService
	loginService = nil
	defer func() { loginService = prev }()

	_, _, err := execute(t, "login")

	assert.Error(t, err)
}
