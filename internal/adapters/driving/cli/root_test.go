package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "kb", rootCmd.Use)
}

func TestRootCmd_LongListsEnvironment(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "FIRECRAWL_API_KEY")
	assert.Contains(t, rootCmd.Long, "GEMINI_API_KEY")
	assert.Contains(t, rootCmd.Long, "PINECONE_API_KEY")
	assert.Contains(t, rootCmd.Long, "customer-support-kb")
}

func TestRootCmd_HasPersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "config-dir", "log-format"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_NonInteractivePrintsUsage(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, code := execute()

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "setup")
}

func TestRootCmd_HelpExitsZero(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, code := execute("help")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Environment variables")
}

func TestRootCmd_UnknownCommandFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, code := execute("frobnicate")

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "unknown command")
}

func TestRootCmd_InvalidLogFormatFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, code := execute("--log-format", "xml", "version")

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "unknown log format")
}

func TestRootCmd_BootstrapRunsOnce(t *testing.T) {
	calls := 0
	var gotDir string
	SetBootstrap(func(configDir string) (*Services, error) {
		calls++
		gotDir = configDir
		return &Services{Settings: &mockSettingsService{values: map[string]string{}}}, nil
	})
	defer func() {
		SetBootstrap(nil)
		SetServices(nil)
	}()

	_, code := execute("--config-dir", "/tmp/kb-test", "config", "path")

	assert.Equal(t, 0, code)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "/tmp/kb-test", gotDir)
}

func TestRootCmd_BootstrapErrorFails(t *testing.T) {
	SetBootstrap(func(string) (*Services, error) {
		return nil, errors.New("disk full")
	})
	defer SetBootstrap(nil)

	out, code := execute("stats")

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "disk full")
}

func TestNewSession_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := newSession(context.Background(), SessionOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSession_CloseNil(t *testing.T) {
	var s *Session
	assert.NoError(t, s.Close())
	assert.NoError(t, (&Session{}).Close())
}

func TestSetVersion(t *testing.T) {
	orig := version
	defer func() { version = orig }()

	SetVersion("")
	assert.Equal(t, orig, version)

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}
