package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DONOR_PORT", "LOG_LEVEL", "DONOR_CONVERSATIONS_FILE",
		"DONOR_QUESTIONNAIRE_VERSION", "DONOR_MAX_UPLOAD_MB",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8760, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "conversations.json", cfg.ConversationsFile)
	assert.Equal(t, "v2", cfg.QuestionnaireVersion)
	assert.Equal(t, 512, cfg.MaxUploadMB)
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DONOR_PORT", "9999")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DONOR_CONVERSATIONS_FILE", "chats.json")
	t.Setenv("DONOR_QUESTIONNAIRE_VERSION", "v1")
	t.Setenv("DONOR_MAX_UPLOAD_MB", "64")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "chats.json", cfg.ConversationsFile)
	assert.Equal(t, "v1", cfg.QuestionnaireVersion)
	assert.Equal(t, 64, cfg.MaxUploadMB)
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("DONOR_PORT", "notanumber")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8760, cfg.Port, "expected default port on invalid value")
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "donor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 7000\nquestionnaire_version: v1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "v1", cfg.QuestionnaireVersion)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "donor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 7000\n"), 0o644))
	t.Setenv("DONOR_PORT", "7001")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7001, cfg.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "donor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [7000\nmax_upload_mb: {\n"), 0o644))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestLoad_FileInvalidIntFallsBack(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "donor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_upload_mb: lots\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 512, cfg.MaxUploadMB)
}
