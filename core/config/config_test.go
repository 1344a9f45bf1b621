package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
}

func TestLoadMissingFileUsesDefault(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadKeepsDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "package_manager: pnpm\ninstall: false\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "pnpm", cfg.PackageManager)
	assert.False(t, cfg.Install)
	assert.True(t, cfg.Git)
	assert.Equal(t, "retry", cfg.PeerFailurePolicy)
	assert.Equal(t, []string{"**/.DS_Store"}, cfg.TemplateExcludes)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "peer_failure_policy: sometimes\n")

	_, err := Load(dir)
	assert.ErrorContains(t, err, "invalid config")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "package_manager: [npm\n")

	_, err := Load(dir)
	assert.ErrorContains(t, err, "failed to parse yaml")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "package_manager: pnpm\nlint_config_format: json\n")
	t.Setenv(EnvPrefix+"PACKAGE_MANAGER", "yarn")
	t.Setenv(EnvPrefix+"LINT_CONFIG_FORMAT", "yaml")
	t.Setenv(EnvPrefix+"GIT", "false")
	t.Setenv(EnvPrefix+"TEMPLATE_EXCLUDES", "**/*.md, fixtures/**")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "yarn", cfg.PackageManager)
	assert.Equal(t, "yaml", cfg.LintConfigFormat)
	assert.False(t, cfg.Git)
	assert.Equal(t, []string{"**/*.md", "fixtures/**"}, cfg.TemplateExcludes)
}

func TestEnvironmentRejectsBadBool(t *testing.T) {
	t.Setenv(EnvPrefix+"INSTALL", "maybe")

	_, err := Load(t.TempDir())
	assert.ErrorContains(t, err, EnvPrefix+"INSTALL")
}

func TestDotEnvFileIsLoaded(t *testing.T) {
	dir := t.TempDir()
	key := EnvPrefix + "VERSION_RANGE"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(key+"=^1.0.0\n"), 0o644))
	// godotenv never overrides variables already set; register cleanup for
	// the value it sets.
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "^1.0.0", cfg.VersionRange)
}
