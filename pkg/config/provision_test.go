package config

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePrompter returns canned answers and records whether it was consulted.
type fakePrompter struct {
	inputs  map[string]string
	secrets map[string]string
	ints    map[string]int64
	yesNo   map[string]bool
	called  bool
}

func (f *fakePrompter) Input(label string) (string, error) {
	f.called = true
	return f.inputs[label], nil
}

func (f *fakePrompter) Secret(label string) (string, error) {
	f.called = true
	return f.secrets[label], nil
}

func (f *fakePrompter) Int64(label string) (int64, error) {
	f.called = true
	return f.ints[label], nil
}

func (f *fakePrompter) YesNo(label string, defaultYes bool) (bool, error) {
	f.called = true
	return f.yesNo[label], nil
}

func newFakePrompter() *fakePrompter {
	return &fakePrompter{
		inputs:  map[string]string{"osu! OAuth client ID": "abc"},
		secrets: map[string]string{"osu! OAuth client secret": "xyz"},
		ints:    map[string]int64{"Administrator osu! user ID": 42},
		yesNo:   map[string]bool{"Disable API security (development only)": false},
	}
}

func TestEnsureConfig(t *testing.T) {
	t.Setenv("ENV", "development")

	t.Run("FirstRunProvisions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")

		cfg, created, err := EnsureConfig(path, EnvDevelopment, newFakePrompter())
		require.NoError(t, err)
		assert.True(t, created)

		assert.Equal(t, "abc", cfg.OsuClientID)
		assert.Equal(t, "xyz", cfg.OsuClientSecret)
		assert.Equal(t, []int64{42}, cfg.AdminUserIDs)
		assert.False(t, cfg.DisableSecurity)
		assert.Len(t, cfg.JWTSecretKey, SecretLength)
		assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9]+$`), cfg.JWTSecretKey)
		assert.Equal(t, "localhost", cfg.Postgres.Host)
		assert.Equal(t, "localhost", cfg.Redis.Host)

		// The persisted file is the flat key=value form.
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "ADMIN_USER_IDS=42\n")
		assert.Contains(t, string(raw), "DISABLE_SECURITY=false\n")
	})

	t.Run("SecondRunNeverPrompts", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")

		first, created, err := EnsureConfig(path, EnvDevelopment, newFakePrompter())
		require.NoError(t, err)
		require.True(t, created)

		p := newFakePrompter()
		second, created, err := EnsureConfig(path, EnvDevelopment, p)
		require.NoError(t, err)
		assert.False(t, created)
		assert.False(t, p.called, "existing record must not trigger prompts")
		assert.Equal(t, first.JWTSecretKey, second.JWTSecretKey, "secret is stable across restarts")
	})

	t.Run("UnwritableDestinationFails", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("permission checks do not apply to root")
		}
		dir := t.TempDir()
		require.NoError(t, os.Chmod(dir, 0500))
		t.Cleanup(func() { _ = os.Chmod(dir, 0700) })

		_, _, err := EnsureConfig(filepath.Join(dir, ".env"), EnvDevelopment, newFakePrompter())
		var perr *ProvisioningError
		require.ErrorAs(t, err, &perr)
	})

	t.Run("ProductionModeUsesServiceHostnames", func(t *testing.T) {
		t.Setenv("ENV", "production")
		path := filepath.Join(t.TempDir(), ".env")

		cfg, _, err := EnsureConfig(path, EnvProduction, newFakePrompter())
		require.NoError(t, err)
		assert.Equal(t, "postgresql", cfg.Postgres.Host)
		assert.Equal(t, "redis", cfg.Redis.Host)
	})
}

func TestWriteRecordExclusive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	record := Defaults(EnvDevelopment)
	record[KeyJWTSecretKey] = "abcdefghijklmnopqrstuvwxyzABCDEF"
	record[KeyAdminUserIDs] = "42"
	record[KeyOsuClientID] = "abc"
	record[KeyOsuClientSecret] = "xyz"

	require.NoError(t, writeRecord(path, record))

	// A second write must refuse to clobber the existing record.
	err := writeRecord(path, record)
	var perr *ProvisioningError
	require.ErrorAs(t, err, &perr)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
