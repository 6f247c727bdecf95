package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graveboards/gbctl/pkg/config"
)

const testRecord = `ENV=development
BASE_URL=http://localhost:3000
JWT_SECRET_KEY=abcdefghijklmnopqrstuvwxyz123456
JWT_ALGORITHM=HS256
ADMIN_USER_IDS=5099768
DISABLE_SECURITY=false
OSU_CLIENT_ID=client
OSU_CLIENT_SECRET=secret
POSTGRESQL_HOST=localhost
POSTGRESQL_PORT=5432
POSTGRESQL_USERNAME=graveboards
POSTGRESQL_PASSWORD=graveboards
POSTGRESQL_DATABASE=graveboards
REDIS_HOST=localhost
REDIS_PORT=6379
REDIS_USERNAME=
REDIS_PASSWORD=
REDIS_DB=0
`

// writeTestRecord points the global --env-file flag at a fresh record and
// restores it afterwards.
func writeTestRecord(t *testing.T) {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(testRecord), 0o600))

	orig := envFile
	envFile = path
	t.Cleanup(func() { envFile = orig })
}

func TestResolveEnvMode(t *testing.T) {
	orig := envMode
	defer func() { envMode = orig }()

	envMode = ""
	t.Setenv("ENV", "")
	assert.Equal(t, config.EnvDevelopment, resolveEnvMode())

	t.Setenv("ENV", "production")
	assert.Equal(t, config.EnvProduction, resolveEnvMode())

	envMode = "development"
	assert.Equal(t, config.EnvDevelopment, resolveEnvMode(), "flag wins over environment")
}

func TestIsQuiet(t *testing.T) {
	orig := quiet
	defer func() { quiet = orig }()

	quiet = false
	t.Setenv("QUIET", "")
	assert.False(t, isQuiet())

	t.Setenv("QUIET", "1")
	assert.True(t, isQuiet())

	t.Setenv("QUIET", "0")
	assert.False(t, isQuiet())

	quiet = true
	assert.True(t, isQuiet())
}

func TestLoadConfigMissingRecord(t *testing.T) {
	orig := envFile
	defer func() { envFile = orig }()

	envFile = filepath.Join(t.TempDir(), ".env")
	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gbctl provision")
}

func TestDependencyEndpointsOrder(t *testing.T) {
	writeTestRecord(t)

	cfg, err := loadConfig()
	require.NoError(t, err)

	endpoints := dependencyEndpoints(cfg)
	require.Len(t, endpoints, 2)
	assert.Equal(t, "database", endpoints[0].Name)
	assert.Equal(t, "localhost:5432", endpoints[0].Addr())
	assert.Equal(t, "cache", endpoints[1].Name)
	assert.Equal(t, "localhost:6379", endpoints[1].Addr())
}

// stubConfirm swaps the confirmation gate and records whether it ran.
func stubConfirm(t *testing.T, answer bool) *bool {
	t.Helper()

	called := false
	orig := confirm
	confirm = func(label string, force bool) (bool, error) {
		called = true
		if force {
			return true, nil
		}
		return answer, nil
	}
	t.Cleanup(func() { confirm = orig })
	return &called
}

func TestResetDeclinedLeavesEverythingUntouched(t *testing.T) {
	writeTestRecord(t)
	called := stubConfirm(t, false)

	resetCmd.SetContext(context.Background())
	err := runReset(resetCmd, nil)
	require.ErrorIs(t, err, ErrDeclined)
	assert.True(t, *called, "confirmation must be consulted")
}

func TestFreshDeclined(t *testing.T) {
	writeTestRecord(t)
	stubConfirm(t, false)

	freshCmd.SetContext(context.Background())
	err := runFresh(freshCmd, []string{"all"})
	require.ErrorIs(t, err, ErrDeclined)
}

func TestFreshRejectsUnknownTarget(t *testing.T) {
	writeTestRecord(t)
	called := stubConfirm(t, true)

	freshCmd.SetContext(context.Background())
	err := runFresh(freshCmd, []string{"nonsense"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDeclined)
	assert.False(t, *called, "target parsing happens before the prompt")
}

func TestSeedRejectsUnknownTarget(t *testing.T) {
	writeTestRecord(t)

	seedCmd.SetContext(context.Background())
	err := runSeed(seedCmd, []string{"nonsense"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown seed target")
}
