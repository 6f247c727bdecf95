//go:build integration

package lifecycle_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/graveboards/gbctl/pkg/cache"
	"github.com/graveboards/gbctl/pkg/config"
	"github.com/graveboards/gbctl/pkg/gate"
	"github.com/graveboards/gbctl/pkg/store"
	"github.com/graveboards/gbctl/pkg/store/seed"
)

// Shared containers, started once in TestMain.
var (
	pgContainer    *tcpostgres.PostgresContainer
	redisContainer *tcredis.RedisContainer
	testConfig     *config.Config
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	pg, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("graveboards"),
		tcpostgres.WithUsername("graveboards"),
		tcpostgres.WithPassword("graveboards"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
		os.Exit(1)
	}
	pgContainer = pg

	rd, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis container: %v\n", err)
		_ = pg.Terminate(ctx)
		os.Exit(1)
	}
	redisContainer = rd

	testConfig, err = buildConfig(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build test config: %v\n", err)
		_ = rd.Terminate(ctx)
		_ = pg.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	_ = rd.Terminate(ctx)
	_ = pg.Terminate(ctx)
	os.Exit(code)
}

func buildConfig(ctx context.Context) (*config.Config, error) {
	pgHost, err := pgContainer.Host(ctx)
	if err != nil {
		return nil, err
	}
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		return nil, err
	}
	rdHost, err := redisContainer.Host(ctx)
	if err != nil {
		return nil, err
	}
	rdPort, err := redisContainer.MappedPort(ctx, "6379")
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Env:             config.EnvDevelopment,
		BaseURL:         "http://localhost:3000",
		JWTSecretKey:    "abcdefghijklmnopqrstuvwxyz123456",
		JWTAlgorithm:    "HS256",
		AdminUserIDs:    []int64{5099768},
		OsuClientID:     "client",
		OsuClientSecret: "secret",
		Postgres: config.PostgresConfig{
			Host:     pgHost,
			Port:     pgPort.Int(),
			Username: "graveboards",
			Password: "graveboards",
			Database: "graveboards",
		},
		Redis: config.RedisConfig{
			Host: rdHost,
			Port: rdPort.Int(),
		},
	}
	return cfg, cfg.Validate()
}

func openStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.Open(testConfig)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestGateAgainstLiveDependencies(t *testing.T) {
	ctx := context.Background()

	endpoints := []gate.Endpoint{
		{Name: "database", Host: testConfig.Postgres.Host, Port: testConfig.Postgres.Port},
		{Name: "cache", Host: testConfig.Redis.Host, Port: testConfig.Redis.Port},
	}
	err := gate.Await(ctx, endpoints, gate.Options{Timeout: 10 * time.Second, Quiet: true})
	require.NoError(t, err)
}

func TestResetProducesBootstrapOnlyState(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	require.NoError(t, st.Reset(ctx))

	status, err := st.Status(ctx)
	require.NoError(t, err)

	assert.True(t, status.MigrationsApplied)
	assert.False(t, status.Dirty)
	assert.False(t, status.Seeded)

	counts := tableCounts(status)
	assert.Equal(t, int64(2), counts["roles"], "admin and privileged")
	assert.Equal(t, int64(1), counts["users"], "admin user only")
	assert.Equal(t, int64(1), counts["queues"], "master queue only")
	assert.Equal(t, int64(1), counts["api_keys"])
	assert.Zero(t, counts["beatmapsets"])
	assert.Zero(t, counts["requests"])
}

func TestResetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	require.NoError(t, st.Reset(ctx))
	first, err := st.Status(ctx)
	require.NoError(t, err)

	require.NoError(t, st.Reset(ctx))
	second, err := st.Status(ctx)
	require.NoError(t, err)

	assert.Equal(t, tableCounts(first), tableCounts(second))
}

func TestSeedAllIsAdditiveAndRepeatable(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	require.NoError(t, st.Reset(ctx))

	report, err := seed.Run(ctx, st, seed.TargetAll)
	require.NoError(t, err)
	assert.Positive(t, report.Inserted())
	assert.Zero(t, report.Failed())

	status, err := st.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Seeded)
	after := tableCounts(status)

	// Running the same seed again skips every existing row.
	report, err = seed.Run(ctx, st, seed.TargetAll)
	require.NoError(t, err)
	assert.Zero(t, report.Inserted())
	assert.Zero(t, report.Failed())

	status, err = st.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, after, tableCounts(status))
}

func TestSeedTargetPullsInDependencies(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	require.NoError(t, st.Reset(ctx))

	_, err := seed.Run(ctx, st, seed.TargetRequests)
	require.NoError(t, err)

	status, err := st.Status(ctx)
	require.NoError(t, err)
	counts := tableCounts(status)

	assert.Positive(t, counts["requests"])
	assert.Positive(t, counts["queues"])
	assert.Positive(t, counts["beatmapsets"])
	assert.Positive(t, counts["users"])
}

func TestFreshMatchesResetThenSeed(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	// reset followed by seed all
	require.NoError(t, st.Reset(ctx))
	_, err := seed.Run(ctx, st, seed.TargetAll)
	require.NoError(t, err)
	sequential, err := st.Status(ctx)
	require.NoError(t, err)

	// fresh is the same composition behind one confirmation
	require.NoError(t, st.Reset(ctx))
	_, err = seed.Run(ctx, st, seed.TargetAll)
	require.NoError(t, err)
	fresh, err := st.Status(ctx)
	require.NoError(t, err)

	assert.Equal(t, tableCounts(sequential), tableCounts(fresh))
}

func TestCacheFlush(t *testing.T) {
	ctx := context.Background()

	ch := cache.New(testConfig.Redis)
	defer ch.Close()

	require.NoError(t, ch.Ping(ctx))
	require.NoError(t, ch.FlushDB(ctx))
}

func tableCounts(status *store.Status) map[string]int64 {
	counts := make(map[string]int64, len(status.Tables))
	for _, tc := range status.Tables {
		counts[tc.Table] = tc.Count
	}
	return counts
}
