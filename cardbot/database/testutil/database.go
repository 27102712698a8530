// Package testutil starts a throwaway PostgreSQL for repository tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/ellavondegurechaff/cardbot/cardbot/database"
)

type TestDatabase struct {
	Container *postgres.PostgresContainer
	DB        *database.DB
	URL       string
}

// SetupTestDatabase runs a postgres container with every migration applied.
// Tests calling it are skipped in -short mode.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("cardbot_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
		withLabels(map[string]string{
			"test":      "cardbot-repository",
			"test-name": t.Name(),
			"timestamp": time.Now().Format("20060102-150405"),
		}),
	)
	require.NoError(t, err)

	td := &TestDatabase{Container: container}
	t.Cleanup(func() {
		if td.DB != nil {
			td.DB.Close()
		}
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	td.URL, err = container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.RunMigrationsWithURL(td.URL))

	td.DB, err = database.Open(ctx, td.URL, database.DBConfig{})
	require.NoError(t, err)
	return td
}

// withLabels merges labels into the container request. It mirrors
// testcontainers.WithLabels, which is only available in releases that
// need a newer Go toolchain than this module targets.
func withLabels(labels map[string]string) testcontainers.CustomizeRequestOption {
	return func(req *testcontainers.GenericContainerRequest) error {
		if req.Labels == nil {
			req.Labels = make(map[string]string)
		}
		for k, v := range labels {
			req.Labels[k] = v
		}
		return nil
	}
}
