package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/config"
	"github.com/DanielPopoola/shelter-api/internal/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgImage    = "postgres:16-alpine"
	pgUser     = "shelter"
	pgPassword = "shelter-test"
	pgDatabase = "shelter_test"
)

// shelterTables lists every table in delete-safe order.
var shelterTables = []string{
	"donations",
	"adoption_applications",
	"adoption_inquiries",
	"volunteer_applications",
	"events",
	"stories",
	"pets",
	"users",
}

// TestDatabase is a disposable Postgres container with every up migration applied.
type TestDatabase struct {
	Container testcontainers.Container
	DB        *postgres.DB
	Config    *config.DatabaseConfig
}

// SetupTestDatabase skips the test when no container runtime is reachable.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        pgImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			// The entrypoint restarts the server once after init.
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "start %s", pgImage)

	cfg := containerConfig(ctx, t, container)

	db, err := postgres.Connect(ctx, cfg, DiscardLogger())
	require.NoError(t, err)
	require.NoError(t, migrate(ctx, db, migrationsDir()))

	return &TestDatabase{Container: container, DB: db, Config: cfg}
}

func containerConfig(ctx context.Context, t *testing.T, c testcontainers.Container) *config.DatabaseConfig {
	t.Helper()

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return &config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            pgUser,
		Password:        pgPassword,
		Name:            pgDatabase,
		SSLMode:         "disable",
		MaxOpenConns:    8,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

func (td *TestDatabase) Cleanup(t *testing.T) {
	td.DB.Close()
	if err := td.Container.Terminate(context.Background()); err != nil {
		t.Logf("terminate postgres container: %v", err)
	}
}

// CleanTables empties every table between tests.
func (td *TestDatabase) CleanTables(t *testing.T) {
	stmt := "TRUNCATE TABLE " + strings.Join(shelterTables, ", ") + " RESTART IDENTITY CASCADE"
	_, err := td.DB.Pool.Exec(context.Background(), stmt)
	require.NoError(t, err)
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	// internal/testhelpers -> repo root
	return filepath.Join(filepath.Dir(file), "..", "..", "db", "migrations")
}

// migrate applies *.up.sql files in lexical order.
func migrate(ctx context.Context, db *postgres.DB, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations found in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		body, err := os.ReadFile(f) //nolint:gosec // fixed path inside the repo
		if err != nil {
			return fmt.Errorf("read %s: %w", filepath.Base(f), err)
		}
		if _, err := db.Pool.Exec(ctx, string(body)); err != nil {
			return fmt.Errorf("apply %s: %w", filepath.Base(f), err)
		}
	}
	return nil
}
