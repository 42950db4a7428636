package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"legolelo/internal/config"
	"legolelo/internal/logging"
	"legolelo/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0)
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "seed")

	for _, flag := range []string{"app-port", "store-driver", "database-dsn", "mongo-uri", "rabbitmq-url", "log-level", "log-format"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestSeedCommand_SQLite(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "seed.db")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"seed", "--store-driver=sqlite", "--database-dsn=" + dsn})
	require.NoError(t, root.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, len(demoToys()))
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "seeded toy "), line)
	}

	cfg := &config.Config{StoreDriver: config.DriverSQLite, DatabaseDSN: dsn}
	repo, closeStore, err := openStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closeStore()

	toys, err := repo.Find(context.Background(), repositories.ToyQuery{})
	require.NoError(t, err)
	assert.Len(t, toys, len(demoToys()))
}

func TestSeedIfEmpty(t *testing.T) {
	repo := repositories.NewMockToyRepository()
	ctx := context.Background()

	require.NoError(t, seedIfEmpty(ctx, repo, logging.Discard()))
	require.NoError(t, seedIfEmpty(ctx, repo, logging.Discard()))

	toys, err := repo.Find(ctx, repositories.ToyQuery{})
	require.NoError(t, err)
	assert.Len(t, toys, len(demoToys()))
}

func TestOpenStore_Memory(t *testing.T) {
	repo, closeStore, err := openStore(context.Background(), &config.Config{StoreDriver: config.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &repositories.MockToyRepository{}, repo)
	assert.NoError(t, closeStore())
}
