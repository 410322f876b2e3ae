package test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/graeme-hill/zypy-go/lib"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	connStr := os.Getenv("ZYPY_TEST_DSN")
	if connStr == "" {
		t.Skip("ZYPY_TEST_DSN not set")
	}

	files, err := lib.ReadSourcesFromDir("./basic")
	require.NoError(t, err)

	graph, err := lib.ImportGraphFromSources(files)
	require.NoError(t, err)

	ix, err := lib.OpenImportIndex(connStr, "zypy_imports_e2e")
	require.NoError(t, err)
	defer ix.Close()

	ctx := context.Background()
	require.NoError(t, ix.RequireTable(ctx))

	runID, err := ix.Record(ctx, graph)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, runID)

	importers, err := ix.Importers(ctx, runID, "app.core")
	require.NoError(t, err)
	require.Equal(t, []string{"app", "main"}, importers)

	importers, err = ix.Importers(ctx, runID, "json")
	require.NoError(t, err)
	require.Equal(t, []string{"app.core"}, importers)
}

func TestFormatFixtures(t *testing.T) {
	files, err := lib.ReadSourcesFromDir("./basic")
	require.NoError(t, err)
	require.Len(t, files, 4)

	for _, f := range files {
		reparsed, err := lib.Parse(lib.Format(f.Program))
		require.NoError(t, err, f.Path)
		require.Equal(t, f.Program, reparsed, f.Path)
	}
}
