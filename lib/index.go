package lib

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DefaultIndexTable is the table imports are recorded in when none is
// configured.
const DefaultIndexTable = "zypy_imports"

// ImportIndex records import graphs in a Postgres table. Every call to
// Record writes one run, identified by a fresh UUID.
type ImportIndex struct {
	db    *sql.DB
	table string
}

// OpenImportIndex connects to the Postgres database at dsn.
func OpenImportIndex(dsn string, table string) (*ImportIndex, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return NewImportIndex(db, table), nil
}

func NewImportIndex(db *sql.DB, table string) *ImportIndex {
	if table == "" {
		table = DefaultIndexTable
	}
	return &ImportIndex{db: db, table: table}
}

func (ix *ImportIndex) Close() error {
	return ix.db.Close()
}

func (ix *ImportIndex) quotedTable() string {
	return pq.QuoteIdentifier(ix.table)
}

// RequireTable creates the index table if it does not exist yet.
func (ix *ImportIndex) RequireTable(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	run_id UUID NOT NULL,
	file TEXT NOT NULL,
	module TEXT NOT NULL,
	name TEXT NOT NULL,
	alias TEXT NOT NULL,
	level INT NOT NULL,
	recorded_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
)`, ix.quotedTable())
	_, err := ix.db.ExecContext(ctx, query)
	return err
}

// Record writes every dependency in graph as one run and returns the run's
// id. Either the whole run is written or none of it is.
func (ix *ImportIndex) Record(ctx context.Context, graph ImportGraph) (uuid.UUID, error) {
	runID := uuid.New()

	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (run_id, file, module, name, alias, level) VALUES ($1, $2, $3, $4, $5, $6)",
		ix.quotedTable(),
	)
	for _, file := range graph.FileNames() {
		for _, dep := range graph.Files[file] {
			_, err = tx.ExecContext(ctx, query, runID.String(), file, dep.Module, dep.Name, dep.Alias, dep.Level)
			if err != nil {
				_ = tx.Rollback()
				return uuid.Nil, fmt.Errorf("recording imports of %s: %w", file, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	return runID, nil
}

// Importers returns the files that imported module in the given run.
func (ix *ImportIndex) Importers(ctx context.Context, runID uuid.UUID, module string) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT DISTINCT file FROM %s WHERE run_id = $1 AND module = $2 ORDER BY file",
		ix.quotedTable(),
	)
	rows, err := ix.db.QueryContext(ctx, query, runID.String(), module)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := []string{}
	for rows.Next() {
		var file string
		if err := rows.Scan(&file); err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, rows.Err()
}
