package planner

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const plannerDataSchema = `
CREATE TABLE IF NOT EXISTS planner_data (
	path       TEXT PRIMARY KEY,
	graph      BLOB NOT NULL,
	vertices   INTEGER NOT NULL,
	edges      INTEGER NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// SQLiteDataStorage stores planner data in a SQLite database, one row per
// logical storage path. Useful when many planner configurations persist
// graphs and a single database file is easier to manage than a directory
// of per-planner files.
type SQLiteDataStorage struct {
	db *sql.DB
}

// NewSQLiteDataStorage opens (creating if necessary) the database at dbPath
// and ensures the planner_data table exists.
func NewSQLiteDataStorage(dbPath string) (*SQLiteDataStorage, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening planner data database %q: %w", dbPath, err)
	}
	if _, err := db.Exec(plannerDataSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing planner data schema: %w", err)
	}
	return &SQLiteDataStorage{db: db}, nil
}

// Store upserts the graph under the given logical path.
func (s *SQLiteDataStorage) Store(data *PlannerData, path string) error {
	if data == nil {
		return fmt.Errorf("planner data cannot be nil")
	}
	if path == "" {
		return fmt.Errorf("storage path cannot be empty")
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding planner data: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO planner_data (path, graph, vertices, edges, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			graph = excluded.graph,
			vertices = excluded.vertices,
			edges = excluded.edges,
			updated_at = excluded.updated_at`,
		path, encoded, data.NumVertices(), data.NumEdges(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("storing planner data for %q: %w", path, err)
	}
	return nil
}

// Load reads the graph stored under the given logical path.
func (s *SQLiteDataStorage) Load(path string) (*PlannerData, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	var encoded []byte
	err := s.db.QueryRow(`SELECT graph FROM planner_data WHERE path = ?`, path).Scan(&encoded)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no planner data stored for %q", path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading planner data for %q: %w", path, err)
	}
	data := NewPlannerData()
	if err := json.Unmarshal(encoded, data); err != nil {
		return nil, fmt.Errorf("decoding planner data for %q: %w", path, err)
	}
	return data, nil
}

// Close closes the underlying database.
func (s *SQLiteDataStorage) Close() error {
	return s.db.Close()
}
