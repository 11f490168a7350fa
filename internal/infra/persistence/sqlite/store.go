// Package sqlite provides a SQLite-backed persistent store that mirrors the
// in-memory semantics while applying the registry DDL on startup.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"manuscriptdna/internal/infra/persistence/memory"
	"manuscriptdna/internal/schema"
	"manuscriptdna/pkg/domain"
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.PersistentStore = (*Store)(nil)

// Store persists the in-memory state to a single SQLite table as JSON blobs.
// It snapshots the full state after every successful transaction.
type Store struct {
	*memory.Store
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore constructs a snapshotting SQLite-backed persistent store.
func NewStore(path string, engine *domain.RulesEngine) (*Store, error) {
	if path == "" {
		path = "manuscriptdna.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := applyRegistryDDL(db); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	mem := memory.NewStore(engine)
	s := &Store{Store: mem, db: db, path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func applyRegistryDDL(db *sql.DB) error {
	for _, stmt := range schema.SplitStatements(schema.SQLite()) {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("execute ddl: %w", err)
		}
	}
	return nil
}

var sqliteBuckets = []string{
	"sheets",
	"photos",
	"sessions",
	"samples",
	"plates",
	"primers",
	"wells",
	"sequencings",
	"results",
	"sample_seq",
}

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT bucket, payload FROM state`)
	if err != nil {
		return fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()
	type raw struct {
		bucket  string
		payload []byte
	}
	var raws []raw
	for rows.Next() {
		var r raw
		if err := rows.Scan(&r.bucket, &r.payload); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		raws = append(raws, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate state: %w", err)
	}
	if len(raws) == 0 {
		return nil
	}
	snapshot := memory.Snapshot{}
	for _, r := range raws {
		switch r.bucket {
		case "sheets":
			if err := json.Unmarshal(r.payload, &snapshot.Sheets); err != nil {
				return fmt.Errorf("decode sheets: %w", err)
			}
		case "photos":
			if err := json.Unmarshal(r.payload, &snapshot.Photos); err != nil {
				return fmt.Errorf("decode photos: %w", err)
			}
		case "sessions":
			if err := json.Unmarshal(r.payload, &snapshot.Sessions); err != nil {
				return fmt.Errorf("decode sessions: %w", err)
			}
		case "samples":
			if err := json.Unmarshal(r.payload, &snapshot.Samples); err != nil {
				return fmt.Errorf("decode samples: %w", err)
			}
		case "plates":
			if err := json.Unmarshal(r.payload, &snapshot.Plates); err != nil {
				return fmt.Errorf("decode plates: %w", err)
			}
		case "primers":
			if err := json.Unmarshal(r.payload, &snapshot.Primers); err != nil {
				return fmt.Errorf("decode primers: %w", err)
			}
		case "wells":
			if err := json.Unmarshal(r.payload, &snapshot.Wells); err != nil {
				return fmt.Errorf("decode wells: %w", err)
			}
		case "sequencings":
			if err := json.Unmarshal(r.payload, &snapshot.SeqRuns); err != nil {
				return fmt.Errorf("decode sequencings: %w", err)
			}
		case "results":
			if err := json.Unmarshal(r.payload, &snapshot.Results); err != nil {
				return fmt.Errorf("decode results: %w", err)
			}
		case "sample_seq":
			if err := json.Unmarshal(r.payload, &snapshot.SampleSeq); err != nil {
				return fmt.Errorf("decode sample_seq: %w", err)
			}
		}
	}
	s.ImportState(snapshot)
	return nil
}

func (s *Store) persist() (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.ExportState()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, bucket := range sqliteBuckets {
		var data []byte
		switch bucket {
		case "sheets":
			data, err = json.Marshal(snapshot.Sheets)
		case "photos":
			data, err = json.Marshal(snapshot.Photos)
		case "sessions":
			data, err = json.Marshal(snapshot.Sessions)
		case "samples":
			data, err = json.Marshal(snapshot.Samples)
		case "plates":
			data, err = json.Marshal(snapshot.Plates)
		case "primers":
			data, err = json.Marshal(snapshot.Primers)
		case "wells":
			data, err = json.Marshal(snapshot.Wells)
		case "sequencings":
			data, err = json.Marshal(snapshot.SeqRuns)
		case "results":
			data, err = json.Marshal(snapshot.Results)
		case "sample_seq":
			data, err = json.Marshal(snapshot.SampleSeq)
		}
		if err != nil {
			retErr = err
			return retErr
		}
		if _, err = tx.Exec(`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, bucket, data); err != nil {
			retErr = fmt.Errorf("upsert %s: %w", bucket, err)
			return retErr
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	return nil
}

// RunInTransaction applies the provided function within a transaction, then snapshots state to SQLite if successful.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx domain.Transaction) error) (domain.Result, error) {
	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	if pErr := s.persist(); pErr != nil {
		return res, pErr
	}
	return res, nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
