package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"cloud.google.com/go/civil"

	"manuscriptdna/pkg/domain"
)

func TestSQLiteStorePersistAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.db")
	store, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		sheet, err := tx.CreateSheet(domain.Sheet{Name: "AM 795"})
		if err != nil {
			return err
		}
		session, err := tx.CreateSession(domain.Session{Date: civil.Date{Year: 2024, Month: 1, Day: 1}})
		if err != nil {
			return err
		}
		_, err = tx.CreateSample(domain.Sample{SheetID: sheet.ID, SessionID: session.ID, X: 10, Y: -4})
		return err
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.DB().Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	reloaded, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := len(reloaded.ListSheets()); got != 1 {
		t.Fatalf("expected 1 sheet, got %d", got)
	}
	if got := len(reloaded.ListSamples()); got != 1 {
		t.Fatalf("expected 1 sample, got %d", got)
	}

	// The serial counter rides along in the snapshot, so new samples keep
	// counting where the previous process stopped.
	if _, err := reloaded.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		sheet, ok := tx.Snapshot().FindSheetByName("AM 795")
		if !ok {
			t.Fatalf("expected reloaded sheet by name")
		}
		session, ok := tx.Snapshot().FindSessionByDate(civil.Date{Year: 2024, Month: 1, Day: 1})
		if !ok {
			t.Fatalf("expected reloaded session by date")
		}
		sample, err := tx.CreateSample(domain.Sample{SheetID: sheet.ID, SessionID: session.ID})
		if err != nil {
			return err
		}
		if sample.Seq != 2 {
			t.Fatalf("expected serial 2 after reload, got %d", sample.Seq)
		}
		return nil
	}); err != nil {
		t.Fatalf("create after reload: %v", err)
	}
	if reloaded.Path() != path {
		t.Fatalf("unexpected path %q", reloaded.Path())
	}
}

func TestSQLiteStoreAppliesRegistryDDL(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "state.db"), domain.NewRulesEngine())
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = store.DB().Close() })
	for _, table := range []string{"sheets", "samples", "wells", "sequencing_results"} {
		var name string
		if err := store.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name= ?", table).Scan(&name); err != nil {
			t.Fatalf("lookup %s table: %v", table, err)
		}
		if name != table {
			t.Fatalf("expected %s table, got %s", table, name)
		}
	}
}

func TestSQLiteStoreLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "load.db")
	store, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}

	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateSheet(domain.Sheet{Name: "Seed"})
		return err
	}); err != nil {
		t.Fatalf("seed transaction failed: %v", err)
	}

	if _, err := store.DB().Exec(`INSERT OR REPLACE INTO state(bucket,payload) VALUES(?,?)`, "sheets", []byte("not-json")); err != nil {
		t.Fatalf("inject invalid state: %v", err)
	}
	if err := store.DB().Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	_, err = NewStore(path, domain.NewRulesEngine())
	if err == nil {
		t.Fatalf("expected load error due to invalid json")
	}
	if !strings.Contains(err.Error(), "decode sheets") {
		t.Fatalf("expected decode sheets error, got %v", err)
	}
}

func TestSQLiteStoreRejectsBlockedTransactions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blocked.db")
	engine := domain.NewRulesEngine()
	engine.Register(rejectAllRule{})
	store, err := NewStore(path, engine)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateSheet(domain.Sheet{Name: "Blocked"})
		return err
	}); err == nil {
		t.Fatalf("expected blocked transaction")
	}
	if err := store.DB().Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	reloaded, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := len(reloaded.ListSheets()); got != 0 {
		t.Fatalf("expected no persisted sheets after blocked transaction, got %d", got)
	}
}

type rejectAllRule struct{}

func (rejectAllRule) Name() string { return "reject_all" }

func (rejectAllRule) Evaluate(ctx context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	if len(changes) == 0 {
		return domain.Result{}, nil
	}
	return domain.Result{Violations: []domain.Violation{{Rule: "reject_all", Severity: domain.SeverityBlock}}}, nil
}
