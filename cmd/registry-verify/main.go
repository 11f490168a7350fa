// Command registry-verify checks an exported registry snapshot: it imports
// the JSON into a fresh store, reports records the migration had to drop,
// and evaluates the built-in rules over the surviving state.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	core "manuscriptdna/internal/core"
	memory "manuscriptdna/internal/infra/persistence/memory"
	"manuscriptdna/pkg/domain"
)

var exitFunc = os.Exit

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("registry-verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		snapshotPath string
		driver       string
		strict       bool
	)
	fs.StringVar(&snapshotPath, "snapshot", "", "path to an exported registry snapshot (JSON)")
	fs.StringVar(&driver, "driver", "memory", "store performing the verification import: memory or sqlite")
	fs.BoolVar(&strict, "strict", false, "fail on warnings and dropped records, not only blocking violations")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if snapshotPath == "" {
		fmt.Fprintln(stderr, "registry-verify: -snapshot is required")
		fs.Usage()
		return 2
	}

	loadDotenv(stderr)

	report, err := run(snapshotPath, driver)
	if err != nil {
		fmt.Fprintf(stderr, "registry-verify: %v\n", err)
		return 2
	}
	report.print(stdout)

	if report.blocking > 0 {
		fmt.Fprintln(stderr, "registry-verify: snapshot has blocking violations")
		return 1
	}
	if strict && (report.warnings > 0 || report.dropped() > 0) {
		fmt.Fprintln(stderr, "registry-verify: snapshot has warnings (strict)")
		return 1
	}
	return 0
}

// loadDotenv applies a .env file from the working directory when one exists,
// matching how deployments configure the registry stores.
func loadDotenv(stderr io.Writer) {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(stderr, "registry-verify: skipping .env: %v\n", err)
	}
}

type collectionCount struct {
	name     string
	imported int
	kept     int
}

type report struct {
	collections []collectionCount
	violations  []domain.Violation
	blocking    int
	warnings    int
}

func (r *report) dropped() int {
	total := 0
	for _, c := range r.collections {
		total += c.imported - c.kept
	}
	return total
}

func (r *report) print(w io.Writer) {
	fmt.Fprintln(w, "collection      imported  kept  dropped")
	for _, c := range r.collections {
		fmt.Fprintf(w, "%-15s %8d %5d %8d\n", c.name, c.imported, c.kept, c.imported-c.kept)
	}
	if len(r.violations) == 0 {
		fmt.Fprintln(w, "rules: no violations")
		return
	}
	fmt.Fprintf(w, "rules: %d violation(s)\n", len(r.violations))
	for _, v := range r.violations {
		fmt.Fprintf(w, "  [%s] %s: %s\n", v.Severity, v.Rule, v.Message)
	}
}

func run(snapshotPath, driver string) (*report, error) {
	snapshot, err := readSnapshot(snapshotPath)
	if err != nil {
		return nil, err
	}

	engine := core.NewDefaultRulesEngine()
	store, cleanup, err := openStore(driver, engine)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	store.ImportState(snapshot)
	kept := store.ExportState()

	rep := &report{collections: countCollections(snapshot, kept)}

	// Replay every surviving sample as a create so the rules see the full
	// registry, not only one transaction's delta.
	var changes []domain.Change
	err = store.View(context.Background(), func(view domain.TransactionView) error {
		for _, sample := range view.ListSamples() {
			changes = append(changes, domain.Change{
				Entity: domain.EntitySample,
				Action: domain.ActionCreate,
				After:  sample,
			})
		}
		res, err := engine.Evaluate(context.Background(), view, changes)
		if err != nil {
			return err
		}
		rep.violations = res.Violations
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("evaluate rules: %w", err)
	}
	for _, v := range rep.violations {
		if v.Severity == domain.SeverityBlock {
			rep.blocking++
		} else {
			rep.warnings++
		}
	}
	return rep, nil
}

func readSnapshot(path string) (memory.Snapshot, error) {
	var snapshot memory.Snapshot
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return snapshot, fmt.Errorf("read snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return snapshot, fmt.Errorf("parse snapshot: %w", err)
	}
	return snapshot, nil
}

// snapshotStore is the store capability the verifier needs; both the memory
// store and the drivers embedding it satisfy it.
type snapshotStore interface {
	domain.PersistentStore
	ImportState(memory.Snapshot)
	ExportState() memory.Snapshot
}

func openStore(driver string, engine *domain.RulesEngine) (snapshotStore, func(), error) {
	switch driver {
	case "", "memory":
		return core.NewMemoryStore(engine), func() {}, nil
	case "sqlite":
		dir, err := os.MkdirTemp("", "registry-verify-*")
		if err != nil {
			return nil, nil, fmt.Errorf("scratch dir: %w", err)
		}
		store, err := core.NewSQLiteStore(filepath.Join(dir, "verify.db"), engine)
		if err != nil {
			_ = os.RemoveAll(dir)
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return store, func() { _ = os.RemoveAll(dir) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown driver %q", driver)
	}
}

// countCollections pairs input and surviving record counts in dependency
// order, the order migration prunes in.
func countCollections(imported, kept memory.Snapshot) []collectionCount {
	return []collectionCount{
		{name: "sheets", imported: len(imported.Sheets), kept: len(kept.Sheets)},
		{name: "photos", imported: len(imported.Photos), kept: len(kept.Photos)},
		{name: "sessions", imported: len(imported.Sessions), kept: len(kept.Sessions)},
		{name: "samples", imported: len(imported.Samples), kept: len(kept.Samples)},
		{name: "plates", imported: len(imported.Plates), kept: len(kept.Plates)},
		{name: "primers", imported: len(imported.Primers), kept: len(kept.Primers)},
		{name: "wells", imported: len(imported.Wells), kept: len(kept.Wells)},
		{name: "sequencings", imported: len(imported.SeqRuns), kept: len(kept.SeqRuns)},
		{name: "results", imported: len(imported.Results), kept: len(kept.Results)},
	}
}
