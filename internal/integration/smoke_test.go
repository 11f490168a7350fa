package integration

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/civil"

	"manuscriptdna/internal/blob"
	core "manuscriptdna/internal/core"
	domain "manuscriptdna/pkg/domain"
)

var sessionDate = civil.Date{Year: 2024, Month: 1, Day: 1}

// TestIntegrationSmoke exercises a minimal end-to-end write/read cycle for
// each supported in-process storage and blob adapter. It intentionally keeps
// scope tiny so it can act as a fast CI health check.
func TestIntegrationSmoke(t *testing.T) {
	ctx := context.Background()

	coreVariants := []struct {
		name string
		open func(t *testing.T) domain.PersistentStore
	}{
		{
			name: "memory-store",
			open: func(_ *testing.T) domain.PersistentStore {
				return core.NewMemoryStore(core.NewDefaultRulesEngine())
			},
		},
		{
			name: "sqlite-store",
			open: func(t *testing.T) domain.PersistentStore {
				dir := t.TempDir()
				path := filepath.Join(dir, "registry.db")
				s, err := core.NewSQLiteStore(path, core.NewDefaultRulesEngine())
				if err != nil {
					t.Skipf("sqlite unavailable: %v", err)
				}
				return s
			},
		},
	}

	blobVariants := []struct {
		name string
		open func(t *testing.T) blob.Store
	}{
		{
			name: "memory-blob",
			open: func(_ *testing.T) blob.Store { return blob.NewMemory() },
		},
		{
			name: "filesystem-blob",
			open: func(t *testing.T) blob.Store {
				fs, err := blob.NewFilesystem(t.TempDir())
				if err != nil {
					t.Fatalf("new filesystem blob: %v", err)
				}
				return fs
			},
		},
		{
			name: "mock-s3-blob",
			open: func(_ *testing.T) blob.Store { return blob.NewMockS3ForTests() },
		},
	}

	for _, cv := range coreVariants {
		t.Run(cv.name, func(t *testing.T) {
			store := cv.open(t)
			metricsRecorder := core.NewExpvarMetricsRecorder("")
			var traceBuffer bytes.Buffer
			tracer := core.NewJSONTracer(&traceBuffer)
			svc := core.NewService(
				store,
				core.WithMetricsRecorder(metricsRecorder),
				core.WithTracer(tracer),
			)

			sheet, _, err := svc.CreateSheet(ctx, domain.Sheet{Name: "AM 795"})
			if err != nil {
				t.Fatalf("create sheet: %v", err)
			}
			session, _, err := svc.CreateSession(ctx, domain.Session{Date: sessionDate})
			if err != nil {
				t.Fatalf("create session: %v", err)
			}
			sample, res, err := svc.CreateSample(ctx, domain.Sample{SheetID: sheet.ID, SessionID: session.ID, X: 10, Y: -5})
			if err != nil {
				t.Fatalf("create sample: %v", err)
			}
			if res.HasBlocking() {
				t.Fatalf("unexpected blocking violations: %+v", res.Violations)
			}

			name, err := svc.SampleDisplayName(ctx, sample.ID)
			if err != nil {
				t.Fatalf("display name: %v", err)
			}
			if name != "AM 795-2024-01-01-1" {
				t.Fatalf("unexpected display name %q", name)
			}

			// Ensure persisted via store view.
			if got, ok := store.GetSample(sample.ID); !ok || got.SheetID != sheet.ID {
				t.Fatalf("expected sample persisted with sheet reference")
			}

			// Validate observability exporters captured the operations.
			snapshot := metricsRecorder.Snapshot()
			if len(snapshot.DurationsMS) == 0 {
				t.Fatalf("expected metrics durations for operations, got empty")
			}
			if snapshot.Results["create_sheet"]["success"] == 0 {
				t.Fatalf("expected create_sheet success metric recorded: %+v", snapshot.Results)
			}
			if traceBuffer.Len() == 0 {
				t.Fatalf("expected trace exporter to emit spans")
			}
			var foundSpan bool
			for _, entry := range tracer.Entries() {
				if entry.Operation == "create_sheet" && entry.Status == "success" {
					foundSpan = true
					break
				}
			}
			if !foundSpan {
				t.Fatalf("expected trace entry for create_sheet, entries=%+v", tracer.Entries())
			}
		})
	}

	for _, bv := range blobVariants {
		t.Run(bv.name, func(t *testing.T) {
			bs := bv.open(t)
			key := blob.PhotoKey("photo-1", "recto.jpg")
			payload := []byte("jpeg-bytes")
			info, err := bs.Put(ctx, key, bytes.NewReader(payload), blob.PutOptions{ContentType: "image/jpeg"})
			if err != nil {
				t.Fatalf("blob put: %v", err)
			}
			if info.Key != key {
				t.Fatalf("unexpected blob key info: %+v", info)
			}
			if info.Size <= 0 {
				t.Fatalf("expected positive blob size, got %d (info=%+v)", info.Size, info)
			}
			_, rc, err := bs.Get(ctx, key)
			if err != nil {
				t.Fatalf("blob get: %v", err)
			}
			got, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("read payload: %v", err)
			}
			_ = rc.Close()
			if !bytes.Equal(got, payload) {
				t.Fatalf("payload mismatch got=%q want=%q", got, payload)
			}
			if ok, err := bs.Delete(ctx, key); err != nil || !ok {
				t.Fatalf("blob delete: %v ok=%v", err, ok)
			}
		})
	}

	// Sanity: ensure no environment leakage (none set here, but guard for future edits)
	if os.Getenv("MANUSCRIPTDNA_BLOB_DRIVER") != "" || os.Getenv("MANUSCRIPTDNA_STORAGE_DRIVER") != "" {
		t.Fatalf("expected no test-induced env leakage")
	}
}
