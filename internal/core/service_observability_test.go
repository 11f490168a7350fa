package core

import (
	"context"
	"testing"
	"time"

	"manuscriptdna/pkg/domain"
)

type captureLogger struct {
	debugs []string
	errors []string
}

func (l *captureLogger) Debug(msg string, _ ...any) { l.debugs = append(l.debugs, msg) }
func (l *captureLogger) Info(string, ...any)        {}
func (l *captureLogger) Warn(string, ...any)        {}
func (l *captureLogger) Error(msg string, _ ...any) { l.errors = append(l.errors, msg) }

type metricsCall struct {
	op       string
	success  bool
	duration time.Duration
}

type captureMetricsRecorder struct {
	calls []metricsCall
}

func (c *captureMetricsRecorder) Observe(_ context.Context, op string, success bool, duration time.Duration) {
	c.calls = append(c.calls, metricsCall{op: op, success: success, duration: duration})
}

func (c *captureMetricsRecorder) has(op string, success bool) bool {
	for _, call := range c.calls {
		if call.op == op && call.success == success {
			return true
		}
	}
	return false
}

type spanRecord struct {
	op  string
	err error
}

type captureTracer struct {
	started []string
	ended   []spanRecord
}

func (c *captureTracer) Start(ctx context.Context, op string) (context.Context, TraceSpan) {
	c.started = append(c.started, op)
	return ctx, &captureSpan{tracer: c, op: op}
}

func (c *captureTracer) has(op string, success bool) bool {
	for _, record := range c.ended {
		if record.op == op {
			if success && record.err == nil {
				return true
			}
			if !success && record.err != nil {
				return true
			}
		}
	}
	return false
}

type captureSpan struct {
	tracer *captureTracer
	op     string
}

func (s *captureSpan) End(err error) {
	s.tracer.ended = append(s.tracer.ended, spanRecord{op: s.op, err: err})
}

func TestServiceInstrumentationSuccessAndFailure(t *testing.T) {
	ctx := context.Background()
	logger := &captureLogger{}
	metrics := &captureMetricsRecorder{}
	tracer := &captureTracer{}
	audit := &auditRecorderStub{}

	svc := NewInMemoryService(NewDefaultRulesEngine(),
		WithLogger(logger),
		WithMetricsRecorder(metrics),
		WithTracer(tracer),
		WithAuditRecorder(audit),
	)

	sheet, _, err := svc.CreateSheet(ctx, domain.Sheet{Name: "S1"})
	if err != nil {
		t.Fatalf("create sheet: %v", err)
	}
	if !metrics.has("create_sheet", true) {
		t.Fatalf("expected success metric for create_sheet: %+v", metrics.calls)
	}
	if !tracer.has("create_sheet", true) {
		t.Fatalf("expected successful span for create_sheet: %+v", tracer.ended)
	}
	if len(logger.debugs) == 0 {
		t.Fatalf("expected debug log on success")
	}

	// The duplicate create fails and every sink sees it.
	if _, _, err := svc.CreateSheet(ctx, domain.Sheet{Name: "S1"}); err == nil {
		t.Fatalf("expected duplicate rejection")
	}
	if !metrics.has("create_sheet", false) {
		t.Fatalf("expected failure metric for create_sheet: %+v", metrics.calls)
	}
	if !tracer.has("create_sheet", false) {
		t.Fatalf("expected failed span for create_sheet: %+v", tracer.ended)
	}
	if len(logger.errors) == 0 {
		t.Fatalf("expected error log on failure")
	}

	var success, failure int
	for _, entry := range audit.entries {
		if entry.Operation != "create_sheet" {
			continue
		}
		switch entry.Status {
		case AuditStatusSuccess:
			success++
			if entry.EntityID != sheet.ID {
				t.Fatalf("expected audit entity id %s, got %s", sheet.ID, entry.EntityID)
			}
		case AuditStatusError:
			failure++
		}
	}
	if success != 1 || failure != 1 {
		t.Fatalf("expected one success and one failure audit entry, got %d/%d", success, failure)
	}
}

func TestOptionsIgnoreNilArguments(t *testing.T) {
	svc := NewInMemoryService(NewRulesEngine(),
		WithLogger(nil),
		WithClock(nil),
		WithAuditRecorder(nil),
		WithMetricsRecorder(nil),
		WithTracer(nil),
	)
	if svc.logger == nil || svc.metrics == nil || svc.tracer == nil || svc.audit == nil {
		t.Fatalf("expected no-op defaults to survive nil options")
	}
	if _, _, err := svc.CreateSheet(context.Background(), domain.Sheet{Name: "S1"}); err != nil {
		t.Fatalf("create sheet with defaults: %v", err)
	}
}

func TestExtractRulesEngineFromStore(t *testing.T) {
	engine := NewDefaultRulesEngine()
	svc := NewInMemoryService(engine)
	if svc.engine != engine {
		t.Fatalf("expected service to adopt the store's rules engine")
	}

	bare := &engineLessStore{PersistentStore: NewMemoryStore(nil)}
	if got := extractRulesEngine(bare); got != nil {
		t.Fatalf("expected nil engine from bare store, got %v", got)
	}
}

// engineLessStore hides the memory store's RulesEngine accessor.
type engineLessStore struct {
	domain.PersistentStore
}
