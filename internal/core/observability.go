package core

import (
	"context"
	"time"

	"manuscriptdna/internal/blob"
	"manuscriptdna/pkg/domain"
)

// Logger is the minimal leveled logging surface used by the service. It is
// satisfied by adapters such as NewSlogLogger and by the no-op default.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Clock supplies the current time for audit timestamps.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface. A nil function
// falls back to the system clock in UTC.
type ClockFunc func() time.Time

// Now returns the function's time normalized to UTC.
func (f ClockFunc) Now() time.Time {
	if f == nil {
		return time.Now().UTC()
	}
	return f().UTC()
}

// MetricsRecorder receives one observation per service operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer starts spans around service operations.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan terminates a span started by a Tracer. A nil error marks the
// span successful.
type TraceSpan interface {
	End(err error)
}

// AuditStatus classifies the outcome recorded in an audit entry.
type AuditStatus string

const (
	// AuditStatusSuccess marks an operation that committed.
	AuditStatusSuccess AuditStatus = "success"
	// AuditStatusError marks an operation that failed or rolled back.
	AuditStatusError AuditStatus = "error"
)

// AuditEntry describes one mutating service operation for the audit trail.
type AuditEntry struct {
	Operation string            `json:"operation"`
	Entity    domain.EntityType `json:"entity"`
	Action    domain.Action     `json:"action"`
	EntityID  string            `json:"entity_id,omitempty"`
	Status    AuditStatus       `json:"status"`
	Duration  time.Duration     `json:"duration"`
	Timestamp time.Time         `json:"timestamp"`
}

// AuditRecorder receives audit entries for mutating operations.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

type noopMetricsRecorder struct{}

func (noopMetricsRecorder) Observe(context.Context, string, bool, time.Duration) {}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}

type noopAuditRecorder struct{}

func (noopAuditRecorder) Record(context.Context, AuditEntry) {}

// Option customizes a Service during construction.
type Option func(*Service)

// WithLogger routes service logs to the supplied logger.
func WithLogger(logger Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the audit timestamp source. Stores that publish their
// own NowFunc take precedence so stored records and audit entries agree.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithAuditRecorder routes audit entries to the supplied recorder.
func WithAuditRecorder(recorder AuditRecorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.audit = recorder
		}
	}
}

// WithMetricsRecorder routes operation metrics to the supplied recorder.
func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithTracer wraps every service operation in a span from the supplied tracer.
func WithTracer(tracer Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithBlobStore attaches the photograph file backend. Photo records can be
// managed without one; AttachPhoto, OpenPhoto and PhotoFileURL require it.
func WithBlobStore(store blob.Store) Option {
	return func(s *Service) {
		s.blobs = store
	}
}

// selectNowFunc picks the timestamp source for audit entries. A store that
// publishes a non-nil NowFunc wins so audit timestamps line up with the
// CreatedAt/UpdatedAt stamps the store writes; otherwise the configured
// clock, and finally the system clock in UTC.
func selectNowFunc(store domain.PersistentStore, clock Clock) func() time.Time {
	if provider, ok := store.(interface{ NowFunc() func() time.Time }); ok {
		if fn := provider.NowFunc(); fn != nil {
			return fn
		}
	}
	if clock != nil {
		return clock.Now
	}
	return func() time.Time { return time.Now().UTC() }
}

// extractRulesEngine returns the rules engine a store exposes, or nil when
// the backend has none.
func extractRulesEngine(store domain.PersistentStore) *domain.RulesEngine {
	if provider, ok := store.(interface{ RulesEngine() *domain.RulesEngine }); ok {
		return provider.RulesEngine()
	}
	return nil
}

type operationInfo struct {
	entity domain.EntityType
	action domain.Action
}

// operationMetadata enumerates the mutating operations that produce audit
// entries. Reads pass through instrumentation without an audit record.
var operationMetadata = map[string]operationInfo{
	"create_sheet":             {entity: domain.EntitySheet, action: domain.ActionCreate},
	"update_sheet":             {entity: domain.EntitySheet, action: domain.ActionUpdate},
	"delete_sheet":             {entity: domain.EntitySheet, action: domain.ActionDelete},
	"create_photo":             {entity: domain.EntityPhoto, action: domain.ActionCreate},
	"update_photo":             {entity: domain.EntityPhoto, action: domain.ActionUpdate},
	"delete_photo":             {entity: domain.EntityPhoto, action: domain.ActionDelete},
	"attach_photo":             {entity: domain.EntityPhoto, action: domain.ActionCreate},
	"create_session":           {entity: domain.EntitySession, action: domain.ActionCreate},
	"update_session":           {entity: domain.EntitySession, action: domain.ActionUpdate},
	"delete_session":           {entity: domain.EntitySession, action: domain.ActionDelete},
	"create_sample":            {entity: domain.EntitySample, action: domain.ActionCreate},
	"update_sample":            {entity: domain.EntitySample, action: domain.ActionUpdate},
	"delete_sample":            {entity: domain.EntitySample, action: domain.ActionDelete},
	"create_plate":             {entity: domain.EntityPlate, action: domain.ActionCreate},
	"update_plate":             {entity: domain.EntityPlate, action: domain.ActionUpdate},
	"delete_plate":             {entity: domain.EntityPlate, action: domain.ActionDelete},
	"create_primer":            {entity: domain.EntityPrimer, action: domain.ActionCreate},
	"delete_primer":            {entity: domain.EntityPrimer, action: domain.ActionDelete},
	"ensure_primers":           {entity: domain.EntityPrimer, action: domain.ActionCreate},
	"create_well":              {entity: domain.EntityWell, action: domain.ActionCreate},
	"update_well":              {entity: domain.EntityWell, action: domain.ActionUpdate},
	"delete_well":              {entity: domain.EntityWell, action: domain.ActionDelete},
	"create_sequencing":        {entity: domain.EntitySequencing, action: domain.ActionCreate},
	"update_sequencing":        {entity: domain.EntitySequencing, action: domain.ActionUpdate},
	"delete_sequencing":        {entity: domain.EntitySequencing, action: domain.ActionDelete},
	"create_sequencing_result": {entity: domain.EntitySequencingResult, action: domain.ActionCreate},
	"update_sequencing_result": {entity: domain.EntitySequencingResult, action: domain.ActionUpdate},
	"delete_sequencing_result": {entity: domain.EntitySequencingResult, action: domain.ActionDelete},
}
