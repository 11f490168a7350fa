// Package core wires the registry service: transactional CRUD over the
// persistent store, rule evaluation at commit, and logging, metrics,
// tracing, and audit instrumentation around every operation.
package core

import (
	"context"
	"time"

	"cloud.google.com/go/civil"

	"manuscriptdna/internal/blob"
	"manuscriptdna/pkg/domain"
)

// Service exposes higher-level transactional operations for the registry
// schema. All mutating operations evaluate the rules engine of the backing
// store before commit.
type Service struct {
	store   domain.PersistentStore
	engine  *domain.RulesEngine
	clock   Clock
	now     func() time.Time
	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	audit   AuditRecorder
	blobs   blob.Store
}

// NewService constructs a service backed by the supplied store.
func NewService(store domain.PersistentStore, opts ...Option) *Service {
	svc := &Service{
		store:   store,
		engine:  extractRulesEngine(store),
		logger:  noopLogger{},
		metrics: noopMetricsRecorder{},
		tracer:  noopTracer{},
		audit:   noopAuditRecorder{},
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.now = selectNowFunc(store, svc.clock)
	return svc
}

// NewInMemoryService creates a service and in-memory store with the given
// rules engine.
func NewInMemoryService(engine *domain.RulesEngine, opts ...Option) *Service {
	return NewService(NewMemoryStore(engine), opts...)
}

// NewSQLiteService creates a service backed by a SQLite file at path.
func NewSQLiteService(path string, engine *domain.RulesEngine, opts ...Option) (*Service, error) {
	store, err := NewSQLiteStore(path, engine)
	if err != nil {
		return nil, err
	}
	return NewService(store, opts...), nil
}

// Store returns the underlying storage implementation.
func (s *Service) Store() domain.PersistentStore {
	return s.store
}

// instrument wraps fn with tracing, metrics, logging and, for operations
// listed in operationMetadata, audit recording. fn returns the affected
// entity ID for the audit trail.
func (s *Service) instrument(ctx context.Context, op string, fn func(ctx context.Context) (string, error)) error {
	ctx, span := s.tracer.Start(ctx, op)
	start := time.Now()
	entityID, err := fn(ctx)
	duration := time.Since(start)
	span.End(err)
	s.metrics.Observe(ctx, op, err == nil, duration)
	if err != nil {
		s.logger.Error("registry operation failed", "operation", op, "error", err)
		s.recordAuditError(ctx, op, entityID, duration)
		return err
	}
	s.logger.Debug("registry operation complete", "operation", op, "duration", duration)
	s.recordAuditSuccess(ctx, op, entityID, duration)
	return nil
}

// run executes fn inside a store transaction with instrumentation applied.
// entityID labels the audit entry; a nil func leaves the entry without an
// entity reference.
func (s *Service) run(ctx context.Context, op string, fn func(tx domain.Transaction) error, entityID func() string) (domain.Result, error) {
	var res domain.Result
	err := s.instrument(ctx, op, func(ctx context.Context) (string, error) {
		var txErr error
		res, txErr = s.store.RunInTransaction(ctx, fn)
		id := ""
		if entityID != nil {
			id = entityID()
		}
		return id, txErr
	})
	return res, err
}

func (s *Service) recordAuditSuccess(ctx context.Context, op, entityID string, duration time.Duration) {
	s.recordAudit(ctx, op, entityID, duration, AuditStatusSuccess)
}

func (s *Service) recordAuditError(ctx context.Context, op, entityID string, duration time.Duration) {
	s.recordAudit(ctx, op, entityID, duration, AuditStatusError)
}

// recordAudit emits an audit entry when op names a registered mutating
// operation. Reads and unknown operations are skipped.
func (s *Service) recordAudit(ctx context.Context, op, entityID string, duration time.Duration, status AuditStatus) {
	meta, ok := operationMetadata[op]
	if !ok {
		return
	}
	s.audit.Record(ctx, AuditEntry{
		Operation: op,
		Entity:    meta.entity,
		Action:    meta.action,
		EntityID:  entityID,
		Status:    status,
		Duration:  duration,
		Timestamp: s.now(),
	})
}

// CreateSheet persists a new manuscript sheet.
func (s *Service) CreateSheet(ctx context.Context, sheet domain.Sheet) (domain.Sheet, domain.Result, error) {
	var created domain.Sheet
	res, err := s.run(ctx, "create_sheet", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateSheet(sheet)
		return err
	}, func() string { return created.ID })
	return created, res, err
}

// UpdateSheet mutates a sheet using the provided mutator.
func (s *Service) UpdateSheet(ctx context.Context, id string, mutator func(*domain.Sheet) error) (domain.Sheet, domain.Result, error) {
	var updated domain.Sheet
	res, err := s.run(ctx, "update_sheet", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateSheet(id, mutator)
		return err
	}, func() string { return id })
	return updated, res, err
}

// DeleteSheet removes a sheet unless photos or samples still reference it.
func (s *Service) DeleteSheet(ctx context.Context, id string) (domain.Result, error) {
	return s.run(ctx, "delete_sheet", func(tx domain.Transaction) error {
		return tx.DeleteSheet(id)
	}, func() string { return id })
}

// GetSheet returns a sheet by ID.
func (s *Service) GetSheet(ctx context.Context, id string) (domain.Sheet, bool) {
	var (
		sheet domain.Sheet
		ok    bool
	)
	_ = s.instrument(ctx, "get_sheet", func(context.Context) (string, error) {
		sheet, ok = s.store.GetSheet(id)
		return id, nil
	})
	return sheet, ok
}

// FindSheetByName returns the sheet carrying the given name.
func (s *Service) FindSheetByName(ctx context.Context, name string) (domain.Sheet, bool) {
	var (
		sheet domain.Sheet
		ok    bool
	)
	_ = s.instrument(ctx, "find_sheet_by_name", func(ctx context.Context) (string, error) {
		return "", s.store.View(ctx, func(view domain.TransactionView) error {
			sheet, ok = view.FindSheetByName(name)
			return nil
		})
	})
	return sheet, ok
}

// ListSheets returns all sheets.
func (s *Service) ListSheets(ctx context.Context) []domain.Sheet {
	var sheets []domain.Sheet
	_ = s.instrument(ctx, "list_sheets", func(context.Context) (string, error) {
		sheets = s.store.ListSheets()
		return "", nil
	})
	return sheets
}

// CreateSession persists a new collection session.
func (s *Service) CreateSession(ctx context.Context, session domain.Session) (domain.Session, domain.Result, error) {
	var created domain.Session
	res, err := s.run(ctx, "create_session", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateSession(session)
		return err
	}, func() string { return created.ID })
	return created, res, err
}

// UpdateSession mutates a session using the provided mutator.
func (s *Service) UpdateSession(ctx context.Context, id string, mutator func(*domain.Session) error) (domain.Session, domain.Result, error) {
	var updated domain.Session
	res, err := s.run(ctx, "update_session", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateSession(id, mutator)
		return err
	}, func() string { return id })
	return updated, res, err
}

// DeleteSession removes a session unless samples still reference it.
func (s *Service) DeleteSession(ctx context.Context, id string) (domain.Result, error) {
	return s.run(ctx, "delete_session", func(tx domain.Transaction) error {
		return tx.DeleteSession(id)
	}, func() string { return id })
}

// GetSession returns a session by ID.
func (s *Service) GetSession(ctx context.Context, id string) (domain.Session, bool) {
	var (
		session domain.Session
		ok      bool
	)
	_ = s.instrument(ctx, "get_session", func(context.Context) (string, error) {
		session, ok = s.store.GetSession(id)
		return id, nil
	})
	return session, ok
}

// FindSessionByDate returns the session held on the given calendar date.
func (s *Service) FindSessionByDate(ctx context.Context, date civil.Date) (domain.Session, bool) {
	var (
		session domain.Session
		ok      bool
	)
	_ = s.instrument(ctx, "find_session_by_date", func(ctx context.Context) (string, error) {
		return "", s.store.View(ctx, func(view domain.TransactionView) error {
			session, ok = view.FindSessionByDate(date)
			return nil
		})
	})
	return session, ok
}

// ListSessions returns all sessions.
func (s *Service) ListSessions(ctx context.Context) []domain.Session {
	var sessions []domain.Session
	_ = s.instrument(ctx, "list_sessions", func(context.Context) (string, error) {
		sessions = s.store.ListSessions()
		return "", nil
	})
	return sessions
}

// CreateSample persists a new sample. The registry assigns its serial number.
func (s *Service) CreateSample(ctx context.Context, sample domain.Sample) (domain.Sample, domain.Result, error) {
	var created domain.Sample
	res, err := s.run(ctx, "create_sample", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateSample(sample)
		return err
	}, func() string { return created.ID })
	return created, res, err
}

// UpdateSample mutates a sample using the provided mutator. The serial
// number is pinned by the store and survives any mutation.
func (s *Service) UpdateSample(ctx context.Context, id string, mutator func(*domain.Sample) error) (domain.Sample, domain.Result, error) {
	var updated domain.Sample
	res, err := s.run(ctx, "update_sample", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateSample(id, mutator)
		return err
	}, func() string { return id })
	return updated, res, err
}

// DeleteSample removes a sample unless wells still reference it.
func (s *Service) DeleteSample(ctx context.Context, id string) (domain.Result, error) {
	return s.run(ctx, "delete_sample", func(tx domain.Transaction) error {
		return tx.DeleteSample(id)
	}, func() string { return id })
}

// GetSample returns a sample by ID.
func (s *Service) GetSample(ctx context.Context, id string) (domain.Sample, bool) {
	var (
		sample domain.Sample
		ok     bool
	)
	_ = s.instrument(ctx, "get_sample", func(context.Context) (string, error) {
		sample, ok = s.store.GetSample(id)
		return id, nil
	})
	return sample, ok
}

// ListSamples returns all samples.
func (s *Service) ListSamples(ctx context.Context) []domain.Sample {
	var samples []domain.Sample
	_ = s.instrument(ctx, "list_samples", func(context.Context) (string, error) {
		samples = s.store.ListSamples()
		return "", nil
	})
	return samples
}

// ListSamplesBySheet returns the samples collected from one sheet.
func (s *Service) ListSamplesBySheet(ctx context.Context, sheetID string) []domain.Sample {
	var samples []domain.Sample
	_ = s.instrument(ctx, "list_samples_by_sheet", func(context.Context) (string, error) {
		for _, sample := range s.store.ListSamples() {
			if sample.SheetID == sheetID {
				samples = append(samples, sample)
			}
		}
		return sheetID, nil
	})
	return samples
}

// SampleDisplayName resolves the sample's derived identifier, sheet name,
// session date and serial number joined with hyphens.
func (s *Service) SampleDisplayName(ctx context.Context, id string) (string, error) {
	var name string
	err := s.instrument(ctx, "sample_display_name", func(ctx context.Context) (string, error) {
		return id, s.store.View(ctx, func(view domain.TransactionView) error {
			sample, ok := view.FindSample(id)
			if !ok {
				return domain.NotFoundError{Entity: domain.EntitySample, ID: id}
			}
			sheet, ok := view.FindSheet(sample.SheetID)
			if !ok {
				return domain.NotFoundError{Entity: domain.EntitySheet, ID: sample.SheetID}
			}
			session, ok := view.FindSession(sample.SessionID)
			if !ok {
				return domain.NotFoundError{Entity: domain.EntitySession, ID: sample.SessionID}
			}
			name = sample.DisplayName(sheet, session)
			return nil
		})
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// CreatePlate persists a new plate.
func (s *Service) CreatePlate(ctx context.Context, plate domain.Plate) (domain.Plate, domain.Result, error) {
	var created domain.Plate
	res, err := s.run(ctx, "create_plate", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreatePlate(plate)
		return err
	}, func() string { return created.ID })
	return created, res, err
}

// UpdatePlate mutates a plate using the provided mutator.
func (s *Service) UpdatePlate(ctx context.Context, id string, mutator func(*domain.Plate) error) (domain.Plate, domain.Result, error) {
	var updated domain.Plate
	res, err := s.run(ctx, "update_plate", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdatePlate(id, mutator)
		return err
	}, func() string { return id })
	return updated, res, err
}

// DeletePlate removes a plate unless wells still reference it.
func (s *Service) DeletePlate(ctx context.Context, id string) (domain.Result, error) {
	return s.run(ctx, "delete_plate", func(tx domain.Transaction) error {
		return tx.DeletePlate(id)
	}, func() string { return id })
}

// GetPlate returns a plate by ID.
func (s *Service) GetPlate(ctx context.Context, id string) (domain.Plate, bool) {
	var (
		plate domain.Plate
		ok    bool
	)
	_ = s.instrument(ctx, "get_plate", func(context.Context) (string, error) {
		plate, ok = s.store.GetPlate(id)
		return id, nil
	})
	return plate, ok
}

// FindPlateByName returns the plate carrying the given name.
func (s *Service) FindPlateByName(ctx context.Context, name string) (domain.Plate, bool) {
	var (
		plate domain.Plate
		ok    bool
	)
	_ = s.instrument(ctx, "find_plate_by_name", func(ctx context.Context) (string, error) {
		return "", s.store.View(ctx, func(view domain.TransactionView) error {
			plate, ok = view.FindPlateByName(name)
			return nil
		})
	})
	return plate, ok
}

// ListPlates returns all plates.
func (s *Service) ListPlates(ctx context.Context) []domain.Plate {
	var plates []domain.Plate
	_ = s.instrument(ctx, "list_plates", func(context.Context) (string, error) {
		plates = s.store.ListPlates()
		return "", nil
	})
	return plates
}

// PlateWell resolves one occupied plate position to its well, sample and
// primer records.
type PlateWell struct {
	Well   domain.Well
	Sample domain.Sample
	Primer domain.Primer
}

// PlateLayout is the full grid of a plate. Grid is indexed by row then
// column; unused positions are nil.
type PlateLayout struct {
	Plate domain.Plate
	Grid  [domain.PlateRows][domain.PlateColumns]*PlateWell
}

// PlateLayout resolves the plate and its wells into the physical 8x12 grid.
func (s *Service) PlateLayout(ctx context.Context, plateID string) (PlateLayout, error) {
	var layout PlateLayout
	err := s.instrument(ctx, "plate_layout", func(ctx context.Context) (string, error) {
		return plateID, s.store.View(ctx, func(view domain.TransactionView) error {
			plate, ok := view.FindPlate(plateID)
			if !ok {
				return domain.NotFoundError{Entity: domain.EntityPlate, ID: plateID}
			}
			layout.Plate = plate
			for _, well := range view.ListWells() {
				if well.PlateID != plateID {
					continue
				}
				cell := &PlateWell{Well: well}
				if sample, ok := view.FindSample(well.SampleID); ok {
					cell.Sample = sample
				}
				if primer, ok := view.FindPrimer(well.PrimerID); ok {
					cell.Primer = primer
				}
				layout.Grid[domain.WellRowIndex(well.Name)][domain.WellColumnIndex(well.Name)] = cell
			}
			return nil
		})
	})
	if err != nil {
		return PlateLayout{}, err
	}
	return layout, nil
}

// EnsurePrimers creates any primers missing from the registry vocabulary.
// It is idempotent and returns the full primer set in vocabulary order.
func (s *Service) EnsurePrimers(ctx context.Context) ([]domain.Primer, domain.Result, error) {
	var primers []domain.Primer
	res, err := s.run(ctx, "ensure_primers", func(tx domain.Transaction) error {
		view := tx.Snapshot()
		for _, name := range domain.PrimerNames() {
			if existing, ok := view.FindPrimerByName(name); ok {
				primers = append(primers, existing)
				continue
			}
			created, err := tx.CreatePrimer(domain.Primer{Name: name})
			if err != nil {
				return err
			}
			primers = append(primers, created)
		}
		return nil
	}, nil)
	if err != nil {
		return nil, res, err
	}
	return primers, res, nil
}

// CreatePrimer persists a primer from the registry vocabulary.
func (s *Service) CreatePrimer(ctx context.Context, primer domain.Primer) (domain.Primer, domain.Result, error) {
	var created domain.Primer
	res, err := s.run(ctx, "create_primer", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreatePrimer(primer)
		return err
	}, func() string { return created.ID })
	return created, res, err
}

// DeletePrimer removes a primer unless wells still reference it. Primers
// have no update operation: the name is the entire identity.
func (s *Service) DeletePrimer(ctx context.Context, id string) (domain.Result, error) {
	return s.run(ctx, "delete_primer", func(tx domain.Transaction) error {
		return tx.DeletePrimer(id)
	}, func() string { return id })
}

// GetPrimer returns a primer by ID.
func (s *Service) GetPrimer(ctx context.Context, id string) (domain.Primer, bool) {
	var (
		primer domain.Primer
		ok     bool
	)
	_ = s.instrument(ctx, "get_primer", func(context.Context) (string, error) {
		primer, ok = s.store.GetPrimer(id)
		return id, nil
	})
	return primer, ok
}

// FindPrimerByName returns the primer carrying the given name.
func (s *Service) FindPrimerByName(ctx context.Context, name string) (domain.Primer, bool) {
	var (
		primer domain.Primer
		ok     bool
	)
	_ = s.instrument(ctx, "find_primer_by_name", func(ctx context.Context) (string, error) {
		return "", s.store.View(ctx, func(view domain.TransactionView) error {
			primer, ok = view.FindPrimerByName(name)
			return nil
		})
	})
	return primer, ok
}

// ListPrimers returns all primers.
func (s *Service) ListPrimers(ctx context.Context) []domain.Primer {
	var primers []domain.Primer
	_ = s.instrument(ctx, "list_primers", func(context.Context) (string, error) {
		primers = s.store.ListPrimers()
		return "", nil
	})
	return primers
}

// CreateWell places a sample in a plate position.
func (s *Service) CreateWell(ctx context.Context, well domain.Well) (domain.Well, domain.Result, error) {
	var created domain.Well
	res, err := s.run(ctx, "create_well", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateWell(well)
		return err
	}, func() string { return created.ID })
	return created, res, err
}

// UpdateWell mutates a well using the provided mutator.
func (s *Service) UpdateWell(ctx context.Context, id string, mutator func(*domain.Well) error) (domain.Well, domain.Result, error) {
	var updated domain.Well
	res, err := s.run(ctx, "update_well", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateWell(id, mutator)
		return err
	}, func() string { return id })
	return updated, res, err
}

// DeleteWell removes a well unless sequencing records still reference it.
func (s *Service) DeleteWell(ctx context.Context, id string) (domain.Result, error) {
	return s.run(ctx, "delete_well", func(tx domain.Transaction) error {
		return tx.DeleteWell(id)
	}, func() string { return id })
}

// GetWell returns a well by ID.
func (s *Service) GetWell(ctx context.Context, id string) (domain.Well, bool) {
	var (
		well domain.Well
		ok   bool
	)
	_ = s.instrument(ctx, "get_well", func(context.Context) (string, error) {
		well, ok = s.store.GetWell(id)
		return id, nil
	})
	return well, ok
}

// FindWellByPosition returns the well occupying a plate position.
func (s *Service) FindWellByPosition(ctx context.Context, plateID, name string) (domain.Well, bool) {
	var (
		well domain.Well
		ok   bool
	)
	_ = s.instrument(ctx, "find_well_by_position", func(ctx context.Context) (string, error) {
		return "", s.store.View(ctx, func(view domain.TransactionView) error {
			well, ok = view.FindWellByPosition(plateID, name)
			return nil
		})
	})
	return well, ok
}

// ListWells returns all wells.
func (s *Service) ListWells(ctx context.Context) []domain.Well {
	var wells []domain.Well
	_ = s.instrument(ctx, "list_wells", func(context.Context) (string, error) {
		wells = s.store.ListWells()
		return "", nil
	})
	return wells
}

// ListWellsByPlate returns the wells of one plate.
func (s *Service) ListWellsByPlate(ctx context.Context, plateID string) []domain.Well {
	var wells []domain.Well
	_ = s.instrument(ctx, "list_wells_by_plate", func(context.Context) (string, error) {
		for _, well := range s.store.ListWells() {
			if well.PlateID == plateID {
				wells = append(wells, well)
			}
		}
		return plateID, nil
	})
	return wells
}

// CreateSequencing persists a sequencing placeholder for a well.
func (s *Service) CreateSequencing(ctx context.Context, sequencing domain.Sequencing) (domain.Sequencing, domain.Result, error) {
	var created domain.Sequencing
	res, err := s.run(ctx, "create_sequencing", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateSequencing(sequencing)
		return err
	}, func() string { return created.ID })
	return created, res, err
}

// UpdateSequencing mutates a sequencing record using the provided mutator.
func (s *Service) UpdateSequencing(ctx context.Context, id string, mutator func(*domain.Sequencing) error) (domain.Sequencing, domain.Result, error) {
	var updated domain.Sequencing
	res, err := s.run(ctx, "update_sequencing", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateSequencing(id, mutator)
		return err
	}, func() string { return id })
	return updated, res, err
}

// DeleteSequencing removes a sequencing record.
func (s *Service) DeleteSequencing(ctx context.Context, id string) (domain.Result, error) {
	return s.run(ctx, "delete_sequencing", func(tx domain.Transaction) error {
		return tx.DeleteSequencing(id)
	}, func() string { return id })
}

// GetSequencing returns a sequencing record by ID.
func (s *Service) GetSequencing(ctx context.Context, id string) (domain.Sequencing, bool) {
	var (
		sequencing domain.Sequencing
		ok         bool
	)
	_ = s.instrument(ctx, "get_sequencing", func(context.Context) (string, error) {
		sequencing, ok = s.store.GetSequencing(id)
		return id, nil
	})
	return sequencing, ok
}

// ListSequencings returns all sequencing records.
func (s *Service) ListSequencings(ctx context.Context) []domain.Sequencing {
	var sequencings []domain.Sequencing
	_ = s.instrument(ctx, "list_sequencings", func(context.Context) (string, error) {
		sequencings = s.store.ListSequencings()
		return "", nil
	})
	return sequencings
}

// ListSequencingsByWell returns the sequencing records of one well.
func (s *Service) ListSequencingsByWell(ctx context.Context, wellID string) []domain.Sequencing {
	var sequencings []domain.Sequencing
	_ = s.instrument(ctx, "list_sequencings_by_well", func(context.Context) (string, error) {
		for _, sequencing := range s.store.ListSequencings() {
			if sequencing.WellID == wellID {
				sequencings = append(sequencings, sequencing)
			}
		}
		return wellID, nil
	})
	return sequencings
}

// CreateSequencingResult persists a final-result placeholder for a well.
func (s *Service) CreateSequencingResult(ctx context.Context, result domain.SequencingResult) (domain.SequencingResult, domain.Result, error) {
	var created domain.SequencingResult
	res, err := s.run(ctx, "create_sequencing_result", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateSequencingResult(result)
		return err
	}, func() string { return created.ID })
	return created, res, err
}

// UpdateSequencingResult mutates a result record using the provided mutator.
func (s *Service) UpdateSequencingResult(ctx context.Context, id string, mutator func(*domain.SequencingResult) error) (domain.SequencingResult, domain.Result, error) {
	var updated domain.SequencingResult
	res, err := s.run(ctx, "update_sequencing_result", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateSequencingResult(id, mutator)
		return err
	}, func() string { return id })
	return updated, res, err
}

// DeleteSequencingResult removes a result record.
func (s *Service) DeleteSequencingResult(ctx context.Context, id string) (domain.Result, error) {
	return s.run(ctx, "delete_sequencing_result", func(tx domain.Transaction) error {
		return tx.DeleteSequencingResult(id)
	}, func() string { return id })
}

// GetSequencingResult returns a result record by ID.
func (s *Service) GetSequencingResult(ctx context.Context, id string) (domain.SequencingResult, bool) {
	var (
		result domain.SequencingResult
		ok     bool
	)
	_ = s.instrument(ctx, "get_sequencing_result", func(context.Context) (string, error) {
		result, ok = s.store.GetSequencingResult(id)
		return id, nil
	})
	return result, ok
}

// ListSequencingResults returns all result records.
func (s *Service) ListSequencingResults(ctx context.Context) []domain.SequencingResult {
	var results []domain.SequencingResult
	_ = s.instrument(ctx, "list_sequencing_results", func(context.Context) (string, error) {
		results = s.store.ListSequencingResults()
		return "", nil
	})
	return results
}

// ListSequencingResultsByWell returns the result records of one well.
func (s *Service) ListSequencingResultsByWell(ctx context.Context, wellID string) []domain.SequencingResult {
	var results []domain.SequencingResult
	_ = s.instrument(ctx, "list_sequencing_results_by_well", func(context.Context) (string, error) {
		for _, result := range s.store.ListSequencingResults() {
			if result.WellID == wellID {
				results = append(results, result)
			}
		}
		return wellID, nil
	})
	return results
}
