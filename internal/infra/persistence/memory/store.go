// Package memory provides the in-memory implementation of the registry
// persistence store. Durable drivers embed it and persist its snapshots.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sort"
	"sync"
	"time"

	"cloud.google.com/go/civil"

	"manuscriptdna/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interfaces.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Sheet aliases domain.Sheet for in-memory persistence operations.
	Sheet = domain.Sheet
	// Photo aliases domain.Photo.
	Photo = domain.Photo
	// Session aliases domain.Session.
	Session = domain.Session
	// Sample aliases domain.Sample.
	Sample = domain.Sample
	// Plate aliases domain.Plate.
	Plate = domain.Plate
	// Primer aliases domain.Primer.
	Primer = domain.Primer
	// Well aliases domain.Well.
	Well = domain.Well
	// Sequencing aliases domain.Sequencing.
	Sequencing = domain.Sequencing
	// SequencingResult aliases domain.SequencingResult.
	SequencingResult = domain.SequencingResult
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
	// PersistentStore aliases domain.PersistentStore abstraction.
	PersistentStore = domain.PersistentStore
)

type memoryState struct {
	sheets    map[string]Sheet
	photos    map[string]Photo
	sessions  map[string]Session
	samples   map[string]Sample
	plates    map[string]Plate
	primers   map[string]Primer
	wells     map[string]Well
	seqRuns   map[string]Sequencing
	results   map[string]SequencingResult
	sampleSeq int64
}

// Snapshot captures a point-in-time clone of the store state. SampleSeq is
// the serial-number high-water mark for samples.
type Snapshot struct {
	Sheets    map[string]Sheet            `json:"sheets"`
	Photos    map[string]Photo            `json:"photos"`
	Sessions  map[string]Session          `json:"sessions"`
	Samples   map[string]Sample           `json:"samples"`
	Plates    map[string]Plate            `json:"plates"`
	Primers   map[string]Primer           `json:"primers"`
	Wells     map[string]Well             `json:"wells"`
	SeqRuns   map[string]Sequencing       `json:"sequencings"`
	Results   map[string]SequencingResult `json:"results"`
	SampleSeq int64                       `json:"sample_seq"`
}

func newMemoryState() memoryState {
	return memoryState{
		sheets:   make(map[string]Sheet),
		photos:   make(map[string]Photo),
		sessions: make(map[string]Session),
		samples:  make(map[string]Sample),
		plates:   make(map[string]Plate),
		primers:  make(map[string]Primer),
		wells:    make(map[string]Well),
		seqRuns:  make(map[string]Sequencing),
		results:  make(map[string]SequencingResult),
	}
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	s := Snapshot{
		Sheets:    make(map[string]Sheet, len(state.sheets)),
		Photos:    make(map[string]Photo, len(state.photos)),
		Sessions:  make(map[string]Session, len(state.sessions)),
		Samples:   make(map[string]Sample, len(state.samples)),
		Plates:    make(map[string]Plate, len(state.plates)),
		Primers:   make(map[string]Primer, len(state.primers)),
		Wells:     make(map[string]Well, len(state.wells)),
		SeqRuns:   make(map[string]Sequencing, len(state.seqRuns)),
		Results:   make(map[string]SequencingResult, len(state.results)),
		SampleSeq: state.sampleSeq,
	}
	for k, v := range state.sheets {
		s.Sheets[k] = cloneSheet(v)
	}
	for k, v := range state.photos {
		s.Photos[k] = clonePhoto(v)
	}
	for k, v := range state.sessions {
		s.Sessions[k] = cloneSession(v)
	}
	for k, v := range state.samples {
		s.Samples[k] = cloneSample(v)
	}
	for k, v := range state.plates {
		s.Plates[k] = clonePlate(v)
	}
	for k, v := range state.primers {
		s.Primers[k] = clonePrimer(v)
	}
	for k, v := range state.wells {
		s.Wells[k] = cloneWell(v)
	}
	for k, v := range state.seqRuns {
		s.SeqRuns[k] = cloneSequencing(v)
	}
	for k, v := range state.results {
		s.Results[k] = cloneResult(v)
	}
	return s
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	state := newMemoryState()
	for k, v := range s.Sheets {
		state.sheets[k] = cloneSheet(v)
	}
	for k, v := range s.Photos {
		state.photos[k] = clonePhoto(v)
	}
	for k, v := range s.Sessions {
		state.sessions[k] = cloneSession(v)
	}
	for k, v := range s.Samples {
		state.samples[k] = cloneSample(v)
	}
	for k, v := range s.Plates {
		state.plates[k] = clonePlate(v)
	}
	for k, v := range s.Primers {
		state.primers[k] = clonePrimer(v)
	}
	for k, v := range s.Wells {
		state.wells[k] = cloneWell(v)
	}
	for k, v := range s.SeqRuns {
		state.seqRuns[k] = cloneSequencing(v)
	}
	for k, v := range s.Results {
		state.results[k] = cloneResult(v)
	}
	state.sampleSeq = s.SampleSeq
	return state
}

// migrateSnapshot normalizes externally supplied snapshots: nil maps become
// empty, records with dangling references or out-of-vocabulary values are
// pruned, natural-key duplicates collapse to the lexicographically smallest
// ID, and the sample serial counter is restored from the data when absent.
func migrateSnapshot(snapshot Snapshot) Snapshot {
	if snapshot.Sheets == nil {
		snapshot.Sheets = map[string]Sheet{}
	}
	if snapshot.Photos == nil {
		snapshot.Photos = map[string]Photo{}
	}
	if snapshot.Sessions == nil {
		snapshot.Sessions = map[string]Session{}
	}
	if snapshot.Samples == nil {
		snapshot.Samples = map[string]Sample{}
	}
	if snapshot.Plates == nil {
		snapshot.Plates = map[string]Plate{}
	}
	if snapshot.Primers == nil {
		snapshot.Primers = map[string]Primer{}
	}
	if snapshot.Wells == nil {
		snapshot.Wells = map[string]Well{}
	}
	if snapshot.SeqRuns == nil {
		snapshot.SeqRuns = map[string]Sequencing{}
	}
	if snapshot.Results == nil {
		snapshot.Results = map[string]SequencingResult{}
	}

	dropDuplicateSheets(snapshot.Sheets)
	dropDuplicateSessions(snapshot.Sessions)
	dropDuplicatePlates(snapshot.Plates)
	dropDuplicatePrimers(snapshot.Primers)

	for id, primer := range snapshot.Primers {
		if !domain.IsPrimerName(primer.Name) {
			delete(snapshot.Primers, id)
		}
	}

	sheetExists := func(id string) bool {
		_, ok := snapshot.Sheets[id]
		return ok
	}
	sessionExists := func(id string) bool {
		_, ok := snapshot.Sessions[id]
		return ok
	}
	photoExists := func(id string) bool {
		_, ok := snapshot.Photos[id]
		return ok
	}

	for id, photo := range snapshot.Photos {
		if photo.SheetID == "" || !sheetExists(photo.SheetID) || photo.FileKey == "" {
			delete(snapshot.Photos, id)
		}
	}

	for id, sample := range snapshot.Samples {
		if sample.SheetID == "" || !sheetExists(sample.SheetID) {
			delete(snapshot.Samples, id)
			continue
		}
		if sample.SessionID == "" || !sessionExists(sample.SessionID) {
			delete(snapshot.Samples, id)
			continue
		}
		if sample.PhotoID != nil && !photoExists(*sample.PhotoID) {
			sample.PhotoID = nil
		}
		snapshot.Samples[id] = sample
	}

	plateExists := func(id string) bool {
		_, ok := snapshot.Plates[id]
		return ok
	}
	sampleExists := func(id string) bool {
		_, ok := snapshot.Samples[id]
		return ok
	}
	primerExists := func(id string) bool {
		_, ok := snapshot.Primers[id]
		return ok
	}

	positions := make(map[string]string, len(snapshot.Wells))
	for _, id := range sortedKeys(snapshot.Wells) {
		well := snapshot.Wells[id]
		if !domain.IsWellPosition(well.Name) {
			delete(snapshot.Wells, id)
			continue
		}
		if well.PlateID == "" || !plateExists(well.PlateID) {
			delete(snapshot.Wells, id)
			continue
		}
		if well.SampleID == "" || !sampleExists(well.SampleID) {
			delete(snapshot.Wells, id)
			continue
		}
		if well.PrimerID == "" || !primerExists(well.PrimerID) {
			delete(snapshot.Wells, id)
			continue
		}
		key := well.NaturalKey()
		if _, taken := positions[key]; taken {
			delete(snapshot.Wells, id)
			continue
		}
		positions[key] = id
	}

	wellExists := func(id string) bool {
		_, ok := snapshot.Wells[id]
		return ok
	}

	for id, run := range snapshot.SeqRuns {
		if run.WellID == "" || !wellExists(run.WellID) {
			delete(snapshot.SeqRuns, id)
		}
	}
	for id, result := range snapshot.Results {
		if result.WellID == "" || !wellExists(result.WellID) {
			delete(snapshot.Results, id)
		}
	}

	for _, sample := range snapshot.Samples {
		if sample.Seq > snapshot.SampleSeq {
			snapshot.SampleSeq = sample.Seq
		}
	}

	return snapshot
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dropDuplicateSheets(sheets map[string]Sheet) {
	seen := make(map[string]struct{}, len(sheets))
	for _, id := range sortedKeys(sheets) {
		key := sheets[id].NaturalKey()
		if _, dup := seen[key]; dup {
			delete(sheets, id)
			continue
		}
		seen[key] = struct{}{}
	}
}

func dropDuplicateSessions(sessions map[string]Session) {
	seen := make(map[string]struct{}, len(sessions))
	for _, id := range sortedKeys(sessions) {
		key := sessions[id].NaturalKey()
		if _, dup := seen[key]; dup {
			delete(sessions, id)
			continue
		}
		seen[key] = struct{}{}
	}
}

func dropDuplicatePlates(plates map[string]Plate) {
	seen := make(map[string]struct{}, len(plates))
	for _, id := range sortedKeys(plates) {
		key := plates[id].NaturalKey()
		if _, dup := seen[key]; dup {
			delete(plates, id)
			continue
		}
		seen[key] = struct{}{}
	}
}

func dropDuplicatePrimers(primers map[string]Primer) {
	seen := make(map[string]struct{}, len(primers))
	for _, id := range sortedKeys(primers) {
		key := primers[id].NaturalKey()
		if _, dup := seen[key]; dup {
			delete(primers, id)
			continue
		}
		seen[key] = struct{}{}
	}
}

func (s memoryState) clone() memoryState {
	cloned := newMemoryState()
	for k, v := range s.sheets {
		cloned.sheets[k] = cloneSheet(v)
	}
	for k, v := range s.photos {
		cloned.photos[k] = clonePhoto(v)
	}
	for k, v := range s.sessions {
		cloned.sessions[k] = cloneSession(v)
	}
	for k, v := range s.samples {
		cloned.samples[k] = cloneSample(v)
	}
	for k, v := range s.plates {
		cloned.plates[k] = clonePlate(v)
	}
	for k, v := range s.primers {
		cloned.primers[k] = clonePrimer(v)
	}
	for k, v := range s.wells {
		cloned.wells[k] = cloneWell(v)
	}
	for k, v := range s.seqRuns {
		cloned.seqRuns[k] = cloneSequencing(v)
	}
	for k, v := range s.results {
		cloned.results[k] = cloneResult(v)
	}
	cloned.sampleSeq = s.sampleSeq
	return cloned
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSheet(s Sheet) Sheet {
	cp := s
	cp.Comments = cloneStringPtr(s.Comments)
	return cp
}

func clonePhoto(p Photo) Photo { return p }

func cloneSession(s Session) Session {
	cp := s
	cp.Comments = cloneStringPtr(s.Comments)
	return cp
}

func cloneSample(s Sample) Sample {
	cp := s
	cp.PhotoID = cloneStringPtr(s.PhotoID)
	cp.Comments = cloneStringPtr(s.Comments)
	return cp
}

func clonePlate(p Plate) Plate { return p }

func clonePrimer(p Primer) Primer { return p }

func cloneWell(w Well) Well {
	cp := w
	cp.Comments = cloneStringPtr(w.Comments)
	return cp
}

func cloneSequencing(s Sequencing) Sequencing {
	cp := s
	cp.Comments = cloneStringPtr(s.Comments)
	return cp
}

func cloneResult(r SequencingResult) SequencingResult {
	cp := r
	cp.Comments = cloneStringPtr(r.Comments)
	return cp
}

// Store provides an in-memory transactional store for the sample registry.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = memoryStateFromSnapshot(migrateSnapshot(snapshot))
}

// RulesEngine exposes the currently configured engine.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// NowFunc returns the time provider used by the in-memory store.
func (s *Store) NowFunc() func() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFn
}

// transaction represents a mutation set applied to the store state.
type transaction struct {
	store   *Store
	state   memoryState
	changes []Change
	now     time.Time
}

// transactionView exposes a read-only snapshot of the transactional state.
type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

// ListSheets returns all sheets within the snapshot.
func (v transactionView) ListSheets() []Sheet {
	out := make([]Sheet, 0, len(v.state.sheets))
	for _, s := range v.state.sheets {
		out = append(out, cloneSheet(s))
	}
	return out
}

// ListPhotos returns all photos within the snapshot.
func (v transactionView) ListPhotos() []Photo {
	out := make([]Photo, 0, len(v.state.photos))
	for _, p := range v.state.photos {
		out = append(out, clonePhoto(p))
	}
	return out
}

// ListSessions returns all sessions within the snapshot.
func (v transactionView) ListSessions() []Session {
	out := make([]Session, 0, len(v.state.sessions))
	for _, s := range v.state.sessions {
		out = append(out, cloneSession(s))
	}
	return out
}

// ListSamples returns all samples within the snapshot.
func (v transactionView) ListSamples() []Sample {
	out := make([]Sample, 0, len(v.state.samples))
	for _, s := range v.state.samples {
		out = append(out, cloneSample(s))
	}
	return out
}

// ListPlates returns all plates within the snapshot.
func (v transactionView) ListPlates() []Plate {
	out := make([]Plate, 0, len(v.state.plates))
	for _, p := range v.state.plates {
		out = append(out, clonePlate(p))
	}
	return out
}

// ListPrimers returns all primers within the snapshot.
func (v transactionView) ListPrimers() []Primer {
	out := make([]Primer, 0, len(v.state.primers))
	for _, p := range v.state.primers {
		out = append(out, clonePrimer(p))
	}
	return out
}

// ListWells returns all wells within the snapshot.
func (v transactionView) ListWells() []Well {
	out := make([]Well, 0, len(v.state.wells))
	for _, w := range v.state.wells {
		out = append(out, cloneWell(w))
	}
	return out
}

// ListSequencings returns all sequencing placeholders within the snapshot.
func (v transactionView) ListSequencings() []Sequencing {
	out := make([]Sequencing, 0, len(v.state.seqRuns))
	for _, s := range v.state.seqRuns {
		out = append(out, cloneSequencing(s))
	}
	return out
}

// ListSequencingResults returns all result placeholders within the snapshot.
func (v transactionView) ListSequencingResults() []SequencingResult {
	out := make([]SequencingResult, 0, len(v.state.results))
	for _, r := range v.state.results {
		out = append(out, cloneResult(r))
	}
	return out
}

// FindSheet retrieves a sheet by ID from the snapshot.
func (v transactionView) FindSheet(id string) (Sheet, bool) {
	s, ok := v.state.sheets[id]
	if !ok {
		return Sheet{}, false
	}
	return cloneSheet(s), true
}

// FindPhoto retrieves a photo by ID from the snapshot.
func (v transactionView) FindPhoto(id string) (Photo, bool) {
	p, ok := v.state.photos[id]
	if !ok {
		return Photo{}, false
	}
	return clonePhoto(p), true
}

// FindSession retrieves a session by ID from the snapshot.
func (v transactionView) FindSession(id string) (Session, bool) {
	s, ok := v.state.sessions[id]
	if !ok {
		return Session{}, false
	}
	return cloneSession(s), true
}

// FindSample retrieves a sample by ID from the snapshot.
func (v transactionView) FindSample(id string) (Sample, bool) {
	s, ok := v.state.samples[id]
	if !ok {
		return Sample{}, false
	}
	return cloneSample(s), true
}

// FindPlate retrieves a plate by ID from the snapshot.
func (v transactionView) FindPlate(id string) (Plate, bool) {
	p, ok := v.state.plates[id]
	if !ok {
		return Plate{}, false
	}
	return clonePlate(p), true
}

// FindPrimer retrieves a primer by ID from the snapshot.
func (v transactionView) FindPrimer(id string) (Primer, bool) {
	p, ok := v.state.primers[id]
	if !ok {
		return Primer{}, false
	}
	return clonePrimer(p), true
}

// FindWell retrieves a well by ID from the snapshot.
func (v transactionView) FindWell(id string) (Well, bool) {
	w, ok := v.state.wells[id]
	if !ok {
		return Well{}, false
	}
	return cloneWell(w), true
}

// FindSequencing retrieves a sequencing placeholder by ID from the snapshot.
func (v transactionView) FindSequencing(id string) (Sequencing, bool) {
	s, ok := v.state.seqRuns[id]
	if !ok {
		return Sequencing{}, false
	}
	return cloneSequencing(s), true
}

// FindSequencingResult retrieves a result placeholder by ID from the snapshot.
func (v transactionView) FindSequencingResult(id string) (SequencingResult, bool) {
	r, ok := v.state.results[id]
	if !ok {
		return SequencingResult{}, false
	}
	return cloneResult(r), true
}

// FindSheetByName retrieves a sheet by its natural key.
func (v transactionView) FindSheetByName(name string) (Sheet, bool) {
	for _, s := range v.state.sheets {
		if s.Name == name {
			return cloneSheet(s), true
		}
	}
	return Sheet{}, false
}

// FindSessionByDate retrieves a session by its natural key.
func (v transactionView) FindSessionByDate(date civil.Date) (Session, bool) {
	for _, s := range v.state.sessions {
		if s.Date == date {
			return cloneSession(s), true
		}
	}
	return Session{}, false
}

// FindPlateByName retrieves a plate by its natural key.
func (v transactionView) FindPlateByName(name string) (Plate, bool) {
	for _, p := range v.state.plates {
		if p.Name == name {
			return clonePlate(p), true
		}
	}
	return Plate{}, false
}

// FindPrimerByName retrieves a primer by its natural key.
func (v transactionView) FindPrimerByName(name string) (Primer, bool) {
	for _, p := range v.state.primers {
		if p.Name == name {
			return clonePrimer(p), true
		}
	}
	return Primer{}, false
}

// FindWellByPosition retrieves a well by its plate and position name.
func (v transactionView) FindWellByPosition(plateID, name string) (Well, bool) {
	for _, w := range v.state.wells {
		if w.PlateID == plateID && w.Name == name {
			return cloneWell(w), true
		}
	}
	return Well{}, false
}

// RunInTransaction executes fn within a transactional copy of the store state.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	view := newTransactionView(&snapshot)
	return fn(view)
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

func (tx *transaction) nextSampleSeq() int64 {
	tx.state.sampleSeq++
	return tx.state.sampleSeq
}

func referencedError(entity domain.EntityType, id string, by domain.EntityType, byID string) error {
	return domain.ReferencedError{Entity: entity, ID: id, ByEntity: by, ByID: byID}
}

// Natural-key occupancy scans shared by create and update paths. The
// excludeID parameter lets updates skip the record being rewritten.

func sheetNameInUse(state *memoryState, name, excludeID string) bool {
	for _, s := range state.sheets {
		if s.ID != excludeID && s.Name == name {
			return true
		}
	}
	return false
}

func sessionDateInUse(state *memoryState, date civil.Date, excludeID string) bool {
	for _, s := range state.sessions {
		if s.ID != excludeID && s.Date == date {
			return true
		}
	}
	return false
}

func plateNameInUse(state *memoryState, name, excludeID string) bool {
	for _, p := range state.plates {
		if p.ID != excludeID && p.Name == name {
			return true
		}
	}
	return false
}

func primerNameInUse(state *memoryState, name, excludeID string) bool {
	for _, p := range state.primers {
		if p.ID != excludeID && p.Name == name {
			return true
		}
	}
	return false
}

func wellPositionInUse(state *memoryState, plateID, name, excludeID string) bool {
	for _, w := range state.wells {
		if w.ID != excludeID && w.PlateID == plateID && w.Name == name {
			return true
		}
	}
	return false
}

func validateSheet(state *memoryState, s Sheet) error {
	if s.Name == "" {
		return domain.ValidationError{Entity: domain.EntitySheet, Field: "name", Message: "must not be empty"}
	}
	if len(s.Name) > domain.MaxSheetNameLen {
		return domain.ValidationError{Entity: domain.EntitySheet, Field: "name", Message: "exceeds 32 characters"}
	}
	if sheetNameInUse(state, s.Name, s.ID) {
		return domain.DuplicateError{Entity: domain.EntitySheet, Key: "name", Value: s.Name}
	}
	return nil
}

func validatePhoto(state *memoryState, p Photo) error {
	if p.SheetID == "" {
		return domain.ValidationError{Entity: domain.EntityPhoto, Field: "sheet_id", Message: "must not be empty"}
	}
	if _, ok := state.sheets[p.SheetID]; !ok {
		return domain.NotFoundError{Entity: domain.EntitySheet, ID: p.SheetID}
	}
	if p.FileKey == "" {
		return domain.ValidationError{Entity: domain.EntityPhoto, Field: "file_key", Message: "must not be empty"}
	}
	return nil
}

func validateSession(state *memoryState, s Session) error {
	if !s.Date.IsValid() {
		return domain.ValidationError{Entity: domain.EntitySession, Field: "date", Message: "not a valid calendar date"}
	}
	if sessionDateInUse(state, s.Date, s.ID) {
		return domain.DuplicateError{Entity: domain.EntitySession, Key: "date", Value: s.Date.String()}
	}
	return nil
}

func validateSample(state *memoryState, s Sample) error {
	if s.SheetID == "" {
		return domain.ValidationError{Entity: domain.EntitySample, Field: "sheet_id", Message: "must not be empty"}
	}
	if _, ok := state.sheets[s.SheetID]; !ok {
		return domain.NotFoundError{Entity: domain.EntitySheet, ID: s.SheetID}
	}
	if s.SessionID == "" {
		return domain.ValidationError{Entity: domain.EntitySample, Field: "session_id", Message: "must not be empty"}
	}
	if _, ok := state.sessions[s.SessionID]; !ok {
		return domain.NotFoundError{Entity: domain.EntitySession, ID: s.SessionID}
	}
	if s.PhotoID != nil {
		if _, ok := state.photos[*s.PhotoID]; !ok {
			return domain.NotFoundError{Entity: domain.EntityPhoto, ID: *s.PhotoID}
		}
	}
	return nil
}

func validatePlate(state *memoryState, p Plate) error {
	if p.Name == "" {
		return domain.ValidationError{Entity: domain.EntityPlate, Field: "name", Message: "must not be empty"}
	}
	if len(p.Name) > domain.MaxPlateNameLen {
		return domain.ValidationError{Entity: domain.EntityPlate, Field: "name", Message: "exceeds 9 characters"}
	}
	if plateNameInUse(state, p.Name, p.ID) {
		return domain.DuplicateError{Entity: domain.EntityPlate, Key: "name", Value: p.Name}
	}
	return nil
}

func validatePrimer(state *memoryState, p Primer) error {
	if !domain.IsPrimerName(p.Name) {
		return domain.ValidationError{Entity: domain.EntityPrimer, Field: "name", Message: "out of domain"}
	}
	if primerNameInUse(state, p.Name, p.ID) {
		return domain.DuplicateError{Entity: domain.EntityPrimer, Key: "name", Value: p.Name}
	}
	return nil
}

func validateWell(state *memoryState, w Well) error {
	if !domain.IsWellPosition(w.Name) {
		return domain.ValidationError{Entity: domain.EntityWell, Field: "name", Message: "outside grid A01..H12"}
	}
	if w.PlateID == "" {
		return domain.ValidationError{Entity: domain.EntityWell, Field: "plate_id", Message: "must not be empty"}
	}
	if _, ok := state.plates[w.PlateID]; !ok {
		return domain.NotFoundError{Entity: domain.EntityPlate, ID: w.PlateID}
	}
	if w.SampleID == "" {
		return domain.ValidationError{Entity: domain.EntityWell, Field: "sample_id", Message: "must not be empty"}
	}
	if _, ok := state.samples[w.SampleID]; !ok {
		return domain.NotFoundError{Entity: domain.EntitySample, ID: w.SampleID}
	}
	if w.PrimerID == "" {
		return domain.ValidationError{Entity: domain.EntityWell, Field: "primer_id", Message: "must not be empty"}
	}
	if _, ok := state.primers[w.PrimerID]; !ok {
		return domain.NotFoundError{Entity: domain.EntityPrimer, ID: w.PrimerID}
	}
	if w.Comments != nil && len(*w.Comments) > domain.MaxWellCommentsLen {
		return domain.ValidationError{Entity: domain.EntityWell, Field: "comments", Message: "exceeds 256 characters"}
	}
	if wellPositionInUse(state, w.PlateID, w.Name, w.ID) {
		return domain.DuplicateError{Entity: domain.EntityWell, Key: "position", Value: w.NaturalKey()}
	}
	return nil
}

func validateSequencing(state *memoryState, s Sequencing) error {
	if s.WellID == "" {
		return domain.ValidationError{Entity: domain.EntitySequencing, Field: "well_id", Message: "must not be empty"}
	}
	if _, ok := state.wells[s.WellID]; !ok {
		return domain.NotFoundError{Entity: domain.EntityWell, ID: s.WellID}
	}
	return nil
}

func validateResult(state *memoryState, r SequencingResult) error {
	if r.WellID == "" {
		return domain.ValidationError{Entity: domain.EntitySequencingResult, Field: "well_id", Message: "must not be empty"}
	}
	if _, ok := state.wells[r.WellID]; !ok {
		return domain.NotFoundError{Entity: domain.EntityWell, ID: r.WellID}
	}
	return nil
}

// CreateSheet stores a new sheet within the transaction.
func (tx *transaction) CreateSheet(s Sheet) (Sheet, error) {
	if s.ID == "" {
		s.ID = tx.store.newID()
	}
	if _, exists := tx.state.sheets[s.ID]; exists {
		return Sheet{}, domain.DuplicateError{Entity: domain.EntitySheet, Key: "id", Value: s.ID}
	}
	if err := validateSheet(&tx.state, s); err != nil {
		return Sheet{}, err
	}
	s.CreatedAt = tx.now
	s.UpdatedAt = tx.now
	tx.state.sheets[s.ID] = cloneSheet(s)
	tx.recordChange(Change{Entity: domain.EntitySheet, Action: domain.ActionCreate, After: cloneSheet(s)})
	return cloneSheet(s), nil
}

// UpdateSheet mutates a sheet using the provided mutator function.
func (tx *transaction) UpdateSheet(id string, mutator func(*Sheet) error) (Sheet, error) {
	current, ok := tx.state.sheets[id]
	if !ok {
		return Sheet{}, domain.NotFoundError{Entity: domain.EntitySheet, ID: id}
	}
	before := cloneSheet(current)
	if err := mutator(&current); err != nil {
		return Sheet{}, err
	}
	current.ID = id
	if err := validateSheet(&tx.state, current); err != nil {
		return Sheet{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.sheets[id] = cloneSheet(current)
	tx.recordChange(Change{Entity: domain.EntitySheet, Action: domain.ActionUpdate, Before: before, After: cloneSheet(current)})
	return cloneSheet(current), nil
}

// DeleteSheet removes a sheet unless photos or samples still reference it.
func (tx *transaction) DeleteSheet(id string) error {
	current, ok := tx.state.sheets[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntitySheet, ID: id}
	}
	for _, photo := range tx.state.photos {
		if photo.SheetID == id {
			return referencedError(domain.EntitySheet, id, domain.EntityPhoto, photo.ID)
		}
	}
	for _, sample := range tx.state.samples {
		if sample.SheetID == id {
			return referencedError(domain.EntitySheet, id, domain.EntitySample, sample.ID)
		}
	}
	delete(tx.state.sheets, id)
	tx.recordChange(Change{Entity: domain.EntitySheet, Action: domain.ActionDelete, Before: cloneSheet(current)})
	return nil
}

// CreatePhoto stores a new photo record within the transaction.
func (tx *transaction) CreatePhoto(p Photo) (Photo, error) {
	if p.ID == "" {
		p.ID = tx.store.newID()
	}
	if _, exists := tx.state.photos[p.ID]; exists {
		return Photo{}, domain.DuplicateError{Entity: domain.EntityPhoto, Key: "id", Value: p.ID}
	}
	if err := validatePhoto(&tx.state, p); err != nil {
		return Photo{}, err
	}
	p.CreatedAt = tx.now
	p.UpdatedAt = tx.now
	tx.state.photos[p.ID] = clonePhoto(p)
	tx.recordChange(Change{Entity: domain.EntityPhoto, Action: domain.ActionCreate, After: clonePhoto(p)})
	return clonePhoto(p), nil
}

// UpdatePhoto mutates a photo record.
func (tx *transaction) UpdatePhoto(id string, mutator func(*Photo) error) (Photo, error) {
	current, ok := tx.state.photos[id]
	if !ok {
		return Photo{}, domain.NotFoundError{Entity: domain.EntityPhoto, ID: id}
	}
	before := clonePhoto(current)
	if err := mutator(&current); err != nil {
		return Photo{}, err
	}
	current.ID = id
	if err := validatePhoto(&tx.state, current); err != nil {
		return Photo{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.photos[id] = clonePhoto(current)
	tx.recordChange(Change{Entity: domain.EntityPhoto, Action: domain.ActionUpdate, Before: before, After: clonePhoto(current)})
	return clonePhoto(current), nil
}

// DeletePhoto removes a photo unless samples still reference it.
func (tx *transaction) DeletePhoto(id string) error {
	current, ok := tx.state.photos[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityPhoto, ID: id}
	}
	for _, sample := range tx.state.samples {
		if sample.PhotoID != nil && *sample.PhotoID == id {
			return referencedError(domain.EntityPhoto, id, domain.EntitySample, sample.ID)
		}
	}
	delete(tx.state.photos, id)
	tx.recordChange(Change{Entity: domain.EntityPhoto, Action: domain.ActionDelete, Before: clonePhoto(current)})
	return nil
}

// CreateSession stores a new session within the transaction.
func (tx *transaction) CreateSession(s Session) (Session, error) {
	if s.ID == "" {
		s.ID = tx.store.newID()
	}
	if _, exists := tx.state.sessions[s.ID]; exists {
		return Session{}, domain.DuplicateError{Entity: domain.EntitySession, Key: "id", Value: s.ID}
	}
	if err := validateSession(&tx.state, s); err != nil {
		return Session{}, err
	}
	s.CreatedAt = tx.now
	s.UpdatedAt = tx.now
	tx.state.sessions[s.ID] = cloneSession(s)
	tx.recordChange(Change{Entity: domain.EntitySession, Action: domain.ActionCreate, After: cloneSession(s)})
	return cloneSession(s), nil
}

// UpdateSession mutates a session record.
func (tx *transaction) UpdateSession(id string, mutator func(*Session) error) (Session, error) {
	current, ok := tx.state.sessions[id]
	if !ok {
		return Session{}, domain.NotFoundError{Entity: domain.EntitySession, ID: id}
	}
	before := cloneSession(current)
	if err := mutator(&current); err != nil {
		return Session{}, err
	}
	current.ID = id
	if err := validateSession(&tx.state, current); err != nil {
		return Session{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.sessions[id] = cloneSession(current)
	tx.recordChange(Change{Entity: domain.EntitySession, Action: domain.ActionUpdate, Before: before, After: cloneSession(current)})
	return cloneSession(current), nil
}

// DeleteSession removes a session unless samples still reference it.
func (tx *transaction) DeleteSession(id string) error {
	current, ok := tx.state.sessions[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntitySession, ID: id}
	}
	for _, sample := range tx.state.samples {
		if sample.SessionID == id {
			return referencedError(domain.EntitySession, id, domain.EntitySample, sample.ID)
		}
	}
	delete(tx.state.sessions, id)
	tx.recordChange(Change{Entity: domain.EntitySession, Action: domain.ActionDelete, Before: cloneSession(current)})
	return nil
}

// CreateSample stores a new sample and assigns its serial number.
func (tx *transaction) CreateSample(s Sample) (Sample, error) {
	if s.ID == "" {
		s.ID = tx.store.newID()
	}
	if _, exists := tx.state.samples[s.ID]; exists {
		return Sample{}, domain.DuplicateError{Entity: domain.EntitySample, Key: "id", Value: s.ID}
	}
	if err := validateSample(&tx.state, s); err != nil {
		return Sample{}, err
	}
	s.Seq = tx.nextSampleSeq()
	s.CreatedAt = tx.now
	s.UpdatedAt = tx.now
	tx.state.samples[s.ID] = cloneSample(s)
	tx.recordChange(Change{Entity: domain.EntitySample, Action: domain.ActionCreate, After: cloneSample(s)})
	return cloneSample(s), nil
}

// UpdateSample mutates a sample. The serial number survives any mutator.
func (tx *transaction) UpdateSample(id string, mutator func(*Sample) error) (Sample, error) {
	current, ok := tx.state.samples[id]
	if !ok {
		return Sample{}, domain.NotFoundError{Entity: domain.EntitySample, ID: id}
	}
	before := cloneSample(current)
	if err := mutator(&current); err != nil {
		return Sample{}, err
	}
	current.ID = id
	current.Seq = before.Seq
	if err := validateSample(&tx.state, current); err != nil {
		return Sample{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.samples[id] = cloneSample(current)
	tx.recordChange(Change{Entity: domain.EntitySample, Action: domain.ActionUpdate, Before: before, After: cloneSample(current)})
	return cloneSample(current), nil
}

// DeleteSample removes a sample unless wells still reference it.
func (tx *transaction) DeleteSample(id string) error {
	current, ok := tx.state.samples[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntitySample, ID: id}
	}
	for _, well := range tx.state.wells {
		if well.SampleID == id {
			return referencedError(domain.EntitySample, id, domain.EntityWell, well.ID)
		}
	}
	delete(tx.state.samples, id)
	tx.recordChange(Change{Entity: domain.EntitySample, Action: domain.ActionDelete, Before: cloneSample(current)})
	return nil
}

// CreatePlate stores a new plate within the transaction.
func (tx *transaction) CreatePlate(p Plate) (Plate, error) {
	if p.ID == "" {
		p.ID = tx.store.newID()
	}
	if _, exists := tx.state.plates[p.ID]; exists {
		return Plate{}, domain.DuplicateError{Entity: domain.EntityPlate, Key: "id", Value: p.ID}
	}
	if err := validatePlate(&tx.state, p); err != nil {
		return Plate{}, err
	}
	p.CreatedAt = tx.now
	p.UpdatedAt = tx.now
	tx.state.plates[p.ID] = clonePlate(p)
	tx.recordChange(Change{Entity: domain.EntityPlate, Action: domain.ActionCreate, After: clonePlate(p)})
	return clonePlate(p), nil
}

// UpdatePlate mutates a plate record.
func (tx *transaction) UpdatePlate(id string, mutator func(*Plate) error) (Plate, error) {
	current, ok := tx.state.plates[id]
	if !ok {
		return Plate{}, domain.NotFoundError{Entity: domain.EntityPlate, ID: id}
	}
	before := clonePlate(current)
	if err := mutator(&current); err != nil {
		return Plate{}, err
	}
	current.ID = id
	if err := validatePlate(&tx.state, current); err != nil {
		return Plate{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.plates[id] = clonePlate(current)
	tx.recordChange(Change{Entity: domain.EntityPlate, Action: domain.ActionUpdate, Before: before, After: clonePlate(current)})
	return clonePlate(current), nil
}

// DeletePlate removes a plate unless wells still reference it.
func (tx *transaction) DeletePlate(id string) error {
	current, ok := tx.state.plates[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityPlate, ID: id}
	}
	for _, well := range tx.state.wells {
		if well.PlateID == id {
			return referencedError(domain.EntityPlate, id, domain.EntityWell, well.ID)
		}
	}
	delete(tx.state.plates, id)
	tx.recordChange(Change{Entity: domain.EntityPlate, Action: domain.ActionDelete, Before: clonePlate(current)})
	return nil
}

// CreatePrimer stores a new primer. Primers carry no mutable fields, so the
// transaction interface deliberately offers no update.
func (tx *transaction) CreatePrimer(p Primer) (Primer, error) {
	if p.ID == "" {
		p.ID = tx.store.newID()
	}
	if _, exists := tx.state.primers[p.ID]; exists {
		return Primer{}, domain.DuplicateError{Entity: domain.EntityPrimer, Key: "id", Value: p.ID}
	}
	if err := validatePrimer(&tx.state, p); err != nil {
		return Primer{}, err
	}
	p.CreatedAt = tx.now
	p.UpdatedAt = tx.now
	tx.state.primers[p.ID] = clonePrimer(p)
	tx.recordChange(Change{Entity: domain.EntityPrimer, Action: domain.ActionCreate, After: clonePrimer(p)})
	return clonePrimer(p), nil
}

// DeletePrimer removes a primer unless wells still reference it.
func (tx *transaction) DeletePrimer(id string) error {
	current, ok := tx.state.primers[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityPrimer, ID: id}
	}
	for _, well := range tx.state.wells {
		if well.PrimerID == id {
			return referencedError(domain.EntityPrimer, id, domain.EntityWell, well.ID)
		}
	}
	delete(tx.state.primers, id)
	tx.recordChange(Change{Entity: domain.EntityPrimer, Action: domain.ActionDelete, Before: clonePrimer(current)})
	return nil
}

// CreateWell stores a new well within the transaction.
func (tx *transaction) CreateWell(w Well) (Well, error) {
	if w.ID == "" {
		w.ID = tx.store.newID()
	}
	if _, exists := tx.state.wells[w.ID]; exists {
		return Well{}, domain.DuplicateError{Entity: domain.EntityWell, Key: "id", Value: w.ID}
	}
	if err := validateWell(&tx.state, w); err != nil {
		return Well{}, err
	}
	w.CreatedAt = tx.now
	w.UpdatedAt = tx.now
	tx.state.wells[w.ID] = cloneWell(w)
	tx.recordChange(Change{Entity: domain.EntityWell, Action: domain.ActionCreate, After: cloneWell(w)})
	return cloneWell(w), nil
}

// UpdateWell mutates a well record.
func (tx *transaction) UpdateWell(id string, mutator func(*Well) error) (Well, error) {
	current, ok := tx.state.wells[id]
	if !ok {
		return Well{}, domain.NotFoundError{Entity: domain.EntityWell, ID: id}
	}
	before := cloneWell(current)
	if err := mutator(&current); err != nil {
		return Well{}, err
	}
	current.ID = id
	if err := validateWell(&tx.state, current); err != nil {
		return Well{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.wells[id] = cloneWell(current)
	tx.recordChange(Change{Entity: domain.EntityWell, Action: domain.ActionUpdate, Before: before, After: cloneWell(current)})
	return cloneWell(current), nil
}

// DeleteWell removes a well unless sequencing or result records reference it.
func (tx *transaction) DeleteWell(id string) error {
	current, ok := tx.state.wells[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityWell, ID: id}
	}
	for _, run := range tx.state.seqRuns {
		if run.WellID == id {
			return referencedError(domain.EntityWell, id, domain.EntitySequencing, run.ID)
		}
	}
	for _, result := range tx.state.results {
		if result.WellID == id {
			return referencedError(domain.EntityWell, id, domain.EntitySequencingResult, result.ID)
		}
	}
	delete(tx.state.wells, id)
	tx.recordChange(Change{Entity: domain.EntityWell, Action: domain.ActionDelete, Before: cloneWell(current)})
	return nil
}

// CreateSequencing stores a sequencing placeholder record.
func (tx *transaction) CreateSequencing(s Sequencing) (Sequencing, error) {
	if s.ID == "" {
		s.ID = tx.store.newID()
	}
	if _, exists := tx.state.seqRuns[s.ID]; exists {
		return Sequencing{}, domain.DuplicateError{Entity: domain.EntitySequencing, Key: "id", Value: s.ID}
	}
	if err := validateSequencing(&tx.state, s); err != nil {
		return Sequencing{}, err
	}
	s.CreatedAt = tx.now
	s.UpdatedAt = tx.now
	tx.state.seqRuns[s.ID] = cloneSequencing(s)
	tx.recordChange(Change{Entity: domain.EntitySequencing, Action: domain.ActionCreate, After: cloneSequencing(s)})
	return cloneSequencing(s), nil
}

// UpdateSequencing mutates a sequencing placeholder record.
func (tx *transaction) UpdateSequencing(id string, mutator func(*Sequencing) error) (Sequencing, error) {
	current, ok := tx.state.seqRuns[id]
	if !ok {
		return Sequencing{}, domain.NotFoundError{Entity: domain.EntitySequencing, ID: id}
	}
	before := cloneSequencing(current)
	if err := mutator(&current); err != nil {
		return Sequencing{}, err
	}
	current.ID = id
	if err := validateSequencing(&tx.state, current); err != nil {
		return Sequencing{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.seqRuns[id] = cloneSequencing(current)
	tx.recordChange(Change{Entity: domain.EntitySequencing, Action: domain.ActionUpdate, Before: before, After: cloneSequencing(current)})
	return cloneSequencing(current), nil
}

// DeleteSequencing removes a sequencing placeholder record.
func (tx *transaction) DeleteSequencing(id string) error {
	current, ok := tx.state.seqRuns[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntitySequencing, ID: id}
	}
	delete(tx.state.seqRuns, id)
	tx.recordChange(Change{Entity: domain.EntitySequencing, Action: domain.ActionDelete, Before: cloneSequencing(current)})
	return nil
}

// CreateSequencingResult stores a result placeholder record.
func (tx *transaction) CreateSequencingResult(r SequencingResult) (SequencingResult, error) {
	if r.ID == "" {
		r.ID = tx.store.newID()
	}
	if _, exists := tx.state.results[r.ID]; exists {
		return SequencingResult{}, domain.DuplicateError{Entity: domain.EntitySequencingResult, Key: "id", Value: r.ID}
	}
	if err := validateResult(&tx.state, r); err != nil {
		return SequencingResult{}, err
	}
	r.CreatedAt = tx.now
	r.UpdatedAt = tx.now
	tx.state.results[r.ID] = cloneResult(r)
	tx.recordChange(Change{Entity: domain.EntitySequencingResult, Action: domain.ActionCreate, After: cloneResult(r)})
	return cloneResult(r), nil
}

// UpdateSequencingResult mutates a result placeholder record.
func (tx *transaction) UpdateSequencingResult(id string, mutator func(*SequencingResult) error) (SequencingResult, error) {
	current, ok := tx.state.results[id]
	if !ok {
		return SequencingResult{}, domain.NotFoundError{Entity: domain.EntitySequencingResult, ID: id}
	}
	before := cloneResult(current)
	if err := mutator(&current); err != nil {
		return SequencingResult{}, err
	}
	current.ID = id
	if err := validateResult(&tx.state, current); err != nil {
		return SequencingResult{}, err
	}
	current.UpdatedAt = tx.now
	tx.state.results[id] = cloneResult(current)
	tx.recordChange(Change{Entity: domain.EntitySequencingResult, Action: domain.ActionUpdate, Before: before, After: cloneResult(current)})
	return cloneResult(current), nil
}

// DeleteSequencingResult removes a result placeholder record.
func (tx *transaction) DeleteSequencingResult(id string) error {
	current, ok := tx.state.results[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntitySequencingResult, ID: id}
	}
	delete(tx.state.results, id)
	tx.recordChange(Change{Entity: domain.EntitySequencingResult, Action: domain.ActionDelete, Before: cloneResult(current)})
	return nil
}

// Read helpers ---------------------------------------------------------------

// GetSheet retrieves a sheet by ID from committed state.
func (s *Store) GetSheet(id string) (Sheet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sheet, ok := s.state.sheets[id]
	if !ok {
		return Sheet{}, false
	}
	return cloneSheet(sheet), true
}

// ListSheets returns all sheets from committed state.
func (s *Store) ListSheets() []Sheet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Sheet, 0, len(s.state.sheets))
	for _, sheet := range s.state.sheets {
		out = append(out, cloneSheet(sheet))
	}
	return out
}

// GetPhoto retrieves a photo by ID.
func (s *Store) GetPhoto(id string) (Photo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.state.photos[id]
	if !ok {
		return Photo{}, false
	}
	return clonePhoto(p), true
}

// ListPhotos returns all photos.
func (s *Store) ListPhotos() []Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Photo, 0, len(s.state.photos))
	for _, p := range s.state.photos {
		out = append(out, clonePhoto(p))
	}
	return out
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.state.sessions[id]
	if !ok {
		return Session{}, false
	}
	return cloneSession(sess), true
}

// ListSessions returns all sessions.
func (s *Store) ListSessions() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Session, 0, len(s.state.sessions))
	for _, sess := range s.state.sessions {
		out = append(out, cloneSession(sess))
	}
	return out
}

// GetSample retrieves a sample by ID.
func (s *Store) GetSample(id string) (Sample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sample, ok := s.state.samples[id]
	if !ok {
		return Sample{}, false
	}
	return cloneSample(sample), true
}

// ListSamples returns all samples.
func (s *Store) ListSamples() []Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Sample, 0, len(s.state.samples))
	for _, sample := range s.state.samples {
		out = append(out, cloneSample(sample))
	}
	return out
}

// GetPlate retrieves a plate by ID.
func (s *Store) GetPlate(id string) (Plate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.state.plates[id]
	if !ok {
		return Plate{}, false
	}
	return clonePlate(p), true
}

// ListPlates returns all plates.
func (s *Store) ListPlates() []Plate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Plate, 0, len(s.state.plates))
	for _, p := range s.state.plates {
		out = append(out, clonePlate(p))
	}
	return out
}

// GetPrimer retrieves a primer by ID.
func (s *Store) GetPrimer(id string) (Primer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.state.primers[id]
	if !ok {
		return Primer{}, false
	}
	return clonePrimer(p), true
}

// ListPrimers returns all primers.
func (s *Store) ListPrimers() []Primer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Primer, 0, len(s.state.primers))
	for _, p := range s.state.primers {
		out = append(out, clonePrimer(p))
	}
	return out
}

// GetWell retrieves a well by ID.
func (s *Store) GetWell(id string) (Well, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.state.wells[id]
	if !ok {
		return Well{}, false
	}
	return cloneWell(w), true
}

// ListWells returns all wells.
func (s *Store) ListWells() []Well {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Well, 0, len(s.state.wells))
	for _, w := range s.state.wells {
		out = append(out, cloneWell(w))
	}
	return out
}

// GetSequencing retrieves a sequencing placeholder by ID.
func (s *Store) GetSequencing(id string) (Sequencing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.state.seqRuns[id]
	if !ok {
		return Sequencing{}, false
	}
	return cloneSequencing(run), true
}

// ListSequencings returns all sequencing placeholders.
func (s *Store) ListSequencings() []Sequencing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Sequencing, 0, len(s.state.seqRuns))
	for _, run := range s.state.seqRuns {
		out = append(out, cloneSequencing(run))
	}
	return out
}

// GetSequencingResult retrieves a result placeholder by ID.
func (s *Store) GetSequencingResult(id string) (SequencingResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.state.results[id]
	if !ok {
		return SequencingResult{}, false
	}
	return cloneResult(r), true
}

// ListSequencingResults returns all result placeholders.
func (s *Store) ListSequencingResults() []SequencingResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SequencingResult, 0, len(s.state.results))
	for _, r := range s.state.results {
		out = append(out, cloneResult(r))
	}
	return out
}
