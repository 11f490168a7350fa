package domain

import (
	"context"

	"cloud.google.com/go/civil"
)

// Transaction exposes the registry operations that a persistence
// implementation must support within an atomic scope.
type Transaction interface {
	Snapshot() TransactionView
	CreateSheet(Sheet) (Sheet, error)
	UpdateSheet(id string, mutator func(*Sheet) error) (Sheet, error)
	DeleteSheet(id string) error
	CreatePhoto(Photo) (Photo, error)
	UpdatePhoto(id string, mutator func(*Photo) error) (Photo, error)
	DeletePhoto(id string) error
	CreateSession(Session) (Session, error)
	UpdateSession(id string, mutator func(*Session) error) (Session, error)
	DeleteSession(id string) error
	CreateSample(Sample) (Sample, error)
	UpdateSample(id string, mutator func(*Sample) error) (Sample, error)
	DeleteSample(id string) error
	CreatePlate(Plate) (Plate, error)
	UpdatePlate(id string, mutator func(*Plate) error) (Plate, error)
	DeletePlate(id string) error
	CreatePrimer(Primer) (Primer, error)
	DeletePrimer(id string) error
	CreateWell(Well) (Well, error)
	UpdateWell(id string, mutator func(*Well) error) (Well, error)
	DeleteWell(id string) error
	CreateSequencing(Sequencing) (Sequencing, error)
	UpdateSequencing(id string, mutator func(*Sequencing) error) (Sequencing, error)
	DeleteSequencing(id string) error
	CreateSequencingResult(SequencingResult) (SequencingResult, error)
	UpdateSequencingResult(id string, mutator func(*SequencingResult) error) (SequencingResult, error)
	DeleteSequencingResult(id string) error
}

// TransactionView provides read-only access to snapshot data for rules and
// derived-value resolution. Natural-key finders mirror the identity
// semantics of the registry: sheets by name, sessions by date, plates by
// name, primers by name, wells by plate and position.
type TransactionView interface {
	ListSheets() []Sheet
	ListPhotos() []Photo
	ListSessions() []Session
	ListSamples() []Sample
	ListPlates() []Plate
	ListPrimers() []Primer
	ListWells() []Well
	ListSequencings() []Sequencing
	ListSequencingResults() []SequencingResult
	FindSheet(id string) (Sheet, bool)
	FindPhoto(id string) (Photo, bool)
	FindSession(id string) (Session, bool)
	FindSample(id string) (Sample, bool)
	FindPlate(id string) (Plate, bool)
	FindPrimer(id string) (Primer, bool)
	FindWell(id string) (Well, bool)
	FindSequencing(id string) (Sequencing, bool)
	FindSequencingResult(id string) (SequencingResult, bool)
	FindSheetByName(name string) (Sheet, bool)
	FindSessionByDate(date civil.Date) (Session, bool)
	FindPlateByName(name string) (Plate, bool)
	FindPrimerByName(name string) (Primer, bool)
	FindWellByPosition(plateID, name string) (Well, bool)
}

// PersistentStore is a minimal abstraction over durable backends. It mirrors
// the subset of store capabilities used directly by higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	GetSheet(id string) (Sheet, bool)
	ListSheets() []Sheet
	GetPhoto(id string) (Photo, bool)
	ListPhotos() []Photo
	GetSession(id string) (Session, bool)
	ListSessions() []Session
	GetSample(id string) (Sample, bool)
	ListSamples() []Sample
	GetPlate(id string) (Plate, bool)
	ListPlates() []Plate
	GetPrimer(id string) (Primer, bool)
	ListPrimers() []Primer
	GetWell(id string) (Well, bool)
	ListWells() []Well
	GetSequencing(id string) (Sequencing, bool)
	ListSequencings() []Sequencing
	GetSequencingResult(id string) (SequencingResult, bool)
	ListSequencingResults() []SequencingResult
}
