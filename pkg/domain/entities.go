// Package domain defines the core persistent entities, value types, and
// rule evaluation primitives of the manuscript-DNA sample registry.
package domain

import (
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// EntityType identifies the type of record stored in the registry.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntitySheet identifies a manuscript sheet record.
	EntitySheet EntityType = "sheet"
	// EntityPhoto identifies a sampling-site photograph record.
	EntityPhoto EntityType = "photo"
	// EntitySession identifies a collection session record.
	EntitySession EntityType = "session"
	// EntitySample identifies a DNA sample record.
	EntitySample EntityType = "sample"
	// EntityPlate identifies a 96-well plate record.
	EntityPlate EntityType = "plate"
	// EntityPrimer identifies a sequencing primer record.
	EntityPrimer EntityType = "primer"
	// EntityWell identifies a plate well record.
	EntityWell EntityType = "well"
	// EntitySequencing identifies a sequencing run placeholder record.
	EntitySequencing EntityType = "sequencing"
	// EntitySequencingResult identifies a final result placeholder record.
	EntitySequencingResult EntityType = "sequencing_result"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Base contains common fields for all registry records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sheet represents a manuscript bifolium. Two pages are written on each
// sheet; DNA samples are collected from it at recorded coordinates.
type Sheet struct {
	Base
	Name     string  `json:"name"`
	Comments *string `json:"comments,omitempty"`
}

// NaturalKey returns the sheet's identity key, its name.
func (s Sheet) NaturalKey() string { return s.Name }

// Photo associates a photograph with a sampling site on a sheet. The file
// itself lives in blob storage under FileKey; its format is identified by
// the file extension.
type Photo struct {
	Base
	SheetID     string `json:"sheet_id"`
	FileKey     string `json:"file_key"`
	ContentType string `json:"content_type"`
}

// Session represents a work session identified by its calendar date.
type Session struct {
	Base
	Date     civil.Date `json:"date"`
	Comments *string    `json:"comments,omitempty"`
}

// Name returns the session's display name, the ISO form of its date.
func (s Session) Name() string { return s.Date.String() }

// NaturalKey returns the session's identity key, its date.
func (s Session) NaturalKey() string { return s.Date.String() }

// Sample represents a DNA sample collected from a sheet.
//
// X runs horizontally along the lower edge of the sheet and Y vertically at
// its center; the origin sits at the center of the lower edge. Both
// coordinates are millimeters. Seq is the registry-assigned serial number
// and never changes after creation.
type Sample struct {
	Base
	SheetID   string  `json:"sheet_id"`
	SessionID string  `json:"session_id"`
	PhotoID   *string `json:"photo_id,omitempty"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Seq       int64   `json:"seq"`
	Comments  *string `json:"comments,omitempty"`
}

// DisplayName derives the sample's human-readable identifier from its owning
// sheet and session: sheet name, session date, and serial number joined with
// hyphens. It is computed, never stored, and unique because Seq is unique.
func (s Sample) DisplayName(sheet Sheet, session Session) string {
	return strings.Join([]string{sheet.Name, session.Name(), strconv.FormatInt(s.Seq, 10)}, "-")
}

// Plate represents a plate of sample wells. Each physical plate has 96
// wells but some may be unused.
type Plate struct {
	Base
	Name string `json:"name"`
}

// NaturalKey returns the plate's identity key, its name.
func (p Plate) NaturalKey() string { return p.Name }

// Primer represents a sequencing primer drawn from the registry's
// enumerated set.
type Primer struct {
	Base
	Name string `json:"name"`
}

// NaturalKey returns the primer's identity key, its name.
func (p Primer) NaturalKey() string { return p.Name }

// Well represents one position in a plate. A well in use holds exactly one
// sample; its three-character name records the location in the plate,
// ranging from A01 to H12.
type Well struct {
	Base
	PlateID  string  `json:"plate_id"`
	Name     string  `json:"name"`
	SampleID string  `json:"sample_id"`
	PrimerID string  `json:"primer_id"`
	Comments *string `json:"comments,omitempty"`
}

// NaturalKey returns the well's composite identity key within the registry,
// its plate reference paired with its position name.
func (w Well) NaturalKey() string { return w.PlateID + "/" + w.Name }

// Sequencing is a placeholder for the measurement results of a well. No
// measurement fields are defined yet.
type Sequencing struct {
	Base
	WellID   string  `json:"well_id"`
	Comments *string `json:"comments,omitempty"`
}

// SequencingResult is a placeholder for the final result recorded for a
// well. No result fields are defined yet.
type SequencingResult struct {
	Base
	WellID   string  `json:"well_id"`
	Comments *string `json:"comments,omitempty"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported CRUD operations captured in audit trail.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}
