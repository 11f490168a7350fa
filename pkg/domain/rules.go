package domain

import "context"

// RuleView provides read-only access to registry entities for rule evaluation.
type RuleView interface {
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
}

// Rule defines an evaluation executed within a transaction boundary.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, view RuleView, changes []Change) (Result, error)
}

// RulesEngine orchestrates rule evaluation.
type RulesEngine struct {
	rules []Rule
}

// NewRulesEngine constructs an engine instance.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// Register appends a rule to the engine.
func (e *RulesEngine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Evaluate executes all registered rules and aggregates their results.
func (e *RulesEngine) Evaluate(ctx context.Context, view RuleView, changes []Change) (Result, error) {
	var combined Result
	for _, rule := range e.rules {
		res, err := rule.Evaluate(ctx, view, changes)
		if err != nil {
			return Result{}, err
		}
		combined.Merge(res)
	}
	return combined, nil
}
