package core

import "manuscriptdna/pkg/domain"

// NewRulesEngine constructs an empty rules engine.
func NewRulesEngine() *domain.RulesEngine {
	return domain.NewRulesEngine()
}

// defaultRules lists the built-in policy set in registration order.
func defaultRules() []domain.Rule {
	return []domain.Rule{
		NewPhotoSheetConsistencyRule(),
		NewDuplicateSamplingSiteRule(),
	}
}

// NewDefaultRulesEngine builds a rules engine carrying the built-in policy
// set for the registry.
func NewDefaultRulesEngine() *domain.RulesEngine {
	engine := NewRulesEngine()
	for _, rule := range defaultRules() {
		engine.Register(rule)
	}
	return engine
}
