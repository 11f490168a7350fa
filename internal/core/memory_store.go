package core

import (
	"manuscriptdna/internal/infra/persistence/memory"
	"manuscriptdna/pkg/domain"
)

// NewMemoryStore constructs an in-memory store evaluating the provided rules
// engine on every transaction.
func NewMemoryStore(engine *domain.RulesEngine) *memory.Store {
	return memory.NewStore(engine)
}
