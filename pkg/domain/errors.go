package domain

import "fmt"

// DuplicateError reports a natural-key uniqueness violation.
type DuplicateError struct {
	Entity EntityType
	Key    string
	Value  string
}

func (e DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Key, e.Value)
}

// NotFoundError reports a read or reference to a record that does not exist.
type NotFoundError struct {
	Entity EntityType
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// ValidationError reports a field value outside its allowed domain.
type ValidationError struct {
	Entity  EntityType
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.Field, e.Message)
}

// ReferencedError reports a delete refused because another record still
// points at the target.
type ReferencedError struct {
	Entity   EntityType
	ID       string
	ByEntity EntityType
	ByID     string
}

func (e ReferencedError) Error() string {
	return fmt.Sprintf("%s %q still referenced by %s %q", e.Entity, e.ID, e.ByEntity, e.ByID)
}
