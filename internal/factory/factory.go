// Package factory creates and updates catalog entities from description objects.
//
// A factory never performs I/O. Update only touches fields for which the
// description carries a value, and reports whether anything changed.
package factory

// Factory creates entities of type E from descriptions of type D and applies
// later descriptions to existing entities.
type Factory[E, D any] interface {
	// Create allocates a new entity with defaults and applies desc to it.
	Create(desc *D) (*E, error)
	// Update applies desc to entity and reports whether any field changed.
	Update(entity *E, desc *D) (bool, error)
	// UpdateFields is Update returning the names of the changed fields.
	UpdateFields(entity *E, desc *D) ([]string, error)
}
