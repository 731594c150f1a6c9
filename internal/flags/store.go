// Package flags provides the namespaced per-document flag store the
// attunement mechanic persists into. A flag is addressed by the owning
// document, a namespace, and a key; values are arbitrary JSON-encodable
// data. The host application exposes an equivalent mechanism, so any
// binding that satisfies Store can stand in for it.
package flags

import (
	"context"

	"github.com/feyloom/attunement-tracker/internal/errors"
)

// DocKind identifies which document collection a flag scope refers to
type DocKind string

// Document kinds that can carry flags
const (
	DocItem  DocKind = "item"
	DocActor DocKind = "actor"
)

// DocScope identifies the document a flag is attached to
type DocScope struct {
	Kind DocKind
	ID   string
}

// Validate validates the scope
func (s DocScope) Validate() error {
	vb := errors.NewValidationBuilder()

	if s.Kind != DocItem && s.Kind != DocActor {
		vb.InvalidField("Kind", "must be item or actor")
	}
	if s.ID == "" {
		vb.RequiredField("ID")
	}

	return vb.Build()
}

// Store defines the interface for flag persistence.
// Values round-trip through JSON in every implementation, so numeric
// values always come back as float64 regardless of backend.
type Store interface {
	// Get reads a flag value
	// Returns errors.InvalidArgument for a malformed scope or empty namespace/key
	// Returns errors.Internal for storage failures
	// An absent flag is Found=false, not an error
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Set writes a flag value
	// Returns errors.InvalidArgument for a malformed scope or empty namespace/key
	// Returns errors.Internal for storage failures
	Set(ctx context.Context, input SetInput) (*SetOutput, error)
}

// GetInput defines the input for reading a flag
type GetInput struct {
	Scope     DocScope
	Namespace string
	Key       string
}

// GetOutput defines the output for reading a flag
type GetOutput struct {
	Value any
	Found bool
}

// SetInput defines the input for writing a flag
type SetInput struct {
	Scope     DocScope
	Namespace string
	Key       string
	Value     any
}

// SetOutput defines the output for writing a flag
type SetOutput struct {
	// Empty for now, can be extended later
}

func validateAddress(scope DocScope, namespace, key string) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	vb := errors.NewValidationBuilder()
	if namespace == "" {
		vb.RequiredField("Namespace")
	}
	if key == "" {
		vb.RequiredField("Key")
	}
	return vb.Build()
}
