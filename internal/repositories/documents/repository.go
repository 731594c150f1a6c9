// Package documents provides the interface for actor document persistence
package documents

import (
	"context"

	"github.com/feyloom/attunement-tracker/internal/entities/vtt"
)

// Repository defines the interface for actor document persistence.
// Characters embed their owned items, mirroring the host's containment
// model (a character document owns its inventory).
type Repository interface {
	// Create creates a new actor document
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a document with the same ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an actor document by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the document doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update updates an existing actor document
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the document doesn't exist
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete deletes an actor document by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the document doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListPlayerCharacters retrieves all character-typed actors
	// Returns errors.Internal for storage failures
	ListPlayerCharacters(ctx context.Context, input ListPlayerCharactersInput) (*ListPlayerCharactersOutput, error)
}

// CreateInput defines the input for creating an actor document.
// An empty Character.ID is assigned by the repository's ID generator.
type CreateInput struct {
	Character *vtt.Character
}

// CreateOutput defines the output for creating an actor document
type CreateOutput struct {
	Character *vtt.Character
}

// GetInput defines the input for getting an actor document
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting an actor document
type GetOutput struct {
	Character *vtt.Character
}

// UpdateInput defines the input for updating an actor document
type UpdateInput struct {
	Character *vtt.Character
}

// UpdateOutput defines the output for updating an actor document
type UpdateOutput struct {
	Character *vtt.Character
}

// DeleteInput defines the input for deleting an actor document
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting an actor document
type DeleteOutput struct {
	// Empty for now, can be extended later
}

// ListPlayerCharactersInput defines the input for listing player characters
type ListPlayerCharactersInput struct {
	// Empty for now; pagination can be added later
}

// ListPlayerCharactersOutput defines the output for listing player characters
type ListPlayerCharactersOutput struct {
	Characters []*vtt.Character
}
