// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/feyloom/attunement-tracker/internal/entities/vtt"
	"github.com/feyloom/attunement-tracker/internal/pkg/idgen"
)

var itemIDs = idgen.NewSequential("item")

// CharacterBuilder provides a fluent interface for building test Character instances
type CharacterBuilder struct {
	character *vtt.Character
}

// NewCharacterBuilder creates a new builder with minimal defaults
func NewCharacterBuilder() *CharacterBuilder {
	return &CharacterBuilder{
		character: &vtt.Character{
			ID:   "actor-test-123",
			Name: "Test Hero",
			Type: vtt.ActorTypeCharacter,
		},
	}
}

// WithID sets the actor ID
func (b *CharacterBuilder) WithID(id string) *CharacterBuilder {
	b.character.ID = id
	return b
}

// WithName sets the character name
func (b *CharacterBuilder) WithName(name string) *CharacterBuilder {
	b.character.Name = name
	return b
}

// AsNPC marks the actor as a non-player character
func (b *CharacterBuilder) AsNPC() *CharacterBuilder {
	b.character.Type = vtt.ActorTypeNPC
	return b
}

// WithItem adds an owned item with the given attunement status
func (b *CharacterBuilder) WithItem(name string, status vtt.AttunementStatus) *CharacterBuilder {
	b.character.Items = append(b.character.Items, &vtt.Item{
		ID:         itemIDs.Generate(),
		Name:       name,
		Attunement: status,
	})
	return b
}

// WithItemID adds an owned item with a fixed ID
func (b *CharacterBuilder) WithItemID(id, name string, status vtt.AttunementStatus) *CharacterBuilder {
	b.character.Items = append(b.character.Items, &vtt.Item{
		ID:         id,
		Name:       name,
		Attunement: status,
	})
	return b
}

// Build returns the built character
func (b *CharacterBuilder) Build() *vtt.Character {
	return b.character
}
