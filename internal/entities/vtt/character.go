// Package vtt implements the virtual-tabletop document entities this
// plugin reacts to. The host owns these documents; we model only the
// fields the attunement mechanic reads.
package vtt

// Entity types used on the event bus
const (
	EntityTypeItem      = "item"
	EntityTypeCharacter = "character"
)

// Actor document types. Only ActorTypeCharacter (player characters) is
// in scope for burden tracking; NPCs and monsters are ignored.
const (
	ActorTypeCharacter = "character"
	ActorTypeNPC       = "npc"
)

// Character represents an actor document with its owned items
type Character struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Items []*Item `json:"items"`
}

// GetID implements core.Entity
func (c *Character) GetID() string {
	return c.ID
}

// GetType implements core.Entity
func (c *Character) GetType() string {
	return EntityTypeCharacter
}

// Item returns the owned item with the given ID, or nil
func (c *Character) Item(itemID string) *Item {
	for _, item := range c.Items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

// IsPlayerCharacter reports whether this actor is a player character
func (c *Character) IsPlayerCharacter() bool {
	return c.Type == ActorTypeCharacter
}
