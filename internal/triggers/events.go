package triggers

import (
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/feyloom/attunement-tracker/internal/entities/vtt"
	"github.com/feyloom/attunement-tracker/internal/render"
)

// Event types this plugin reacts to. The host adapter publishes these
// when the corresponding document lifecycle hooks fire.
const (
	// EventItemUpdated fires after an item document changes state.
	// Source is the item, target is the owning character.
	EventItemUpdated = "vtt.item.updated"

	// EventCharacterSheetRender fires before a character sheet is
	// shown. Source is the character; the event context carries the
	// mutable sheet fragment.
	EventCharacterSheetRender = "vtt.sheet.character.render"

	// EventItemSheetRender fires before an item sheet is shown.
	// Source is the item, target is the owning character.
	EventItemSheetRender = "vtt.sheet.item.render"
)

// ContextKeySheet is the event-context key under which render events
// carry their sheet fragment
const ContextKeySheet = "sheet"

// NewItemUpdatedEvent builds the event a host adapter publishes when
// an item changes
func NewItemUpdatedEvent(item *vtt.Item, owner *vtt.Character) events.Event {
	return events.NewGameEvent(EventItemUpdated, item, owner)
}

// NewCharacterSheetRenderEvent builds the event a host adapter
// publishes before rendering a character sheet
func NewCharacterSheetRenderEvent(character *vtt.Character, sheet *render.CharacterSheet) events.Event {
	e := events.NewGameEvent(EventCharacterSheetRender, character, nil)
	e.Context().Set(ContextKeySheet, sheet)
	return e
}

// NewItemSheetRenderEvent builds the event a host adapter publishes
// before rendering an item sheet
func NewItemSheetRenderEvent(item *vtt.Item, owner *vtt.Character, sheet *render.ItemSheet) events.Event {
	e := events.NewGameEvent(EventItemSheetRender, item, owner)
	e.Context().Set(ContextKeySheet, sheet)
	return e
}
