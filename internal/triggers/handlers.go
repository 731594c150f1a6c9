// Package triggers wires the attunement records to host lifecycle
// events. Handlers are passive reactions: absence of an actor, item,
// or sheet fragment is a no-display condition, never a failure. Only
// storage errors propagate to the bus.
package triggers

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/feyloom/attunement-tracker/internal/attunement"
	"github.com/feyloom/attunement-tracker/internal/errors"
	"github.com/feyloom/attunement-tracker/internal/render"
)

// handlerPriority is the subscription priority for all handlers; this
// plugin has no ordering requirements against other subscribers
const handlerPriority = 100

// Handlers reacts to host lifecycle events on behalf of the
// attunement records
type Handlers struct {
	directory *attunement.Directory
	bus       events.EventBus

	subscriptions []string
}

// Config holds the dependencies for the trigger handlers
type Config struct {
	Directory *attunement.Directory
	Bus       events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Directory == nil {
		vb.RequiredField("Directory")
	}
	if c.Bus == nil {
		vb.RequiredField("Bus")
	}

	return vb.Build()
}

// New creates the trigger handlers with the provided dependencies
func New(cfg *Config) (*Handlers, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handlers{
		directory: cfg.Directory,
		bus:       cfg.Bus,
	}, nil
}

// Register subscribes all handlers to the bus
func (h *Handlers) Register() {
	h.subscriptions = append(h.subscriptions,
		h.bus.SubscribeFunc(EventItemUpdated, handlerPriority, h.HandleItemUpdated),
		h.bus.SubscribeFunc(EventCharacterSheetRender, handlerPriority, h.HandleCharacterSheetRender),
		h.bus.SubscribeFunc(EventItemSheetRender, handlerPriority, h.HandleItemSheetRender),
	)
}

// Unregister removes all subscriptions from the bus
func (h *Handlers) Unregister() error {
	for _, id := range h.subscriptions {
		if err := h.bus.Unsubscribe(id); err != nil {
			return errors.Wrapf(err, "failed to unsubscribe %s", id)
		}
	}
	h.subscriptions = nil
	return nil
}

// HandleItemUpdated recomputes the owning character's burden after an
// attunable item changed state
func (h *Handlers) HandleItemUpdated(ctx context.Context, e events.Event) error {
	if e.Source() == nil || e.Target() == nil {
		return nil
	}
	itemID := e.Source().GetID()
	actorID := e.Target().GetID()

	found, err := h.directory.FindByID(ctx, attunement.FindByIDInput{ActorID: actorID})
	if err != nil {
		return err
	}
	if !found.Found {
		slog.DebugContext(ctx, "item update for out-of-scope actor, skipping",
			"actor_id", actorID,
			"item_id", itemID)
		return nil
	}

	// Non-attunable items never contribute to burden, so their
	// updates cannot change it
	if _, ok := found.Record.Item(itemID); !ok {
		return nil
	}

	_, err = found.Record.Recompute(ctx)
	return err
}

// HandleCharacterSheetRender injects the stored burden and per-item
// weights into a character sheet about to be shown. The burden is read
// as-is, not recomputed; a stale value self-heals on the next item
// update.
func (h *Handlers) HandleCharacterSheetRender(ctx context.Context, e events.Event) error {
	if e.Source() == nil {
		return nil
	}
	sheet, ok := sheetFromEvent[*render.CharacterSheet](e)
	if !ok {
		return nil
	}

	found, err := h.directory.FindByID(ctx, attunement.FindByIDInput{ActorID: e.Source().GetID()})
	if err != nil {
		return err
	}
	if !found.Found {
		return nil
	}
	record := found.Record

	burden, set, err := record.Burden(ctx)
	if err != nil {
		return err
	}
	if set {
		sheet.SetBurden(burden)
	}

	for _, item := range record.Character().Items {
		itemRecord, ok := record.Item(item.ID)
		if !ok {
			continue
		}
		weight, err := itemRecord.Weight(ctx)
		if err != nil {
			return err
		}
		sheet.SetItemWeight(item.ID, weight)
	}

	return nil
}

// HandleItemSheetRender injects the weight field into an item sheet
// about to be shown. The field is display-only until the editable
// input is wired to ItemRecord.SetWeight.
func (h *Handlers) HandleItemSheetRender(ctx context.Context, e events.Event) error {
	if e.Source() == nil || e.Target() == nil {
		return nil
	}
	sheet, ok := sheetFromEvent[*render.ItemSheet](e)
	if !ok {
		return nil
	}

	found, err := h.directory.FindByID(ctx, attunement.FindByIDInput{ActorID: e.Target().GetID()})
	if err != nil {
		return err
	}
	if !found.Found {
		return nil
	}

	itemRecord, ok := found.Record.Item(e.Source().GetID())
	if !ok {
		return nil
	}

	weight, err := itemRecord.Weight(ctx)
	if err != nil {
		return err
	}
	sheet.SetWeightField(weight)

	return nil
}

func sheetFromEvent[T any](e events.Event) (T, bool) {
	var zero T
	v, ok := e.Context().Get(ContextKeySheet)
	if !ok {
		return zero, false
	}
	sheet, ok := v.(T)
	if !ok {
		return zero, false
	}
	return sheet, true
}
