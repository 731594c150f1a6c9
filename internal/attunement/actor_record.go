package attunement

import (
	"context"
	"log/slog"

	"github.com/feyloom/attunement-tracker/internal/entities/vtt"
	"github.com/feyloom/attunement-tracker/internal/errors"
	"github.com/feyloom/attunement-tracker/internal/flags"
	"github.com/feyloom/attunement-tracker/internal/metrics"
)

// ActorRecord is a view over one character's burden flag. The burden is
// a persisted projection: it is recomputed on item-state changes, not
// on every read, so it can go stale until the next triggering event.
type ActorRecord struct {
	character *vtt.Character
	flags     flags.Store
	metrics   *metrics.Collectors
}

// ActorRecordConfig holds the dependencies for an ActorRecord
type ActorRecordConfig struct {
	Character *vtt.Character
	Flags     flags.Store

	// Metrics is optional
	Metrics *metrics.Collectors
}

// Validate ensures all required dependencies are provided
func (cfg *ActorRecordConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if cfg.Character == nil {
		vb.RequiredField("Character")
	}
	if cfg.Flags == nil {
		vb.RequiredField("Flags")
	}

	return vb.Build()
}

// NewActorRecord creates a record wrapping the given character
func NewActorRecord(cfg *ActorRecordConfig) (*ActorRecord, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &ActorRecord{
		character: cfg.Character,
		flags:     cfg.Flags,
		metrics:   cfg.Metrics,
	}, nil
}

// Character returns the wrapped character document
func (r *ActorRecord) Character() *vtt.Character {
	return r.character
}

// Burden reads the persisted burden verbatim. The second return is
// false while no burden has ever been computed (or the stored value is
// not numeric).
func (r *ActorRecord) Burden(ctx context.Context) (int, bool, error) {
	out, err := r.flags.Get(ctx, flags.GetInput{
		Scope:     flags.DocScope{Kind: flags.DocActor, ID: r.character.ID},
		Namespace: FlagNamespace,
		Key:       FlagKeyBurden,
	})
	if err != nil {
		return 0, false, errors.Wrapf(err, "failed to read burden for actor %s", r.character.ID)
	}
	if !out.Found {
		return 0, false, nil
	}
	n, ok := asNumber(out.Value)
	if !ok {
		return 0, false, nil
	}
	return int(n), true, nil
}

// SetBurden persists a sanitized burden for the character
func (r *ActorRecord) SetBurden(ctx context.Context, value float64) error {
	_, err := r.flags.Set(ctx, flags.SetInput{
		Scope:     flags.DocScope{Kind: flags.DocActor, ID: r.character.ID},
		Namespace: FlagNamespace,
		Key:       FlagKeyBurden,
		Value:     sanitize(value),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to write burden for actor %s", r.character.ID)
	}
	return nil
}

// RecomputeOutput reports the outcome of a burden recomputation
type RecomputeOutput struct {
	// Burden is the freshly computed total
	Burden int
	// Previous is the burden that was stored before the recompute;
	// only meaningful when HadPrevious is true
	Previous    int
	HadPrevious bool
	// Changed reports whether a persistence write occurred
	Changed bool
}

// Recompute sums the weights of the character's currently attuned
// items and persists the total, writing only when it differs from the
// stored burden. Calling it twice with no intervening item change
// performs exactly one write.
func (r *ActorRecord) Recompute(ctx context.Context) (*RecomputeOutput, error) {
	current, hadCurrent, err := r.Burden(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, item := range r.character.Items {
		if item.Attunement != vtt.AttunementAttuned {
			continue
		}

		record, err := NewItemRecord(&ItemRecordConfig{Item: item, Flags: r.flags})
		if err != nil {
			return nil, err
		}
		weight, err := record.Weight(ctx)
		if err != nil {
			return nil, err
		}
		total += weight
	}

	out := &RecomputeOutput{
		Burden:      total,
		Previous:    current,
		HadPrevious: hadCurrent,
	}

	if hadCurrent && current == total {
		r.metrics.RecomputeObserved(r.character.ID, total, false)
		return out, nil
	}

	if err := r.SetBurden(ctx, float64(total)); err != nil {
		return nil, err
	}
	out.Changed = true
	r.metrics.RecomputeObserved(r.character.ID, total, true)

	previous := any("unset")
	if hadCurrent {
		previous = current
	}
	slog.InfoContext(ctx, "attunement burden changed",
		"actor_id", r.character.ID,
		"actor_name", r.character.Name,
		"from", previous,
		"to", total)

	return out, nil
}

// Item returns a weight record for the identified item, but only when
// the character owns it and it is attunable. Anything else is absence:
// callers treat a false return as nothing to display.
func (r *ActorRecord) Item(itemID string) (*ItemRecord, bool) {
	item := r.character.Item(itemID)
	if item == nil {
		return nil, false
	}

	record := &ItemRecord{item: item, flags: r.flags}
	if !record.Attunable() {
		return nil, false
	}
	return record, true
}
