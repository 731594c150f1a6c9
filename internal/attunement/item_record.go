package attunement

import (
	"context"

	"github.com/feyloom/attunement-tracker/internal/entities/vtt"
	"github.com/feyloom/attunement-tracker/internal/errors"
	"github.com/feyloom/attunement-tracker/internal/flags"
)

// ItemRecord is a read/write view over one item's attunement weight
// flag. It is derived on demand and holds no cached state.
type ItemRecord struct {
	item  *vtt.Item
	flags flags.Store
}

// ItemRecordConfig holds the dependencies for an ItemRecord
type ItemRecordConfig struct {
	Item  *vtt.Item
	Flags flags.Store
}

// Validate ensures all required dependencies are provided
func (cfg *ItemRecordConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if cfg.Item == nil {
		vb.RequiredField("Item")
	}
	if cfg.Flags == nil {
		vb.RequiredField("Flags")
	}

	return vb.Build()
}

// NewItemRecord creates a record wrapping the given item
func NewItemRecord(cfg *ItemRecordConfig) (*ItemRecord, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &ItemRecord{
		item:  cfg.Item,
		flags: cfg.Flags,
	}, nil
}

// Item returns the wrapped item document
func (r *ItemRecord) Item() *vtt.Item {
	return r.item
}

// Attunable reports whether the item participates in attunement at all
func (r *ItemRecord) Attunable() bool {
	return r.item.Attunement == vtt.AttunementRequired ||
		r.item.Attunement == vtt.AttunementAttuned
}

// Attuned reports whether the item is currently attuned
func (r *ItemRecord) Attuned() bool {
	return r.item.Attunement == vtt.AttunementAttuned
}

// Weight reads the item's persisted weight. An absent or non-numeric
// flag yields DefaultWeight; a stored number is floored and clamped to
// zero. Only storage failures surface as errors.
func (r *ItemRecord) Weight(ctx context.Context) (int, error) {
	out, err := r.flags.Get(ctx, flags.GetInput{
		Scope:     flags.DocScope{Kind: flags.DocItem, ID: r.item.ID},
		Namespace: FlagNamespace,
		Key:       FlagKeyWeight,
	})
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read weight for item %s", r.item.ID)
	}

	if !out.Found {
		return DefaultWeight, nil
	}
	n, ok := asNumber(out.Value)
	if !ok {
		return DefaultWeight, nil
	}

	return sanitize(n), nil
}

// SetWeight persists a sanitized weight for the item. Not called by
// any trigger yet; the item sheet wires a weight field for a future
// editable input.
func (r *ItemRecord) SetWeight(ctx context.Context, value float64) error {
	_, err := r.flags.Set(ctx, flags.SetInput{
		Scope:     flags.DocScope{Kind: flags.DocItem, ID: r.item.ID},
		Namespace: FlagNamespace,
		Key:       FlagKeyWeight,
		Value:     sanitize(value),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to write weight for item %s", r.item.ID)
	}
	return nil
}
