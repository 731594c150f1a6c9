package vtt

// AttunementStatus is the attunement state a host item document carries
type AttunementStatus int32

// Attunement states, matching the host's numeric encoding
const (
	AttunementNone     AttunementStatus = 0 // item cannot be attuned
	AttunementRequired AttunementStatus = 1 // attunable but not yet attuned
	AttunementAttuned  AttunementStatus = 2 // currently attuned
)

// String returns a human-readable name for the status
func (s AttunementStatus) String() string {
	switch s {
	case AttunementNone:
		return "not attunable"
	case AttunementRequired:
		return "requires attunement"
	case AttunementAttuned:
		return "attuned"
	default:
		return "unknown"
	}
}

// Item represents one inventory item document owned by a character.
// NOTE: This is a data-only struct. Weight derivation and attunement
// policy live in internal/attunement, not here.
type Item struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Attunement AttunementStatus `json:"attunement"`
}

// GetID implements core.Entity
func (i *Item) GetID() string {
	return i.ID
}

// GetType implements core.Entity
func (i *Item) GetType() string {
	return EntityTypeItem
}
