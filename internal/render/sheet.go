// Package render models the mutable rendered-output handles the host
// passes to sheet-render hooks. The host renders actual markup; these
// structs model only the sub-elements this plugin locates and fills,
// so triggers can be tested without a live UI.
package render

import "fmt"

// ItemRow is one inventory row on a character sheet
type ItemRow struct {
	ItemID string
	Name   string
	// WeightBadge is the injected weight marker, empty until filled
	WeightBadge string
}

// CharacterSheet is the fragment handed to the character-sheet render
// hook. Rows are addressed by item ID, standing in for the structural
// markers the host's markup carries.
type CharacterSheet struct {
	ActorID string
	// BurdenDisplay is the injected burden marker in the sheet header;
	// empty while no burden has been computed yet
	BurdenDisplay string
	Rows          []*ItemRow
}

// Row locates the inventory row for an item, or nil
func (s *CharacterSheet) Row(itemID string) *ItemRow {
	for _, row := range s.Rows {
		if row.ItemID == itemID {
			return row
		}
	}
	return nil
}

// SetBurden replaces the burden display content
func (s *CharacterSheet) SetBurden(burden int) {
	s.BurdenDisplay = fmt.Sprintf("%d", burden)
}

// SetItemWeight injects a weight badge into the row for the given
// item. Returns false when the sheet has no such row.
func (s *CharacterSheet) SetItemWeight(itemID string, weight int) bool {
	row := s.Row(itemID)
	if row == nil {
		return false
	}
	row.WeightBadge = fmt.Sprintf("%d", weight)
	return true
}

// ItemSheet is the fragment handed to the item-sheet render hook. The
// weight field is display-only for now; an editable input would write
// back through ItemRecord.SetWeight once the host wiring lands.
type ItemSheet struct {
	ItemID string
	// WeightField holds the value shown in the weight input
	WeightField string
	// WeightFieldShown reports whether the field was injected at all;
	// sheets for non-attunable items leave it hidden
	WeightFieldShown bool
}

// SetWeightField injects the weight input with the given value
func (s *ItemSheet) SetWeightField(weight int) {
	s.WeightField = fmt.Sprintf("%d", weight)
	s.WeightFieldShown = true
}
