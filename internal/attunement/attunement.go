// Package attunement implements the attunement weight/burden mechanic.
//
// Every attunable item carries a numeric weight; a character's burden
// is the sum of weights over its currently attuned items. Weights and
// burdens live in the host's flag store under this module's namespace,
// and this package is the sole writer of those two keys.
package attunement

import "math"

// Flag addressing. Everything this module persists sits under
// FlagNamespace with exactly two recognized keys.
const (
	FlagNamespace = "attunement-tracker"
	FlagKeyWeight = "weight" // item-scoped
	FlagKeyBurden = "burden" // character-scoped

	// DefaultWeight applies when an item has no stored weight
	DefaultWeight = 1
)

// sanitize floors a supplied value and clamps it to zero. Both weight
// and burden are non-negative integers on disk.
func sanitize(v float64) int {
	f := math.Floor(v)
	if f < 0 {
		return 0
	}
	return int(f)
}

// asNumber coerces a decoded flag value to a number. Flag values
// round-trip through JSON, so numerics arrive as float64; anything
// else is malformed and treated as absent by callers.
func asNumber(v any) (float64, bool) {
	n, ok := v.(float64)
	return n, ok
}
