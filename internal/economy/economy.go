// Package economy holds the pure leveling and purchasing rules. Nothing in
// here mutates its inputs; the profile store owns the state and folds these
// results back in.
package economy

import (
	"fmt"

	"github.com/MarceloDChagas/Respira/internal/catalog"
)

// Slot is a cosmetic slot on the avatar.
type Slot string

const (
	SlotAccessory  Slot = "accessory"
	SlotBackground Slot = "bg"
)

// ParseSlot maps a wire string to a Slot.
func ParseSlot(s string) (Slot, bool) {
	switch Slot(s) {
	case SlotAccessory, SlotBackground:
		return Slot(s), true
	}
	if s == "background" {
		return SlotBackground, true
	}
	return "", false
}

// Equipped maps each slot to the owned item occupying it ("" = empty).
type Equipped struct {
	Accessory  string `json:"accessory"`
	Background string `json:"bg"`
}

// LevelForPoints returns the greatest index i with levels[i].Threshold ≤
// points, or 0 when points sit below every threshold.
func LevelForPoints(points int, levels []catalog.LevelDef) int {
	for i := len(levels) - 1; i >= 0; i-- {
		if points >= levels[i].Threshold {
			return i
		}
	}
	return 0
}

// ValidateLevels rejects empty or non-strictly-increasing tables. Called at
// config load so the store can assume a well-formed table.
func ValidateLevels(levels []catalog.LevelDef) error {
	if len(levels) == 0 {
		return fmt.Errorf("level table is empty")
	}
	for i := 1; i < len(levels); i++ {
		if levels[i].Threshold <= levels[i-1].Threshold {
			return fmt.Errorf("level thresholds must be strictly increasing: %q (%d) after %q (%d)",
				levels[i].Name, levels[i].Threshold, levels[i-1].Name, levels[i-1].Threshold)
		}
	}
	return nil
}

// PurchaseResult reports what a Purchase did.
type PurchaseResult struct {
	OK           bool
	AlreadyOwned bool
	Balance      int
	Owned        []string
}

// Purchase applies the shop rules: already-owned purchases succeed as no-ops,
// affordable purchases debit the price and add the item, anything else fails
// with the inputs untouched. Insufficient funds is a result, not an error.
func Purchase(itemID string, price, balance int, owned []string) PurchaseResult {
	for _, id := range owned {
		if id == itemID {
			return PurchaseResult{OK: true, AlreadyOwned: true, Balance: balance, Owned: owned}
		}
	}
	if price < 0 || balance < price {
		return PurchaseResult{OK: false, Balance: balance, Owned: owned}
	}
	next := make([]string, 0, len(owned)+1)
	next = append(next, owned...)
	next = append(next, itemID)
	return PurchaseResult{OK: true, Balance: balance - price, Owned: next}
}

// Equip applies toggle semantics to a slot: equipping the current occupant
// empties the slot, equipping anything else replaces it. Only owned items may
// be equipped.
func Equip(itemID string, slot Slot, equipped Equipped, owned []string) (Equipped, bool) {
	has := false
	for _, id := range owned {
		if id == itemID {
			has = true
			break
		}
	}
	if !has {
		return equipped, false
	}

	switch slot {
	case SlotAccessory:
		if equipped.Accessory == itemID {
			equipped.Accessory = ""
		} else {
			equipped.Accessory = itemID
		}
	case SlotBackground:
		if equipped.Background == itemID {
			equipped.Background = ""
		} else {
			equipped.Background = itemID
		}
	default:
		return equipped, false
	}
	return equipped, true
}
