package checks

import (
	"slices"
	"strings"

	"github.com/FocuswithJustin/JuniperChecks/core/errors"
)

// Inventory holds the editable valid/invalid item lists of a checker. The
// lists are space-delimited strings stored under two parameter names.
type Inventory struct {
	ValidParam   string
	InvalidParam string

	validItems   string
	invalidItems string
}

// NewInventory loads the lists from src. An empty parameter name disables
// that list.
func NewInventory(src ParameterSource, validParam, invalidParam string) *Inventory {
	inv := &Inventory{ValidParam: validParam, InvalidParam: invalidParam}
	if validParam != "" {
		inv.SetValidItems(src.ParameterValue(validParam))
	}
	if invalidParam != "" {
		inv.SetInvalidItems(src.ParameterValue(invalidParam))
	}
	return inv
}

// ValidItems returns the trimmed valid-item list.
func (inv *Inventory) ValidItems() string { return inv.validItems }

// InvalidItems returns the trimmed invalid-item list.
func (inv *Inventory) InvalidItems() string { return inv.invalidItems }

// SetValidItems replaces the valid-item list.
func (inv *Inventory) SetValidItems(items string) { inv.validItems = strings.TrimSpace(items) }

// SetInvalidItems replaces the invalid-item list.
func (inv *Inventory) SetInvalidItems(items string) { inv.invalidItems = strings.TrimSpace(items) }

// ValidList returns the valid items.
func (inv *Inventory) ValidList() []string { return ParamList(inv.validItems) }

// InvalidList returns the invalid items.
func (inv *Inventory) InvalidList() []string { return ParamList(inv.invalidItems) }

// IsValid reports whether item is on the valid list.
func (inv *Inventory) IsValid(item string) bool { return slices.Contains(inv.ValidList(), item) }

// IsInvalid reports whether item is on the invalid list.
func (inv *Inventory) IsInvalid(item string) bool { return slices.Contains(inv.InvalidList(), item) }

// Save writes both lists back through store.
func (inv *Inventory) Save(store ParameterStore) error {
	if inv.ValidParam != "" {
		if err := store.SetParameterValue(inv.ValidParam, inv.validItems); err != nil {
			return errors.Wrapf(err, "saving %s", inv.ValidParam)
		}
	}
	if inv.InvalidParam != "" {
		if err := store.SetParameterValue(inv.InvalidParam, inv.invalidItems); err != nil {
			return errors.Wrapf(err, "saving %s", inv.InvalidParam)
		}
	}
	return nil
}
