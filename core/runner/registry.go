package runner

import (
	"slices"
	"strings"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/capitalization"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/chapterverse"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/characters"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/matchedpairs"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/mixedcaps"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/punctuation"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/quotation"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/repeatedwords"
	"github.com/FocuswithJustin/JuniperChecks/core/errors"
)

// Factory creates a checker configured from src.
type Factory func(src checks.ParameterSource) checks.Checker

// registry maps the short name of each check to its factory.
var registry = map[string]Factory{
	"capitalization": func(src checks.ParameterSource) checks.Checker { return capitalization.New(src) },
	"chapterverse":   func(src checks.ParameterSource) checks.Checker { return chapterverse.New(src) },
	"characters":     func(src checks.ParameterSource) checks.Checker { return characters.New(src) },
	"matchedpairs":   func(src checks.ParameterSource) checks.Checker { return matchedpairs.New(src) },
	"mixedcaps":      func(src checks.ParameterSource) checks.Checker { return mixedcaps.New(src) },
	"punctuation":    func(src checks.ParameterSource) checks.Checker { return punctuation.New(src) },
	"quotation":      func(src checks.ParameterSource) checks.Checker { return quotation.New(src) },
	"repeatedwords":  func(src checks.ParameterSource) checks.Checker { return repeatedwords.New(src) },
}

// Names returns the short names of all checks, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build creates the named checks in the order given. An empty list builds
// every check.
func Build(src checks.ParameterSource, names ...string) ([]checks.Checker, error) {
	if len(names) == 0 {
		names = Names()
	}
	built := make([]checks.Checker, 0, len(names))
	for _, name := range names {
		f, ok := registry[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, errors.NewNotFound("check", name)
		}
		built = append(built, f(src))
	}
	return built, nil
}

// Inventoried is a check with an editable inventory of valid and invalid
// items.
type Inventoried interface {
	checks.InventoryChecker
	Inventory() *checks.Inventory
}

// BuildInventory creates the named check when it keeps an inventory.
func BuildInventory(src checks.ParameterSource, name string) (Inventoried, error) {
	built, err := Build(src, name)
	if err != nil {
		return nil, err
	}
	inv, ok := built[0].(Inventoried)
	if !ok {
		return nil, errors.NewUnsupported("inventory", name+" has no inventory")
	}
	return inv, nil
}
