// Package mixedcaps flags words with a capital letter after their first
// character ("hEllo"), allowing for configured prefixes and suffixes such
// as "McDonald" or "iPhone".
package mixedcaps

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
)

// ID identifies findings of this check.
var ID = uuid.MustParse("c3a9ee8e-5a1f-4e8b-8b0d-47b4a3d1f6c2")

// Name is the display name of the check.
const Name = "Mixed Capitalization"

// Parameters read by the check.
const (
	ParamLocale                = "Locale"
	ParamUncapitalizedPrefixes = "UncapitalizedPrefixes"
	ParamCapitalizedSuffixes   = "CapitalizedSuffixes"
	ParamCapitalizedPrefixes   = "CapitalizedPrefixes"
	ParamValidItems            = "MixedCapitalizationValidItems"
	ParamInvalidItems          = "MixedCapitalizationInvalidItems"
)

const msgMixedCapitalization = "Mixed capitalization"

// Checker finds mixed-capitalization words.
type Checker struct {
	src       checks.ParameterSource
	inventory *checks.Inventory
}

var _ checks.InventoryChecker = (*Checker)(nil)

// New creates a mixed-capitalization checker.
func New(src checks.ParameterSource) *Checker {
	return &Checker{
		src:       src,
		inventory: checks.NewInventory(src, ParamValidItems, ParamInvalidItems),
	}
}

func (c *Checker) ID() uuid.UUID { return ID }

func (c *Checker) Name() string { return Name }

// Inventory returns the editable list of accepted words.
func (c *Checker) Inventory() *checks.Inventory { return c.inventory }

// Check reports every mixed-capitalization word not listed as valid.
func (c *Checker) Check(tokens iter.Seq[checks.Token], record checks.RecordFunc) {
	valid := checks.ParamSet(c.inventory.ValidItems())
	msg := checks.Message(c.src, msgMixedCapitalization)
	c.scan(tokens, func(sub checks.TokenSubstring) {
		if valid[sub.InventoryText] {
			return
		}
		record(sub.WithMessage(msg), ID)
	})
}

// References returns every mixed-capitalization word equal to key, or every
// one when key is empty.
func (c *Checker) References(tokens iter.Seq[checks.Token], key string) []checks.TokenSubstring {
	var refs []checks.TokenSubstring
	c.scan(tokens, func(sub checks.TokenSubstring) {
		if key == "" || sub.InventoryText == key {
			refs = append(refs, sub)
		}
	})
	return refs
}

// exceptions holds the configured prefix and suffix allowances.
type exceptions struct {
	uncapPrefixes map[string]bool
	lastChars     map[rune]bool
	any           bool
	capSuffixes   map[string]bool
	capPrefixes   map[string]bool
}

func loadExceptions(src checks.ParameterSource) exceptions {
	ex := exceptions{
		uncapPrefixes: make(map[string]bool),
		lastChars:     make(map[rune]bool),
		capSuffixes:   checks.ParamSet(src.ParameterValue(ParamCapitalizedSuffixes)),
		capPrefixes:   checks.ParamSet(src.ParameterValue(ParamCapitalizedPrefixes)),
	}
	for _, item := range checks.ParamList(src.ParameterValue(ParamUncapitalizedPrefixes)) {
		switch {
		case item == "*":
			ex.any = true
		case strings.HasPrefix(item, "*") && utf8.RuneCountInString(item) == 2:
			r, _ := utf8.DecodeRuneInString(item[1:])
			ex.lastChars[r] = true
		default:
			ex.uncapPrefixes[item] = true
		}
	}
	return ex
}

func (ex exceptions) allows(prefix, suffix string) bool {
	if ex.any || ex.uncapPrefixes[prefix] || ex.capSuffixes[suffix] || ex.capPrefixes[prefix] {
		return true
	}
	last, _ := utf8.DecodeLastRuneInString(prefix)
	return ex.lastChars[last]
}

func (c *Checker) scan(tokens iter.Seq[checks.Token], found func(checks.TokenSubstring)) {
	cat := c.src.Categorizer()
	locale := c.src.ParameterValue(ParamLocale)
	ex := loadExceptions(c.src)

	for i, tok := range checks.Indexed(tokens) {
		if tok.TextType().IsNumber() || tok.Locale() != locale {
			continue
		}
		for _, wp := range cat.WordAndPuncts(tok.Text()) {
			if wp.Word == "" {
				continue
			}
			prefix, suffix, mixed := split(cat, wp.Word)
			if !mixed || ex.allows(prefix, suffix) {
				continue
			}
			sub := checks.NewTokenSubstring(tok, i, wp.Offset, len(wp.Word))
			found(sub.WithKey(wp.Word))
		}
	}
}

// split strips the non-word-forming characters of word and, when it has
// both upper and lower case letters, splits it before the first capital
// that is not its first letter.
func split(cat checks.CharacterCategorizer, word string) (prefix, suffix string, mixed bool) {
	var sb strings.Builder
	upper, lower := 0, 0
	for _, r := range word {
		if !cat.IsWordFormingCharacter(r) {
			continue
		}
		sb.WriteRune(r)
		title := cat.IsTitle(r)
		if cat.IsUpper(r) || title {
			upper++
		}
		if cat.IsLower(r) || title {
			lower++
		}
	}
	if upper == 0 || lower == 0 {
		return "", "", false
	}
	stripped := sb.String()
	_, first := utf8.DecodeRuneInString(stripped)
	for i, r := range stripped[first:] {
		if cat.IsUpper(r) || cat.IsTitle(r) {
			at := first + i
			return stripped[:at], stripped[at:], true
		}
	}
	return "", "", false
}
