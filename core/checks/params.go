package checks

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/JuniperChecks/internal/logging"
)

// ParamList splits a space-delimited parameter value into its items.
func ParamList(value string) []string {
	return strings.Fields(value)
}

// ParamSet returns the items of a space-delimited list as a set.
func ParamSet(value string) map[string]bool {
	items := ParamList(value)
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// ParamOrDefault returns the named parameter, or def when it is empty.
// Falling back is logged at debug level.
func ParamOrDefault(src ParameterSource, name, def string) string {
	if v := src.ParameterValue(name); v != "" {
		return v
	}
	logging.ParameterFallback(name, def)
	return def
}

// ParamBool interprets a parameter as a flag ("yes", "true", "1").
func ParamBool(src ParameterSource, name string) bool {
	switch strings.ToLower(strings.TrimSpace(src.ParameterValue(name))) {
	case "yes", "true", "1", "on":
		return true
	}
	return false
}

// Message localizes key through src and formats it with args.
func Message(src ParameterSource, key string, args ...any) string {
	tmpl := src.LocalizedString(key)
	if tmpl == "" {
		tmpl = key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
