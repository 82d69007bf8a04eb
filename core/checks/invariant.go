package checks

import "github.com/FocuswithJustin/JuniperChecks/internal/logging"

// Assert checks an internal invariant of a checker. When cond is false it
// panics in builds tagged checksdebug and otherwise logs the violation and
// returns false so the caller can skip the offending token.
func Assert(check string, cond bool, msg string, args ...any) bool {
	if cond {
		return true
	}
	if failLoud {
		panic(check + ": " + msg)
	}
	logging.InvariantViolation(check, msg, args...)
	return false
}
