package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/dailycheck/internal/logger"
)

// HintedError carries a suggestion for the user alongside the failure.
type HintedError struct {
	Err  error
	Hint string
}

func (e *HintedError) Error() string {
	return e.Err.Error()
}

func (e *HintedError) Unwrap() error {
	return e.Err
}

// WithHint attaches hint to err. A nil err stays nil.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &HintedError{Err: err, Hint: hint}
}

// Rule maps an error to a hint. Match reports whether the rule applies.
type Rule struct {
	Match func(error) bool
	Hint  string
}

// Is builds a rule matching errors.Is(err, target).
func Is(target error, hint string) Rule {
	return Rule{
		Match: func(err error) bool { return errors.Is(err, target) },
		Hint:  hint,
	}
}

// Annotate returns err with the hint of the first matching rule.
// Errors that already carry a hint are returned unchanged.
func Annotate(err error, rules ...Rule) error {
	if err == nil {
		return nil
	}
	var hinted *HintedError
	if errors.As(err, &hinted) {
		return err
	}
	for _, r := range rules {
		if r.Match(err) {
			return WithHint(err, r.Hint)
		}
	}
	return err
}

// Format formats an error message with a consistent "Error: " prefix
// and a second "Hint: " line when the error carries one.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	var hinted *HintedError
	if errors.As(err, &hinted) && hinted.Hint != "" {
		msg += "\nHint: " + hinted.Hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, Format(err))
		os.Exit(1)
	}
}
