// Package prompt provides interactive terminal prompts for gbctl commands.
package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user aborts a prompt (Ctrl+C).
var ErrAborted = errors.New("aborted")

// ErrInvalidToken is returned by ParseYesNo for anything outside the
// accepted y/n token set.
var ErrInvalidToken = errors.New("expected 'y' or 'n'")

// IsAborted returns true if the error indicates the user aborted (Ctrl+C).
func IsAborted(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, ErrAborted)
}

// wrapError converts promptui interrupt/abort errors to ErrAborted for consistent handling.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if IsAborted(err) {
		return ErrAborted
	}
	return err
}

// ParseYesNo interprets a single confirmation token. Accepted tokens are
// "y", "yes", "n" and "no" (case-insensitive); empty input selects the
// default. Anything else is ErrInvalidToken so callers re-prompt instead
// of silently defaulting.
func ParseYesNo(input string, defaultYes bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, ErrInvalidToken
	}
}

// Confirm prompts the user for yes/no confirmation. Invalid tokens keep the
// prompt open; only an accepted token (or empty input, taking the default)
// resolves it. Returns ErrAborted if the user presses Ctrl+C.
func Confirm(label string, defaultYes bool) (bool, error) {
	defaultStr := "y/N"
	if defaultYes {
		defaultStr = "Y/n"
	}

	p := promptui.Prompt{
		Label: fmt.Sprintf("%s [%s]", label, defaultStr),
		Validate: func(input string) error {
			_, err := ParseYesNo(input, defaultYes)
			return err
		},
	}

	result, err := p.Run()
	if err != nil {
		return false, wrapError(err)
	}

	return ParseYesNo(result, defaultYes)
}

// ConfirmWithForce returns true immediately if force is true,
// otherwise prompts for confirmation defaulting to no.
func ConfirmWithForce(label string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	return Confirm(label, false)
}

// Input prompts for text input with a default value.
func Input(label string, defaultValue string) (string, error) {
	p := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
	}

	result, err := p.Run()
	return result, wrapError(err)
}

// InputRequired prompts for required text input, re-prompting while empty.
func InputRequired(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("value is required")
			}
			return nil
		},
	}

	result, err := p.Run()
	return result, wrapError(err)
}

// InputInt64 prompts for a required integer input.
func InputInt64(label string) (int64, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if _, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64); err != nil {
				return fmt.Errorf("must be a valid integer")
			}
			return nil
		},
	}

	result, err := p.Run()
	if err != nil {
		return 0, wrapError(err)
	}

	value, _ := strconv.ParseInt(strings.TrimSpace(result), 10, 64) // already validated
	return value, nil
}

// Password prompts for a secret input with masking.
func Password(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Mask:  '*',
		Validate: func(input string) error {
			if input == "" {
				return fmt.Errorf("value is required")
			}
			return nil
		},
	}

	result, err := p.Run()
	return result, wrapError(err)
}
