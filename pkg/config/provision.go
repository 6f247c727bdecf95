package config

import (
	"strconv"

	"github.com/graveboards/gbctl/internal/cli/prompt"
)

// Prompter collects the interactive portion of a first-time provisioning
// run. The terminal implementation lives in TerminalPrompter; tests inject
// canned answers.
type Prompter interface {
	// Input prompts for a required non-empty string.
	Input(label string) (string, error)
	// Secret prompts for a required masked string.
	Secret(label string) (string, error)
	// Int64 prompts for a required integer.
	Int64(label string) (int64, error)
	// YesNo prompts for a y/n token, re-prompting on anything else.
	// Empty input selects defaultYes.
	YesNo(label string, defaultYes bool) (bool, error)
}

// TerminalPrompter implements Prompter over the interactive terminal.
type TerminalPrompter struct{}

func (TerminalPrompter) Input(label string) (string, error) {
	return prompt.InputRequired(label)
}

func (TerminalPrompter) Secret(label string) (string, error) {
	return prompt.Password(label)
}

func (TerminalPrompter) Int64(label string) (int64, error) {
	return prompt.InputInt64(label)
}

func (TerminalPrompter) YesNo(label string, defaultYes bool) (bool, error) {
	return prompt.Confirm(label, defaultYes)
}

// EnsureConfig loads the record at path, provisioning it first when absent.
// A present record is returned as-is: no prompts, no writes. The returned
// bool reports whether a new record was created on this call.
func EnsureConfig(path, env string, p Prompter) (*Config, bool, error) {
	if Exists(path) {
		cfg, err := Load(path)
		return cfg, false, err
	}

	record := Defaults(env)

	clientID, err := p.Input("osu! OAuth client ID")
	if err != nil {
		return nil, false, err
	}
	clientSecret, err := p.Secret("osu! OAuth client secret")
	if err != nil {
		return nil, false, err
	}
	adminID, err := p.Int64("Administrator osu! user ID")
	if err != nil {
		return nil, false, err
	}
	disableSecurity, err := p.YesNo("Disable API security (development only)", false)
	if err != nil {
		return nil, false, err
	}

	secret, err := GenerateSecret(SecretLength)
	if err != nil {
		return nil, false, &ProvisioningError{Path: path, Err: err}
	}

	record[KeyOsuClientID] = clientID
	record[KeyOsuClientSecret] = clientSecret
	record[KeyAdminUserIDs] = formatAdminIDs([]int64{adminID})
	record[KeyDisableSecurity] = strconv.FormatBool(disableSecurity)
	record[KeyJWTSecretKey] = secret

	if err := writeRecord(path, record); err != nil {
		return nil, false, err
	}

	// Round-trip through Load so the caller always sees exactly what any
	// later invocation will read.
	cfg, err := Load(path)
	if err != nil {
		return nil, false, err
	}

	return cfg, true, nil
}
