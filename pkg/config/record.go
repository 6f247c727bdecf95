package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultRecordPath is where the environment record lives relative to the
// working directory of the service checkout.
const DefaultRecordPath = ".env"

// Exists reports whether a persisted record is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Load reads the persisted record at path, layers environment variable
// overrides on top and returns the validated configuration. The file must
// exist; a missing record means the provisioner has not run yet.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("dotenv")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read environment record %s: %w", path, err)
	}

	// Resolve the mode first so the remaining defaults match its topology.
	env := v.GetString(KeyEnv)
	if env == "" {
		env = EnvDevelopment
	}
	for key, value := range Defaults(env) {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("failed to decode environment record: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// writeRecord persists the record atomically and exclusively: contents are
// written to a temp file in the destination directory, then linked into place.
// The link fails if the record appeared in the meantime, so a concurrent or
// earlier provisioning run is never overwritten and a crash mid-write never
// leaves a partial file at the record path.
func writeRecord(path string, record map[string]string) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".env-*")
	if err != nil {
		return &ProvisioningError{Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	var sb strings.Builder
	for _, key := range recordKeys {
		value, ok := record[key]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%s=%s\n", key, value)
	}

	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		return &ProvisioningError{Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &ProvisioningError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &ProvisioningError{Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return &ProvisioningError{Path: path, Err: err}
	}

	if err := os.Link(tmpName, path); err != nil {
		if os.IsExist(err) {
			return &ProvisioningError{Path: path, Err: fmt.Errorf("record already exists")}
		}
		return &ProvisioningError{Path: path, Err: err}
	}

	return nil
}
