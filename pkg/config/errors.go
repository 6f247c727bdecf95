package config

import "fmt"

// ProvisioningError indicates the environment record could not be created or
// persisted. It is fatal to startup; there is no retry path.
type ProvisioningError struct {
	Path string
	Err  error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provisioning %s: %v", e.Path, e.Err)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}
