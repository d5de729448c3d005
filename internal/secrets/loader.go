package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotConfigured is returned when a required secret has neither a file nor a value.
var ErrNotConfigured = errors.New("secret is not configured")

// Source describes where a secret comes from.
type Source struct {
	// Name is used in error messages.
	Name string
	// Value is an inline secret from configuration or the environment.
	Value string
	// File points to a file holding the secret. It takes precedence over Value.
	File string
	// Optional makes an unconfigured secret resolve to the empty string.
	Optional bool
}

// Load resolves the secret described by src. The result is always trimmed.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	value := src.Value
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		value = string(data)
	}

	secret := strings.TrimSpace(value)
	switch {
	case secret != "":
		return secret, nil
	case file != "":
		return "", fmt.Errorf("%s file %q is empty", name, file)
	case src.Optional:
		return "", nil
	default:
		return "", fmt.Errorf("%s: %w", name, ErrNotConfigured)
	}
}
