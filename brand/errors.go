package brand

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigNotFound means the brand configuration file does not exist.
	ErrConfigNotFound = errors.New("brand config not found")
	// ErrConfigParse means the brand configuration is not well-formed.
	ErrConfigParse = errors.New("malformed brand config")
	// ErrMissingToken means a reference names a token absent from its table.
	ErrMissingToken = errors.New("missing brand token")
)

// ConfigError reports a failure to load a configuration source. It
// matches both its kind (ErrConfigNotFound or ErrConfigParse) and the
// underlying cause under errors.Is.
type ConfigError struct {
	Path string
	Kind error
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// MissingTokenError names the token that could not be resolved and the
// reference that asked for it.
type MissingTokenError struct {
	Category string // "color", "font", "type_scale", "gradient"
	Name     string
	Ref      string // e.g. "color_roles.primary"
}

func (e *MissingTokenError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("missing brand token: %s %q", e.Category, e.Name)
	}
	return fmt.Sprintf("missing brand token: %s %q (referenced by %s)", e.Category, e.Name, e.Ref)
}

func (e *MissingTokenError) Is(target error) bool {
	return target == ErrMissingToken
}
