package sitrep

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ConfigError collects problems with configuration, keyed by the
// environment variable at fault. It matches ErrConfiguration with errors.Is.
type ConfigError url.Values

// NewConfigError creates an empty ConfigError.
func NewConfigError() ConfigError {
	return make(ConfigError)
}

// Error returns a message listing every variable in name order.
func (e ConfigError) Error() string {
	if len(e) == 0 {
		return ErrConfiguration.Error()
	}

	vars := make([]string, 0, len(e))
	for v := range e {
		vars = append(vars, v)
	}
	sort.Strings(vars)

	parts := make([]string, 0, len(vars))
	for _, v := range vars {
		if msgs := e[v]; len(msgs) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", v, msgs[0]))
		}
	}
	return fmt.Sprintf("%s: %s", ErrConfiguration.Error(), strings.Join(parts, ", "))
}

// Is reports whether target is ErrConfiguration.
func (e ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// Add adds a message for a variable.
func (e ConfigError) Add(variable, message string) {
	url.Values(e).Add(variable, message)
}

// Get returns the first message for a variable.
func (e ConfigError) Get(variable string) string {
	return url.Values(e).Get(variable)
}

// Has checks if a variable has any problems.
func (e ConfigError) Has(variable string) bool {
	return len(e[variable]) > 0
}

// IsEmpty returns true if there are no problems.
func (e ConfigError) IsEmpty() bool {
	return len(e) == 0
}
