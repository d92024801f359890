package config

import "fmt"

// ConfigInitError reports a configuration that cannot be used as is. Field
// names the offending key.
type ConfigInitError struct {
	Field string
	msg   string
}

func (e *ConfigInitError) Error() string {
	if e.Field == "" {
		return "config: " + e.msg
	}
	return fmt.Sprintf("config: %s: %s", e.Field, e.msg)
}
