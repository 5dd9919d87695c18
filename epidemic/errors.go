package epidemic

import "fmt"

// ConfigError wraps a bad or missing parameter discovered at init (§7).
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("epidemic: configuration error: %s", e.Reason)
}

// DataError wraps an out-of-domain value found in loaded data, such as an
// airport table entry referencing an unknown cell, or a negative occupancy
// count (§7).
type DataError struct {
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("epidemic: data error: %s", e.Reason)
}
