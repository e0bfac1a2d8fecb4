package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig marks every configuration error
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDivideByZero is returned when a compression ratio is requested for an empty document
	ErrDivideByZero = errors.New("compression ratio undefined: document has no words")
)

// ConfigError reports an invalid parameter before any processing happens
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
