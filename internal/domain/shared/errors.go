package shared

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Configuration errors

// ConfigurationError indicates the caller supplied an inconsistent or
// incomplete setup (bad recipe selection, mismatched books, unknown entities).
// These fail fast before any engine work begins.
type ConfigurationError struct {
	*DomainError
}

func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{DomainError: &DomainError{Message: message}}
}
