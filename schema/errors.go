package schema

import "fmt"

// ConfigErrorKind classifies fatal configuration faults.
type ConfigErrorKind string

// All configuration error kinds.
const (
	MalformedSyntax      ConfigErrorKind = "malformed_syntax"
	MissingRequiredField ConfigErrorKind = "missing_required_field"
	UnknownDependency    ConfigErrorKind = "unknown_dependency"
	DuplicateID          ConfigErrorKind = "duplicate_id"
)

// ConfigError is a fatal configuration fault. No orchestration is attempted
// when one is surfaced.
type ConfigError struct {
	Kind   ConfigErrorKind
	Detail string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error (%s): %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("config error (%s): %s", e.Kind, e.Detail)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError constructs a ConfigError with a formatted detail message.
func NewConfigError(kind ConfigErrorKind, format string, args ...any) *ConfigError {
	return &ConfigError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// EngineError is a substrate-level fault: the engine could not schedule at
// all and no RunOutcome was produced. Callers must handle this distinctly
// from a Blocked outcome.
type EngineError struct {
	Detail string
	Err    error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("engine error: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("engine error: %s", e.Detail)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// Warning is a non-fatal validation finding. Warnings are logged and never
// stop a run.
type Warning string
