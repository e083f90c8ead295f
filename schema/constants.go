package schema

// Custom string types for type safety.
type (
	// Enforcement classifies a check as a hard gate or a soft scoring contributor.
	Enforcement string

	// CheckStatus represents the terminal state of a single check execution.
	CheckStatus string

	// Decision represents the final classification of a PR validation run.
	Decision string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All enforcement kinds supported.
const (
	HardEnforcement Enforcement = "hard"
	SoftEnforcement Enforcement = "soft"
)

// All check statuses supported.
const (
	StatusPass     CheckStatus = "pass"
	StatusFail     CheckStatus = "fail"
	StatusError    CheckStatus = "error"
	StatusTimedOut CheckStatus = "timed_out"
	StatusSkipped  CheckStatus = "skipped"
)

// All merge decisions supported.
const (
	AutoMerge    Decision = "auto_merge"
	ManualReview Decision = "manual_review"
	Blocked      Decision = "blocked"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Transient reports whether a status represents a transient fault that the
// runner may retry. A clean Fail is a legitimate result, never transient.
func (s CheckStatus) Transient() bool {
	return s == StatusError || s == StatusTimedOut
}

// Scoreable reports whether a soft check with this status contributes its
// recorded score to the weighted aggregate. All other terminal statuses
// contribute zero without redistributing their weight.
func (s CheckStatus) Scoreable() bool {
	return s == StatusPass || s == StatusFail
}

// Valid reports whether the enforcement kind is one of the supported values.
func (e Enforcement) Valid() bool {
	return e == HardEnforcement || e == SoftEnforcement
}
