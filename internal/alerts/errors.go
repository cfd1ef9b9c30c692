package alerts

import "fmt"

// ValidationError reports malformed caller input. Handlers map it to a 4xx
// response.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DataSourceError wraps a failure reading from an alert source. The failing
// source name is preserved so callers can tell which adapter broke.
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("alert source %s: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// ConsistencyError reports an alert that violates an internal invariant, such
// as a missing timestamp or a priority that disagrees with its category. The
// whole aggregation aborts rather than serving a partial result.
type ConsistencyError struct {
	AlertID string
	Reason  string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("inconsistent alert %s: %s", e.AlertID, e.Reason)
}
