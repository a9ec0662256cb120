package logging

import "github.com/oklog/ulid/v2"

// GenerateRunID generates a ULID identifying one invocation. It is attached
// to every log record and to pre-execution error reports so a run's
// diagnostics can be correlated after the fact.
func GenerateRunID() string {
	return ulid.Make().String()
}
