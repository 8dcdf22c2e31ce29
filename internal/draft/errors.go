package draft

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsatisfiable means the catalog cannot yield six mutually type-exclusive pairs.
	ErrUnsatisfiable = errors.New("unsatisfiable team constraints")

	// ErrTeamNotAssembled means every selection round ran out of draft attempts.
	ErrTeamNotAssembled = errors.New("could not assemble valid team")
)

// SearchError wraps a bounded-search failure with how far the search got.
type SearchError struct {
	Kind     error
	Attempts int
	Msg      string
}

func (e *SearchError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s after %d attempts", e.Kind.Error(), e.Attempts)
	}
	return fmt.Sprintf("%s after %d attempts: %s", e.Kind.Error(), e.Attempts, e.Msg)
}

func (e *SearchError) Unwrap() error { return e.Kind }

func unsatisfiable(attempts int, format string, args ...any) error {
	return &SearchError{Kind: ErrUnsatisfiable, Attempts: attempts, Msg: fmt.Sprintf(format, args...)}
}

func notAssembled(attempts int, format string, args ...any) error {
	return &SearchError{Kind: ErrTeamNotAssembled, Attempts: attempts, Msg: fmt.Sprintf(format, args...)}
}
