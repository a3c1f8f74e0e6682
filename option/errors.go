package option

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidOption is returned when an option key is not an identifier.
	ErrInvalidOption = errors.New("invalid option")
	// ErrInvalidOptions is the sentinel wrapped by [OptionsError].
	ErrInvalidOptions = errors.New("invalid options")
)

// OptionsError reports option identifiers that were rejected, either by a
// [Registry] or by the engine a handle was opened on.
type OptionsError struct {
	Rejected Values
	Names    map[ID]string
	Version  string
	Err      error
}

func (e *OptionsError) Error() string {
	ids := make([]ID, 0, len(e.Rejected))
	for id := range e.Rejected {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		label := fmt.Sprintf("%d", id)
		if name, ok := e.Names[id]; ok {
			label = fmt.Sprintf("%d (%s)", id, name)
		}
		parts = append(parts, fmt.Sprintf("%s => %s", label, FormatValue(e.Rejected[id])))
	}

	return fmt.Sprintf("%v [%s], note that your engine version is %s and it may be that the option requires a more up to date version",
		e.Err, strings.Join(parts, ", "), e.Version)
}

func (e *OptionsError) Unwrap() error {
	return e.Err
}
