package watersort

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Sentinel error kinds, matched with errors.Is by callers at the boundary.
var (
	// ErrInvalidBoard means board construction or parsing violated one of
	// the invariants in the data model: bad tube lengths, EMPTY below a
	// non-empty node, a KNOWN color over capacity, a total count not
	// divisible by capacity, or a KNOWN node missing its color.
	ErrInvalidBoard = errors.New("invalid board")

	// ErrInvalidOperation means Undo was applied with no previous state,
	// or a StepForward named an empty source tube. Both are programmer
	// errors and always fatal.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrAdapterFailure means an external input adapter (spreadsheet)
	// could not locate or attach to its source.
	ErrAdapterFailure = errors.New("adapter failure")

	// ErrUnsolvable means the search exhausted its frontier without
	// reaching a winning state. Only returned for fully-known boards;
	// hidden-unit boards always return a candidate state instead.
	ErrUnsolvable = errors.New("unsolvable")
)

// newInvalidBoard wraps one or more invariant violations into a single
// ErrInvalidBoard-flavored error, so a caller fixing a malformed board sees
// every violation instead of just the first.
func newInvalidBoard(violations ...error) error {
	if len(violations) == 0 {
		return nil
	}
	merr := &multierror.Error{}
	for _, v := range violations {
		merr = multierror.Append(merr, v)
	}
	return errors.Wrap(ErrInvalidBoard, merr.ErrorOrNil().Error())
}
