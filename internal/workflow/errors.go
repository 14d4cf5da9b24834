package workflow

import "errors"

var (
	ErrNoTraveler      = errors.New("sign in as a traveler to continue")
	ErrNoSelection     = errors.New("no flight selected")
	ErrNotInResults    = errors.New("flight is not in the current results")
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
)
