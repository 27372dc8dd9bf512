package domain

import "errors"

var (
	// ErrTransientFetch reports the ranking source is unreachable, the run should be retried later
	ErrTransientFetch = errors.New("transient fetch error")

	// ErrStateCorrupt reports persisted state can't be trusted
	ErrStateCorrupt = errors.New("state corrupted")

	// ErrRender reports a feed document failed to render or validate
	ErrRender = errors.New("render error")
)
