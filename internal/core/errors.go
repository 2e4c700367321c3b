package core

import "errors"

// Sentinel errors. Only the format errors abort a scan; structural
// truncation and per-frame decode problems degrade instead.
var (
	// Format errors
	ErrFileTooShort  = errors.New("pcapsum: file too short to be a capture")
	ErrUnknownFormat = errors.New("pcapsum: unrecognized capture magic")

	// Configuration errors
	ErrConfigInvalid = errors.New("pcapsum: invalid configuration")
)
