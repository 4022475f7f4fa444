package optimize

import "errors"

var (
	// ErrInvalidConfig indicates the optimizer configuration could not be decoded
	ErrInvalidConfig = errors.New("invalid optimizer configuration")
	// ErrInvalidPattern indicates an exclusion glob could not be compiled
	ErrInvalidPattern = errors.New("invalid exclusion pattern")
	// ErrOptimizerFailed indicates a collaborator failed to optimize a single file
	ErrOptimizerFailed = errors.New("optimizer failed")
)
