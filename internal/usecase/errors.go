package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrMissingPrerequisite   = errors.New("missing prerequisite")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrRunInProgress         = errors.New("run already in progress")
)
