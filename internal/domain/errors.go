package domain

import (
	"errors"
	"fmt"

	m "mklinkdef.dev/pkg/mklinkdef/internal/model"
)

// Configuration errors abort the run before anything is written.
var (
	ErrMissingHostVersion = errors.New("host version is not set")
	ErrInvalidHostVersion = errors.New("host version is malformed")
	ErrMissingInstallRoot = errors.New("install root is not set")
	ErrMissingArch        = errors.New("architecture tag is not set")
	ErrHeaderDirMissing   = errors.New("header directory does not exist")
)

// External process failures.
var (
	ErrIncludeHelperFailed = errors.New("include path helper failed")
	ErrCompilerFailed      = errors.New("dictionary compiler failed")
)

// StepError records which pipeline step failed.
type StepError struct {
	Step m.Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepErr(step m.Step, err error) error {
	if err == nil {
		return nil
	}

	return &StepError{Step: step, Err: err}
}
