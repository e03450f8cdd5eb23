package main

import (
	"errors"
	"fmt"
	"io/fs"
)

const (
	exitOK    = 0
	exitIO    = 1
	exitUsage = 2
)

// exitError attaches a process exit code to an error.
type exitError struct {
	code int
	err  error
	// file errors print as "Error opening '<path>': <cause>"
	file bool
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	return &exitError{code: exitUsage, err: err}
}

// openError reports a file that could not be opened for reading.
func openError(path string, err error) error {
	return &exitError{code: exitIO, file: true, err: fmt.Errorf("opening '%s': %w", path, pathCause(err))}
}

// createError reports a file that could not be created for writing.
func createError(path string, err error) error {
	return &exitError{code: exitIO, file: true, err: fmt.Errorf("creating '%s': %w", path, pathCause(err))}
}

func ioError(err error) error {
	return &exitError{code: exitIO, err: err}
}

// pathCause strips the *fs.PathError wrapper so the path is not repeated.
func pathCause(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// exitCodeFor maps err to a process exit code. Errors raised by cobra
// itself (unknown flags, missing required flags) are usage errors.
func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUsage
}

func userMessage(err error) string {
	var ee *exitError
	if errors.As(err, &ee) && ee.file {
		return "Error " + ee.Error()
	}
	return fmt.Sprintf("Error: %v", err)
}
