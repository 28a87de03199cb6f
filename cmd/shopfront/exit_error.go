package main

import "fmt"

type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string {
	if e == nil {
		return ""
	}
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit %d", e.code)
}

func (e *exitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// exitWith wraps err so main exits with code instead of 1.
func exitWith(code int, err error) *exitError {
	return &exitError{code: code, err: err}
}

// cause is the error to report; a bare exit code reports fallback.
func (e *exitError) cause(fallback error) error {
	if e != nil && e.err != nil {
		return e.err
	}
	return fallback
}
