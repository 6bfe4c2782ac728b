package database

import "errors"

var (
	// ErrNoTransaction is returned when a unit of work finds no transaction in the context.
	ErrNoTransaction = errors.New("no transaction in context")
	// ErrUnsupportedDriver is returned for drivers without a registered connection factory.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)
