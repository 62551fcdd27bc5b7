// Package repository holds the record stores that back every hostel
// entity, together with the sentinel errors shared by all backends. Higher
// layers use errors.Is against these values to tell a missing record from a
// broken backing file.
package repository

import "errors"

// ErrNotFound is returned by Get and Update when no record carries the
// requested id.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert would duplicate an existing id.
var ErrConflict = errors.New("conflict")

// ErrCorruptStore is returned on load when the backing data cannot be
// decoded. Strict loading can be disabled to restore the old behaviour of
// starting from an empty store.
var ErrCorruptStore = errors.New("corrupt record store")
