// Package repository holds the in-memory registry of teams, venues,
// matches, customers, tickets and invoices. The sentinel values below
// let the service and console layers tell lookup misses apart from
// conflicting writes.
package repository

import "errors"

// ErrNotFound is returned when an identifier has no entry in the
// registry. The console offers to register a customer on this error.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an entry with the same identifier is
// already registered, such as a second customer with the same ID.
var ErrConflict = errors.New("conflict")

// ErrForbidden is returned when a customer acts on a ticket that belongs
// to someone else.
var ErrForbidden = errors.New("forbidden")
