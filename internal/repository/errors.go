// Package repository contains data access logic separated from HTTP
// handlers. Sentinel errors let handlers map failure modes onto HTTP
// statuses without inspecting SQL error strings.
package repository

import "errors"

// ErrNotFound is returned when a row does not exist or is owned by someone
// else. The two cases are deliberately indistinguishable so responses do
// not reveal whether a record exists.
var ErrNotFound = errors.New("not found")

// ErrUserExists is returned when a username or email is already taken.
var ErrUserExists = errors.New("username or email already exists")
