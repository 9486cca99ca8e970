// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is the sentinel wrapped by ItemNotFoundErr so callers can use
// errors.Is without caring which record kind was missing.
var ErrNotFound = errors.New("record not found")

// BadRequestErr reports input that failed its declared shape. It is raised
// before any storage access and is never retried.
type BadRequestErr struct {
	Message string
	Field   string
}

func (e BadRequestErr) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e BadRequestErr) StatusCode() int {
	return http.StatusBadRequest
}

// ItemNotFoundErr reports a single-record fetch that matched nothing.
type ItemNotFoundErr struct {
	Kind string
	ID   string
}

func (e ItemNotFoundErr) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e ItemNotFoundErr) StatusCode() int {
	return http.StatusNotFound
}

func (e ItemNotFoundErr) Unwrap() error {
	return ErrNotFound
}

// InternalErr reports a failed call against the hosted store. The underlying
// error is kept for logging; the sanitized message is what goes on the wire.
type InternalErr struct {
	Err       error
	Operation string
}

func (e InternalErr) Error() string {
	return fmt.Sprintf("storage operation %q failed", e.Operation)
}

func (e InternalErr) StatusCode() int {
	return http.StatusInternalServerError
}

func (e InternalErr) Unwrap() error {
	return e.Err
}

// SanitizeError wraps an arbitrary storage client failure so the raw driver
// message never reaches a caller. Errors that already carry a status code
// pass through untouched.
func SanitizeError(operation string, err error) error {
	if err == nil {
		return nil
	}
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return err
	}
	return InternalErr{Err: err, Operation: operation}
}
