package usecase

import "errors"

// ErrTeacherNotFound is returned when a teacher cannot be found by ID.
var ErrTeacherNotFound = errors.New("teacher not found")
