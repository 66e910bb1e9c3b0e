// Package server provides the HTTP REST API for the resume studio.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-studio/internal/ats"
	"github.com/jonathan/resume-studio/internal/wizard"
)

// ErrResumeNotFound indicates the resume was not found for the user
type ErrResumeNotFound struct {
	ResumeID string
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ResumeID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotConfigured indicates an optional integration is not set up
type ErrNotConfigured struct {
	Feature string
}

func (e *ErrNotConfigured) Error() string {
	return fmt.Sprintf("%s is not configured", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var verrs wizard.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ats.ErrTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ats.ErrNotPDF) {
		return http.StatusBadRequest
	}

	switch err.(type) {
	case *ErrResumeNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrNotConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
