package decisions

import (
	"errors"
	"net/http"

	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

// Domain errors for decision operations.
var (
	ErrNotFound          = errors.New("decision not found")
	ErrDuplicate         = errors.New("decision already recorded")
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")
	ErrInvalidArbiter    = errors.New("arbiter type must be ai or human")
	ErrEmptyText         = errors.New("decision text must not be empty")
)

// MapHTTPStatus maps decision domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidConfidence) ||
		errors.Is(err, ErrInvalidArbiter) ||
		errors.Is(err, ErrEmptyText) ||
		errors.Is(err, repository.ErrConstraint) {
		return http.StatusBadRequest
	}
	if errors.Is(err, authz.ErrDenied) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
