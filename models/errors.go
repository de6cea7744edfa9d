package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminExists        = errors.New("admin already exists")
	ErrCapacityReached    = errors.New("tournament is full")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field that failed validation, not just the first.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field is among the failed fields.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

type CapacityError struct {
	GameType GameType
	GameName string
	MaxTeams int
}

func (e *CapacityError) Error() string {
	name := e.GameName
	if name == "" {
		name = string(e.GameType)
	}
	return fmt.Sprintf("%s tournament is full. All %d slots have been filled.", name, e.MaxTeams)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityReached
}
