package services

import "mathexpert-backend/internal/models"

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

// NotFoundError carries its own API code; an empty Code means NOT_FOUND.
type NotFoundError struct {
	Code    string
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// CredentialError means the API key was rejected before any call was made.
type CredentialError struct {
	Status  models.KeyStatus
	Message string
}

func (e *CredentialError) Error() string { return e.Message }
