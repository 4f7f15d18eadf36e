package models

import "time"

// LoginRequest is the shared-password admin gate payload.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed admin token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ImportRequest is a pasted CSV block targeted at one batch.
type ImportRequest struct {
	BatchId string `json:"batch_id" binding:"required"`
	CSV     string `json:"csv" binding:"required"`
}

// ImportResponse reports the stored units after a bulk import.
type ImportResponse struct {
	Imported int    `json:"imported"`
	Units    []Unit `json:"units"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
