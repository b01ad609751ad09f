// Package response writes the JSON envelope shared by every API endpoint:
// {success, data?, message?, error?}.
package response

import (
	"encoding/json"
	"net/http"
)

const ContentType = "application/json"

// Success is the envelope for successful responses. Data is always present
// (null when there is nothing to return).
type Success struct {
	Success bool   `json:"success" example:"true"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty" example:"수면 기록이 성공적으로 생성되었습니다."`
}

// Failure is the envelope for error responses.
type Failure struct {
	Success bool         `json:"success" example:"false"`
	Error   string       `json:"error" example:"수면 기록을 찾을 수 없습니다."`
	Status  int          `json:"-"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes a validation failure on a single request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, data any, message string) {
	JSON(w, http.StatusOK, data, message)
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, data any, message string) {
	JSON(w, http.StatusCreated, data, message)
}

// JSON writes a success envelope with the given status.
func JSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Success{Success: true, Data: data, Message: message})
}

// New creates a failure with the given status and user-facing message.
func New(status int, message string) *Failure {
	return &Failure{Status: status, Error: message}
}

// WithErrors attaches field errors to the failure.
func (f *Failure) WithErrors(errors []FieldError) *Failure {
	f.Errors = errors
	return f
}

// Write writes the failure envelope to the response.
func (f *Failure) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(f.Status)
	json.NewEncoder(w).Encode(f)
}

func BadRequest(message string) *Failure {
	return New(http.StatusBadRequest, message)
}

func ValidationError(message string, errors []FieldError) *Failure {
	return New(http.StatusBadRequest, message).WithErrors(errors)
}

func NotFound(message string) *Failure {
	return New(http.StatusNotFound, message)
}

func InternalError(message string) *Failure {
	return New(http.StatusInternalServerError, message)
}
