// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
)

// Envelope is the uniform response body: {success, message, data, debug?}.
// The debug block is only populated when debug mode was enabled at boot.
type Envelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    any        `json:"data"`
	Debug   *DebugInfo `json:"debug,omitempty"`
}

type DebugInfo struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type Page struct {
	Items any      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

var debugMode atomic.Bool

// SetDebugMode toggles inclusion of error detail in 5xx responses.
// Called once during bootstrap; never flipped at runtime.
func SetDebugMode(enabled bool) {
	debugMode.Store(enabled)
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(body)
}

func Success(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

func OK(w http.ResponseWriter, data any) {
	Success(w, http.StatusOK, data, "")
}

func OKMessage(w http.ResponseWriter, data any, message string) {
	Success(w, http.StatusOK, data, message)
}

func Created(w http.ResponseWriter, data any) {
	Success(w, http.StatusCreated, data, "")
}

func CreatedMessage(w http.ResponseWriter, data any, message string) {
	Success(w, http.StatusCreated, data, message)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Paginated(w http.ResponseWriter, items any, page, pageSize, total int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	Success(w, http.StatusOK, Page{
		Items: items,
		Meta: PageMeta{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}, "")
}

func Fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Message: message})
}

func BadRequest(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, message)
}

func NotFound(w http.ResponseWriter, resource string) {
	Fail(w, http.StatusNotFound, fmt.Sprintf("%s not found", resource))
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "authentication required"
	}
	Fail(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "insufficient permissions"
	}
	Fail(w, http.StatusForbidden, message)
}

func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)

	body := Envelope{Success: false, Message: "internal server error"}
	if debugMode.Load() && err != nil {
		body.Debug = &DebugInfo{
			Error: err.Error(),
			Type:  fmt.Sprintf("%T", err),
		}
	}

	writeJSON(w, http.StatusInternalServerError, body)
}

// JSONError renders an AppError with its own status; anything else is
// treated as unexpected.
func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.Status, Envelope{
			Success: false,
			Message: appErr.Message,
		})
		return
	}

	InternalServerError(w, err)
}

// ValidationFailed maps validator errors to a 422 with per-field messages.
func ValidationFailed(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Message: "validation failed",
		Data:    FormatValidationErrors(err),
	})
}

// FieldErrors writes a 422 for constraints the struct validator cannot
// express, such as required or size-capped file parts.
func FieldErrors(w http.ResponseWriter, fields map[string][]string) {
	writeJSON(w, http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Message: "validation failed",
		Data:    fields,
	})
}

func FormatValidationErrors(err error) map[string][]string {
	fields := make(map[string][]string)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		fields["_"] = []string{err.Error()}
		return fields
	}

	for _, fieldErr := range validationErrs {
		name := strings.ToLower(fieldErr.Field())
		fields[name] = append(fields[name], validationMessage(fieldErr))
	}

	return fields
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fieldErr.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fieldErr.Param())
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("failed %s validation", fieldErr.Tag())
	}
}
