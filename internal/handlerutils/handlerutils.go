package handlerutils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIHandler is a http handler that returns an error instead of writing
// error responses itself. The error middleware turns the returned error
// into a json response.
type APIHandler func(w http.ResponseWriter, r *http.Request) error

// ErrorHandlerFunc wraps an [APIHandler] into a [http.HandlerFunc].
type ErrorHandlerFunc func(h APIHandler) http.HandlerFunc

type successResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

func ParseJSON(r *http.Request, payload any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}

	return json.NewDecoder(r.Body).Decode(payload)
}

func WriteJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(v)
}

func WriteSuccessJSON(w http.ResponseWriter, statusCode int, message string, data any) error {
	return WriteJSON(
		w,
		statusCode,
		successResponse{
			Status:  "success",
			Message: message,
			Data:    data,
		},
	)
}

func WriteErrorJSON(w http.ResponseWriter, statusCode int, message string, errs any) {
	_ = WriteJSON(
		w,
		statusCode,
		errorResponse{
			Status:  "error",
			Message: message,
			Errors:  errs,
		},
	)
}
