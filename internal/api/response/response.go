package response

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Error codes carried in ErrorBody.Code.
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeGeneration         = "GENERATION_ERROR"
	CodeRateLimited        = "RATE_LIMITED"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeUnsupportedMedia   = "UNSUPPORTED_MEDIA_TYPE"
)

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code              string `json:"code"`
	Message           string `json:"message,omitempty"`
	RetryAfterSeconds int    `json:"retryAfterSeconds,omitempty"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// SuccessResponse represents a successful API response with data.
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// Success writes a successful JSON response.
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, SuccessResponse{Data: data})
}

// Coded writes an error response with an explicit code.
func Coded(w http.ResponseWriter, status int, code string, err error) {
	body := ErrorBody{Code: code}
	if err != nil {
		body.Message = err.Error()
	}
	JSON(w, status, ErrorResponse{Error: body})
}

// Error writes an error response with the default code for status.
func Error(w http.ResponseWriter, status int, err error) {
	Coded(w, status, codeFor(status), err)
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeInvalidInput
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusTooManyRequests:
		return CodeRateLimited
	case http.StatusServiceUnavailable:
		return CodeServiceUnavailable
	case http.StatusUnsupportedMediaType:
		return CodeUnsupportedMedia
	default:
		return CodeInternal
	}
}

// BadRequest writes a 400 Bad Request response.
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusBadRequest, err)
}

// NotFound writes a 404 Not Found response.
func NotFound(w http.ResponseWriter, err error) {
	Error(w, http.StatusNotFound, err)
}

// InternalError writes a 500 Internal Server Error response.
func InternalError(w http.ResponseWriter, err error) {
	Error(w, http.StatusInternalServerError, err)
}

// ServiceUnavailable writes a 503 Service Unavailable response.
func ServiceUnavailable(w http.ResponseWriter, err error) {
	Error(w, http.StatusServiceUnavailable, err)
}

// RateLimited writes a 429 response and the matching Retry-After header.
func RateLimited(w http.ResponseWriter, retryAfterSeconds int, err error) {
	if retryAfterSeconds > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	}
	body := ErrorBody{Code: CodeRateLimited, RetryAfterSeconds: retryAfterSeconds}
	if err != nil {
		body.Message = err.Error()
	}
	JSON(w, http.StatusTooManyRequests, ErrorResponse{Error: body})
}
