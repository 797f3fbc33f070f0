package errors

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Error    string        `json:"error"`
	Category ErrorCategory `json:"category"`
	Line     int           `json:"line,omitempty"`
	Column   int           `json:"column,omitempty"`
}

// HTTPErrorAdapter maps classified errors to HTTP status codes and JSON bodies.
type HTTPErrorAdapter struct {
	logger *slog.Logger
}

// NewHTTPErrorAdapter creates a new HTTP error adapter.
func NewHTTPErrorAdapter(logger *slog.Logger) *HTTPErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPErrorAdapter{logger: logger}
}

// StatusCodeFor returns the HTTP status for an error.
func (a *HTTPErrorAdapter) StatusCodeFor(err error) int {
	switch GetCategory(err) {
	case CategoryParse, CategoryNesting:
		return http.StatusUnprocessableEntity
	case CategoryValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteErrorResponse writes err as a JSON error body with the mapped status.
func (a *HTTPErrorAdapter) WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := a.StatusCodeFor(err)
	body := ErrorResponse{Error: err.Error(), Category: GetCategory(err)}

	if me, ok := As(err); ok {
		body.Error = me.Message
		if me.Cause != nil && (me.Category == CategoryParse || me.Category == CategoryNesting) {
			body.Error = me.Cause.Error()
		}
		if line, ok := me.Context["line"].(int); ok {
			body.Line = line
		}
		if col, ok := me.Context["column"].(int); ok {
			body.Column = col
		}
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	a.logger.Log(r.Context(), level, "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("category", string(body.Category)),
		slog.String("error", err.Error()))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(body); encErr != nil {
		a.logger.Error("failed to encode error response", "error", encErr)
	}
}
