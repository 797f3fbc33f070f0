package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"git.home.luguber.info/inful/mdhtml/internal/convert"
	derrors "git.home.luguber.info/inful/mdhtml/internal/errors"
	"git.home.luguber.info/inful/mdhtml/internal/observability"
	"git.home.luguber.info/inful/mdhtml/internal/server/responses"
)

// ConvertHandlers serves POST /convert.
type ConvertHandlers struct {
	converter    *convert.Converter
	maxBodyBytes int64
	logger       *slog.Logger
	errorAdapter *derrors.HTTPErrorAdapter
}

// NewConvertHandlers creates the conversion handler. Bodies larger than
// maxBodyBytes are rejected with 413.
func NewConvertHandlers(conv *convert.Converter, maxBodyBytes int64, logger *slog.Logger) *ConvertHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConvertHandlers{
		converter:    conv,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
		errorAdapter: derrors.NewHTTPErrorAdapter(logger),
	}
}

func validationError(msg string) *derrors.MarkdownError {
	return derrors.New(derrors.CategoryValidation, derrors.SeverityWarning, msg)
}

// HandleConvert converts the request body. The response is text/html lines by
// default, or a ConvertResponse with ?format=json. The ETag is the source
// fingerprint, and a matching If-None-Match answers 304.
func (h *ConvertHandlers) HandleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.errorAdapter.WriteErrorResponse(w, r, methodNotAllowed(r.Method, http.MethodPost))
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "html" && format != "json" {
		h.errorAdapter.WriteErrorResponse(w, r,
			validationError("unsupported format").WithContext("format", format))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeTooLarge(w, r, tooLarge.Limit)
			return
		}
		h.errorAdapter.WriteErrorResponse(w, r, derrors.ReadFailed("request body", err))
		return
	}

	res, err := h.converter.Convert(r.Context(), string(body))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	etag := `"` + res.Fingerprint + `"`
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if format == "json" {
		resp := responses.ConvertResponse{
			Lines:       res.Lines,
			Blocks:      len(res.Lines),
			Fingerprint: res.Fingerprint,
			Frontmatter: res.Frontmatter,
		}
		if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
			h.errorAdapter.WriteErrorResponse(w, r, derrors.InternalError("failed to write convert response", err))
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	var sb strings.Builder
	for _, l := range res.Lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	_, _ = io.WriteString(w, sb.String())
}

func (h *ConvertHandlers) writeTooLarge(w http.ResponseWriter, r *http.Request, limit int64) {
	err := validationError("request body too large").WithContext("limit", limit)
	_ = writeJSON(w, http.StatusRequestEntityTooLarge, derrors.ErrorResponse{
		Error:    err.Message,
		Category: err.Category,
	})
	observability.Log(r.Context(), h.logger, slog.LevelWarn, "request body too large", slog.Int64("limit", limit))
}
