package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/campusdir/internal/domain"
	"github.com/kailas-cloud/campusdir/internal/logger"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeBadRequest       = "bad_request"
	CodeValidationFailed = "validation_failed"
	CodeNotFound         = "not_found"
	CodeAlreadyExists    = "already_exists"
	CodeInvalidDocument  = "invalid_document"
	CodeInternalError    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string, err error) {
	resp := ErrorResponse{Code: code, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, status, resp)
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg, err)
		return true
	}
}

// validationHandler reports every rejected field.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	fields := make([]FieldError, len(ve.Fields))
	for i, f := range ve.Fields {
		fields[i] = FieldError{Index: f.Index, Field: f.Field, Message: f.Message}
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    CodeValidationFailed,
		Message: msg,
		Error:   err.Error(),
		Fields:  fields,
	})
	return true
}

// handleDomainError maps err through the handler chain; anything unhandled is a 500
// carrying the raw error text.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("Request failed", zap.Error(err))
			return
		}
	}

	code := CodeInternalError
	if errors.Is(err, domain.ErrInvalidDocument) {
		code = CodeInvalidDocument
	}
	log.Error("Internal error", zap.String("code", code), zap.Error(err))
	writeError(w, http.StatusInternalServerError, code, msg, err)
}

// writeMissing answers a lookup of an absent single document: 404 in strict mode,
// otherwise 200 with an empty body.
func (s *Server) writeMissing(w http.ResponseWriter, msg string, err error) {
	if s.strictNotFound {
		writeError(w, http.StatusNotFound, CodeNotFound, msg, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
