package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"github.com/go-playground/validator/v10"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn().Err(err).Msg("Response encode failed")
	}
}

// writeError maps the engine error kinds to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errorwrapper.IsNotFound(err):
		status = http.StatusNotFound
	case errorwrapper.IsInvalidInput(err):
		status = http.StatusBadRequest
	case errorwrapper.IsConflict(err):
		status = http.StatusConflict
	case errors.Is(err, errorwrapper.ErrServiceUnavailable):
		status = http.StatusServiceUnavailable
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		status = http.StatusBadRequest
	}

	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeBody decodes and validates a JSON request body.
func (s *Server) decodeBody(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return errorwrapper.NewValidationError("body", "", "malformed JSON body: "+err.Error())
	}
	return s.validate.Struct(dst)
}

// loggingMiddleware logs one line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
