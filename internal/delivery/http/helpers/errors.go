package helpers

import (
	"log/slog"
	"net/http"

	"clubscheduler/internal/domain"
)

var statusByKind = map[domain.ErrorKind]int{
	domain.KindNotFound:   http.StatusNotFound,
	domain.KindValidation: http.StatusBadRequest,
	domain.KindConflict:   http.StatusConflict,
	domain.KindPermission: http.StatusForbidden,
}

// WriteError answers with the status of err's domain kind and the domain code
// and message. An upstream error is answered with the collaborator's own reason.
// Errors outside the taxonomy are logged and answered with a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	de := domain.Cause(err)
	if de != nil {
		if status, ok := statusByKind[de.Kind]; ok {
			WriteJSONError(w, status, de.Code, de.Message)
			return
		}
	}
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}
