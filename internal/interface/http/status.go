package handlers

import (
	"errors"
	"net/http"

	"github.com/doselog/identity-service/internal/application"
)

// statusFromError maps application error kinds to HTTP statuses.
// Integrity failures surface as 500: they are corrupted state, not
// something the client can fix.
func statusFromError(err error) int {
	switch application.KindOf(err) {
	case application.KindValidation:
		return http.StatusBadRequest
	case application.KindConflict:
		return http.StatusConflict
	case application.KindUnauthorized:
		return http.StatusUnauthorized
	case application.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage hides internal failure details from API clients while
// keeping user-addressable messages verbatim.
func clientMessage(err error) string {
	var ae *application.Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case application.KindValidation, application.KindConflict,
			application.KindUnauthorized, application.KindNotFound:
			return ae.Message
		}
	}
	return "internal server error"
}
