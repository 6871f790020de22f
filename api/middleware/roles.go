package middleware

import (
	"net/http"

	"github.com/svaldeco/atelierq-backend/api/responses"
	pkgerrors "github.com/svaldeco/atelierq-backend/pkg/errors"
	"github.com/svaldeco/atelierq-backend/pkg/logger"
)

// RequireAdmin rejects requests whose token does not carry the admin claim.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAdminFromContext(r.Context()) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
