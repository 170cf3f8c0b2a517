package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/omarberrios/shopgrid-backend/api/responses"
	pkgerrors "github.com/omarberrios/shopgrid-backend/pkg/errors"
	"github.com/omarberrios/shopgrid-backend/pkg/logger"
)

// StoreHeader extracts the acting store from the X-Store-ID header and makes
// it available to downstream handlers. Requests without the header pass
// through; guarded routes enforce presence via StoreContext.
func StoreHeader() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("X-Store-ID"))
			if raw != "" {
				if id, err := uuid.Parse(raw); err == nil {
					r = r.WithContext(WithStoreID(r.Context(), id.String()))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// StoreContext rejects requests that did not carry a valid store identity.
func StoreContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if StoreIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "store context missing"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
