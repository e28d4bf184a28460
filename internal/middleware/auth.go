package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/auth"
	inErrors "github.com/Alturino/storefront/internal/errors"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
)

// Auth rejects requests without a valid bearer token and attaches the
// token subject as the current user id.
func Auth(verifier auth.Verifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).With().Str(log.KeyTag, "middleware Auth").Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get(inHttp.KeyHeaderAuthorize)
			if authorization == "" {
				logger.Error().Err(inErrors.ErrEmptyAuth).Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteFailed(c, w, http.StatusUnauthorized, inErrors.ErrEmptyAuth)
				return
			}

			if len(authorization) <= len(inHttp.ValueBearerPrefix) ||
				!strings.EqualFold(authorization[:len(inHttp.ValueBearerPrefix)], inHttp.ValueBearerPrefix) {
				logger.Error().Err(inErrors.ErrMalformedAuth).Msg(inErrors.ErrMalformedAuth.Error())
				inHttp.WriteFailed(c, w, http.StatusUnauthorized, inErrors.ErrMalformedAuth)
				return
			}

			token := authorization[len(inHttp.ValueBearerPrefix):]
			userId, err := verifier.VerifyToken(c, token)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteFailed(c, w, http.StatusUnauthorized, inErrors.ErrTokenInvalid)
				return
			}

			logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()
			c = logger.WithContext(auth.AttachUserIdToContext(c, userId))
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
