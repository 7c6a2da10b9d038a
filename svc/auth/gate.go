package auth

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/newsroom/pkg/logger"
)

// LoginPath is where RequireLogin sends anonymous visitors.
const LoginPath = "/login"

// RequireLogin lets requests through only when the session holds a user id,
// which it puts into the request context. Anonymous requests are redirected
// to LoginPath with 303; session failures get a 500.
func RequireLogin(sessions *TypedSession, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID, ok, err := sessions.UserID(r)
			switch {
			case err != nil:
				log.ErrorContext(ctx, "failed to resolve session user",
					logger.Error(err),
					logger.Component("auth_gate"),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			case !ok:
				log.DebugContext(ctx, "user has not logged in",
					slog.String("path", r.URL.Path),
					logger.Component("auth_gate"),
				)
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(ctx, userID)))
		})
	}
}
