package middleware

import (
	"mandalart/internal/auth"
	"mandalart/internal/errors"

	"github.com/gin-gonic/gin"
)

// SessionResolver is the part of the auth service the middleware needs
type SessionResolver interface {
	ResolveSession(sessionID string) (string, error)
}

// SessionAuth resolves the session cookie to a user id on every request.
// There is no session cache; expiry is enforced at the store.
func SessionAuth(resolver SessionResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sessionID, err := ctx.Cookie(auth.SessionCookieName)
		if err != nil || sessionID == "" {
			ctx.Error(errors.ErrUnauthorized(nil).WithMessage("Session cookie is not found!"))
			ctx.Abort()
			return
		}

		userID, err := resolver.ResolveSession(sessionID)
		if err != nil {
			ctx.Error(errors.ErrInternalServer(err))
			ctx.Abort()
			return
		}
		if userID == "" {
			ctx.Error(errors.ErrUnauthorized(nil).WithMessage("Session expired or not found"))
			ctx.Abort()
			return
		}

		ctx.Set("user_id", userID)
		ctx.Next()
	}
}
