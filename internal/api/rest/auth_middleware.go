package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artbid/auction-marketplace-backend/internal/domain/account"
	"github.com/artbid/auction-marketplace-backend/internal/domain/errors"
)

// UserStore resolves authenticated user identities.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*account.User, error)
}

type authenticator struct {
	secret []byte
	users  UserStore
	logger *zap.Logger
}

func newAuthenticator(secret string, users UserStore, logger *zap.Logger) *authenticator {
	return &authenticator{secret: []byte(secret), users: users, logger: logger}
}

// require wraps a handler with bearer-token authentication. The token's
// subject must resolve to an active user; the user id lands in the request
// context for handlers to read.
func (a *authenticator) require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, a.logger, errors.NewUnauthorizedError("Authorization required"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, a.logger, errors.NewUnauthorizedError("Invalid authorization format"))
			return
		}

		userID, err := a.verify(parts[1])
		if err != nil {
			writeError(w, a.logger, err)
			return
		}

		user, err := a.users.GetByID(r.Context(), userID)
		if err != nil || !user.CanBid() {
			writeError(w, a.logger, errors.NewUnauthorizedError("Unknown or inactive user"))
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, user.ID)
		next(w, r.WithContext(ctx))
	}
}

func (a *authenticator) verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewUnauthorizedError("Unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, errors.NewUnauthorizedError("Invalid or expired token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, errors.NewUnauthorizedError("Token missing subject")
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, errors.NewUnauthorizedError("Invalid token subject")
	}
	return userID, nil
}

// userIDFromContext returns the authenticated user's id, if any.
func userIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(contextKeyUserID).(uuid.UUID)
	return id, ok
}
