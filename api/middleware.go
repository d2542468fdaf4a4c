package api

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/courtworks/jis-api/databases"
)

// Auth holds the pieces the auth middleware needs to resolve bearer tokens
type Auth struct {
	DB     databases.UserDatabase
	Secret []byte
}

// Middleware verifies the bearer token, loads the caller and stores it on the
// request context. Missing, malformed and expired tokens all yield a 401.
func (a Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			unauthorized(w, r, "missing bearer token")
			return
		}

		userID, err := ResolveToken(token, a.Secret)
		if err != nil {
			unauthorized(w, r, err.Error())
			return
		}

		ctx, cancel := WithQueryTimeout(r.Context())
		defer cancel()

		user, err := a.DB.FindOne(ctx, bson.M{"userID": userID})
		if err != nil {
			unauthorized(w, r, "token subject not found")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// Require gates a handler behind the authorization policy for one operation
func Require(op Operation, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil {
			unauthorized(w, r, "no authenticated user")
			return
		}
		if !Authorize(user.Role, op) {
			zap.S().Infow("forbidden",
				"url", r.URL,
				"role", user.Role,
				"operation", op,
			)
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "forbidden"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	zap.S().Errorw("unauthorized",
		"url", r.URL,
		"reason", reason,
	)
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error": "unauthorized"}`))
}
