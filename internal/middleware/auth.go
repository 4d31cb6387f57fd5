// Package middleware provides the request guards: Auth parses the bearer
// token into a principal, AdminOnly additionally requires the admin role.
// Handlers read the principal via UserID rather than ambient state.
package middleware

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/learnquest/backend/internal/apperr"
	"github.com/learnquest/backend/internal/models"
	"github.com/learnquest/backend/internal/respond"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserID returns the authenticated principal's user ID, if any.
func UserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value(userIDKey).(int64)
	return uid, ok
}

// Auth validates the Authorization bearer token and stores the user ID in
// the request context.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respond.Error(w, apperr.Unauthenticated("Authentication required"))
				return
			}

			userID, err := parseToken(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respond.Error(w, apperr.Unauthenticated("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly requires the authenticated user to hold the admin role. It must
// be mounted after Auth.
func AdminOnly(db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserID(r)
			if !ok {
				respond.Error(w, apperr.Unauthenticated("Authentication required"))
				return
			}

			var role string
			err := db.QueryRow(`SELECT role FROM users WHERE id = $1`, userID).Scan(&role)
			if err == sql.ErrNoRows {
				respond.Error(w, apperr.NotFound("USER_NOT_FOUND", "User not found"))
				return
			}
			if err != nil {
				respond.Error(w, apperr.Database(err))
				return
			}

			if role != models.RoleAdmin {
				respond.Error(w, apperr.Forbidden("ADMIN_REQUIRED", "Admin access required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func parseToken(secret []byte, tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	uid, ok := claims["user_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("token missing user_id claim")
	}
	return int64(uid), nil
}
