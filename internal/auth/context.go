// internal/auth/context.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/VitaminP8/flock/models"
)

type contextKey string

const userIDKey = contextKey("userID")

// Сохраняет userID в контексте
func WithUserID(ctx context.Context, userID models.ID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Достает userID из контекста
func GetUserIDFromContext(ctx context.Context) (models.ID, error) {
	val := ctx.Value(userIDKey)
	id, ok := val.(models.ID)
	if !ok || id == "" {
		return "", errors.New("user ID not found in context")
	}
	return id, nil
}

// Для извлечения userID из JWT и помещения в context
func AuthMiddleware(tokens *TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractTokenFromHeader(r.Header.Get("Authorization"))
		if tokenStr == "" {
			next.ServeHTTP(w, r) // неавторизованный доступ, пропускаем
			return
		}

		userID, ok := tokens.ResolveToken(tokenStr)
		if !ok {
			next.ServeHTTP(w, r) // невалидный токен, тоже пропускаем
			return
		}

		ctx := WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractTokenFromHeader(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
