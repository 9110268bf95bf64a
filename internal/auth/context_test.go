package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VitaminP8/flock/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithUserIDAndGetUserIDFromContext(t *testing.T) {
	t.Run("Store and retrieve user ID from context", func(t *testing.T) {
		ctx := context.Background()

		userID := models.ID("123")
		ctx = WithUserID(ctx, userID)

		retrievedID, err := GetUserIDFromContext(ctx)
		assert.NoError(t, err)
		assert.Equal(t, userID, retrievedID)
	})

	t.Run("Error when user ID not in context", func(t *testing.T) {
		ctx := context.Background()

		_, err := GetUserIDFromContext(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found in context")
	})

	t.Run("Error when context value is not models.ID", func(t *testing.T) {
		// Создаем контекст с неправильным типом значения
		ctx := context.WithValue(context.Background(), userIDKey, "123")

		_, err := GetUserIDFromContext(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found in context")
	})

	t.Run("Error when user ID is empty", func(t *testing.T) {
		ctx := WithUserID(context.Background(), "")

		_, err := GetUserIDFromContext(ctx)
		assert.Error(t, err)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	t.Run("Valid Bearer token", func(t *testing.T) {
		header := "Bearer token123"
		token := extractTokenFromHeader(header)
		assert.Equal(t, "token123", token)
	})

	t.Run("Invalid format - no Bearer prefix", func(t *testing.T) {
		header := "NotBearer token123"
		token := extractTokenFromHeader(header)
		assert.Equal(t, "", token)
	})

	t.Run("Invalid format - no space", func(t *testing.T) {
		header := "Bearertoken123"
		token := extractTokenFromHeader(header)
		assert.Equal(t, "", token)
	})

	t.Run("Empty header", func(t *testing.T) {
		header := ""
		token := extractTokenFromHeader(header)
		assert.Equal(t, "", token)
	})
}

func TestAuthMiddleware(t *testing.T) {
	testSecret := "test_jwt_secret"
	tokens, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	// Создаем тестовый обработчик, который будет проверять наличие userID в контексте
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserIDFromContext(r.Context())
		if err == nil {
			fmt.Fprintf(w, "User ID: %s", userID)
		} else {
			fmt.Fprint(w, "No user ID in context")
		}
	})

	handler := AuthMiddleware(tokens, testHandler)

	signWith := func(t *testing.T, secret string, exp time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": "abc123",
			"exp":     exp.Unix(),
		})
		tokenString, err := token.SignedString([]byte(secret))
		require.NoError(t, err)
		return tokenString
	}

	t.Run("Valid token", func(t *testing.T) {
		tokenString, err := tokens.IssueToken("abc123")
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/query", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "User ID: abc123", w.Body.String())
	})

	t.Run("Invalid token signature", func(t *testing.T) {
		// Создаем токен, подписанный другим секретом
		tokenString := signWith(t, "wrong_secret", time.Now().Add(time.Hour))

		req := httptest.NewRequest("POST", "/query", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "No user ID in context", w.Body.String())
	})

	t.Run("Expired token", func(t *testing.T) {
		tokenString := signWith(t, testSecret, time.Now().Add(-time.Hour))

		req := httptest.NewRequest("POST", "/query", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "No user ID in context", w.Body.String())
	})

	t.Run("No token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/query", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "No user ID in context", w.Body.String())
	})

	t.Run("Invalid token format", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/query", nil)
		req.Header.Set("Authorization", "InvalidFormat")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "No user ID in context", w.Body.String())
	})
}
