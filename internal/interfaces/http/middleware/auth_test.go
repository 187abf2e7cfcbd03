package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters!!",
		RefreshSecret:          "test-refresh-secret-32-characters!!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "storefront-test",
	})
}

func newAuthTestEngine(jwtService *auth.JWTService, blacklist auth.TokenBlacklist, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	handlers := []gin.HandlerFunc{RequireAuth(jwtService, blacklist, zap.NewNop())}
	if adminOnly {
		handlers = append(handlers, RequireAdmin())
	}
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String()})
	})

	engine.GET("/protected", handlers...)
	return engine
}

func authGet(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestRequireAuth(t *testing.T) {
	jwtService := newTestJWTService()
	userID := uuid.New()

	t.Run("valid token passes and exposes the user ID", func(t *testing.T) {
		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: userID,
			Email:  "user@example.com",
			Role:   "user",
		})
		require.NoError(t, err)

		w := authGet(newAuthTestEngine(jwtService, nil, false), pair.AccessToken)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, userID.String(), body["user_id"])
	})

	t.Run("missing header is 401", func(t *testing.T) {
		w := authGet(newAuthTestEngine(jwtService, nil, false), "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		w := authGet(newAuthTestEngine(jwtService, nil, false), "not-a-jwt")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_INVALID", errorCode(t, w))
	})

	t.Run("refresh token is rejected on an access endpoint", func(t *testing.T) {
		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: userID,
			Email:  "user@example.com",
			Role:   "user",
		})
		require.NoError(t, err)

		w := authGet(newAuthTestEngine(jwtService, nil, false), pair.RefreshToken)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_INVALID", errorCode(t, w))
	})

	t.Run("revoked token is 401", func(t *testing.T) {
		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: userID,
			Email:  "user@example.com",
			Role:   "user",
		})
		require.NoError(t, err)

		claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		blacklist := auth.NewInMemoryTokenBlacklist()
		require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Minute))

		w := authGet(newAuthTestEngine(jwtService, blacklist, false), pair.AccessToken)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_REVOKED", errorCode(t, w))
	})

	t.Run("expired token is 401 with TOKEN_EXPIRED", func(t *testing.T) {
		expired := auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-at-least-32-characters!!",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: 24 * time.Hour,
			Issuer:                 "storefront-test",
		})
		pair, err := expired.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: userID,
			Email:  "user@example.com",
			Role:   "user",
		})
		require.NoError(t, err)

		w := authGet(newAuthTestEngine(expired, nil, false), pair.AccessToken)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, w))
	})
}

func TestRequireAdmin(t *testing.T) {
	jwtService := newTestJWTService()

	t.Run("admin role passes", func(t *testing.T) {
		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: uuid.New(),
			Email:  "admin@example.com",
			Role:   "admin",
		})
		require.NoError(t, err)

		w := authGet(newAuthTestEngine(jwtService, nil, true), pair.AccessToken)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("user role is 403", func(t *testing.T) {
		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: uuid.New(),
			Email:  "user@example.com",
			Role:   "user",
		})
		require.NoError(t, err)

		w := authGet(newAuthTestEngine(jwtService, nil, true), pair.AccessToken)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", errorCode(t, w))
	})
}

func TestGetClaims_WrongType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(ClaimsKey, "not-claims")

	assert.Nil(t, GetClaims(c))
	_, ok := GetUserID(c)
	assert.False(t, ok)
}

func TestAuthErrorCode(t *testing.T) {
	code, _ := authErrorCode(auth.ErrExpiredToken)
	assert.Equal(t, "TOKEN_EXPIRED", code)

	code, _ = authErrorCode(auth.ErrInvalidTokenType)
	assert.Equal(t, "TOKEN_INVALID", code)

	code, _ = authErrorCode(jwt.ErrTokenMalformed)
	assert.Equal(t, "TOKEN_INVALID", code)
}
