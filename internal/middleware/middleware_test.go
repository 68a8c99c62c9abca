package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gopal-gautam/empms-backend/internal/auth"
	"github.com/gopal-gautam/empms-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testSecret = "middleware-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func withIdentity(subject string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.SetIdentity(c, &auth.Identity{Subject: subject, Roles: []string{"admin"}})
		c.Next()
	}
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return raw
}

func TestAuthenticate(t *testing.T) {
	newRouter := func() *gin.Engine {
		r := gin.New()
		r.Use(ContextLogger(zap.NewNop()), Authenticate(auth.NewHMACVerifier(testSecret, "")))
		r.GET("/whoami", func(c *gin.Context) {
			identity, ok := auth.IdentityFromGin(c)
			if !ok {
				c.String(http.StatusOK, "anonymous")
				return
			}
			c.String(http.StatusOK, identity.Subject)
		})
		return r
	}

	t.Run("NoToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)

		newRouter().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "anonymous", rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
	})

	t.Run("ValidToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
			"sub": "auth0|42",
			"exp": time.Now().Add(time.Hour).Unix(),
		}))

		newRouter().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "auth0|42", rec.Body.String())
	})

	t.Run("InvalidToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")

		newRouter().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"UNAUTHORIZED"`)
	})

	t.Run("RequestIDPropagated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(HeaderRequestID, "rid-1")

		newRouter().ServeHTTP(rec, req)

		assert.Equal(t, "rid-1", rec.Header().Get(HeaderRequestID))
	})
}

func TestRateLimitByUser(t *testing.T) {
	r := gin.New()
	r.Use(withIdentity("u1"), RateLimitByUser(1, 2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestKeyedRateLimiter_SeparateKeys(t *testing.T) {
	l := NewKeyedRateLimiter(1, 1)

	assert.True(t, l.GetLimiter("a").Allow())
	assert.False(t, l.GetLimiter("a").Allow())
	assert.True(t, l.GetLimiter("b").Allow())
}

func TestIdempotency(t *testing.T) {
	cacheKey := IdempotencyCacheKey("/things", "u1", "k1")
	lockKey := cacheKey + ":lock"

	newRouter := func(rdb redis.Cmdable, calls *int) *gin.Engine {
		r := gin.New()
		r.POST("/things", withIdentity("u1"), Idempotency(rdb), func(c *gin.Context) {
			*calls++
			response.Success(c, http.StatusCreated, gin.H{"id": "1"})
		})
		return r
	}

	post := func(r *gin.Engine, key string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/things", nil)
		if key != "" {
			req.Header.Set(HeaderIdempotencyKey, key)
		}
		r.ServeHTTP(rec, req)
		return rec
	}

	t.Run("FirstRequestStoresResponse", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		calls := 0

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(true)
		mock.ExpectSet(cacheKey, `{"status":201,"body":{"ok":true,"data":{"id":"1"}}}`, idempotencyResultTTL).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		rec := post(newRouter(db, &calls), "k1")

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReplaysStoredResponse", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		calls := 0

		mock.ExpectGet(cacheKey).SetVal(`{"status":201,"body":{"ok":true,"data":{"id":"1"}}}`)

		rec := post(newRouter(db, &calls), "k1")

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, 0, calls)
		assert.Equal(t, "true", rec.Header().Get(HeaderReplayed))
		assert.JSONEq(t, `{"ok":true,"data":{"id":"1"}}`, rec.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConcurrentDuplicateRejected", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		calls := 0

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(false)

		rec := post(newRouter(db, &calls), "k1")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, 0, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoKeyPassesThrough", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		calls := 0

		rec := post(newRouter(db, &calls), "")

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
