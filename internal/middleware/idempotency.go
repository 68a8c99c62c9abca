package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gopal-gautam/empms-backend/internal/auth"
	"github.com/gopal-gautam/empms-backend/internal/shared/apperror"
	"github.com/gopal-gautam/empms-backend/internal/shared/contextutil"
	"github.com/gopal-gautam/empms-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"

	idempotencyLockTTL   = 30 * time.Second
	idempotencyResultTTL = 24 * time.Hour
)

var ErrRequestInProgress = apperror.New(
	apperror.CodeConflict,
	"A request with this idempotency key is still being processed",
	http.StatusConflict,
)

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func IdempotencyCacheKey(route, subject, key string) string {
	return fmt.Sprintf("idemp:%s:%s:%s", route, subject, key)
}

// Idempotency replays the stored 2xx response of a POST that carried the
// same Idempotency-Key for the same caller and route. A concurrent duplicate
// gets 409 while the first request holds the lock. Redis failures fall back
// to plain execution.
func Idempotency(rdb redis.Cmdable) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(HeaderIdempotencyKey)
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		logger := contextutil.GetLogger(ctx, nil)

		subject := "anonymous"
		if identity, ok := auth.IdentityFromGin(c); ok {
			subject = identity.Subject
		}
		cacheKey := IdempotencyCacheKey(c.FullPath(), subject, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Result()
		switch {
		case err == nil:
			var cached cachedResponse
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				c.Header(HeaderReplayed, "true")
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
			logger.Warn("idempotency: discarding unreadable cached response", zap.String("key", cacheKey))
		case !errors.Is(err, redis.Nil):
			logger.Warn("idempotency: cache lookup failed", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			logger.Warn("idempotency: lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.Abort(c, ErrRequestInProgress)
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder

		c.Next()

		status := recorder.Status()
		if status >= 200 && status < 300 {
			payload, err := json.Marshal(cachedResponse{Status: status, Body: recorder.body.Bytes()})
			if err == nil {
				err = rdb.Set(ctx, cacheKey, string(payload), idempotencyResultTTL).Err()
			}
			if err != nil {
				logger.Warn("idempotency: storing response failed", zap.Error(err))
			}
		}
		if err := rdb.Del(ctx, lockKey).Err(); err != nil {
			logger.Warn("idempotency: unlock failed", zap.Error(err))
		}
	}
}

// IdempotencyIfEnabled is Idempotency when a Redis client is configured and a
// pass-through otherwise.
func IdempotencyIfEnabled(rdb *redis.Client) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return Idempotency(rdb)
}
