package middleware

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/damoang/angple-press/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// ResponseCacheConfig configures ResponseCache
type ResponseCacheConfig struct {
	TTL       time.Duration
	KeyPrefix string
}

// TagsCacheConfig is used for the public tag listing. Tags only change
// through the seed command, so a short TTL is enough.
func TagsCacheConfig() ResponseCacheConfig {
	return ResponseCacheConfig{
		TTL:       time.Minute,
		KeyPrefix: "press:http:tags:",
	}
}

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

// ResponseCache serves anonymous GET responses from Redis. Requests that
// carry credentials bypass it. A nil client or a Redis error falls through
// to the handler.
func ResponseCache(redisClient *redis.Client, cfg ResponseCacheConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil || c.Request.Method != http.MethodGet || c.GetHeader("Authorization") != "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := cfg.KeyPrefix + responseCacheKey(c.Request.URL.Path, c.Request.URL.RawQuery)

		if val, err := redisClient.Get(ctx, key).Bytes(); err == nil {
			var cached cachedResponse
			if json.Unmarshal(val, &cached) == nil {
				c.Header("X-Cache", "HIT")
				c.Data(cached.Status, cached.ContentType, []byte(cached.Body))
				c.Abort()
				return
			}
		}

		w := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = w
		c.Header("X-Cache", "MISS")

		c.Next()

		status := w.Status()
		if status < 200 || status >= 300 {
			return
		}
		data, err := json.Marshal(cachedResponse{
			Status:      status,
			ContentType: w.Header().Get("Content-Type"),
			Body:        string(w.body),
		})
		if err != nil {
			return
		}
		if err := redisClient.Set(ctx, key, data, cfg.TTL).Err(); err != nil {
			logger.GetLogger().Debug().Err(err).Str("key", key).Msg("response cache write failed")
		}
	}
}

func responseCacheKey(path, query string) string {
	raw := path
	if query != "" {
		raw += "?" + query
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte(raw)))
}

// bodyRecorder keeps a copy of the response body
type bodyRecorder struct {
	gin.ResponseWriter
	body []byte
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body = append(w.body, s...)
	return w.ResponseWriter.WriteString(s)
}
