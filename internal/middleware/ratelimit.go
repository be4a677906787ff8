package middleware

import (
	"net/http"
	"strconv"
	"time"

	"earnhub_backend/pkg/auth"
	"earnhub_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// atomic INCR + set EXPIRE when the key is new
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimit caps requests per identity subject within the window. Fails
// open when redis is unavailable; throttling is protection, not policy.
func RateLimit(rdb *redis.Client, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		key := "rl:ip:" + c.ClientIP()
		if identity, ok := auth.IdentityFromContext(c); ok {
			key = "rl:subject:" + identity.SubjectID
		}

		count, err := incrExpireScript.Run(
			c.Request.Context(), rdb, []string{key}, window.Milliseconds(),
		).Int64()
		if err != nil {
			log.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		if count > int64(max) {
			ttl, _ := rdb.TTL(c.Request.Context(), key).Result()
			if ttl > 0 {
				c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
