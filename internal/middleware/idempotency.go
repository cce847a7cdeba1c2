package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyCacheKeyCtx = "idempotency_cache_key"
	idempotencyLockKeyCtx  = "idempotency_lock_key"
	idempotencyTTL         = 24 * time.Hour
	idempotencyLockTTL     = 30 * time.Second
)

// Idempotency makes POSTs carrying an Idempotency-Key replay-safe: a replay
// of a finished request answers from cache, and a replay racing the original
// is rejected while the lock is held.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cachedRes any
			_ = json.Unmarshal([]byte(val), &cachedRes)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"ok": true, "data": cachedRes, "replayed": true})
			return
		}

		// SetNX expires on its own so a crashed handler cannot wedge the key.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", idempotencyLockTTL).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "This request is already being processed, please wait.",
			})
			return
		}

		c.Set(idempotencyCacheKeyCtx, cacheKey)
		c.Set(idempotencyLockKeyCtx, lockKey)

		c.Next()
	}
}

// CompleteIdempotency records a successful result for replay and releases the
// in-flight lock. Handlers call it after a mutation commits.
func CompleteIdempotency(c *gin.Context, rdb *redis.Client, result any) {
	cacheKey := c.GetString(idempotencyCacheKeyCtx)
	lockKey := c.GetString(idempotencyLockKeyCtx)
	if cacheKey == "" || rdb == nil {
		return
	}

	if encoded, err := json.Marshal(result); err == nil {
		rdb.Set(c.Request.Context(), cacheKey, encoded, idempotencyTTL)
	}
	if lockKey != "" {
		rdb.Del(c.Request.Context(), lockKey)
	}
}
