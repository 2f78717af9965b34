package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"horizon/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// FirebaseAuthMiddleware verifies the caller's Firebase ID token and sets
// "userID" in the gin context. Verified tokens are cached in Redis by token
// hash so repeated calls within the TTL skip the verification round trip.
func FirebaseAuthMiddleware(authClient *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Recover from unexpected panics.
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		ctx := context.Background()

		// Retrieve token from header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		cacheKey := utils.AuthCachePrefix + utils.HashToken(tokenString)

		// Get the dedicated auth cache client.
		authCache := utils.GetAuthCacheClient()
		cacheEnabled := true
		if authCache == nil {
			// Instead of aborting, log and treat it as a cache miss.
			log.Printf("WARNING: Auth cache client not available. Falling back to token verification.")
			cacheEnabled = false
		}

		// Attempt to resolve the token from Redis if cache is enabled.
		if cacheEnabled {
			cachedUID, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil && cachedUID != "" {
				// Refresh TTL and continue.
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				c.Set("userID", cachedUID)
				c.Next()
				return
			} else if err != nil && err != redis.Nil {
				log.Printf("WARNING: Error retrieving auth cache key: %v. Falling back to token verification.", err)
			}
		}

		// Cache miss: verify against Firebase.
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		token, err := authClient.VerifyIDToken(verifyCtx, tokenString)
		if err != nil || token.UID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication error",
				"code":  0,
			})
			return
		}

		if cacheEnabled {
			_ = authCache.Set(ctx, cacheKey, token.UID, utils.AuthCacheTTL).Err()
		}

		c.Set("userID", token.UID)
		c.Next()
	}
}

// CallerUID returns the authenticated user id set by FirebaseAuthMiddleware.
func CallerUID(c *gin.Context) string {
	uid, _ := c.Get("userID")
	s, _ := uid.(string)
	return s
}
