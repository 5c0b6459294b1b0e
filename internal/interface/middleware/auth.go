package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/creamio/backoffice-api/internal/domain/entity"
	"github.com/creamio/backoffice-api/internal/domain/repository"
	"github.com/creamio/backoffice-api/pkg/apierror"
	"github.com/creamio/backoffice-api/pkg/helpers"
)

const sessionCacheCap = time.Hour

// Auth authenticates requests by opaque bearer token. The token is resolved to
// its owning user, whose minimal session projection is cached in Redis for the
// token's remaining validity. tokenTTL of zero means tokens never expire.
// Failures are raised as the standard 401 envelope.
func Auth(users repository.UserRepository, tokens repository.TokenRepository, rdb *redis.Client, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		hash := bearerToken(c)
		if hash == "" {
			abortUnauthorized(c)
			return
		}
		ctx := c.Request.Context()
		key := "api:session:" + hash

		var sess entity.Session
		if rdb != nil {
			if ok, err := helpers.RedisGetJSON(ctx, rdb, key, &sess); err == nil && ok {
				attachSession(c, sess)
				return
			}
		}

		token, err := tokens.FindByHash(ctx, hash)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		remaining := sessionCacheCap
		if tokenTTL > 0 {
			remaining = tokenTTL - time.Since(token.CreatedAt)
			if remaining <= 0 {
				abortUnauthorized(c)
				return
			}
			if remaining > sessionCacheCap {
				remaining = sessionCacheCap
			}
		}
		u, err := users.FindByID(ctx, token.UserID)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		sess = u.Session()
		if rdb != nil {
			_ = helpers.RedisSetJSON(ctx, rdb, key, sess, remaining)
		}
		attachSession(c, sess)
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func attachSession(c *gin.Context, sess entity.Session) {
	c.Set("userID", sess.ID.String())
	c.Set("username", sess.Username)
	c.Next()
}

func abortUnauthorized(c *gin.Context) {
	_ = c.Error(apierror.New(http.StatusUnauthorized, apierror.UnauthorizedAccess))
	c.Abort()
}
