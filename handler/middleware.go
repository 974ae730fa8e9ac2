package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"meeting-summarizer/dto"
	"net/http"
	"strings"
	"time"
)

const (
	ownerKey        = "owner_id"
	requestIDHeader = "X-Request-Id"
)

// RequestLogger puts a request-scoped zerolog logger into the request context.
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		logger := base.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// Auth resolves the owning identity of a request from an HS256 bearer token whose
// subject is the owner id. Without a secret every request belongs to defaultOwner.
func Auth(secret, defaultOwner string) gin.HandlerFunc {
	keyFunc := func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}

	return func(c *gin.Context) {
		owner := defaultOwner
		if secret != "" {
			token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
			if !found || token == "" {
				unauthorized(c, "missing bearer token")
				return
			}

			claims := &jwt.RegisteredClaims{}
			_, err := jwt.ParseWithClaims(token, claims, keyFunc, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil {
				unauthorized(c, err.Error())
				return
			}
			if claims.Subject == "" {
				unauthorized(c, "token has no subject")
				return
			}
			owner = claims.Subject
		}

		c.Set(ownerKey, owner)
		logger := zerolog.Ctx(c.Request.Context()).With().Str("owner_id", owner).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Next()
	}
}

func unauthorized(c *gin.Context, details string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized", Details: details})
}

func OwnerID(c *gin.Context) string {
	return c.GetString(ownerKey)
}
