package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/societyhub/backend/internal/domain/identity"
	"github.com/societyhub/backend/internal/infrastructure/auth"
	"github.com/societyhub/backend/internal/infrastructure/logger"
	"github.com/societyhub/backend/internal/interfaces/http/dto"
)

// Context keys set by the auth middleware
const (
	ClaimsKey     = "jwt_claims"
	ActorKey      = "actor"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for the auth middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// Blacklist is optional. When set, revoked tokens and invalidated user
	// sessions are rejected.
	Blacklist auth.TokenBlacklist
	Logger    *zap.Logger
}

// JWTAuth creates authentication middleware that validates the bearer token,
// checks it against the blacklist, and stores the resulting actor in the
// request context.
func JWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			abortUnauthorized(c, cfg.Logger, dto.ErrCodeTokenInvalid, "Authentication required")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			code, message := classifyTokenError(err)
			abortUnauthorized(c, cfg.Logger, code, message)
			return
		}

		if cfg.Blacklist != nil && !tokenStillValid(c, cfg, claims) {
			abortUnauthorized(c, cfg.Logger, dto.ErrCodeTokenInvalid, "Token has been revoked")
			return
		}

		actor, err := claims.Actor()
		if err != nil {
			abortUnauthorized(c, cfg.Logger, dto.ErrCodeTokenInvalid, "Invalid token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(ActorKey, actor)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithUserID(ctx, log, claims.UserID)
		if claims.SocietyID != "" {
			ctx, _ = logger.WithSocietyID(ctx, log, claims.SocietyID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// tokenStillValid checks the token against JTI and per-user revocation.
// Blacklist lookup failures fail open to keep the API available when redis
// is down.
func tokenStillValid(c *gin.Context, cfg JWTMiddlewareConfig, claims *auth.Claims) bool {
	ctx := c.Request.Context()

	if claims.ID != "" {
		blacklisted, err := cfg.Blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("Failed to check token blacklist",
					zap.String("jti", claims.ID), zap.Error(err))
			}
		} else if blacklisted {
			return false
		}
	}

	if claims.UserID != "" {
		invalidated, err := cfg.Blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("Failed to check user token invalidation",
					zap.String("user_id", claims.UserID), zap.Error(err))
			}
		} else if invalidated {
			return false
		}
	}

	return true
}

func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" {
		return "", auth.ErrInvalidToken
	}
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", auth.ErrInvalidToken
	}
	token := strings.TrimPrefix(header, BearerPrefix)
	if token == "" {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}

func classifyTokenError(err error) (code, message string) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return dto.ErrCodeTokenInvalid, "Token is not yet valid"
	default:
		return dto.ErrCodeTokenInvalid, "Invalid token"
	}
}

func abortUnauthorized(c *gin.Context, log *zap.Logger, code, message string) {
	if log != nil {
		log.Warn("Authentication failed",
			zap.String("code", code),
			zap.String("path", c.Request.URL.Path),
		)
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		code, message, c.GetString("request_id")))
}

// GetClaims retrieves the validated claims from the request context
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(ClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetActor retrieves the authenticated actor from the request context
func GetActor(c *gin.Context) (identity.Actor, bool) {
	if v, exists := c.Get(ActorKey); exists {
		if actor, ok := v.(identity.Actor); ok {
			return actor, true
		}
	}
	return identity.Actor{}, false
}
