package middleware

import (
	"errors"
	"strings"

	"github.com/damoang/angple-press/internal/common"
	"github.com/damoang/angple-press/internal/domain"
	"github.com/damoang/angple-press/pkg/jwt"
	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// TokenVerifier verifies a bearer token. *jwt.Manager implements it.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*jwt.Claims, error)
}

// JWTAuth JWT authentication middleware. A verified token becomes a
// domain.Actor in the gin context; anything else is 401.
func JWTAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorization 헤더 추출
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, 401, "Missing authorization header")
			c.Abort()
			return
		}

		// 2. Bearer 토큰 파싱
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			common.ErrorResponse(c, 401, "Invalid authorization header format")
			c.Abort()
			return
		}

		// 3. 토큰 검증
		claims, err := verifier.VerifyToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, 401, "Token expired")
			} else {
				common.ErrorResponse(c, 401, "Invalid token")
			}
			c.Abort()
			return
		}

		role, ok := domain.ParseRole(claims.Role)
		if !ok {
			common.ErrorResponse(c, 401, "Invalid token")
			c.Abort()
			return
		}

		// 4. 컨텍스트에 저장
		SetActor(c, domain.Actor{ID: claims.UserID, Email: claims.Email, Role: role})
		c.Next()
	}
}

// GetActor returns the authenticated actor, or the zero Actor
func GetActor(c *gin.Context) domain.Actor {
	v, exists := c.Get(actorKey)
	if !exists {
		return domain.Actor{}
	}
	if actor, ok := v.(domain.Actor); ok {
		return actor
	}
	return domain.Actor{}
}

// GetUserID extracts the actor id from context
func GetUserID(c *gin.Context) string {
	return GetActor(c).ID
}

// SetActor stores actor in the context
func SetActor(c *gin.Context, actor domain.Actor) {
	c.Set(actorKey, actor)
}
