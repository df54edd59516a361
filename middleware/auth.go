package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"splitsight-bff/utils"
)

var (
	ErrMissingToken = errors.New("authorization token required")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims are the relevant claims of the ledger-issued session token. This
// service never issues tokens; it only reads who the viewer is and forwards
// the raw token upstream.
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// ViewerRequired validates the bearer token against the shared ledger secret
// and stores the viewer's identity and the raw token on the request context.
func ViewerRequired(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, ErrMissingToken.Error())
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Unauthorized(c, ErrInvalidToken.Error())
			c.Abort()
			return
		}
		tokenString := parts[1]

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			utils.Unauthorized(c, ErrInvalidToken.Error())
			c.Abort()
			return
		}

		viewerID, err := uuid.Parse(claims.UserID)
		if err != nil {
			utils.Unauthorized(c, ErrInvalidToken.Error())
			c.Abort()
			return
		}

		c.Set("user_id", viewerID)
		c.Set("user_name", claims.Name)
		c.Set("token", tokenString)
		c.Next()
	}
}
