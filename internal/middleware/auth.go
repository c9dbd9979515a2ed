package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the Gin context key holding the authenticated subject.
const UserIDKey = "user_id"

// Authenticate verifies an HS256 bearer token and stores its subject under
// UserIDKey. Tokens are minted by the identity provider; this service only
// verifies them.
//
// Behavior:
//   - Missing or malformed Authorization header: 401.
//   - Bad signature, unexpected algorithm, expired token or empty subject: 401.
//
// Usage:
//
//	favorites := v1.Group("/favorites", middleware.Authenticate(secret))
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			AbortWithError(c, http.StatusUnauthorized, "Authentication required", nil)
			return
		}

		subject, err := ParseSubject(raw, secret)
		if err != nil {
			AbortWithError(c, http.StatusUnauthorized, "Invalid token", err)
			return
		}

		c.Set(UserIDKey, subject)
		c.Next()
	}
}

// ParseSubject validates an HS256 token and returns its "sub" claim.
func ParseSubject(raw string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// UserID returns the subject set by Authenticate.
func UserID(c *gin.Context) string {
	return toString(c.Value(UserIDKey))
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
