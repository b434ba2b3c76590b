package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxClaimsKey = "auth_claims"

var (
	errNoToken      = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid token")
)

// AuthMiddleware guards a route group with bearer-token auth. When a repo
// is given the token's version is checked against the user row, so tokens
// revoked by logout or password change stop working immediately.
func AuthMiddleware(tokens TokenService, repo *Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(c, tokens, repo)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

func authenticate(c *gin.Context, tokens TokenService, repo *Repo) (*Claims, error) {
	raw, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		return nil, errNoToken
	}

	claims, err := tokens.Parse(raw)
	if err != nil {
		return nil, errInvalidToken
	}

	if repo != nil {
		version, err := repo.GetTokenVersion(c.Request.Context(), claims.UserID)
		if err != nil || version != claims.TokenVersion {
			return nil, errInvalidToken
		}
	}
	return claims, nil
}

func bearerToken(header string) (string, bool) {
	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	raw := strings.TrimSpace(rest)
	return raw, raw != ""
}

func MustGetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
