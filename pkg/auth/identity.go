package auth

import (
	"errors"
	"net/http"
	"strings"

	"earnhub_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidAssertion covers a missing, malformed, expired or badly signed
// identity assertion. Never retried here; the caller gets a 401.
var ErrInvalidAssertion = errors.New("invalid identity assertion")

// Identity is the verified claim set of the external identity provider.
type Identity struct {
	SubjectID   string
	Email       string
	DisplayName string
}

type identityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

type IdentityAuth struct {
	secret    []byte
	debugMode bool
}

func NewIdentityAuth(secret string, debugMode bool) *IdentityAuth {
	return &IdentityAuth{
		secret:    []byte(secret),
		debugMode: debugMode,
	}
}

func (a *IdentityAuth) IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Info("missing authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Info("invalid authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		assertion := strings.TrimPrefix(authHeader, "Bearer ")

		identity, err := a.VerifyAssertion(assertion)
		if err != nil {
			log.Info("invalid identity assertion", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid identity assertion"})
			return
		}

		c.Set("identity", identity)
		c.Next()
	}
}

// VerifyAssertion checks the provider signature and extracts the subject,
// verified email and optional display name. In debug mode the signature
// check is skipped so local clients can mint their own tokens.
func (a *IdentityAuth) VerifyAssertion(assertion string) (*Identity, error) {
	claims := &identityClaims{}

	if a.debugMode {
		parser := jwt.NewParser()
		if _, _, err := parser.ParseUnverified(assertion, claims); err != nil {
			return nil, ErrInvalidAssertion
		}
		return claims.toIdentity()
	}

	token, err := jwt.ParseWithClaims(assertion, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidAssertion
	}

	return claims.toIdentity()
}

func (c *identityClaims) toIdentity() (*Identity, error) {
	if c.Subject == "" || c.Email == "" {
		return nil, ErrInvalidAssertion
	}

	return &Identity{
		SubjectID:   c.Subject,
		Email:       c.Email,
		DisplayName: c.Name,
	}, nil
}

// IdentityFromContext returns the identity stored by IdentityMiddleware.
func IdentityFromContext(c *gin.Context) (*Identity, bool) {
	v, exists := c.Get("identity")
	if !exists {
		return nil, false
	}
	identity, ok := v.(*Identity)
	return identity, ok
}
