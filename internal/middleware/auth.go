package middleware

import (
	"errors"
	"exam_quiz_backend/internal/config"
	"exam_quiz_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

const callerIDKey = "callerID"

// IdentityResolver abstracts how the caller's user id is obtained. The
// statistics core is identity-agnostic; it only ever sees the resolved id.
type IdentityResolver interface {
	ResolveCallerID(c *gin.Context) (string, error)
}

// ClaimResolver reads the sub claim of a bearer token verified with a shared
// secret. Token issuance and sessions live upstream of this service.
type ClaimResolver struct {
	Secret string
}

func (r *ClaimResolver) ResolveCallerID(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errors.New("missing Authorization header")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	return util.ParseSubject(tokenString, r.Secret)
}

// StaticResolver returns one fixed identity for every request; used in
// environments without a real identity provider.
type StaticResolver struct {
	UserID string
}

func (r *StaticResolver) ResolveCallerID(*gin.Context) (string, error) {
	return r.UserID, nil
}

// NewIdentityResolver picks the resolver variant from config.
func NewIdentityResolver(cfg *config.Config) IdentityResolver {
	if cfg.Auth.Mode == "claim" {
		return &ClaimResolver{Secret: cfg.Auth.Secret}
	}
	userID := cfg.Auth.MockUserID
	if userID == "" {
		userID = "mock-user-id"
	}
	return &StaticResolver{UserID: userID}
}

// Identity resolves the caller and stores the id in the request context.
func Identity(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := resolver.ResolveCallerID(c)
		if err != nil || userID == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Set(callerIDKey, userID)
		c.Next()
	}
}

// CallerID returns the resolved user id, or "" outside the Identity
// middleware.
func CallerID(c *gin.Context) string {
	id, _ := c.Get(callerIDKey)
	userID, _ := id.(string)
	return userID
}
