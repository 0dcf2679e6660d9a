package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guillomef06/activity-tracker/internal/auth"
	"github.com/guillomef06/activity-tracker/internal/models"
)

const (
	authUserKey     = "auth_user_id"
	authAllianceKey = "auth_alliance_id"
	authUsernameKey = "auth_username"
	authRoleKey     = "auth_role"
)

// RequireAuth validates the JWT token and sets the user context
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format. Use: Bearer <token>"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			if err == auth.ErrExpiredToken {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(authUserKey, claims.UserID)
		if claims.AllianceID != nil {
			c.Set(authAllianceKey, *claims.AllianceID)
		}
		c.Set(authUsernameKey, claims.Username)
		c.Set(authRoleKey, claims.Role)

		c.Next()
	}
}

// RequireAlliance ensures the authenticated user belongs to an alliance
func RequireAlliance() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, exists := c.Get(authAllianceKey)
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Alliance membership required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin ensures the authenticated user is an alliance admin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(authRoleKey)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		r := role.(string)
		if r != models.RoleAdmin && r != models.RoleSuperAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireSuperAdmin ensures the authenticated user is a super admin
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(authRoleKey)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if role.(string) != models.RoleSuperAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Super admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetAuthUserID retrieves the authenticated user ID from context
func GetAuthUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(authUserKey)
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

// GetAuthAllianceID retrieves the authenticated user's alliance ID from context
func GetAuthAllianceID(c *gin.Context) (uuid.UUID, bool) {
	allianceID, exists := c.Get(authAllianceKey)
	if !exists {
		return uuid.Nil, false
	}
	return allianceID.(uuid.UUID), true
}

// GetAuthUsername retrieves the authenticated username from context
func GetAuthUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(authUsernameKey)
	if !exists {
		return "", false
	}
	return username.(string), true
}

// GetAuthRole retrieves the authenticated user's role from context
func GetAuthRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(authRoleKey)
	if !exists {
		return "", false
	}
	return role.(string), true
}
