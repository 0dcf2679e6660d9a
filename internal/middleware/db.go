package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbKey = "db"

// Database stores the shared connection pool in the request context so
// handlers can stay plain functions.
func Database(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, pool)
		c.Next()
	}
}

// GetDB retrieves the database connection pool from context
func GetDB(c *gin.Context) (*pgxpool.Pool, bool) {
	val, exists := c.Get(dbKey)
	if !exists {
		return nil, false
	}
	pool, ok := val.(*pgxpool.Pool)
	return pool, ok
}

// RequireDB aborts with a 500 when no pool is attached. Used in route groups
// so individual handlers can assume GetDB succeeds.
func RequireDB() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetDB(c); !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
			c.Abort()
			return
		}
		c.Next()
	}
}
