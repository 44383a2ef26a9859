package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP server with all routes configured.
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware, the web frontend is served from a different origin
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/api/news", handler.GetNews)
	r.GET("/api/stats", handler.GetStats)
	r.GET("/api/search", handler.Search)
	r.GET("/api/health", handler.GetHealth)

	// Frontend assets
	r.Static("/static", "./static")

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "War Monitor",
			"version":     handler.version,
			"description": "Aggregated conflict news with urgency and region classification",
			"endpoints": map[string]string{
				"news":   "/api/news?level=1,2,3&lang=he&region=north&q=...&limit=30",
				"stats":  "/api/stats",
				"search": "/api/search?q=...",
				"health": "/api/health",
			},
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
