package server

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"zephvault-backend/internal/assistant"
	"zephvault-backend/internal/documents"
	"zephvault-backend/internal/notices"
	"zephvault-backend/internal/properties"
	"zephvault-backend/internal/shared/config"
	"zephvault-backend/internal/shared/metrics"
	"zephvault-backend/internal/shared/server/middleware"
	"zephvault-backend/internal/shared/server/respond"
	"zephvault-backend/internal/tenants"
	"zephvault-backend/internal/units"
)

const aiRateGroup = "AI"

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config     config.Config
	DB         *sql.DB
	Documents  *documents.Handler
	Assistant  *assistant.Handler
	Properties *properties.Handler
	Units      *units.Handler
	Tenants    *tenants.Handler
	Notices    *notices.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				aiRateGroup: {Rate: 2, Burst: 5},
			},
			GroupFor: func(c *gin.Context) string {
				if strings.HasPrefix(c.Request.URL.Path, "/api/ai-") {
					return aiRateGroup
				}
				return ""
			},
		}),
	)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		status := gin.H{"ok": true}
		if deps.DB != nil {
			if err := deps.DB.PingContext(c.Request.Context()); err != nil {
				respond.JSON(c, http.StatusServiceUnavailable, gin.H{"ok": false, "database": "down"})
				return
			}
			status["database"] = "up"
		}
		respond.JSON(c, http.StatusOK, status)
	})
	r.GET("/metrics", metrics.Handler())

	if deps.Documents != nil {
		deps.Documents.RegisterRoutes(api)
	}
	if deps.Assistant != nil {
		deps.Assistant.RegisterRoutes(api)
	}
	if deps.Properties != nil {
		deps.Properties.RegisterRoutes(api)
	}
	if deps.Units != nil {
		deps.Units.RegisterRoutes(api)
	}
	if deps.Tenants != nil {
		deps.Tenants.RegisterRoutes(api)
	}
	if deps.Notices != nil {
		deps.Notices.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
