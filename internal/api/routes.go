package api

import (
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/puttputt/internal/api/handlers"
	"github.com/playmatatu/puttputt/internal/auth"
	"github.com/playmatatu/puttputt/internal/config"
	"github.com/playmatatu/puttputt/internal/course"
	"github.com/playmatatu/puttputt/internal/logger"
	"github.com/playmatatu/puttputt/internal/middleware"
	"github.com/playmatatu/puttputt/internal/ws"
)

// Deps are the services the routes dispatch to.
type Deps struct {
	Config  *config.Config
	Catalog *course.Catalog
	Rounds  handlers.Rounds
	Issuer  *auth.Issuer
	Socket  *ws.Handler
	Log     *logger.Logger
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, d Deps) {
	router.Use(middleware.CORSMiddleware(d.Config, d.Log))

	if d.Config.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Next()
		})
	}

	roundAuth := middleware.RoundAuth(d.Issuer)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		courses := v1.Group("/courses")
		{
			courses.GET("", handlers.ListCourses(d.Catalog))
			courses.GET("/:course/holes/:hole", handlers.GetHole(d.Catalog))
		}

		rounds := v1.Group("/rounds")
		{
			rounds.POST("", handlers.StartRound(d.Rounds, d.Issuer, d.Log))
			rounds.GET("/:id", handlers.GetRound(d.Rounds))
			rounds.GET("/:id/shots", handlers.ListShots(d.Rounds))
			rounds.POST("/:id/hit", roundAuth, handlers.HitRound(d.Rounds))
			rounds.GET("/:id/ws", middleware.WebSocketCORSCheck(d.Config), roundAuth, d.Socket.ServeRound)
		}
	}
}
