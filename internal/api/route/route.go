package route

import (
	"net/http"

	"github.com/bassista/go_observe/internal/api/middleware"
	"github.com/bassista/go_observe/internal/app"
	"github.com/bassista/go_observe/internal/logger"
	"github.com/gin-gonic/gin"
)

// APIPrefix is the root of the versioned API.
const APIPrefix = "/api/v1"

// SetupRoutes builds the engine serving the note and user endpoints.
func SetupRoutes(appCtx *app.App) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.HoneybadgerMiddleware(middleware.HoneybadgerConfig{
		APIKey: appCtx.Config.Misc.HoneybadgerAPIKey,
		Env:    appCtx.Config.Misc.Environment,
	}, logger.WithComponent("honeybadger")))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(appCtx.Config.Server.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "UP",
		})
	})

	api := r.Group(APIPrefix)
	api.Use(middleware.RequestTimeout(appCtx.Config.Server.RequestTimeout))

	NewNoteRouter(api, appCtx.Cache)
	NewUserRouter(api, appCtx.Cache)

	return r
}
