// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dev-Muhammad-Junaid/links-maker/controller"
	"github.com/Dev-Muhammad-Junaid/links-maker/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))
	router.Use(middleware.APIKeyAuth())

	api := router.Group("/api/v1")

	controllers.Access.RegisterRoutes(api)
	controllers.Account.RegisterRoutes(api)

	return router
}
