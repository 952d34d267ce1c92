package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/internal/container"
	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
)

// protected returns a group behind the token gate and the per-user limiter.
func protected(rg *gin.RouterGroup, c *container.Container) *gin.RouterGroup {
	g := rg.Group("/")
	g.Use(
		middleware.Auth(c.JWT, c.Logger),
		middleware.RateLimit(c.Redis, c.Config.ProtectedRateLimit, time.Minute, middleware.KeyByUserID(), nil),
	)
	return g
}
