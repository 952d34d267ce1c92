package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/internal/container"
	handlers "github.com/oksasatya/go-task-tracker/internal/interface/http"
	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
)

// AuthModule exposes the two public routes: login and registration.
type AuthModule struct {
	Handler *handlers.AuthHandler
	C       *container.Container
}

func NewAuthModule(h *handlers.AuthHandler, c *container.Container) *AuthModule {
	return &AuthModule{Handler: h, C: c}
}

func (m *AuthModule) Name() string { return "auth" }

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(m.C.Redis, m.C.Config.LoginRateLimit, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/login", limiter, m.Handler.Login)
	rg.POST("/users", limiter, m.Handler.Register)
}
