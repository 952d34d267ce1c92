package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/internal/container"
	handlers "github.com/oksasatya/go-task-tracker/internal/interface/http"
)

// UserModule wires the protected user routes. The target user is named by
// the id header.
type UserModule struct {
	Handler *handlers.UserHandler
	C       *container.Container
}

func NewUserModule(h *handlers.UserHandler, c *container.Container) *UserModule {
	return &UserModule{Handler: h, C: c}
}

func (m *UserModule) Name() string { return "users" }

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.C)
	{
		auth.GET("/users", m.Handler.List)
		auth.PUT("/users", m.Handler.Update)
		auth.DELETE("/users", m.Handler.Delete)
	}
}
