package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/internal/container"
	handlers "github.com/oksasatya/go-task-tracker/internal/interface/http"
)

type TaskModule struct {
	Handler *handlers.TaskHandler
	C       *container.Container
}

func NewTaskModule(h *handlers.TaskHandler, c *container.Container) *TaskModule {
	return &TaskModule{Handler: h, C: c}
}

func (m *TaskModule) Name() string { return "tasks" }

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.C)
	{
		auth.GET("/tasks", m.Handler.List)
		auth.POST("/tasks", m.Handler.Create)
		auth.PUT("/tasks", m.Handler.Update)
		auth.PUT("/tasks/check-change", m.Handler.CheckChange)
		auth.DELETE("/tasks", m.Handler.Delete)
		auth.GET("/tasks/search", m.Handler.Search)
	}
}
