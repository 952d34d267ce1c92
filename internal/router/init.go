package router

import (
	"github.com/oksasatya/go-task-tracker/internal/container"
	handlers "github.com/oksasatya/go-task-tracker/internal/interface/http"
	"github.com/oksasatya/go-task-tracker/internal/router/modules"
)

// InitModules builds every module from c and adds it to r. c must already
// pass Validate.
func InitModules(r *Registry, c *container.Container) {
	authHandler := handlers.NewAuthHandler(c.AuthService(), c.Logger)
	userHandler := handlers.NewUserHandler(c.UserService(), c.Logger)
	taskHandler := handlers.NewTaskHandler(c.TaskService(), c.Logger)

	r.Add(modules.NewAuthModule(authHandler, c))
	r.Add(modules.NewUserModule(userHandler, c))
	r.Add(modules.NewTaskModule(taskHandler, c))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c))
	}
}
