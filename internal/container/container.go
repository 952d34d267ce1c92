package container

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/config"
	"github.com/oksasatya/go-task-tracker/internal/application"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

// Container holds the ready-made components shared by every module. It is
// built once in main before the server starts and passed down explicitly.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Users repository.UserRepository
	Tasks repository.TaskRepository

	Hasher *helpers.PasswordHasher
	JWT    *helpers.JWTManager

	// Optional collaborators. nil disables rate limiting, welcome emails and
	// search respectively.
	Redis     *redis.Client
	Jobs      application.JobPublisher
	TaskIndex application.TaskIndexer
}

// Validate reports the first required component that is missing.
func (c *Container) Validate() error {
	switch {
	case c == nil:
		return errors.New("container: nil")
	case c.Config == nil:
		return errors.New("container: config is required")
	case c.Logger == nil:
		return errors.New("container: logger is required")
	case c.Users == nil:
		return errors.New("container: user repository is required")
	case c.Tasks == nil:
		return errors.New("container: task repository is required")
	case c.Hasher == nil:
		return errors.New("container: password hasher is required")
	case c.JWT == nil:
		return errors.New("container: jwt manager is required")
	}
	return nil
}

func (c *Container) AuthService() *application.AuthService {
	return application.NewAuthService(c.Users, c.Hasher, c.JWT, c.Jobs, c.Config, c.Logger)
}

func (c *Container) UserService() *application.UserService {
	return application.NewUserService(c.Users, c.Hasher, c.Logger)
}

func (c *Container) TaskService() *application.TaskService {
	return application.NewTaskService(c.Tasks, c.TaskIndex, c.Logger)
}
