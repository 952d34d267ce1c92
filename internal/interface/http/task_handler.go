package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/application"
	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-task-tracker/pkg/response"
)

type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger}
}

// createTaskRequest has no owner field; the owner is always the caller.
type createTaskRequest struct {
	Task        string `json:"task" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

type updateTaskRequest struct {
	Task        *string `json:"task" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.Svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toTaskViews(tasks))
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), application.CreateTaskInput{
		Title:       req.Task,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toTaskView(t))
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), middleware.UserID(c), id, application.UpdateTaskInput{
		Title:       req.Task,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toTaskView(t))
}

// CheckChange flips the completion flag of the task named by the id header.
func (h *TaskHandler) CheckChange(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}
	t, err := h.Svc.ToggleCompleted(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toTaskView(t))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusOK, "task deleted")
}

func (h *TaskHandler) Search(c *gin.Context) {
	tasks, err := h.Svc.Search(c.Request.Context(), middleware.UserID(c), c.Query("q"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toTaskViews(tasks))
}
