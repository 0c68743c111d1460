package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/agrosphere-api/internal/application"
)

type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger}
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// updateTaskRequest keeps raw values so a field of the wrong type is dropped
// instead of failing the whole update.
type updateTaskRequest map[string]json.RawMessage

func (r updateTaskRequest) str(key string) *string {
	raw, ok := r[key]
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

func (r updateTaskRequest) input() application.UpdateTaskInput {
	return application.UpdateTaskInput{
		Title:       r.str("title"),
		Description: r.str("description"),
		Category:    r.str("category"),
	}
}

// Create stores a task owned by the caller.
func (h *TaskHandler) Create(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	task, err := h.Svc.Create(c.Request.Context(), id.Email, application.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// List returns the tasks of :email, which must be the caller.
func (h *TaskHandler) List(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	tasks, err := h.Svc.List(c.Request.Context(), id.Email, c.Param("email"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Replace handles PUT /records/:id.
func (h *TaskHandler) Replace(c *gin.Context) {
	if _, ok := h.update(c); ok {
		c.JSON(http.StatusOK, gin.H{"message": "Task updated", "taskId": c.Param("id")})
	}
}

// Patch handles PATCH /tasks/:id and echoes the applied fields.
func (h *TaskHandler) Patch(c *gin.Context) {
	if changes, ok := h.update(c); ok {
		c.JSON(http.StatusOK, gin.H{"message": "Task updated", "taskId": c.Param("id"), "updatedFields": changes})
	}
}

func (h *TaskHandler) update(c *gin.Context) (any, bool) {
	id, ok := caller(c)
	if !ok {
		return nil, false
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return nil, false
	}
	changes, err := h.Svc.Update(c.Request.Context(), c.Param("id"), id.Email, req.input())
	if err != nil {
		writeError(c, h.Logger, err)
		return nil, false
	}
	return changes, true
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), id.Email); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
