package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todoapi/internal/app"
	"todoapi/internal/transport/http/response"
)

type TodoHandler struct {
	todoService *app.TodoService
}

type TodoRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

func NewTodoHandler(todoService *app.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.todoService.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "list todos failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

func (h *TodoHandler) Get(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, err := h.todoService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, app.ErrTodoNotFound) {
			response.Error(c, http.StatusNotFound, "todo not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "get todo failed")
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (h *TodoHandler) Create(c *gin.Context) {
	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	todo, err := h.todoService.Create(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "create todo failed")
		return
	}
	c.JSON(http.StatusCreated, todo)
}

func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	todo, err := h.todoService.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrTodoNotFound):
			response.Error(c, http.StatusNotFound, "todo not found")
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "update todo failed")
		}
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := h.todoService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, app.ErrTodoNotFound) {
			response.Error(c, http.StatusNotFound, "todo not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "delete todo failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// todoID parses the :id route param. A non-numeric id cannot name an
// existing todo, so it reads as 404 rather than 400.
func todoID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.Error(c, http.StatusNotFound, "todo not found")
		return 0, false
	}
	return uint(id), true
}
