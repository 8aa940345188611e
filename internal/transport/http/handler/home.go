package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapi/internal/app"
)

type HomeHandler struct {
	appName string
}

func NewHomeHandler(appName string) *HomeHandler {
	return &HomeHandler{appName: appName}
}

// Show is the homepage. Whether it sits behind the auth gate is decided
// by config, not here.
func (h *HomeHandler) Show(c *gin.Context) {
	body := gin.H{"app": h.appName, "message": "my todos"}
	if user, ok := app.IdentityFrom(c.Request.Context()); ok {
		body["username"] = user.Username
	}
	c.JSON(http.StatusOK, body)
}
