package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapi/internal/app"
	"todoapi/internal/transport/http/response"
)

type UserHandler struct {
	authService  *app.AuthService
	tokenService *app.TokenService
}

type CreateUserRequest struct {
	Username       string `json:"username" binding:"required,min=3,max=64"`
	Email          string `json:"email" binding:"required,email,max=128"`
	Password       string `json:"password" binding:"required,min=8,max=128"`
	VerifyPassword string `json:"verify_password" binding:"required"`
}

func NewUserHandler(authService *app.AuthService, tokenService *app.TokenService) *UserHandler {
	return &UserHandler{authService: authService, tokenService: tokenService}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), app.RegisterInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		VerifyPassword: req.VerifyPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput),
			errors.Is(err, app.ErrUsernameExists),
			errors.Is(err, app.ErrEmailExists),
			errors.Is(err, app.ErrAlreadyExists):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "create user failed")
		}
		return
	}

	// model.User hides the password hash from JSON.
	c.JSON(http.StatusCreated, user)
}

// Token issues a fresh auth token for the identity the auth gate bound.
func (h *UserHandler) Token(c *gin.Context) {
	user, ok := app.IdentityFrom(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	token, err := h.tokenService.Issue(user)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "issue token failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
