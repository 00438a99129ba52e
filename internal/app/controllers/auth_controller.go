package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrc-edu/matricula-backend/internal/app/models/dto"
	"github.com/mrc-edu/matricula-backend/internal/app/services"
	"github.com/mrc-edu/matricula-backend/internal/middleware"
	"github.com/mrc-edu/matricula-backend/internal/pkg/apperrors"
)

// AuthController handles authentication endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login authenticates staff credentials and issues an access token
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	token, _, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(token))
}
