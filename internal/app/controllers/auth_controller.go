// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/acemedformatics/acemed/internal/app/models/dto"
	"github.com/acemedformatics/acemed/internal/app/services"
	"github.com/acemedformatics/acemed/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthController handles admin sign in and sign out
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login handles admin login
// @Summary Admin login
// @Description Signs in with BaaS credentials. Only addresses on the admin list receive a token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Admin credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Router /admin/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		c.logger.Debug().Msg("Invalid login request payload")
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, resp)
}

// ExchangeSession trades a BaaS session for an admin token
// @Summary Exchange a BaaS session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SessionExchangeRequest true "BaaS access token"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid session"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Router /admin/auth/session [post]
func (c *AuthController) ExchangeSession(ctx *gin.Context) {
	var req dto.SessionExchangeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.ExchangeSession(ctx.Request.Context(), req.AccessToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, resp)
}

// Logout revokes the current admin token
// @Summary Admin logout
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /admin/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims, ok := middleware.AdminClaims(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Not signed in")))
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), claims); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Signed out"})
}

// Me returns the signed in admin
// @Summary Current admin
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminIdentity}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /admin/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	claims, ok := middleware.AdminClaims(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Not signed in")))
		return
	}
	respond(ctx, http.StatusOK, c.authService.Me(claims))
}
