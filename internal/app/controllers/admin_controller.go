package controllers

import (
	"context"
	"net/http"

	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/app/models/dto"
	"github.com/acemedformatics/acemed/internal/app/services"
	"github.com/acemedformatics/acemed/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Toggler flips the is_active flag of a row
type Toggler[T any] interface {
	ToggleActive(ctx context.Context, id int64) (*T, error)
}

// AdminController serves the admin endpoints that are not plain table CRUD
type AdminController struct {
	dashboard  *services.DashboardService
	settings   *services.SettingsService
	mentorship *services.MentorshipService
	materials  *services.MaterialService
	team       AdminResource[models.TeamMember]
	mentees    Toggler[models.Mentee]
}

// NewAdminController creates a new AdminController
func NewAdminController(
	dashboard *services.DashboardService,
	settings *services.SettingsService,
	mentorship *services.MentorshipService,
	materials *services.MaterialService,
	team AdminResource[models.TeamMember],
	mentees Toggler[models.Mentee],
) *AdminController {
	return &AdminController{
		dashboard:  dashboard,
		settings:   settings,
		mentorship: mentorship,
		materials:  materials,
		team:       team,
		mentees:    mentees,
	}
}

// Register mounts the admin endpoints on group
func (c *AdminController) Register(group *gin.RouterGroup) {
	group.GET("/dashboard", c.Dashboard)
	group.GET("/settings", c.GetSettings)
	group.PUT("/settings", c.UpdateSettings)

	apps := group.Group("/mentorship-applications")
	apps.GET("", c.PendingApplications)
	apps.POST("/:id/approve", c.ApproveApplication)
	apps.POST("/:id/reject", c.RejectApplication)

	group.POST("/programs/:id/materials", c.UploadMaterial)
	group.DELETE("/program-materials/:id/file", c.DeleteMaterial)

	group.PATCH("/team/:id/deactivate", c.DeactivateTeamMember)
	group.PATCH("/mentees/:id/toggle-active", c.ToggleMentee)
}

// Dashboard returns table counts for the admin landing page
// @Summary Admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse}
// @Router /admin/dashboard [get]
func (c *AdminController) Dashboard(ctx *gin.Context) {
	summary, err := c.dashboard.Summary(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, summary)
}

// GetSettings returns the full settings row
// @Summary Site settings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Settings}
// @Router /admin/settings [get]
func (c *AdminController) GetSettings(ctx *gin.Context) {
	settings, err := c.settings.Get(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, settings)
}

// UpdateSettings replaces the editable settings
// @Summary Update site settings
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SettingsRequest true "Settings"
// @Success 200 {object} dto.APIResponse{data=models.Settings}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /admin/settings [put]
func (c *AdminController) UpdateSettings(ctx *gin.Context) {
	var req dto.SettingsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	settings, err := c.settings.Update(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, settings)
}

// PendingApplications lists applications waiting for review
// @Summary Pending mentorship applications
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.MentorshipApplication}
// @Router /admin/mentorship-applications [get]
func (c *AdminController) PendingApplications(ctx *gin.Context) {
	apps, err := c.mentorship.PendingApplications(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, apps)
}

// ApproveApplication approves an application and enrolls the applicant as a mentee
// @Summary Approve a mentorship application
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /admin/mentorship-applications/{id}/approve [post]
func (c *AdminController) ApproveApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.mentorship.Approve(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, result)
}

// RejectApplication rejects an application
// @Summary Reject a mentorship application
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.MentorshipApplication}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /admin/mentorship-applications/{id}/reject [post]
func (c *AdminController) RejectApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	app, err := c.mentorship.Reject(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, app)
}

// UploadMaterial attaches a file to a program
// @Summary Upload program material
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param file formData file true "Material file"
// @Param title formData string false "Title, defaults to the file name"
// @Param description formData string false "Description"
// @Success 201 {object} dto.APIResponse{data=models.ProgramMaterial}
// @Failure 400 {object} dto.ErrorResponse "Missing or oversized file"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /admin/programs/{id}/materials [post]
func (c *AdminController) UploadMaterial(ctx *gin.Context) {
	programID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "file is required").
			WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	material, err := c.materials.Upload(ctx.Request.Context(), programID, services.MaterialUpload{
		File:        file,
		Title:       ctx.PostForm("title"),
		Description: ctx.PostForm("description"),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, material)
}

// DeleteMaterial removes a material row and its stored file
// @Summary Delete program material
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Material ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Router /admin/program-materials/{id}/file [delete]
func (c *AdminController) DeleteMaterial(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.materials.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Deleted"})
}

// DeactivateTeamMember hides a team member
// @Summary Deactivate a team member
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team member ID"
// @Success 200 {object} dto.APIResponse{data=models.TeamMember}
// @Router /admin/team/{id}/deactivate [patch]
func (c *AdminController) DeactivateTeamMember(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	member, err := c.team.SetActive(ctx.Request.Context(), id, false)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, member)
}

// ToggleMentee flips the visibility of a mentee
// @Summary Toggle a mentee
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mentee ID"
// @Success 200 {object} dto.APIResponse{data=models.Mentee}
// @Router /admin/mentees/{id}/toggle-active [patch]
func (c *AdminController) ToggleMentee(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	mentee, err := c.mentees.ToggleActive(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, mentee)
}
