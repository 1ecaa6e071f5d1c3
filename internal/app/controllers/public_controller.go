package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/acemedformatics/acemed/internal/app/models/dto"
	"github.com/acemedformatics/acemed/internal/app/services"
	"github.com/acemedformatics/acemed/internal/middleware"
	"github.com/acemedformatics/acemed/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
)

// PublicController serves the read endpoints behind the public pages
type PublicController struct {
	content *services.ContentService
}

// NewPublicController creates a new PublicController
func NewPublicController(content *services.ContentService) *PublicController {
	return &PublicController{content: content}
}

func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.NewAPIResponse(data))
}

// GetSettings returns the public site settings
// @Summary Public site settings
// @Tags public
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.PublicSettings}
// @Router /settings [get]
func (c *PublicController) GetSettings(ctx *gin.Context) {
	settings, err := c.content.PublicSettings(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, settings)
}

// GetTeam lists active team members
// @Summary Team members
// @Tags public
// @Produce json
// @Param limit query int false "Maximum number of members"
// @Success 200 {object} dto.APIResponse{data=[]models.TeamMember}
// @Router /team [get]
func (c *PublicController) GetTeam(ctx *gin.Context) {
	members, err := c.content.TeamMembers(ctx.Request.Context(), helpers.ParseLimit(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, members)
}

// GetPrograms lists programs
// @Summary Programs
// @Tags public
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Program}
// @Failure 404 {object} dto.ErrorResponse "Programs are disabled"
// @Router /programs [get]
func (c *PublicController) GetPrograms(ctx *gin.Context) {
	programs, err := c.content.Programs(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, programs)
}

// GetProgram returns one program by slug
// @Summary Program by slug
// @Tags public
// @Produce json
// @Param slug path string true "Program slug"
// @Success 200 {object} dto.APIResponse{data=models.Program}
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{slug} [get]
func (c *PublicController) GetProgram(ctx *gin.Context) {
	program, err := c.content.ProgramBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, program)
}

// GetProgramMaterials returns a program and its materials
// @Summary Program materials
// @Tags public
// @Produce json
// @Param slug path string true "Program slug"
// @Success 200 {object} dto.APIResponse{data=dto.ProgramMaterialsResponse}
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{slug}/materials [get]
func (c *PublicController) GetProgramMaterials(ctx *gin.Context) {
	materials, err := c.content.ProgramMaterials(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, materials)
}

// GetProgramReviews lists approved reviews of a program
// @Summary Program reviews
// @Tags public
// @Produce json
// @Param slug path string true "Program slug"
// @Success 200 {object} dto.APIResponse{data=[]models.ProgramReview}
// @Router /programs/{slug}/reviews [get]
func (c *PublicController) GetProgramReviews(ctx *gin.Context) {
	reviews, err := c.content.ProgramReviews(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, reviews)
}

// GetProgramCategories lists program categories
// @Summary Program categories
// @Tags public
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.ProgramCategory}
// @Router /program-categories [get]
func (c *PublicController) GetProgramCategories(ctx *gin.Context) {
	categories, err := c.content.ProgramCategories(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, categories)
}

// GetResearch lists papers with the search box and year filter applied
// @Summary Research papers
// @Tags public
// @Produce json
// @Param q query string false "Title or author search"
// @Param year query int false "Publication year"
// @Success 200 {object} dto.APIResponse{data=dto.ResearchListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid year"
// @Router /research [get]
func (c *PublicController) GetResearch(ctx *gin.Context) {
	var year *int
	if raw := strings.TrimSpace(ctx.Query("year")); raw != "" && raw != "all" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid year").
				WithField("year").
				WithDetails("year must be a number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		year = &y
	}

	research, err := c.content.Research(ctx.Request.Context(), ctx.Query("q"), year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, research)
}

// GetMentorship lists active mentors and mentees
// @Summary Mentorship page
// @Tags public
// @Produce json
// @Param mentor_q query string false "Mentor search"
// @Param mentee_q query string false "Mentee search"
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipResponse}
// @Router /mentorship [get]
func (c *PublicController) GetMentorship(ctx *gin.Context) {
	page, err := c.content.Mentorship(ctx.Request.Context(), ctx.Query("mentor_q"), ctx.Query("mentee_q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, page)
}

// GetCollaborations lists active partners
// @Summary Collaborations
// @Tags public
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Collaboration}
// @Router /collaborations [get]
func (c *PublicController) GetCollaborations(ctx *gin.Context) {
	partners, err := c.content.Collaborations(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, partners)
}

// GetMedia lists published media
// @Summary Media
// @Tags public
// @Produce json
// @Param limit query int false "Maximum number of items"
// @Param type query string false "press, news, event or announcement"
// @Success 200 {object} dto.APIResponse{data=[]models.Media}
// @Router /media [get]
func (c *PublicController) GetMedia(ctx *gin.Context) {
	items, err := c.content.Media(ctx.Request.Context(), helpers.ParseLimit(ctx), strings.ToLower(strings.TrimSpace(ctx.Query("type"))))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, items)
}

// GetMediaItem returns one published media item
// @Summary Media item
// @Tags public
// @Produce json
// @Param slug path string true "Media slug"
// @Success 200 {object} dto.APIResponse{data=models.Media}
// @Failure 404 {object} dto.ErrorResponse "Media not found"
// @Router /media/{slug} [get]
func (c *PublicController) GetMediaItem(ctx *gin.Context) {
	item, err := c.content.MediaBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, item)
}

// GetTestimonials lists approved testimonials
// @Summary Testimonials
// @Tags public
// @Produce json
// @Param limit query int false "Maximum number of testimonials"
// @Success 200 {object} dto.APIResponse{data=[]models.Testimonial}
// @Router /testimonials [get]
func (c *PublicController) GetTestimonials(ctx *gin.Context) {
	items, err := c.content.Testimonials(ctx.Request.Context(), helpers.ParseLimit(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, items)
}

// GetAbout returns the about page
// @Summary About page
// @Tags public
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AboutResponse}
// @Router /about [get]
func (c *PublicController) GetAbout(ctx *gin.Context) {
	about, err := c.content.About(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, about)
}

// GetSitemap renders sitemap.xml
// @Summary Sitemap
// @Tags public
// @Produce xml
// @Success 200 {string} string "sitemap.xml"
// @Router /sitemap.xml [get]
func (c *PublicController) GetSitemap(ctx *gin.Context) {
	body, err := c.content.Sitemap(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
