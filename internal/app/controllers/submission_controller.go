package controllers

import (
	"net/http"

	"github.com/acemedformatics/acemed/internal/app/models/dto"
	"github.com/acemedformatics/acemed/internal/app/services"
	"github.com/acemedformatics/acemed/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SubmissionController handles the public forms
type SubmissionController struct {
	submissions *services.SubmissionService
}

// NewSubmissionController creates a new SubmissionController
func NewSubmissionController(submissions *services.SubmissionService) *SubmissionController {
	return &SubmissionController{submissions: submissions}
}

// SubmitContact stores a contact form message
// @Summary Send a contact message
// @Tags forms
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Contact form"
// @Success 201 {object} dto.APIResponse{data=models.ContactMessage}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /contact [post]
func (c *SubmissionController) SubmitContact(ctx *gin.Context) {
	var req dto.ContactRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	msg, err := c.submissions.SubmitContact(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, msg)
}

// SubmitTestimonial stores a testimonial for moderation
// @Summary Submit a testimonial
// @Tags forms
// @Accept json
// @Produce json
// @Param request body dto.TestimonialRequest true "Testimonial"
// @Success 201 {object} dto.APIResponse{data=models.Testimonial}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /testimonials [post]
func (c *SubmissionController) SubmitTestimonial(ctx *gin.Context) {
	var req dto.TestimonialRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	testimonial, err := c.submissions.SubmitTestimonial(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, testimonial)
}

// SubmitReview stores a program review for moderation
// @Summary Review a program
// @Tags forms
// @Accept json
// @Produce json
// @Param slug path string true "Program slug"
// @Param request body dto.ReviewRequest true "Review"
// @Success 201 {object} dto.APIResponse{data=models.ProgramReview}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{slug}/reviews [post]
func (c *SubmissionController) SubmitReview(ctx *gin.Context) {
	var req dto.ReviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	review, err := c.submissions.SubmitReview(ctx.Request.Context(), ctx.Param("slug"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, review)
}

// Apply stores a mentorship application
// @Summary Apply for mentorship
// @Tags forms
// @Accept json
// @Produce json
// @Param request body dto.MentorshipApplicationRequest true "Application"
// @Success 201 {object} dto.APIResponse{data=models.MentorshipApplication}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Mentorship is disabled"
// @Router /mentorship/applications [post]
func (c *SubmissionController) Apply(ctx *gin.Context) {
	var req dto.MentorshipApplicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	app, err := c.submissions.Apply(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, app)
}
