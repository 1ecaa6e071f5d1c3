package controllers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/acemedformatics/acemed/internal/app/models/dto"
	"github.com/acemedformatics/acemed/internal/app/services"
	"github.com/acemedformatics/acemed/internal/middleware"
	"github.com/acemedformatics/acemed/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// payloadField is the multipart field carrying the JSON body of an image upload
const payloadField = "payload"

// imageField is the multipart field carrying the image
const imageField = "image"

// parseIDParam parses an ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+paramName).
			WithField(paramName)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// AdminResource is the CRUD surface a ResourceController drives
type AdminResource[T any] interface {
	Name() string
	SupportsStatus() bool
	SupportsActive() bool
	List(ctx context.Context, page, size int) ([]*T, int64, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, row *T, image *multipart.FileHeader) (*T, error)
	Update(ctx context.Context, id int64, row *T, image *multipart.FileHeader) (*T, error)
	Delete(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, status string) (*T, error)
	SetActive(ctx context.Context, id int64, active bool) (*T, error)
}

var _ AdminResource[struct{}] = (*services.ResourceService[struct{}])(nil)

// ResourceController exposes one admin table under /admin/<name>
type ResourceController[T any] struct {
	resource AdminResource[T]
}

// NewResourceController creates a controller for resource
func NewResourceController[T any](resource AdminResource[T]) *ResourceController[T] {
	return &ResourceController[T]{resource: resource}
}

// Register mounts the routes of this resource on group
func (c *ResourceController[T]) Register(group *gin.RouterGroup) {
	r := group.Group("/" + c.resource.Name())
	r.GET("", c.List)
	r.POST("", c.Create)
	r.GET("/:id", c.Get)
	r.PUT("/:id", c.Update)
	r.DELETE("/:id", c.Delete)
	if c.resource.SupportsStatus() {
		r.PATCH("/:id/status", c.SetStatus)
	}
	if c.resource.SupportsActive() {
		r.PATCH("/:id/active", c.SetActive)
	}
}

// List returns one page of rows
// @Summary List rows of an admin table
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Table name, e.g. team"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /admin/{resource} [get]
func (c *ResourceController[T]) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	items, total, err := c.resource.List(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	})
}

// Get returns one row
// @Summary Get a row of an admin table
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Table name"
// @Param id path int true "Row ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /admin/{resource}/{id} [get]
func (c *ResourceController[T]) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	row, err := c.resource.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, row)
}

// Create inserts a row. Image tables also accept multipart with a payload
// field holding the JSON body and an image field.
// @Summary Create a row of an admin table
// @Tags admin
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Table name"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /admin/{resource} [post]
func (c *ResourceController[T]) Create(ctx *gin.Context) {
	row, image, ok := c.bindRow(ctx)
	if !ok {
		return
	}

	created, err := c.resource.Create(ctx.Request.Context(), row, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, created)
}

// Update replaces a row. A missing image keeps the current one.
// @Summary Update a row of an admin table
// @Tags admin
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Table name"
// @Param id path int true "Row ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /admin/{resource}/{id} [put]
func (c *ResourceController[T]) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	row, image, ok := c.bindRow(ctx)
	if !ok {
		return
	}

	updated, err := c.resource.Update(ctx.Request.Context(), id, row, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, updated)
}

// Delete removes a row
// @Summary Delete a row of an admin table
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Table name"
// @Param id path int true "Row ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /admin/{resource}/{id} [delete]
func (c *ResourceController[T]) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.resource.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Deleted"})
}

// SetStatus moderates a submission or files a contact message
// @Summary Change the status of a row
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resource path string true "testimonials, program-reviews or contact-messages"
// @Param id path int true "Row ID"
// @Param request body dto.StatusUpdateRequest true "New status"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Router /admin/{resource}/{id}/status [patch]
func (c *ResourceController[T]) SetStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.StatusUpdateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	row, err := c.resource.SetStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, row)
}

// SetActive shows or hides a row on the public site
// @Summary Change the visibility of a row
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resource path string true "mentors, mentees, team or collaborations"
// @Param id path int true "Row ID"
// @Param request body dto.ActiveUpdateRequest true "Visibility"
// @Success 200 {object} dto.APIResponse
// @Router /admin/{resource}/{id}/active [patch]
func (c *ResourceController[T]) SetActive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ActiveUpdateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	row, err := c.resource.SetActive(ctx.Request.Context(), id, *req.IsActive)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, row)
}

// bindRow reads the row from a JSON body or from a multipart form.
func (c *ResourceController[T]) bindRow(ctx *gin.Context) (*T, *multipart.FileHeader, bool) {
	row := new(T)
	if !strings.HasPrefix(ctx.ContentType(), binding.MIMEMultipartPOSTForm) {
		return row, nil, middleware.BindJSON(ctx, row)
	}

	payload := ctx.PostForm(payloadField)
	if strings.TrimSpace(payload) == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, payloadField+" is required").
			WithField(payloadField)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, nil, false
	}
	if err := binding.JSON.BindBody([]byte(payload), row); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return nil, nil, false
	}

	image, err := ctx.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return row, nil, true
		}
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid image upload").
			WithField(imageField).
			WithDetails(err.Error())
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, nil, false
	}
	return row, image, true
}
