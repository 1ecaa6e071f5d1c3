package routes

import (
	"net/http"

	"github.com/acemedformatics/acemed/internal/app/controllers"
	"github.com/acemedformatics/acemed/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Registrar mounts its own routes on a group
type Registrar interface {
	Register(group *gin.RouterGroup)
}

// Controllers groups every controller the router mounts
type Controllers struct {
	Public     *controllers.PublicController
	Submission *controllers.SubmissionController
	Auth       *controllers.AuthController
	Admin      *controllers.AdminController
	// Resources are the per-table admin CRUD controllers
	Resources []Registrar
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, adminGate gin.HandlerFunc) {
	router.GET("/health", health)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
	router.GET("/sitemap.xml", ctrl.Public.GetSitemap)
	router.NoRoute(middleware.NotFound)

	v1 := router.Group("/api/v1")

	// --- Public read routes ---
	v1.GET("/settings", ctrl.Public.GetSettings)
	v1.GET("/team", ctrl.Public.GetTeam)
	v1.GET("/program-categories", ctrl.Public.GetProgramCategories)
	v1.GET("/research", ctrl.Public.GetResearch)
	v1.GET("/collaborations", ctrl.Public.GetCollaborations)
	v1.GET("/about", ctrl.Public.GetAbout)
	v1.GET("/sitemap.xml", ctrl.Public.GetSitemap)

	programs := v1.Group("/programs")
	{
		programs.GET("", ctrl.Public.GetPrograms)
		programs.GET("/:slug", ctrl.Public.GetProgram)
		programs.GET("/:slug/materials", ctrl.Public.GetProgramMaterials)
		programs.GET("/:slug/reviews", ctrl.Public.GetProgramReviews)
		programs.POST("/:slug/reviews", ctrl.Submission.SubmitReview)
	}

	mentorship := v1.Group("/mentorship")
	{
		mentorship.GET("", ctrl.Public.GetMentorship)
		mentorship.POST("/applications", ctrl.Submission.Apply)
	}

	media := v1.Group("/media")
	{
		media.GET("", ctrl.Public.GetMedia)
		media.GET("/:slug", ctrl.Public.GetMediaItem)
	}

	testimonials := v1.Group("/testimonials")
	{
		testimonials.GET("", ctrl.Public.GetTestimonials)
		testimonials.POST("", ctrl.Submission.SubmitTestimonial)
	}

	v1.POST("/contact", ctrl.Submission.SubmitContact)

	// --- Admin sign in, outside the gate ---
	adminAuth := v1.Group("/admin/auth")
	{
		adminAuth.POST("/login", ctrl.Auth.Login)
		adminAuth.POST("/session", ctrl.Auth.ExchangeSession)
	}

	// --- Admin area ---
	admin := v1.Group("/admin")
	admin.Use(adminGate)
	{
		admin.POST("/auth/logout", ctrl.Auth.Logout)
		admin.GET("/auth/me", ctrl.Auth.Me)

		ctrl.Admin.Register(admin)
		for _, r := range ctrl.Resources {
			r.Register(admin)
		}
	}
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
