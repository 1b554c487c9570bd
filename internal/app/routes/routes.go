package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyplan/internal/app/controllers"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/app/models/dto"
	"github.com/yigit/studyplan/internal/middleware"
	"github.com/yigit/studyplan/internal/pkg/websocket"
)

// Handlers groups the controllers the router dispatches to.
type Handlers struct {
	Auth      *controllers.AuthController
	Programme *controllers.ProgrammeController
	Course    *controllers.CourseController
	Catalog   *controllers.CatalogController
	Plan      *controllers.PlanController
	Pages     *controllers.PageController
	Changes   *websocket.Handler
}

// LoginPath is where anonymous page requests are sent.
const LoginPath = "/login"

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, csrf gin.HandlerFunc) {
	router.Use(authMiddleware.Resolve())

	setupAPI(router, h, authMiddleware)
	setupPages(router, h, authMiddleware, csrf)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
}

func setupAPI(router *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/status", h.Auth.Status)
	}

	// --- Public read routes ---
	programmes := v1.Group("/programmes")
	{
		programmes.GET("", h.Programme.ListProgrammes)
		programmes.GET("/:id", h.Programme.GetProgramme)
		programmes.GET("/:id/courses", h.Course.ListCourses)
		programmes.GET("/:id/courses/:courseId", h.Course.GetCourse)
		programmes.GET("/:id/categories-data", h.Catalog.GetCategoriesData)
		programmes.GET("/:id/seasons", h.Catalog.ListSeasons)
		programmes.GET("/:id/ws", h.Changes.HandleConnection)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	editable := authenticated.Group("/programmes")
	{
		editable.POST("", h.Programme.CreateProgramme)
		editable.PUT("/:id", h.Programme.UpdateProgramme)
		editable.DELETE("/:id", h.Programme.DeleteProgramme)

		editable.POST("/:id/courses", h.Course.AddCourse)
		editable.PUT("/:id/courses/:courseId", h.Course.UpdateCourse)
		editable.DELETE("/:id/courses/:courseId", h.Course.RemoveCourse)

		editable.POST("/:id/categories", h.Catalog.CreateCategory)
		editable.PUT("/:id/categories/:entryId", h.Catalog.UpdateCategory)
		editable.DELETE("/:id/categories/:entryId", h.Catalog.DeleteEntry(models.CatalogCategory))

		editable.POST("/:id/subcategories", h.Catalog.CreateSubcategory)
		editable.PUT("/:id/subcategories/:entryId", h.Catalog.UpdateSubcategory)
		editable.DELETE("/:id/subcategories/:entryId", h.Catalog.DeleteEntry(models.CatalogSubcategory))

		editable.POST("/:id/majors", h.Catalog.CreateNamedEntry(models.CatalogMajor))
		editable.PUT("/:id/majors/:entryId", h.Catalog.RenameEntry(models.CatalogMajor))
		editable.DELETE("/:id/majors/:entryId", h.Catalog.DeleteEntry(models.CatalogMajor))

		editable.POST("/:id/minors", h.Catalog.CreateNamedEntry(models.CatalogMinor))
		editable.PUT("/:id/minors/:entryId", h.Catalog.RenameEntry(models.CatalogMinor))
		editable.DELETE("/:id/minors/:entryId", h.Catalog.DeleteEntry(models.CatalogMinor))

		editable.POST("/:id/seasons", h.Catalog.CreateSeason)
		editable.PUT("/:id/seasons/:entryId", h.Catalog.UpdateSeason)
		editable.DELETE("/:id/seasons/:entryId", h.Catalog.DeleteSeason)
	}

	plans := authenticated.Group("/plans")
	{
		plans.GET("", h.Plan.ListPlans)
		plans.POST("", h.Plan.CreatePlan)
		plans.GET("/:id", h.Plan.GetPlan)
		plans.DELETE("/:id", h.Plan.DeletePlan)
		plans.GET("/:id/progress", h.Plan.GetProgress)
		plans.PUT("/:id/courses/:courseId", h.Plan.TakeCourse)
		plans.DELETE("/:id/courses/:courseId", h.Plan.UntakeCourse)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})
}

func setupPages(router *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, csrf gin.HandlerFunc) {
	pages := router.Group("")
	pages.Use(csrf)
	{
		pages.GET("/", h.Pages.Home)
		pages.GET(LoginPath, h.Pages.LoginForm)
		pages.POST(LoginPath, h.Pages.Login)
		pages.POST("/logout", h.Pages.Logout)
	}

	members := pages.Group("")
	members.Use(authMiddleware.LoginRequired(LoginPath))
	{
		members.GET("/programmes", h.Pages.Programmes)
		members.POST("/programmes", h.Pages.CreateProgramme)
		members.GET("/programmes/:id", h.Pages.Programme)
		members.POST("/programmes/:id/courses", h.Pages.AddCourse)
		members.POST("/programmes/:id/courses/:courseId", h.Pages.UpdateCourse)
		members.POST("/programmes/:id/courses/:courseId/delete", h.Pages.RemoveCourse)

		members.GET("/plans", h.Pages.Plans)
		members.POST("/plans", h.Pages.CreatePlan)
		members.GET("/plans/:id", h.Pages.Plan)
		members.POST("/plans/:id/delete", h.Pages.DeletePlan)
		members.POST("/plans/:id/courses/:courseId", h.Pages.SetTaken)
	}

	router.NoRoute(csrf, h.Pages.NotFound)
}
