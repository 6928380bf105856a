package server

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workspace-task-api/internal/constants"
	"github.com/yukikurage/workspace-task-api/internal/handlers"
	"github.com/yukikurage/workspace-task-api/internal/middleware"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"github.com/yukikurage/workspace-task-api/internal/services"
	"gorm.io/gorm"
)

// crudHandler is implemented by every per-resource handler
type crudHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// New builds the router with every route wired to services backed by db
func New(db *gorm.DB, sessionStore sessions.Store) *gin.Engine {
	store := repository.NewStore(db)

	authService := services.NewAuthService(store)
	workspaceService := services.NewWorkspaceService(store)
	categoryService := services.NewCategoryService(store)
	projectService := services.NewProjectService(store)
	taskService := services.NewTaskService(store)

	authHandler := handlers.NewAuthHandler(authService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	tagHandler := handlers.NewLabelHandler(services.NewTagService(store), "tags")
	priorityHandler := handlers.NewLabelHandler(services.NewPriorityService(store), "priorities")
	statusHandler := handlers.NewLabelHandler(services.NewStatusService(store), "statuses")

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Workspace Task API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(authService), authHandler.GetCurrentUser)
		}

		// Per-user routes (protected)
		user := api.Group("/user/:user_id")
		user.Use(middleware.RequireAuth(authService), middleware.RequireUserScope(authService))
		{
			resource(user, "/workspace", workspaceHandler)
			resource(user, "/category", categoryHandler)
			resource(user, "/tag", tagHandler)
			resource(user, "/priority", priorityHandler)
			resource(user, "/status", statusHandler)
			resource(user, "/project", projectHandler)
			resource(user, "/task", taskHandler)

			user.GET("/workspace/:id/categories", categoryHandler.Tree)
			user.GET("/category/:id/hierarchy", categoryHandler.Hierarchy)
			user.GET("/project/:id/hierarchy", projectHandler.Hierarchy)
			user.GET("/task/:id/hierarchy", taskHandler.Hierarchy)
		}
	}

	return r
}

func resource(group *gin.RouterGroup, path string, h crudHandler) {
	group.GET(path, h.List)
	group.POST(path, h.Create)
	group.GET(path+"/:id", h.Get)
	group.PUT(path+"/:id", h.Update)
	group.PATCH(path+"/:id", h.Update)
	group.DELETE(path+"/:id", h.Delete)
}
