package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/collab-projects-api/internal/middleware"
	"github.com/yukikurage/collab-projects-api/internal/services"
)

// Services groups the application services the HTTP layer depends on
type Services struct {
	Auth           *services.AuthService
	Users          *services.UserService
	Catalog        *services.CatalogService
	Projects       *services.ProjectService
	Collaborations *services.CollaborationService
	Comments       *services.CommentService
}

// RegisterRoutes mounts the /api routes on r
func RegisterRoutes(r gin.IRouter, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users, svc.Projects)
	catalogHandler := NewCatalogHandler(svc.Catalog)
	projectHandler := NewProjectHandler(svc.Projects, svc.Collaborations)
	collabHandler := NewCollaborationHandler(svc.Collaborations)
	commentHandler := NewCommentHandler(svc.Comments)

	requireAuth := middleware.RequireAuth()
	optionalAuth := middleware.OptionalAuth()
	loadProject := middleware.RequireProject(svc.Projects)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/token/refresh", authHandler.RefreshToken)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/profile", userHandler.GetProfile)
			users.PATCH("/profile", userHandler.UpdateProfile)
			users.POST("/change-password", authHandler.ChangePassword)
			users.GET("/:id", userHandler.GetUser)
			users.GET("/:id/projects", userHandler.GetUserProjects)
		}

		// Catalog reads are public, writes need a session.
		// Public reads still record the caller when credentials are sent.
		skills := api.Group("/skills")
		{
			skills.GET("", optionalAuth, catalogHandler.ListSkills)
			skills.GET("/:id", optionalAuth, catalogHandler.GetSkill)
			skills.POST("", requireAuth, catalogHandler.CreateSkill)
			skills.PUT("/:id", requireAuth, catalogHandler.UpdateSkill)
			skills.DELETE("/:id", requireAuth, catalogHandler.DeleteSkill)
		}

		disciplines := api.Group("/disciplines")
		{
			disciplines.GET("", optionalAuth, catalogHandler.ListDisciplines)
			disciplines.GET("/:id", optionalAuth, catalogHandler.GetDiscipline)
			disciplines.POST("", requireAuth, catalogHandler.CreateDiscipline)
			disciplines.PUT("/:id", requireAuth, catalogHandler.UpdateDiscipline)
			disciplines.DELETE("/:id", requireAuth, catalogHandler.DeleteDiscipline)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", optionalAuth, projectHandler.ListProjects)
			projects.POST("", requireAuth, projectHandler.CreateProject)
			projects.GET("/mine", requireAuth, projectHandler.ListMine)
			projects.GET("/collaborating", requireAuth, projectHandler.ListCollaborating)
			projects.POST("/draft", requireAuth, projectHandler.DraftProject)
			projects.GET("/:id", optionalAuth, loadProject, projectHandler.GetProject)
			projects.PATCH("/:id", requireAuth, projectHandler.UpdateProject)
			projects.DELETE("/:id", requireAuth, projectHandler.DeleteProject)
			projects.GET("/:id/collaborators", optionalAuth, loadProject, projectHandler.ListCollaborators)
			projects.GET("/:id/requests", requireAuth, loadProject, projectHandler.ListPendingRequests)
			projects.POST("/:id/collaborations", requireAuth, projectHandler.RequestCollaboration)
		}

		collaborations := api.Group("/collaborations")
		collaborations.Use(requireAuth)
		{
			collaborations.GET("", collabHandler.ListCollaborations)
			collaborations.POST("", collabHandler.CreateCollaboration)
			collaborations.GET("/mine", collabHandler.ListMine)
			collaborations.GET("/:id", collabHandler.GetCollaboration)
			collaborations.POST("/:id/accept", collabHandler.AcceptCollaboration)
			collaborations.POST("/:id/reject", collabHandler.RejectCollaboration)
			collaborations.POST("/:id/cancel", collabHandler.CancelCollaboration)
		}

		comments := api.Group("/comments")
		{
			comments.GET("", optionalAuth, commentHandler.ListComments)
			comments.GET("/:id", optionalAuth, commentHandler.GetComment)
			comments.POST("", requireAuth, commentHandler.CreateComment)
			comments.PATCH("/:id", requireAuth, commentHandler.UpdateComment)
			comments.DELETE("/:id", requireAuth, commentHandler.DeleteComment)
		}
	}
}
