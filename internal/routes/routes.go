package routes

import (
	"github.com/gin-gonic/gin"

	"ultima-todo-api/internal/handlers"
	"ultima-todo-api/internal/middleware"
)

func SetupRoutes() *gin.Engine {
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Ultima Todo API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Task endpoints
		protectedRoutes.GET("/tasks", handlers.GetTasks)
		protectedRoutes.GET("/tasks/:id", handlers.GetTaskByID)
		protectedRoutes.POST("/tasks", handlers.CreateTask)
		protectedRoutes.POST("/tasks/parse", handlers.ParseTask)
		protectedRoutes.PUT("/tasks/:id", handlers.UpdateTask)
		protectedRoutes.PATCH("/tasks/:id/status", handlers.UpdateTaskStatus)
		protectedRoutes.POST("/tasks/:id/toggle", handlers.ToggleTaskStatus)
		protectedRoutes.DELETE("/tasks/:id", handlers.DeleteTask)

		// Timer endpoints
		protectedRoutes.POST("/tasks/:id/timer", handlers.ToggleTimer)
		protectedRoutes.GET("/timer", handlers.GetTimer)
		protectedRoutes.POST("/timer/pomodoro", handlers.SetPomodoro)

		// Subtask endpoints
		protectedRoutes.POST("/tasks/:id/subtasks", handlers.AddSubtask)
		protectedRoutes.POST("/tasks/:id/subtasks/:subtaskId/toggle", handlers.ToggleSubtask)
		protectedRoutes.PATCH("/tasks/:id/subtasks/:subtaskId", handlers.EditSubtask)
		protectedRoutes.DELETE("/tasks/:id/subtasks/:subtaskId", handlers.DeleteSubtask)
		protectedRoutes.POST("/tasks/:id/breakdown", handlers.GenerateSubtasks)

		// Project endpoints
		protectedRoutes.GET("/projects", handlers.GetProjects)
		protectedRoutes.POST("/projects", handlers.CreateProject)
		protectedRoutes.DELETE("/projects/:id", handlers.DeleteProject)

		// Template endpoints
		protectedRoutes.GET("/templates", handlers.GetTemplates)
		protectedRoutes.POST("/templates", handlers.CreateTemplate)
		protectedRoutes.POST("/templates/:id/apply", handlers.ApplyTemplate)

		// Team endpoints
		protectedRoutes.GET("/teams", handlers.GetTeams)
		protectedRoutes.POST("/teams", handlers.CreateTeam)
		protectedRoutes.POST("/teams/:id/invitations", handlers.InviteMember)
		protectedRoutes.POST("/invitations/:token/accept", handlers.AcceptInvitation)

		// AI endpoints
		protectedRoutes.POST("/ai/suggest", handlers.GetSuggestion)

		// Misc
		protectedRoutes.GET("/stats", handlers.GetStats)
		protectedRoutes.GET("/users", handlers.GetAllUsers)
		protectedRoutes.GET("/ws", handlers.WebSocketHandler)
	}

	return ginRouter
}
