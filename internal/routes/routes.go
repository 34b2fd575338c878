package routes

import (
	"log/slog"
	"net/http"

	"task-tracker-api/internal/auth"
	"task-tracker-api/internal/handlers"
	"task-tracker-api/internal/middleware"
	"task-tracker-api/internal/service"

	"github.com/gin-gonic/gin"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Tasks       *service.TaskService
	Tokens      *auth.TokenService
	Logger      *slog.Logger
	MaxPageSize int

	// DevLogin routes POST /api/login.
	DevLogin bool
}

// SetupRoutes builds the gin engine with public and protected routes.
func SetupRoutes(deps Dependencies) (*gin.Engine, error) {
	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORS())

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Management API is running",
		})
	})

	api := ginRouter.Group("/api")

	// Public routes (no authentication required)
	if deps.DevLogin {
		api.POST("/login", handlers.NewAuthHandler(deps.Tokens).Login)
	}

	// Protected routes (authentication required)
	tasks := handlers.NewTaskHandler(deps.Tasks, deps.MaxPageSize)
	protected := api.Group("/tasks")
	protected.Use(middleware.JWTAuthMiddleware(deps.Tokens))
	{
		protected.GET("", tasks.ListTasks)
		protected.POST("", tasks.CreateTask)
		protected.GET("/stats", tasks.GetStats)
		protected.GET("/:id", tasks.GetTaskByID)
		protected.PUT("/:id", tasks.UpdateTask)
		protected.DELETE("/:id", tasks.DeleteTask)
		protected.PATCH("/:id/status", tasks.ChangeStatus)
		protected.PATCH("/:id/assignee", tasks.SetAssignee)
		protected.POST("/:id/comments", tasks.AddComment)
	}

	return ginRouter, nil
}
