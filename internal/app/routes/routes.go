package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mentorlink/backend/internal/app/controllers"
	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/middleware"
	"github.com/mentorlink/backend/internal/pkg/ratelimit"
	"github.com/mentorlink/backend/internal/pkg/websocket"
)

// Controllers bundles every controller the router needs
type Controllers struct {
	Auth     *controllers.AuthController
	Student  *controllers.StudentController
	Mentor   *controllers.MentorController
	Session  *controllers.SessionController
	Quiz     *controllers.QuizController
	Resource *controllers.ResourceController
	Chat     *controllers.ChatController
	File     *controllers.FileController
	Admin    *controllers.AdminController
	Health   *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	limiter *ratelimit.Limiter,
	wsHandler *websocket.Handler,
) {
	// API version group
	v1 := router.Group("/api/v1")

	if limiter.Enabled() {
		v1.Use(middleware.RateLimit(limiter))
	}

	// Health check endpoint (public)
	v1.GET("/health", ctrl.Health.Check)

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register/student", ctrl.Auth.RegisterStudent)
		auth.POST("/register/mentor", ctrl.Auth.RegisterMentor)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.Refresh)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.POST("/auth/logout", ctrl.Auth.Logout)

	// Websocket endpoint; the client is admitted to its own user room on connect
	authenticated.GET("/ws", wsHandler.HandleConnection)

	// Student profile routes
	students := authenticated.Group("/students")
	students.Use(authMiddleware.RoleRequired(models.RoleStudent))
	{
		students.GET("/me", ctrl.Student.GetMe)
		students.PUT("/me", ctrl.Student.UpdateMe)
	}

	// Mentor directory and profile routes
	mentors := authenticated.Group("/mentors")
	{
		mentors.GET("", ctrl.Mentor.List)
		mentors.GET("/:id", authMiddleware.ResolveProfiles(), ctrl.Mentor.Get)
		mentors.GET("/:id/reviews", ctrl.Mentor.GetReviews)

		mentorsOwn := mentors.Group("")
		mentorsOwn.Use(authMiddleware.RoleRequired(models.RoleMentor), authMiddleware.MentorProfile())
		{
			mentorsOwn.PUT("/me", ctrl.Mentor.UpdateMe)
			mentorsOwn.PUT("/me/availability", ctrl.Mentor.UpdateAvailability)
		}
	}

	// Session routes; booking is student-only, the rest is participant-scoped
	sessions := authenticated.Group("/sessions")
	{
		sessionsStudent := sessions.Group("")
		sessionsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent), authMiddleware.StudentProfile())
		{
			sessionsStudent.POST("", ctrl.Session.Book)
			sessionsStudent.POST("/:id/feedback/student", ctrl.Session.StudentFeedback)
		}

		sessionsMentor := sessions.Group("")
		sessionsMentor.Use(authMiddleware.RoleRequired(models.RoleMentor), authMiddleware.MentorProfile())
		{
			sessionsMentor.POST("/:id/feedback/mentor", ctrl.Session.MentorFeedback)
		}

		sessionsShared := sessions.Group("")
		sessionsShared.Use(authMiddleware.ResolveProfiles())
		{
			sessionsShared.GET("", ctrl.Session.ListMine)
			sessionsShared.GET("/:id", ctrl.Session.Get)
			sessionsShared.PUT("/:id/status", ctrl.Session.UpdateStatus)
			sessionsShared.POST("/:id/cancel", ctrl.Session.Cancel)
		}
	}

	// Career quiz routes (students only)
	quiz := authenticated.Group("/quiz")
	quiz.Use(authMiddleware.RoleRequired(models.RoleStudent), authMiddleware.StudentProfile())
	{
		quiz.GET("/questions", ctrl.Quiz.Questions)
		quiz.POST("/submit", ctrl.Quiz.Submit)
	}

	// Resource routes; creation is restricted to mentors and admins
	resources := authenticated.Group("/resources")
	{
		resources.GET("", ctrl.Resource.List)
		resources.GET("/:id", ctrl.Resource.Get)
		resources.POST("/:id/reviews", ctrl.Resource.Review)

		resourcesManage := resources.Group("")
		resourcesManage.Use(authMiddleware.RoleRequired(models.RoleMentor, models.RoleAdmin))
		{
			resourcesManage.POST("", ctrl.Resource.Create)
			resourcesManage.PUT("/:id", ctrl.Resource.Update)
			resourcesManage.DELETE("/:id", ctrl.Resource.Delete)
		}
	}

	// Chat routes
	chat := authenticated.Group("/chat")
	{
		chat.POST("/messages", ctrl.Chat.SendMessage)
		chat.GET("/conversations", ctrl.Chat.ListConversations)
		chat.GET("/conversations/:id/messages", ctrl.Chat.GetMessages)

		chatAdmin := chat.Group("")
		chatAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			chatAdmin.POST("/broadcast", ctrl.Chat.Broadcast)
		}
	}

	// File routes
	files := authenticated.Group("/files")
	{
		files.POST("", ctrl.File.Upload)
		files.GET("", ctrl.File.ListMine)
		files.GET("/:id/download", ctrl.File.Download)
		files.DELETE("/:id", ctrl.File.Delete)
	}

	// Admin routes
	admin := authenticated.Group("/admin")
	admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/mentors/pending", ctrl.Admin.PendingMentors)
		admin.POST("/mentors/:id/review", ctrl.Admin.ReviewMentor)
		admin.PUT("/users/:id/active", ctrl.Admin.SetUserActive)
	}
}
