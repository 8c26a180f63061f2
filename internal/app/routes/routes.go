// Package routes wires controllers to the HTTP route table
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ecetin/edushare/internal/app/controllers"
	"github.com/ecetin/edushare/internal/app/models"
	"github.com/ecetin/edushare/internal/app/models/dto"
	"github.com/ecetin/edushare/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	dashboardController *controllers.DashboardController,
	noteController *controllers.NoteController,
	adminController *controllers.AdminController,
	fileController *controllers.FileController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Public routes ---
	router.GET("/register", authController.RegisterForm)
	router.POST("/register", authController.Register)
	router.GET("/login", authController.LoginForm)
	router.POST("/login", authController.Login)
	router.POST("/refresh", authController.RefreshToken)

	// The landing route redirects by session state, so the token is resolved
	// when present but never required.
	router.GET("/", authMiddleware.OptionalJWT(), dashboardController.Home)

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/logout", authController.Logout)
		authenticated.GET("/dashboard", dashboardController.Dashboard)
		authenticated.GET("/delete_note/:id", noteController.Delete)
		authenticated.GET("/view/:filename", fileController.View)

		// Teacher-only routes
		teacherProtected := authenticated.Group("")
		teacherProtected.Use(authMiddleware.RoleRequired(models.RoleTeacher))
		{
			teacherProtected.GET("/dashboard/teacher", dashboardController.TeacherDashboard)
			teacherProtected.GET("/upload_note", noteController.UploadForm)
			teacherProtected.POST("/upload_note", noteController.Upload)
		}

		// Student-only routes
		studentProtected := authenticated.Group("")
		studentProtected.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			studentProtected.GET("/dashboard/student", dashboardController.StudentDashboard)
		}

		// Admin-only routes
		adminProtected := authenticated.Group("")
		adminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			adminProtected.GET("/dashboard/admin", dashboardController.AdminDashboard)
			adminProtected.GET("/approve_user/:id", adminController.ApproveUser)
			adminProtected.GET("/delete_user/:id", adminController.DeleteUser)
			adminProtected.GET("/approve_note/:id", adminController.ApproveNote)
		}
	}

	// Health check endpoint (public)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
