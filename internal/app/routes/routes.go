package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrc-edu/matricula-backend/internal/app/controllers"
	"github.com/mrc-edu/matricula-backend/internal/middleware"
)

// Controllers groups all route handlers
type Controllers struct {
	Auth       *controllers.AuthController
	Student    *controllers.StudentController
	Academic   *controllers.AcademicController
	Enrollment *controllers.EnrollmentController
	Document   *controllers.DocumentController
}

// SetupRoutes registers all API routes on the engine
func SetupRoutes(router *gin.Engine, ctrl *Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	v1.POST("/auth/login", ctrl.Auth.Login)

	protected := v1.Group("")
	protected.Use(authMiddleware.JWTAuth())
	{
		// Fixed guardian segment registered before the :dni parameter routes.
		guardians := protected.Group("/students/guardian")
		{
			guardians.POST("", ctrl.Student.CreateGuardian)
			guardians.GET("", ctrl.Student.GetAllGuardians)
			guardians.PUT("/:dni", ctrl.Student.UpdateGuardian)
			guardians.DELETE("/:dni", ctrl.Student.DeleteGuardian)
		}

		students := protected.Group("/students")
		{
			students.POST("", ctrl.Student.CreateStudent)
			students.GET("", ctrl.Student.GetAllStudents)
			students.GET("/:dni", ctrl.Student.GetStudentByDNI)
			students.PUT("/id/:id", ctrl.Student.UpdateStudent)
			students.DELETE("/id/:id", ctrl.Student.DeleteStudent)
		}

		academic := protected.Group("/academic")
		{
			academic.POST("/years", ctrl.Academic.CreateAcademicYear)
			academic.GET("/years", ctrl.Academic.GetAllAcademicYears)
			academic.POST("/grades", ctrl.Academic.CreateGrade)
			academic.GET("/grades", ctrl.Academic.GetAllGrades)
			academic.POST("/sections", ctrl.Academic.CreateSection)
			academic.GET("/sections", ctrl.Academic.GetAllSections)
		}

		enrollments := protected.Group("/enrollments")
		{
			enrollments.POST("", ctrl.Enrollment.CreateEnrollment)
			enrollments.GET("", ctrl.Enrollment.GetAllEnrollments)
			enrollments.PATCH("/:id/status", ctrl.Enrollment.UpdateEnrollmentStatus)
			enrollments.DELETE("/:id", ctrl.Enrollment.DeleteEnrollment)
		}

		documents := protected.Group("/documents")
		{
			documents.POST("/upload", ctrl.Document.UploadDocument)
			documents.GET("", ctrl.Document.GetAllDocuments)
			documents.GET("/:id", ctrl.Document.GetDocumentByID)
			documents.PATCH("/:id/status", ctrl.Document.UpdateDocumentStatus)
			documents.DELETE("/:id", ctrl.Document.DeleteDocument)
		}
	}
}
