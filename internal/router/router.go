package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Shadowina/ecole-portal-api/internal/handler"
	"github.com/Shadowina/ecole-portal-api/internal/middleware"
	"github.com/Shadowina/ecole-portal-api/internal/models"
	"github.com/Shadowina/ecole-portal-api/internal/repository"
	"github.com/Shadowina/ecole-portal-api/internal/service"
	"github.com/Shadowina/ecole-portal-api/pkg/config"
)

// Handlers bundles every HTTP handler registered on the API router.
type Handlers struct {
	Auth             *handler.AuthHandler
	Users            *handler.UserHandler
	Students         *handler.StudentHandler
	Professors       *handler.ProfessorHandler
	DepartmentAdmins *handler.DepartmentAdminHandler
	Departments      *handler.DepartmentHandler
	Programmes       *handler.ProgrammeHandler
	Courses          *handler.CourseHandler
	Schedules        *handler.ScheduleHandler
	Grades           *handler.GradeHandler
	ProfessorCourses *handler.ProfessorCourseHandler
	ProgrammeCourses *handler.ProgrammeCourseHandler
	Stats            *handler.StatsHandler
}

// Register mounts all API routes under cfg.APIPrefix.
//
// Reads are open to any authenticated user and row-level scoping is
// enforced in the service layer. Mutations are gated by user type,
// recorded in the audit log, and invalidate the cached stats dashboard.
func Register(r *gin.Engine, cfg *config.Config, h Handlers, auth *service.AuthService, stats *service.StatsService, users *repository.UserRepository) {
	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.InvalidateStats(stats))

	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/register", h.Auth.Register)

	protected := api.Group("")
	protected.Use(middleware.JWT(auth))

	protected.GET("/auth/me", h.Auth.Me)

	adminOnly := middleware.RequireUserTypes(models.UserTypeDepartmentAdmin)
	staffOnly := middleware.RequireUserTypes(models.UserTypeProfessor, models.UserTypeDepartmentAdmin)

	usersGroup := protected.Group("/users")
	{
		usersGroup.GET("", h.Users.List)
		usersGroup.GET("/:id", h.Users.Get)
		usersGroup.PUT("/:id", adminOnly, middleware.Audit(users, "update", "user"), h.Users.Update)
		usersGroup.DELETE("/:id", adminOnly, middleware.Audit(users, "delete", "user"), h.Users.Delete)
	}

	studentsGroup := protected.Group("/students")
	{
		studentsGroup.GET("", h.Students.List)
		studentsGroup.GET("/:id", h.Students.Get)
		studentsGroup.GET("/:id/transcript", h.Students.Transcript)
		studentsGroup.POST("", adminOnly, middleware.Audit(users, "create", "student"), h.Students.Create)
		studentsGroup.PUT("/:id", adminOnly, middleware.Audit(users, "update", "student"), h.Students.Update)
		studentsGroup.DELETE("/:id", adminOnly, middleware.Audit(users, "delete", "student"), h.Students.Delete)
	}

	professorsGroup := protected.Group("/professors")
	{
		professorsGroup.GET("", h.Professors.List)
		professorsGroup.GET("/:id", h.Professors.Get)
		professorsGroup.POST("", adminOnly, middleware.Audit(users, "create", "professor"), h.Professors.Create)
		professorsGroup.PUT("/:id", adminOnly, middleware.Audit(users, "update", "professor"), h.Professors.Update)
		professorsGroup.DELETE("/:id", adminOnly, middleware.Audit(users, "delete", "professor"), h.Professors.Delete)
	}

	adminsGroup := protected.Group("/department-admins", adminOnly)
	{
		adminsGroup.GET("", h.DepartmentAdmins.List)
		adminsGroup.GET("/:id", h.DepartmentAdmins.Get)
		adminsGroup.POST("", middleware.Audit(users, "create", "department_admin"), h.DepartmentAdmins.Create)
		adminsGroup.PUT("/:id", middleware.Audit(users, "update", "department_admin"), h.DepartmentAdmins.Update)
		adminsGroup.DELETE("/:id", middleware.Audit(users, "delete", "department_admin"), h.DepartmentAdmins.Delete)
	}

	departmentsGroup := protected.Group("/departments")
	{
		departmentsGroup.GET("", h.Departments.List)
		departmentsGroup.GET("/:id", h.Departments.Get)
		departmentsGroup.POST("", adminOnly, middleware.Audit(users, "create", "department"), h.Departments.Create)
		departmentsGroup.PUT("/:id", adminOnly, middleware.Audit(users, "update", "department"), h.Departments.Update)
		departmentsGroup.DELETE("/:id", adminOnly, middleware.Audit(users, "delete", "department"), h.Departments.Delete)
	}

	programmesGroup := protected.Group("/programmes")
	{
		programmesGroup.GET("", h.Programmes.List)
		programmesGroup.GET("/:id", h.Programmes.Get)
		programmesGroup.POST("", adminOnly, middleware.Audit(users, "create", "programme"), h.Programmes.Create)
		programmesGroup.PUT("/:id", adminOnly, middleware.Audit(users, "update", "programme"), h.Programmes.Update)
		programmesGroup.DELETE("/:id", adminOnly, middleware.Audit(users, "delete", "programme"), h.Programmes.Delete)
	}

	coursesGroup := protected.Group("/courses")
	{
		coursesGroup.GET("", h.Courses.List)
		coursesGroup.GET("/:id", h.Courses.Get)
		coursesGroup.POST("", staffOnly, middleware.Audit(users, "create", "course"), h.Courses.Create)
		coursesGroup.PUT("/:id", staffOnly, middleware.Audit(users, "update", "course"), h.Courses.Update)
		coursesGroup.DELETE("/:id", staffOnly, middleware.Audit(users, "delete", "course"), h.Courses.Delete)
	}

	schedulesGroup := protected.Group("/schedules")
	{
		schedulesGroup.GET("", h.Schedules.List)
		schedulesGroup.GET("/:id", h.Schedules.Get)
		schedulesGroup.POST("", staffOnly, middleware.Audit(users, "create", "schedule"), h.Schedules.Create)
		schedulesGroup.PUT("/:id", staffOnly, middleware.Audit(users, "update", "schedule"), h.Schedules.Update)
		schedulesGroup.DELETE("/:id", staffOnly, middleware.Audit(users, "delete", "schedule"), h.Schedules.Delete)
	}

	gradesGroup := protected.Group("/grades")
	{
		gradesGroup.GET("", h.Grades.List)
		gradesGroup.GET("/:studentId/:courseId", h.Grades.Get)
		gradesGroup.POST("", staffOnly, middleware.Audit(users, "create", "grade"), h.Grades.Create)
		gradesGroup.PUT("/:studentId/:courseId", staffOnly, middleware.Audit(users, "upsert", "grade"), h.Grades.Upsert)
		gradesGroup.DELETE("/:studentId/:courseId", staffOnly, middleware.Audit(users, "delete", "grade"), h.Grades.Delete)
	}

	professorCoursesGroup := protected.Group("/professor-courses")
	{
		professorCoursesGroup.GET("", h.ProfessorCourses.List)
		professorCoursesGroup.POST("", adminOnly, middleware.Audit(users, "create", "professor_course"), h.ProfessorCourses.Create)
		professorCoursesGroup.DELETE("/:professorId/:courseId", adminOnly, middleware.Audit(users, "delete", "professor_course"), h.ProfessorCourses.Delete)
	}

	programmeCoursesGroup := protected.Group("/programme-courses")
	{
		programmeCoursesGroup.GET("", h.ProgrammeCourses.List)
		programmeCoursesGroup.POST("", adminOnly, middleware.Audit(users, "create", "programme_course"), h.ProgrammeCourses.Create)
		programmeCoursesGroup.DELETE("/:programmeId/:courseId", adminOnly, middleware.Audit(users, "delete", "programme_course"), h.ProgrammeCourses.Delete)
	}

	statsGroup := protected.Group("/stats", adminOnly)
	{
		statsGroup.GET("/overview", h.Stats.Overview)
		statsGroup.GET("/system", h.Stats.System)
	}
}
