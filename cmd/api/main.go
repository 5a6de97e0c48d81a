package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Shadowina/ecole-portal-api/api/swagger"
	"github.com/Shadowina/ecole-portal-api/internal/handler"
	"github.com/Shadowina/ecole-portal-api/internal/middleware"
	"github.com/Shadowina/ecole-portal-api/internal/repository"
	"github.com/Shadowina/ecole-portal-api/internal/router"
	"github.com/Shadowina/ecole-portal-api/internal/service"
	"github.com/Shadowina/ecole-portal-api/pkg/cache"
	"github.com/Shadowina/ecole-portal-api/pkg/config"
	"github.com/Shadowina/ecole-portal-api/pkg/database"
	"github.com/Shadowina/ecole-portal-api/pkg/export"
	"github.com/Shadowina/ecole-portal-api/pkg/logger"
	corsmiddleware "github.com/Shadowina/ecole-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/Shadowina/ecole-portal-api/pkg/middleware/requestid"
)

// @title Ecole Portal API
// @version 1.0.0
// @description Student portal backend for schools, programmes, courses and grades
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheRepo *repository.CacheRepository
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close()
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Stats.CacheTTL, logr, cacheRepo != nil)

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	professorRepo := repository.NewProfessorRepository(db)
	adminRepo := repository.NewDepartmentAdminRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	programmeRepo := repository.NewProgrammeRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	professorCourseRepo := repository.NewProfessorCourseRepository(db)
	programmeCourseRepo := repository.NewProgrammeCourseRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	authSvc := service.NewAuthService(userRepo, studentRepo, professorRepo, adminRepo, programmeRepo, departmentRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	scopeSvc := service.NewScopeService(departmentRepo, departmentRepo, programmeRepo, logr)
	userSvc := service.NewUserService(userRepo, studentRepo, professorRepo, adminRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, gradeRepo, userRepo, programmeRepo, scopeSvc, validate, logr)
	professorSvc := service.NewProfessorService(professorRepo, professorCourseRepo, userRepo, departmentRepo, scopeSvc, validate, logr)
	adminSvc := service.NewDepartmentAdminService(adminRepo, departmentRepo, userRepo, validate, logr)
	departmentSvc := service.NewDepartmentService(departmentRepo, programmeRepo, adminRepo, scopeSvc, validate, logr)
	programmeSvc := service.NewProgrammeService(programmeRepo, studentRepo, programmeCourseRepo, departmentRepo, scopeSvc, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, scheduleRepo, gradeRepo, professorCourseRepo, programmeCourseRepo, validate, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, courseRepo, validate, logr)
	gradeSvc := service.NewGradeService(gradeRepo, studentRepo, courseRepo, validate, logr)
	professorCourseSvc := service.NewProfessorCourseService(professorCourseRepo, professorRepo, courseRepo, validate, logr)
	programmeCourseSvc := service.NewProgrammeCourseService(programmeCourseRepo, programmeRepo, courseRepo, validate, logr)
	statsSvc := service.NewStatsService(statsRepo, cacheSvc, cfg.Stats.CacheTTL, logr)
	transcriptSvc := service.NewTranscriptService(studentRepo, gradeRepo, scopeSvc, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.Register(r, cfg, router.Handlers{
		Auth:             handler.NewAuthHandler(authSvc),
		Users:            handler.NewUserHandler(userSvc),
		Students:         handler.NewStudentHandler(studentSvc, transcriptSvc),
		Professors:       handler.NewProfessorHandler(professorSvc),
		DepartmentAdmins: handler.NewDepartmentAdminHandler(adminSvc),
		Departments:      handler.NewDepartmentHandler(departmentSvc),
		Programmes:       handler.NewProgrammeHandler(programmeSvc),
		Courses:          handler.NewCourseHandler(courseSvc),
		Schedules:        handler.NewScheduleHandler(scheduleSvc),
		Grades:           handler.NewGradeHandler(gradeSvc),
		ProfessorCourses: handler.NewProfessorCourseHandler(professorCourseSvc),
		ProgrammeCourses: handler.NewProgrammeCourseHandler(programmeCourseSvc),
		Stats:            handler.NewStatsHandler(statsSvc, metricsSvc),
	}, authSvc, statsSvc, userRepo)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
