package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrick-john02/ATCRS/config"
	"github.com/patrick-john02/ATCRS/database"
	_ "github.com/patrick-john02/ATCRS/docs" // Swagger docs
	adminctrl "github.com/patrick-john02/ATCRS/internal/controller/admin"
	userctrl "github.com/patrick-john02/ATCRS/internal/controller/user"
	"github.com/patrick-john02/ATCRS/internal/logger"
	"github.com/patrick-john02/ATCRS/internal/model"
	"github.com/patrick-john02/ATCRS/internal/repository"
	"github.com/patrick-john02/ATCRS/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title ATCRS Admission Testing API
// @version 1.0
// @description Admissions and exam management backend: applicants apply to scheduled exams, take them online, and receive course recommendations by score.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewCourseRepository,
			repository.NewExamRepository,
			repository.NewQuestionRepository,
			repository.NewApplicantExamRepository,
			repository.NewApplicantAnswerRepository,
			repository.NewApplicantRepository,
			repository.NewAdminUserRepository,
		),

		fx.Provide(
			service.NewAttemptService,
			service.NewAnswerService,
			service.NewRecommendationService,
			service.NewApplicantService,
			service.NewAdminExamService,
			service.NewCourseService,
			service.NewAdminUserService,
		),

		fx.Provide(
			userctrl.NewApplicantExamController,
			adminctrl.NewAdminExamController,
			adminctrl.NewAdminCourseController,
			adminctrl.NewSuperAdminController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the
// HTTP server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	applicantExamCtrl *userctrl.ApplicantExamController,
	adminExamCtrl *adminctrl.AdminExamController,
	adminCourseCtrl *adminctrl.AdminCourseController,
	superAdminCtrl *adminctrl.SuperAdminController,
) {
	api := router.Group("/api/v1")
	{
		api.GET("/exams/upcoming", applicantExamCtrl.UpcomingExams)
		api.POST("/exams/apply", applicantExamCtrl.Apply)

		attempts := api.Group("/attempts")
		attempts.POST("/:attempt_id/start", applicantExamCtrl.Start)
		attempts.GET("/:attempt_id", applicantExamCtrl.Get)
		attempts.POST("/:attempt_id/answers", applicantExamCtrl.SubmitAnswer)
		attempts.POST("/:attempt_id/complete", applicantExamCtrl.Complete)

		applicants := api.Group("/applicants")
		applicants.GET("/:applicant_id/history", applicantExamCtrl.History)
		applicants.GET("/:applicant_id/recent-scores", applicantExamCtrl.RecentScores)
	}

	adminAPI := router.Group("/api/v1/admin")
	{
		exams := adminAPI.Group("/exams")
		exams.POST("", adminExamCtrl.CreateExam)
		exams.GET("", adminExamCtrl.ListExams)
		exams.POST("/expire-sweep", adminExamCtrl.ExpireSweep)
		exams.GET("/:exam_id", adminExamCtrl.GetExam)
		exams.PUT("/:exam_id", adminExamCtrl.UpdateExam)
		exams.DELETE("/:exam_id", adminExamCtrl.DeleteExam)
		exams.POST("/:exam_id/questions", adminExamCtrl.AddQuestion)
		exams.GET("/:exam_id/results", adminExamCtrl.ListResults)
		adminAPI.DELETE("/questions/:question_id", adminExamCtrl.DeleteQuestion)

		courses := adminAPI.Group("/courses")
		courses.POST("", adminCourseCtrl.CreateCourse)
		courses.GET("", adminCourseCtrl.ListCourses)
		courses.PUT("/:course_id", adminCourseCtrl.UpdateCourse)
		courses.DELETE("/:course_id", adminCourseCtrl.DeleteCourse)
	}

	superAPI := router.Group("/api/v1/superadmin")
	{
		admins := superAPI.Group("/admins")
		admins.POST("", superAdminCtrl.CreateAdmin)
		admins.GET("", superAdminCtrl.ListAdmins)
		admins.PUT("/:admin_id", superAdminCtrl.UpdateAdmin)
		admins.DELETE("/:admin_id", superAdminCtrl.DeactivateAdmin)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("ATCRS API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Course{},
		&model.ApplicantProfile{},
		&model.AdminUser{},
		&model.Exam{},
		&model.Question{},
		&model.Choice{},
		&model.ApplicantExam{},
		&model.ApplicantAnswer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
