package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ndmanh/studynotes/config"
	"github.com/ndmanh/studynotes/database"
	_ "github.com/ndmanh/studynotes/docs" // Swagger docs - auto-generated
	adminctrl "github.com/ndmanh/studynotes/internal/controller/admin"
	authctrl "github.com/ndmanh/studynotes/internal/controller/auth"
	userctrl "github.com/ndmanh/studynotes/internal/controller/user"
	"github.com/ndmanh/studynotes/internal/logger"
	"github.com/ndmanh/studynotes/internal/middleware"
	"github.com/ndmanh/studynotes/internal/model"
	"github.com/ndmanh/studynotes/internal/repository"
	"github.com/ndmanh/studynotes/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title StudyNotes API
// @version 1.0
// @description Student note-taking API with AI-generated quizzes and summaries.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewStudentRepository,
			repository.NewModuleRepository,
			repository.NewNoteRepository,
			repository.NewQuizRepository,
			repository.NewAttemptRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewGeminiQuizService,
			service.NewGradingService,
			service.NewQuizService,
			service.NewAttemptService,
			service.NewNoteService,
			service.NewModuleService,
			service.NewStudentService,
		),

		// API Controllers Layer
		fx.Provide(
			authctrl.NewAuthController,
			adminctrl.NewStudentController,
			userctrl.NewNoteController,
			userctrl.NewQuizController,
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

	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server
// lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *authctrl.AuthController,
	studentCtrl *adminctrl.StudentController,
	noteCtrl *userctrl.NoteController,
	quizCtrl *userctrl.QuizController,
) {
	api := router.Group("/api/v1")

	api.POST("/auth/login", authCtrl.Login)

	// Admin Routes
	adminGroup := api.Group("/admin")
	{
		adminGroup.POST("/students", studentCtrl.CreateStudent)
		adminGroup.GET("/students", studentCtrl.GetStudents)
		adminGroup.GET("/students/:student_id", studentCtrl.GetStudent)
		adminGroup.PUT("/students/:student_id", studentCtrl.UpdateStudent)
		adminGroup.DELETE("/students/:student_id", studentCtrl.DeleteStudent)
	}

	// Student Routes (bearer token required)
	studentGroup := api.Group("")
	studentGroup.Use(middleware.RequireStudent(cfg))
	{
		studentGroup.POST("/modules", noteCtrl.CreateModule)
		studentGroup.GET("/modules", noteCtrl.GetModules)
		studentGroup.PUT("/modules/:module_id", noteCtrl.UpdateModule)
		studentGroup.DELETE("/modules/:module_id", noteCtrl.DeleteModule)

		studentGroup.POST("/notes", noteCtrl.CreateNote)
		studentGroup.GET("/notes", noteCtrl.GetNotes)
		studentGroup.GET("/notes/:note_id", noteCtrl.GetNote)
		studentGroup.PUT("/notes/:note_id", noteCtrl.UpdateNote)
		studentGroup.DELETE("/notes/:note_id", noteCtrl.DeleteNote)
		studentGroup.POST("/notes/:note_id/summary", noteCtrl.SummarizeNote)

		studentGroup.POST("/notes/:note_id/quizzes", quizCtrl.GenerateQuiz)
		studentGroup.GET("/notes/:note_id/quizzes", quizCtrl.GetQuizzesForNote)
		studentGroup.GET("/quizzes", quizCtrl.GetAllQuizzes)
		studentGroup.GET("/quizzes/:quiz_id", quizCtrl.GetQuiz)
		studentGroup.DELETE("/quizzes/:quiz_id", quizCtrl.DeleteQuiz)
		studentGroup.POST("/quizzes/:quiz_id/attempts", quizCtrl.SubmitAttempt)
		studentGroup.GET("/quizzes/:quiz_id/attempts", quizCtrl.GetAttemptHistory)
		studentGroup.GET("/quizzes/:quiz_id/attempts/latest", quizCtrl.GetLatestAttempt)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("StudyNotes API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
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
		&model.Student{},
		&model.Module{},
		&model.Note{},
		&model.Quiz{},
		&model.Question{},
		&model.Answer{},
		&model.QuizAttempt{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
