package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"lashdiary/internal/config"
	"lashdiary/internal/database"
	"lashdiary/internal/domain"
	"lashdiary/internal/middleware"
	"lashdiary/internal/modules/booking"
	"lashdiary/internal/modules/consultation"
	"lashdiary/internal/modules/notification"
	"lashdiary/internal/modules/project"
	"lashdiary/internal/pkg/calendar"
	"lashdiary/internal/pkg/logger"
	"lashdiary/internal/pkg/mailer"
	"lashdiary/internal/pkg/slotlock"
	"lashdiary/internal/pkg/timeparse"
	"lashdiary/internal/repository"
)

func main() {
	_ = godotenv.Load()
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(config.IsProduction())
	defer logger.Get().Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed: ", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed: ", err)
	}

	showcaseRepo := repository.NewShowcaseBookingRepository(db)
	consultationRepo := repository.NewConsultationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	var sender mailer.Sender
	if cfg.ResendAPIKey != "" {
		sender = mailer.NewResendSender(cfg.ResendAPIKey, cfg.MailFrom)
	} else {
		logger.Get().Warn("RESEND_API_KEY not set, emails will be logged only")
		sender = mailer.NewNoopSender()
	}

	var calSync calendar.Sync
	if cfg.GoogleCredentialsFile != "" && cfg.GoogleCalendarID != "" {
		calSync, err = calendar.NewGoogleSync(context.Background(), cfg.GoogleCredentialsFile, cfg.GoogleCalendarID)
		if err != nil {
			log.Fatal("google calendar init failed: ", err)
		}
	} else {
		logger.Get().Warn("google calendar not configured, events will be logged only")
		calSync = calendar.NewNoopSync()
	}

	notificationService := notification.NewService(outboxRepo, map[string]notification.Executor{
		domain.ActionEmail:        notification.NewEmailExecutor(sender),
		domain.ActionCalendarSync: notification.NewCalendarExecutor(calSync, showcaseRepo),
	})
	worker, err := notificationService.StartWorker(cfg.OutboxCron)
	if err != nil {
		log.Fatal("outbox worker start failed: ", err)
	}
	defer worker.Stop()

	loc := timeparse.BusinessZone(cfg.BusinessTimezone)
	locks := slotlock.New()
	meetingDuration := time.Duration(cfg.MeetingDurationMinutes) * time.Minute

	bookingService := booking.NewService(
		showcaseRepo,
		consultationRepo,
		projectRepo,
		notificationService,
		locks,
		loc,
		meetingDuration,
		cfg.OwnerEmail,
	)
	bookingHandler := booking.NewHandler(bookingService)

	consultationService := consultation.NewService(
		consultationRepo,
		showcaseRepo,
		notificationService,
		locks,
		loc,
		cfg.OwnerEmail,
	)
	consultationHandler := consultation.NewHandler(consultationService)

	projectService := project.NewService(projectRepo)
	projectHandler := project.NewHandler(projectService)

	outboxHandler := notification.NewHandler(notificationService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger())

	v1 := r.Group("/api/v1")
	{
		bookingHandler.RegisterRoutes(v1)
		consultationHandler.RegisterRoutes(v1)
		projectHandler.RegisterRoutes(v1)
		outboxHandler.RegisterRoutes(v1)
	}

	logger.Get().Info("starting server", zap.String("port", cfg.AppPort), zap.String("env", cfg.Env))
	if err := r.Run(":" + cfg.AppPort); err != nil {
		log.Fatal(err)
	}
}
