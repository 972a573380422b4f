package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"clubscheduler/config"
	_ "clubscheduler/docs"
	"clubscheduler/internal/adapters/auth"
	"clubscheduler/internal/adapters/broker"
	"clubscheduler/internal/adapters/email"
	"clubscheduler/internal/adapters/lock"
	httpdelivery "clubscheduler/internal/delivery/http"
	"clubscheduler/internal/delivery/http/controllers"
	"clubscheduler/internal/domain"
	"clubscheduler/internal/repository/postgres"
	"clubscheduler/internal/services"
)

// @title Club Scheduler API
// @version 1.0
// @description Court reservations, trainings, tournaments and eligibility for a sports club.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := config.InitTracer(ctx, cfg)
	if err != nil {
		return err
	}
	defer shutdownTracer(context.Background())

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return err
	}

	publisher, closePublisher := newPublisher(cfg, logger)
	defer closePublisher()
	locker := newLocker(cfg, logger)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		return err
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	userCategoryRepo := postgres.NewUserCategoryRepository(db)
	trainingRepo := postgres.NewTrainingRepository(db)
	tournamentRepo := postgres.NewTournamentRepository(db)

	// Services
	jwt := auth.NewJWT(cfg.JWTSecret)
	userService := services.NewUserService(userRepo, auth.NewBcryptHasher(0), jwt, cfg.TokenExpiry, emailService, logger)
	categoryService := services.NewCategoryService(
		categoryRepo, postgres.NewCategoryRequirementRepository(db), userCategoryRepo, userRepo, logger,
	)
	courtService := services.NewCourtService(
		postgres.NewCourtRepository(db), postgres.NewCourtReservationRepository(db), locker, publisher, logger,
	)
	tuitionService := services.NewTuitionService(postgres.NewTuitionRepository(db), cfg.TuitionCurrency, logger)
	trainingService := services.NewTrainingService(services.TrainingDeps{
		Trainings:     trainingRepo,
		Registrations: postgres.NewTrainingRegistrationRepository(db),
		Categories:    categoryRepo,
		UserCategory:  userCategoryRepo,
		Users:         userRepo,
		Courts:        courtService,
		Eligibility:   categoryService,
		Tuition:       tuitionService,
		Email:         emailService,
		Publisher:     publisher,
		Currency:      cfg.TuitionCurrency,
	}, logger, cfg.ContextTimeout)
	tournamentService := services.NewTournamentService(services.TournamentDeps{
		Tournaments:   tournamentRepo,
		Registrations: postgres.NewTournamentRegistrationRepository(db),
		Attendance:    postgres.NewTournamentAttendanceRepository(db),
		Categories:    categoryRepo,
		UserCategory:  userCategoryRepo,
		Users:         userRepo,
		Courts:        courtService,
		Eligibility:   categoryService,
		Email:         emailService,
		Publisher:     publisher,
	}, logger, cfg.ContextTimeout)
	requestService := services.NewRequestService(postgres.NewRequestRepository(db), logger)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Users:       controllers.NewUserController(logger, userService),
		Categories:  controllers.NewCategoryController(logger, categoryService),
		Courts:      controllers.NewCourtController(logger, courtService),
		Trainings:   controllers.NewTrainingController(logger, trainingService),
		Tournaments: controllers.NewTournamentController(logger, tournamentService),
		Tuitions:    controllers.NewTuitionController(logger, tuitionService),
		Requests:    controllers.NewRequestController(logger, requestService),
	}, jwt, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpdelivery.NewHandler(mux, logger, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newPublisher connects to RabbitMQ when RABBIT_URL is set and otherwise logs
// domain events locally.
func newPublisher(cfg *config.Config, logger *slog.Logger) (domain.EventPublisher, func()) {
	if cfg.RabbitURL == "" {
		return broker.NewNoopPublisher(logger), func() {}
	}
	pub, err := broker.NewPublisher(cfg.RabbitURL, cfg.SchedulingExchange)
	if err != nil {
		logger.Warn("rabbitmq unavailable, domain events will only be logged", "err", err)
		return broker.NewNoopPublisher(logger), func() {}
	}
	return pub, func() {
		if err := pub.Close(); err != nil {
			logger.Warn("close publisher", "err", err)
		}
	}
}

// newLocker returns a Redis-backed court lock when REDIS_ADDR is set.
func newLocker(cfg *config.Config, logger *slog.Logger) domain.Locker {
	if cfg.RedisAddr == "" {
		return lock.Noop{}
	}
	client, err := lock.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, 0)
	if err != nil {
		logger.Warn("redis unavailable, court bookings rely on the database constraint", "err", err)
		return lock.Noop{}
	}
	return lock.NewRedisLocker(client, lock.Config{TTL: cfg.CourtLockTTL, Wait: cfg.CourtLockTTL / 2})
}
