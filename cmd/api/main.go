package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"

	"studymarket/internal/adapter/api"
	"studymarket/internal/adapter/api/handler"
	apimiddleware "studymarket/internal/adapter/api/middleware"
	"studymarket/internal/adapter/api/router"
	"studymarket/internal/adapter/repository"
	"studymarket/internal/infrastructure/auth"
	"studymarket/internal/infrastructure/metrics"
	"studymarket/internal/infrastructure/mongodb"
	"studymarket/internal/infrastructure/ratelimit"
	"studymarket/internal/usecase"
	"studymarket/pkg/config"
	"studymarket/pkg/logger"
)

const idleLimiterTTL = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	logger.Init(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()

	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Error("Failed to connect to MongoDB: %v", err)
		os.Exit(1)
	}
	defer mongodb.Disconnect(client)

	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logger.Error("Failed to ensure indexes: %v", err)
		os.Exit(1)
	}

	userRepo := repository.NewMongoUserRepository(db)
	courseRepo := repository.NewMongoCourseRepository(db)
	teacherRepo := repository.NewMongoTeacherRepository(db)
	studySheetRepo := repository.NewMongoStudySheetRepository(db)
	purchaseRepo := repository.NewMongoPurchaseRepository(db)
	paymentRepo := repository.NewMongoPaymentRepository(db)
	approvalRepo := repository.NewMongoApprovalRepository(db)
	auditLogRepo := repository.NewMongoAuditLogRepository(db)
	leaseListingRepo := repository.NewMongoLeaseListingRepository(db)
	interestRepo := repository.NewMongoInterestRequestRepository(db)
	reviewRepo := repository.NewMongoReviewRepository(db)
	teacherReviewRepo := repository.NewMongoTeacherReviewRepository(db)
	reportRepo := repository.NewMongoReportRepository(db)
	withdrawalRepo := repository.NewMongoWithdrawalRepository(db)
	sequenceRepo := repository.NewMongoSequenceRepository(db)
	txManager := repository.NewMongoTxManager(client)

	tokenService, err := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Second)
	if err != nil {
		logger.Error("Failed to initialize token service: %v", err)
		os.Exit(1)
	}
	hasher := auth.NewPasswordHasher(0)

	memoryCooldowns := ratelimit.NewMemoryCooldownStore()
	var cooldowns ratelimit.CooldownStore = memoryCooldowns
	if cfg.RedisAddr != "" {
		redisClient := ratelimit.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable at %s, using in-memory cooldowns: %v", cfg.RedisAddr, err)
		} else {
			cooldowns = ratelimit.NewRedisCooldownStore(redisClient, "studymarket:password-cooldown")
			logger.Info("Using Redis cooldown store at %s", cfg.RedisAddr)
		}
	}

	tx := usecase.NewTransactor(txManager, sequenceRepo, auditLogRepo)

	handler.Setup(handler.UseCases{
		Auth:          usecase.NewAuthUseCase(userRepo, sequenceRepo, hasher, tokenService),
		User:          usecase.NewUserUseCase(userRepo, paymentRepo, hasher, cooldowns, cfg.PasswordCooldown),
		Course:        usecase.NewCourseUseCase(courseRepo, teacherRepo, reviewRepo, teacherReviewRepo, tx),
		StudySheet:    usecase.NewStudySheetUseCase(studySheetRepo, courseRepo, purchaseRepo, paymentRepo, approvalRepo, tx),
		LeaseListing:  usecase.NewLeaseListingUseCase(leaseListingRepo, interestRepo, approvalRepo, tx),
		Review:        usecase.NewReviewUseCase(reviewRepo, courseRepo, reportRepo, tx),
		TeacherReview: usecase.NewTeacherReviewUseCase(teacherReviewRepo, courseRepo, reportRepo, tx),
		Moderation:    usecase.NewModerationUseCase(studySheetRepo, leaseListingRepo, reviewRepo, teacherReviewRepo, teacherRepo, approvalRepo, tx),
		Payment:       usecase.NewPaymentUseCase(paymentRepo, userRepo, tx),
		Report:        usecase.NewReportUseCase(reportRepo, reviewRepo, teacherReviewRepo, tx),
		Withdrawal:    usecase.NewWithdrawalUseCase(withdrawalRepo, userRepo, tx),
	})
	handler.SetupHealthHandler(func(ctx context.Context) error {
		return mongodb.Ping(ctx, client)
	})

	limiters := apimiddleware.NewLimiters(cfg.RateLimitRPS, cfg.RateLimitBurst)
	e := newServer(cfg, tokenService, limiters)

	jobs, err := startJobs(limiters, memoryCooldowns)
	if err != nil {
		logger.Error("Failed to schedule housekeeping jobs: %v", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Error("Server stopped: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	<-jobs.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
	}
	logger.Info("Server exited")
}

func newServer(cfg *config.Config, tokens *auth.TokenService, limiters *apimiddleware.Limiters) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.ErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(apimiddleware.RequestLogger())
	e.Use(middleware.CORS())
	e.Use(metrics.Middleware())

	router.Setup(e, apimiddleware.NewAuthMiddleware(tokens), limiters)
	if cfg.IsDevelopment() {
		logger.Debug("Registered %d routes", len(e.Routes()))
	}
	return e
}

var (
	limiterCleanupSpec = "@every 5m"
	cooldownPurgeSpec  = "@every 10m"
)

// startJobs schedules housekeeping for in-process limiter state.
func startJobs(limiters *apimiddleware.Limiters, cooldowns *ratelimit.MemoryCooldownStore) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(limiterCleanupSpec, func() {
		if removed := limiters.Cleanup(idleLimiterTTL); removed > 0 {
			logger.Debug("rate limiter cleanup: dropped %d idle buckets", removed)
		}
	}); err != nil {
		return nil, fmt.Errorf("limiter cleanup job: %w", err)
	}
	if _, err := c.AddFunc(cooldownPurgeSpec, func() {
		if removed := cooldowns.Purge(); removed > 0 {
			logger.Debug("cooldown purge: dropped %d expired entries", removed)
		}
	}); err != nil {
		return nil, fmt.Errorf("cooldown purge job: %w", err)
	}
	c.Start()
	return c, nil
}
