package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	"vehiql/internal/adapter/api"
	"vehiql/internal/adapter/api/handler"
	apimiddleware "vehiql/internal/adapter/api/middleware"
	"vehiql/internal/adapter/api/router"
	"vehiql/internal/adapter/repository"
	domainrepo "vehiql/internal/domain/repository"
	"vehiql/internal/domain/service"
	"vehiql/internal/infrastructure/cache"
	"vehiql/internal/infrastructure/database"
	"vehiql/internal/infrastructure/firebase"
	"vehiql/internal/infrastructure/metrics"
	"vehiql/internal/infrastructure/ratelimit"
	"vehiql/internal/usecase"
	"vehiql/pkg/config"
	"vehiql/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.SetDebug(!cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opt, err := firebaseCredentials(cfg)
	if err != nil {
		log.Fatalf("Failed to resolve Firebase credentials: %v", err)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	db, err := database.Open(ctx, cfg.DatabaseURL, database.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		Debug:        !cfg.IsProduction(),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	checks := map[string]handler.HealthCheck{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	var carCache domainrepo.CarCache = repository.NoopCarCache{}
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		carCache = repository.NewRedisCarCache(redisClient, cfg.FacetCacheTTL, cfg.SavedCarsTTL)
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	} else {
		logger.Warn("REDIS_ADDR not set, running without cache")
	}

	var classifier service.CarImageClassifier
	if cfg.GeminiAPIKey != "" {
		gemini, err := service.NewGeminiCarClassifier(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini classifier: %v", err)
		}
		defer gemini.Close()
		classifier = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, image search is disabled")
	}

	carRepo := repository.NewGormCarRepository(db)
	savedCarRepo := repository.NewGormSavedCarRepository(db)
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	dealershipRepo := repository.NewFirestoreDealershipRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)
	m := metrics.New()

	imageLimiter := ratelimit.NewRateLimiter(cfg.ImageSearchRate, cfg.ImageSearchBurst)
	apiLimiter := ratelimit.NewRateLimiter(cfg.APIRatePerMin, cfg.APIRatePerMin/2)
	imageLimiter.StartCleanupRoutine(ctx, 10*time.Minute, time.Hour)
	apiLimiter.StartCleanupRoutine(ctx, 10*time.Minute, time.Hour)

	carUseCase := usecase.NewCarUseCase(carRepo, savedCarRepo, carCache)
	wishlistUseCase := usecase.NewWishlistUseCase(savedCarRepo, carRepo, userRepo, carCache).WithRecorder(m)
	imageSearchUseCase := usecase.NewImageSearchUseCase(classifier, imageLimiter)
	userUseCase := usecase.NewUserUseCase(userRepo, firebaseAuthClient)
	settingsUseCase := usecase.NewSettingsUseCase(dealershipRepo)
	adminCarUseCase := usecase.NewAdminCarUseCase(carRepo, carCache)

	handler.Setup(carUseCase, wishlistUseCase, imageSearchUseCase, userUseCase, settingsUseCase, adminCarUseCase)
	handler.SetupHealthHandler(checks)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("6M"))

	e.Validator = api.NewValidator()

	if cfg.MetricsEnabled {
		e.Use(m.Middleware())
		e.GET("/metrics", m.Handler())
	}

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient, userUseCase)
	adminMiddleware := apimiddleware.NewAdminMiddleware()

	router.Setup(e, authMiddleware, adminMiddleware, apimiddleware.RateLimit(apiLimiter))

	errGrp, ctx := errgroup.WithContext(ctx)

	errGrp.Go(func() error {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	errGrp.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := errGrp.Wait(); err != nil {
		logger.Error("Server stopped with error: %v", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

// firebaseCredentials prefers inline JSON (production) over a key file.
func firebaseCredentials(cfg *config.Config) (option.ClientOption, error) {
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON)), nil
	}

	if _, err := os.Stat(cfg.FirebaseServiceAccountPath); err != nil {
		return nil, err
	}
	logger.Info("Using Firebase service account from file: %s", cfg.FirebaseServiceAccountPath)
	return option.WithCredentialsFile(cfg.FirebaseServiceAccountPath), nil
}
