package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/langsb16-collab/chinafood0205/internal/adapter/api"
	"github.com/langsb16-collab/chinafood0205/internal/adapter/api/handler"
	apimiddleware "github.com/langsb16-collab/chinafood0205/internal/adapter/api/middleware"
	"github.com/langsb16-collab/chinafood0205/internal/adapter/api/router"
	"github.com/langsb16-collab/chinafood0205/internal/adapter/repository"
	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	domainrepo "github.com/langsb16-collab/chinafood0205/internal/domain/repository"
	"github.com/langsb16-collab/chinafood0205/internal/infrastructure/eventbus"
	"github.com/langsb16-collab/chinafood0205/internal/infrastructure/firebase"
	"github.com/langsb16-collab/chinafood0205/internal/infrastructure/gemini"
	"github.com/langsb16-collab/chinafood0205/internal/infrastructure/ratelimit"
	"github.com/langsb16-collab/chinafood0205/internal/infrastructure/websocket"
	"github.com/langsb16-collab/chinafood0205/internal/usecase"
	"github.com/langsb16-collab/chinafood0205/pkg/config"
	"github.com/langsb16-collab/chinafood0205/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: %v", err)
	}
	logger.Init(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]handler.HealthCheck{}

	var (
		chatRepo    domainrepo.ChatRepository
		listingRepo domainrepo.ListingRepository
		userRepo    domainrepo.UserRepository
		directory   usecase.ProfileDirectory
		authMw      *apimiddleware.AuthMiddleware
	)

	if cfg.UseFirebase() {
		clients, err := firebase.NewClients(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to initialize Firebase: %v", err)
		}
		defer clients.Close()

		chatRepo = repository.NewFirestoreChatRepository(clients.Firestore)
		listingRepo = repository.NewFirestoreListingRepository(clients.Firestore)
		userRepo = repository.NewFirestoreUserRepository(clients.Firestore)
		directory = clients.Auth
		authMw = apimiddleware.NewAuthMiddleware(clients.Auth)
		checks["firestore"] = clients.Ping
		logger.Info("Using Firestore storage for project %s", cfg.FirebaseProject)
	} else {
		chatRepo = repository.NewMemoryChatRepository()
		listingRepo = repository.NewMemoryListingRepository()
		userRepo = repository.NewMemoryUserRepository(entity.UserProfile{
			ID:           cfg.MeID,
			Name:         cfg.MeName,
			Avatar:       cfg.MeAvatar,
			PenaltyLevel: entity.PenaltyNone,
		})
		authMw = apimiddleware.NewDevAuthMiddleware(cfg.MeID)
		logger.Warn("FIREBASE_PROJECT_ID not set: using in-memory storage and dev identity %s", cfg.MeID)
	}

	contentRepo, err := repository.NewStaticContentRepository()
	if err != nil {
		logger.Fatal("Failed to load static content: %v", err)
	}

	var assistant usecase.Assistant
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal("Failed to initialize Gemini client: %v", err)
		}
		assistant = client
		logger.Info("Assistant: Gemini model %s", cfg.GeminiModel)
	} else {
		assistant = gemini.NewFAQAssistant(contentRepo)
		logger.Warn("GEMINI_API_KEY not set: assistant answers from the FAQ only")
	}

	wsManager := websocket.NewManager()

	var (
		notifier usecase.Notifier = wsManager
		bus      *eventbus.RedisBus
	)
	if cfg.RedisAddr != "" {
		bus, err = eventbus.NewRedisBus(cfg.RedisAddr, cfg.RedisChannel, wsManager)
		if err != nil {
			logger.Fatal("Failed to connect to Redis: %v", err)
		}
		defer bus.Close()
		notifier = bus
		checks["redis"] = bus.Ping
		logger.Info("Realtime events fan out through Redis channel %s", cfg.RedisChannel)
	}

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine(ctx)

	profileUseCase := usecase.NewProfileUseCase(userRepo, directory)
	chatUseCase := usecase.NewChatUseCase(chatRepo, profileUseCase, assistant, notifier, rateLimiter, cfg.AssistantTimeout)
	listingUseCase := usecase.NewListingUseCase(listingRepo, profileUseCase, rateLimiter)
	assistantUseCase := usecase.NewAssistantUseCase(assistant, rateLimiter, cfg.AssistantTimeout)
	contentUseCase := usecase.NewContentUseCase(contentRepo)

	handler.Setup(chatUseCase, listingUseCase, assistantUseCase, contentUseCase, profileUseCase)
	handler.SetupHealthHandler(checks)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.AllowedOrigins}))
	} else {
		e.Use(middleware.CORS())
	}
	e.Use(apimiddleware.APIRateLimit(float64(cfg.RateLimitPerSecond)))

	e.Validator = api.NewValidator()

	penaltyMw := apimiddleware.NewPenaltyMiddleware(userRepo)
	wsHandler := handler.NewWebSocketHandler(wsManager, cfg.AllowedOrigins)

	router.Setup(e, authMw, penaltyMw, wsHandler)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return wsManager.Run(gctx)
	})

	if bus != nil {
		g.Go(func() error {
			return bus.Run(gctx)
		})
	}

	g.Go(func() error {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("Shutting down server...")
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped: %v", err)
	}
}
