package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"snapquest/internal/events"
	"snapquest/internal/handlers"
	mw "snapquest/internal/middleware"
	"snapquest/internal/missions"
	"snapquest/internal/payment"
	"snapquest/internal/session"
	"snapquest/internal/store"
	"snapquest/internal/vision"
)

func mustGetenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

func openStore(driver, path string) (store.Store, error) {
	if driver == "file" {
		return store.OpenFileStore(path)
	}
	return store.OpenSQLiteStore(path)
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	port := mustGetenv("PORT", "8080")
	storeDriver := mustGetenv("STORE_DRIVER", "sqlite")
	storePath := mustGetenv("STORE_PATH", "data/snapquest.db")
	loginDelay := envDuration("LOGIN_DELAY_MS", 1000)
	subscribeDelay := envDuration("SUBSCRIBE_DELAY_MS", 1000)
	generateDelay := envDuration("GENERATE_DELAY_MS", 2000)

	st, err := openStore(storeDriver, storePath)
	if err != nil {
		slog.Error("failed to open store", slog.Any("err", err))
		os.Exit(1)
	}
	defer st.Close()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		slog.Error("failed to build request logger", slog.Any("err", err))
		os.Exit(1)
	}
	defer zapLogger.Sync()

	bus := events.NewBus()
	sessions := session.NewManager(st, session.WithLoginDelay(loginDelay))
	missionSvc := missions.NewService(st, sessions, logger,
		missions.WithGenerateDelay(generateDelay))
	paymentSvc := payment.NewService(sessions, subscribeDelay)
	visionSvc := vision.NewService(st, sessions, bus)

	bus.Subscribe(events.VisionUpdated, func(e events.Event) {
		slog.Info("vision updated", slog.String("user_id", e.UserID))
	})
	bus.Subscribe(events.VisionImageCreated, func(e events.Event) {
		slog.Info("vision image created", slog.String("user_id", e.UserID))
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.ZapRequestLogger(zapLogger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(sessions, []byte(jwtSecret))
	missionHandler := handlers.NewMissionHandler(missionSvc)
	paymentHandler := handlers.NewPaymentHandler(paymentSvc)
	visionHandler := handlers.NewVisionHandler(sessions, visionSvc)
	dashboardHandler := handlers.NewDashboardHandler(sessions, missionSvc)
	authMW := mw.NewAuthMiddleware([]byte(jwtSecret))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", authHandler.Login)
		api.Get("/missions/examples", missionHandler.Examples)
		// generation is open to guests; a synthesized guest id owns the result
		api.Post("/missions", missionHandler.Generate)
		api.Get("/missions/{id}", missionHandler.Get)
		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)
			pr.Post("/auth/logout", authHandler.Logout)
			pr.Get("/me", authHandler.GetMe)
			pr.Post("/subscribe", paymentHandler.Subscribe)
			pr.Get("/missions", missionHandler.List)
			pr.Post("/missions/{id}/complete", missionHandler.Complete)
			pr.Get("/dashboard", dashboardHandler.Get)
			pr.Get("/vision", visionHandler.Get)
			pr.Put("/vision", visionHandler.Save)
			pr.Post("/vision/image", visionHandler.GenerateImage)
		})
	})

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		slog.Info("server starting", slog.String("addr", ":"+port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.Any("err", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	slog.Info("server stopped")
}
