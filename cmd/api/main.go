package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/clinicware/doctor-portal-api/internal/auth"
	"github.com/clinicware/doctor-portal-api/internal/cache"
	"github.com/clinicware/doctor-portal-api/internal/config"
	"github.com/clinicware/doctor-portal-api/internal/db"
	"github.com/clinicware/doctor-portal-api/internal/handlers"
	"github.com/clinicware/doctor-portal-api/internal/middleware"
	"github.com/clinicware/doctor-portal-api/internal/payments"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	logger.Info("mongo connected", slog.String("database", cfg.MongoDatabase))

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// --- Cache ---
	var store cache.Cache = cache.NewNoop()
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		logger.Info("redis connected", slog.String("addr", cfg.RedisAddr))
		store = redisCache
	}

	tokenManager := auth.NewManager(cfg.TokenSecret)
	gateway := payments.NewStripeGateway(cfg.StripeSecretKey)

	h := handlers.NewHandler(cols, tokenManager, store, gateway, logger, time.Duration(cfg.CacheTTLSeconds)*time.Second)

	// --- Gin Router ---
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	requireAuth := middleware.RequireAuth(tokenManager)
	requireAdmin := middleware.RequireAdmin(h.RoleLookup())

	// --- Routes ---
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "doctor portal server on")
	})

	r.PUT("/user/:email", h.UpsertUser)
	r.POST("/login", h.Login)
	r.GET("/users", requireAuth, h.ListUsers)
	r.PUT("/user/admin/:email", requireAuth, requireAdmin, h.MakeAdmin)
	r.GET("/admin/:email", h.CheckAdmin)

	r.GET("/appointments", h.ListAppointments)
	r.GET("/available", h.GetAvailable)

	r.POST("/booking", h.CreateBooking)
	r.GET("/bookings", requireAuth, h.ListBookings)
	r.PATCH("/booking/:id", requireAuth, h.ConfirmPayment)
	r.GET("/payment/:id", requireAuth, h.GetPayment)

	r.POST("/doctor", requireAuth, requireAdmin, h.AddDoctor)
	r.GET("/doctors", requireAuth, requireAdmin, h.ListDoctors)
	r.DELETE("/doctor/:id", requireAuth, requireAdmin, h.DeleteDoctor)

	r.POST("/create-payment-intent", requireAuth, h.CreatePaymentIntent)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("server listening", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", slog.String("error", err.Error()))
	}
}
