package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gym_backoffice/internal/backup"
	"gym_backoffice/internal/config"
	"gym_backoffice/internal/database"
	"gym_backoffice/internal/router"
	"gym_backoffice/internal/session"
	"gym_backoffice/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred closes always happen.
// Errors are logged where they occur.
func run() error {
	cfg := config.Load()

	// Initialize Logger
	utils.InitLogger(cfg.LogLevel)

	db, err := database.Connect(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		utils.LogError(err, "Failed to connect to database")
		return err
	}
	defer db.Close()

	ctx := context.Background()
	var revoked session.Store
	if cfg.RedisAddr != "" {
		client, err := session.NewRedisClient(ctx, session.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			utils.LogError(err, "Failed to connect to Redis")
			return err
		}
		defer client.Close()
		revoked = session.NewRedisStore(client)
	} else {
		utils.LogInfo("REDIS_ADDR not set, keeping revoked sessions in memory")
		revoked = session.NewMemoryStore()
	}

	tokens, err := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		utils.LogError(err, "Invalid JWT configuration")
		return err
	}

	engine := gin.New()
	engine.Use(utils.GinLogger(), gin.Recovery())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", utils.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{utils.RequestIDHeader, "Content-Disposition"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	app, err := router.Setup(engine, router.Dependencies{
		DB:             db,
		Tokens:         tokens,
		Revoked:        revoked,
		LoginRateLimit: cfg.LoginRateLimit,
		BackupDir:      cfg.BackupDir,
	})
	if err != nil {
		utils.LogError(err, "Failed to set up routes")
		return err
	}

	if err := app.AuthService.EnsureDefaultAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		utils.LogError(err, "Failed to seed default admin")
		return err
	}

	scheduler, err := backup.NewScheduler(app.Exporter, cfg.BackupSchedule)
	if err != nil {
		utils.LogError(err, "Failed to schedule backups")
		return err
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "db_driver": cfg.DBDriver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
		utils.LogInfo("Shutting down")
	case runErr = <-serveErr:
		utils.LogError(runErr, "Failed to start server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server forced to shut down")
	}
	scheduler.Stop(shutdownCtx)
	return runErr
}
