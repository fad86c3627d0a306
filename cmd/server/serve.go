package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/project-tracker/internal/config"
	"github.com/yukikurage/project-tracker/internal/constants"
	"github.com/yukikurage/project-tracker/internal/database"
	"github.com/yukikurage/project-tracker/internal/handlers"
	"github.com/yukikurage/project-tracker/internal/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		db := database.GetDB()
		if !skipMigrate {
			if err := database.Migrate(db, log); err != nil {
				return err
			}
		}

		store, err := newSessionStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to create Redis store: %w", err)
		}

		gin.SetMode(cfg.GinMode)
		srv := &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      newRouter(cfg, log, db, store),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		}

		return run(cmd.Context(), srv, log)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not migrate the schema on start")
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	store, err := redisStore.NewStore(
		10,    // pool size
		"tcp", // network type
		cfg.RedisHost+":"+cfg.RedisPort,
		"", // password
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		return nil, err
	}

	store.Options(sessionOptions(cfg))
	return store, nil
}

func sessionOptions(cfg *config.Config) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	}
}

// newRouter builds the engine with CORS, request logging and sessions installed
func newRouter(cfg *config.Config, log *zap.Logger, db *gorm.DB, store sessions.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	handlers.New(db, log).RegisterRoutes(r)
	return r
}

// run serves until SIGINT or SIGTERM, then shuts down gracefully
func run(ctx context.Context, srv *http.Server, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
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

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
