// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PhangZT0803/EcoTrip/internal/auth"
	"github.com/PhangZT0803/EcoTrip/internal/challenge"
	"github.com/PhangZT0803/EcoTrip/internal/config"
	"github.com/PhangZT0803/EcoTrip/internal/firebase"
	"github.com/PhangZT0803/EcoTrip/internal/jobs"
	"github.com/PhangZT0803/EcoTrip/internal/middleware"
	"github.com/PhangZT0803/EcoTrip/internal/submission"
	"github.com/PhangZT0803/EcoTrip/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	firebaseService *firebase.Service

	// Handlers
	authHandler       *auth.Handler
	userHandler       *user.Handler
	challengeHandler  *challenge.Handler
	submissionHandler *submission.Handler

	// Jobs
	orphanSweepJob *jobs.OrphanSweepJob

	authMW gin.HandlerFunc
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	firebaseService *firebase.Service,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	challengeHandler *challenge.Handler,
	submissionHandler *submission.Handler,
	orphanSweepJob *jobs.OrphanSweepJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = false
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(firebaseService, logger.Named("AuthMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "EcoTrip API is healthy!"})
	})

	v1 := router.Group("/api/v1")

	// Session routes carry their own credential in the body, no authMW.
	authHandler.RegisterRoutes(v1)

	userHandler.RegisterRoutes(v1, authMW)
	challengeHandler.RegisterRoutes(v1, authMW)
	submissionHandler.RegisterRoutes(v1, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		// Long-lived SSE responses must outlive a normal write timeout.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:        httpServer,
		router:            router,
		cfg:               cfg,
		logger:            logger,
		firebaseService:   firebaseService,
		authHandler:       authHandler,
		userHandler:       userHandler,
		challengeHandler:  challengeHandler,
		submissionHandler: submissionHandler,
		orphanSweepJob:    orphanSweepJob,
		authMW:            authMW,
	}, nil
}

func (s *Server) Start() error {
	if s.orphanSweepJob != nil {
		if err := s.orphanSweepJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start orphan sweep job", zap.Error(err))
		}
	} else {
		s.logger.Info("Orphan sweep job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.orphanSweepJob != nil {
		s.orphanSweepJob.Stop()
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return s.firebaseService.Close()
}
