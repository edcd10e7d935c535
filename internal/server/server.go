package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osa911/teamchat/internal/api/handlers"
	"github.com/osa911/teamchat/internal/api/middleware"
	"github.com/osa911/teamchat/internal/config"
	"github.com/osa911/teamchat/internal/config/firebase"
	"github.com/osa911/teamchat/internal/logging"
	"github.com/osa911/teamchat/internal/media"
	"github.com/osa911/teamchat/internal/models"
	"github.com/osa911/teamchat/internal/repository"
	"github.com/osa911/teamchat/internal/server/routes"
	"github.com/osa911/teamchat/internal/service"
	"github.com/osa911/teamchat/internal/session"
	"github.com/osa911/teamchat/internal/store"
	"github.com/osa911/teamchat/internal/tasks"
	"github.com/osa911/teamchat/internal/telemetry"
	"github.com/osa911/teamchat/internal/version"
)

const shutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	services *Services
}

// NewDependencies connects to the configured store backend
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	logger := logging.GetGlobalLogger()

	if cfg.StoreBackend == config.BackendMemory {
		logger.Warn("Using the in-memory store: data is lost on exit and bearer tokens are trusted as uids")
		return &Dependencies{
			Store:    store.Traced(store.NewMemoryStore()),
			Verifier: middleware.DevVerifier{},
		}, nil
	}

	clients, err := firebase.Initialize(ctx, firebase.Options{
		DatabaseURL:     cfg.FirebaseDatabaseURL,
		CredentialsFile: cfg.FirebaseCredentialsFile,
		StorageBucket:   cfg.FirebaseStorageBucket,
	})
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Store:    store.Traced(store.NewFirebaseStore(clients.Database)),
		Verifier: firebase.TokenVerifier{Client: clients.Auth},
	}
	if clients.Storage != nil {
		bucket, err := clients.Storage.DefaultBucket()
		if err != nil {
			return nil, fmt.Errorf("failed to open storage bucket: %w", err)
		}
		deps.Pictures = media.NewPictureBucket(bucket, cfg.FirebaseStorageBucket)
	}
	return deps, nil
}

// NewRepositories binds every repository to s
func NewRepositories(s store.Store, mode models.MembershipMode) *Repositories {
	return &Repositories{
		User:           repository.NewUserRepository(s),
		Team:           repository.NewTeamRepository(s, mode),
		Channel:        repository.NewChannelRepository(s),
		Message:        repository.NewMessageRepository(s),
		PrivateMessage: repository.NewPrivateMessageRepository(s),
	}
}

// NewServices wires the data-access operations
func NewServices(cfg *config.Config, repos *Repositories, sessions session.Provider, pictures service.PictureStore) (*Services, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &Services{
		User:           service.NewUserService(repos.User, repos.Team, sessions, pictures, loc),
		Team:           service.NewTeamService(repos.Team, repos.Channel, sessions),
		Message:        service.NewMessageService(repos.Message, sessions),
		PrivateMessage: service.NewPrivateMessageService(repos.PrivateMessage, sessions, cfg.MessagePrecedence),
	}, nil
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, deps *Dependencies) (*Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	repos := NewRepositories(deps.Store, cfg.MembershipMode)
	services, err := NewServices(cfg, repos, session.ContextProvider{}, deps.Pictures)
	if err != nil {
		return nil, err
	}

	validation, err := middleware.NewValidationMiddleware()
	if err != nil {
		return nil, fmt.Errorf("failed to set up validation: %w", err)
	}

	h := &routes.Handlers{
		User:    handlers.NewUserHandler(services.User),
		Team:    handlers.NewTeamHandler(services.Team, services.User),
		Message: handlers.NewMessageHandler(services.Message, services.PrivateMessage),
		Health:  handlers.NewHealthHandler(repos.User),
	}
	m := &routes.Middleware{
		Validation: validation,
		Auth:       middleware.NewAuthMiddleware(deps.Verifier),
	}

	router := gin.New()
	err = routes.SetupGlobalMiddleware(router, logging.GetGlobalLogger(), routes.GlobalConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		TrustedProxies: cfg.TrustedProxies,
		Production:     cfg.IsProduction(),
		RateLimit: middleware.RateLimitConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		},
	})
	if err != nil {
		return nil, err
	}
	routes.Setup(router, h, m)

	return &Server{cfg: cfg, router: router, services: services}, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Services returns the wired services
func (s *Server) Services() *Services {
	return s.services
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	logger := logging.GetGlobalLogger()

	httpServer := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening on %s", httpServer.Addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// Run sets up tracing, connects the store and serves until ctx is cancelled
func Run(ctx context.Context, cfg *config.Config) error {
	logger := logging.GetGlobalLogger()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, version.Version)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	deps, err := NewDependencies(ctx, cfg)
	if err != nil {
		return err
	}

	srv, err := NewServer(cfg, deps)
	if err != nil {
		return err
	}

	cleanup := tasks.NewReservationCleanup(NewRepositories(deps.Store, cfg.MembershipMode).Team,
		cfg.ReservationSweepInterval, cfg.ReservationGrace)
	cleanup.Start()
	defer cleanup.Stop()
	logger.Info("Started reservation cleanup task")

	logger.Info("Starting teamchat %s in %s mode (store=%s, membership=%s)",
		version.Info(), cfg.Environment, cfg.StoreBackend, cfg.MembershipMode)
	return srv.Start(ctx)
}
