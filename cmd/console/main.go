package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "swiftpost/api/swagger" // swagger docs
	"swiftpost/internal/apiclient"
	"swiftpost/internal/config"
	"swiftpost/internal/database"
	"swiftpost/internal/draft"
	"swiftpost/internal/handler"
	"swiftpost/internal/interceptor"
	"swiftpost/internal/logger"
	"swiftpost/internal/middleware"
	"swiftpost/internal/service"
	"swiftpost/internal/session"
	"swiftpost/internal/storage"
	"swiftpost/internal/websocket"

	"github.com/cockroachdb/errors"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           SwiftPost Console API
// @version         1.0
// @description     Local back-office gateway for the SwiftPost logistics API.
// @host            localhost:8080
// @BasePath        /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Logger setup failed: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStorage(cfg)
	if err != nil {
		zlog.Fatalw("Storage setup failed", "backend", cfg.Storage.Backend, "error", err)
	}
	defer closeStore()
	zlog.Infow("Session storage ready", "backend", cfg.Storage.Backend, "interactive", store.Available())

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(zlog, cfg.Server.CORSOrigins)
	go wsHub.Run(ctx)

	// API client -> session -> interceptors; the interceptors need the session, so they go in last
	client := apiclient.New(apiclient.Config{BaseURL: cfg.API.BaseURL})
	sessions := session.NewManager(ctx, store, client, wsHub, zlog)
	client.Use(
		interceptor.RequestID(),
		interceptor.Auth(sessions),
		interceptor.Errors(sessions, zlog),
	)

	updates, unsubscribe := sessions.Subscribe()
	defer unsubscribe()
	go wsHub.ForwardSessions(updates)

	drafts := draft.NewStore(store, zlog)
	deps := handler.Deps{Sessions: sessions, Drafts: drafts, Log: zlog}

	// Services
	paquetes := service.NewPaqueteService(client)
	empleados := service.NewEmpleadoService(client)
	clientes := service.NewClienteService(client)
	sedes := service.NewSedeService(client)
	transportes := service.NewTransporteService(client)
	detalles := service.NewDetalleEntregaService(client)
	roles := service.NewRolService(client)
	tiposDocumento := service.NewTipoDocumentoService(client)
	usuarios := service.NewUsuarioService(client)
	authService := service.NewAuthService(client)
	analytics := service.NewAnalyticsService(client)

	// Handlers
	authHandler := handler.NewAuthHandler(deps, sessions, authService, usuarios)
	analyticsHandler := handler.NewAnalyticsHandler(analytics)
	formHandler := handler.NewFormHandler(deps)
	entregaHandler := handler.NewEntregaHandler(detalles, sedes, clientes, paquetes)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(zlog))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-User-ID", interceptor.HeaderRequestID}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.GET("/ws", wsHub.ServeWs)

	authHandler.RegisterPublicRoutes(router.Group(""))
	analyticsHandler.RegisterHome(router.Group("", middleware.AuthGuard(sessions)))

	api := router.Group("/api", middleware.AuthGuard(sessions))
	authHandler.RegisterRoutes(api)
	analyticsHandler.RegisterRoutes(api)
	formHandler.RegisterRoutes(api)
	entregaHandler.RegisterRoutes(api)
	handler.NewPaqueteHandler(deps, paquetes).RegisterRoutes(api)
	handler.NewEmpleadoHandler(deps, empleados).RegisterRoutes(api)
	handler.NewClienteHandler(deps, clientes).RegisterRoutes(api)
	handler.NewSedeHandler(deps, sedes).RegisterRoutes(api)
	handler.NewTransporteHandler(deps, transportes).RegisterRoutes(api)
	handler.NewDetalleEntregaHandler(deps, detalles).RegisterRoutes(api)
	handler.NewRolHandler(deps, roles).RegisterRoutes(api)
	handler.NewTipoDocumentoHandler(deps, tiposDocumento).RegisterRoutes(api)
	handler.NewUsuarioHandler(deps, usuarios).RegisterRoutes(api)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zlog.Infow("Server listening", "port", cfg.Server.Port, "api", cfg.API.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	zlog.Infow("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Errorw("Graceful shutdown failed", "error", err)
	}
}

// openStorage builds the configured session/draft backend and its cleanup func
func openStorage(cfg *config.Configuration) (storage.Storage, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageBadger:
		b, err := storage.OpenBadger(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return b, func() { _ = b.Close() }, nil
	case config.StoragePostgres:
		db, err := database.NewConnection(cfg.DB.DSN())
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return storage.NewPostgres(db, cfg.Storage.Origin), closeDB, nil
	case config.StorageMemory:
		return storage.NewMemory(), func() {}, nil
	default:
		return storage.NewNoop(), func() {}, nil
	}
}
