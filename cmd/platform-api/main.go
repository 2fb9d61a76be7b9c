package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alexandreDinis/sistema-comi-platform/internal/cache"
	"github.com/alexandreDinis/sistema-comi-platform/internal/config"
	"github.com/alexandreDinis/sistema-comi-platform/internal/database"
	"github.com/alexandreDinis/sistema-comi-platform/internal/handlers"
	platformHandlers "github.com/alexandreDinis/sistema-comi-platform/internal/handlers/platform"
	"github.com/alexandreDinis/sistema-comi-platform/internal/logger"
	"github.com/alexandreDinis/sistema-comi-platform/internal/middleware"
	"github.com/alexandreDinis/sistema-comi-platform/internal/models/shared"
	platformRepo "github.com/alexandreDinis/sistema-comi-platform/internal/repository/platform"
	platformService "github.com/alexandreDinis/sistema-comi-platform/internal/services/platform"
)

// Platform API - console de gestão da plataforma
// Responsável por: admissão (principal + guards), grafo de posse
// (licenças/empresas/planos), ciclo de vida de licenças e migrações
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()

	dbManager := database.NewManager(cfg)
	if err := dbManager.InitMasterPool(ctx); err != nil {
		zlog.Fatal("failed to initialize master DB pool", zap.Error(err))
	}

	redisClient, err := cache.NewClient(&cfg.Redis)
	if err != nil {
		zlog.Fatal("failed to initialize Redis client", zap.Error(err))
	}

	// Repositories
	licencaRepo := platformRepo.NewLicencaRepository(dbManager.GetMasterPool())
	empresaRepo := platformRepo.NewEmpresaRepository(dbManager.GetMasterPool())
	planoRepo := platformRepo.NewPlanoRepository(dbManager.GetMasterPool())

	// Services
	licencaService := platformService.NewLicencaService(licencaRepo, planoRepo, redisClient, zlog)
	ownershipService := platformService.NewOwnershipService(empresaRepo, licencaRepo, planoRepo, redisClient, zlog)
	migracaoService := platformService.NewMigracaoService(empresaRepo, licencaRepo, redisClient, zlog)

	// Handlers
	empresaHandler := platformHandlers.NewEmpresaHandler(ownershipService, migracaoService)
	licencaHandler := platformHandlers.NewLicencaHandler(licencaService)
	statsHandler := platformHandlers.NewStatsHandler(ownershipService)
	sessionHandler := handlers.NewSessionHandler(ownershipService)

	router := setupRouter(cfg, zlog, empresaHandler, licencaHandler, statsHandler, sessionHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		zlog.Info("platform API listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down platform API")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("platform API forced to shutdown", zap.Error(err))
	}

	dbManager.Close()
	redisClient.Close()

	zlog.Info("platform API exited")
}

func setupRouter(
	cfg *config.Config,
	zlog *zap.Logger,
	empresaHandler *platformHandlers.EmpresaHandler,
	licencaHandler *platformHandlers.LicencaHandler,
	statsHandler *platformHandlers.StatsHandler,
	sessionHandler *handlers.SessionHandler,
) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "platform-api"})
	})

	// Rotas autenticadas sem guard adicional
	authenticated := router.Group("/api/v1")
	authenticated.Use(middleware.AuthMiddleware(cfg))
	{
		authenticated.GET("/me", sessionHandler.GetMe)

		// Painel da empresa: guard de feature, não de perfil
		empresa := authenticated.Group("/empresa")
		{
			empresa.GET("/dashboard",
				middleware.RequireFeature(zlog, shared.FeatureDashboardView),
				sessionHandler.GetDashboard)
		}
	}

	// Mundo da plataforma: nunca alcançável por principal afiliado a empresa
	platform := router.Group("/platform")
	platform.Use(middleware.AuthMiddleware(cfg))
	platform.Use(middleware.RequireRole(zlog, shared.RoleAdminPlataforma))
	{
		platform.GET("/tenants", empresaHandler.ListEmpresas)
		platform.POST("/tenants", empresaHandler.CreateEmpresa)
		platform.GET("/tenants/orphans", empresaHandler.ListOrphans)
		platform.GET("/tenants/at-risk", empresaHandler.ListAtRisk)
		platform.GET("/tenants/:id", empresaHandler.GetEmpresa)
		platform.PUT("/tenants/:id", empresaHandler.UpdateEmpresa)
		platform.PUT("/tenants/:id/toggle-status", empresaHandler.ToggleStatus)
		platform.POST("/tenants/:id/reassign", empresaHandler.Reassign)

		platform.GET("/licencas", licencaHandler.ListLicencas)
		platform.POST("/licencas", licencaHandler.CreateLicenca)
		platform.GET("/licencas/:id", licencaHandler.GetLicenca)
		platform.GET("/licencas/:id/stats", licencaHandler.GetStats)
		platform.GET("/licencas/:id/tenants", empresaHandler.ListByLicenca)
		platform.POST("/licencas/:id/suspender", licencaHandler.Suspender)
		platform.POST("/licencas/:id/reativar", licencaHandler.Reativar)
		platform.POST("/licencas/:id/rescindir", licencaHandler.Rescindir)

		platform.POST("/migracoes", empresaHandler.Migrar)

		platform.GET("/stats", statsHandler.GetPlatformStats)
		platform.GET("/plans", statsHandler.ListPlanos)
		platform.GET("/features", statsHandler.ListFeatures)
	}

	return router
}
