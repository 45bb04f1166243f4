package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartapp "github.com/dwikikusuma/fixshop/internal/cart/app"
	carthttp "github.com/dwikikusuma/fixshop/internal/cart/http"
	cartadapter "github.com/dwikikusuma/fixshop/internal/cart/infra/adapter"
	cartpg "github.com/dwikikusuma/fixshop/internal/cart/infra/postgres"

	catalogapp "github.com/dwikikusuma/fixshop/internal/catalog/app"
	catalogpg "github.com/dwikikusuma/fixshop/internal/catalog/infra/postgres"

	checkoutapp "github.com/dwikikusuma/fixshop/internal/checkout/app"
	checkouthttp "github.com/dwikikusuma/fixshop/internal/checkout/http"
	checkoutadapter "github.com/dwikikusuma/fixshop/internal/checkout/infra/adapter"
	checkoutpg "github.com/dwikikusuma/fixshop/internal/checkout/infra/postgres"

	recommendapp "github.com/dwikikusuma/fixshop/internal/recommend/app"
	recommendhttp "github.com/dwikikusuma/fixshop/internal/recommend/http"
	recommendadapter "github.com/dwikikusuma/fixshop/internal/recommend/infra/adapter"

	userapp "github.com/dwikikusuma/fixshop/internal/user/app"
	userpg "github.com/dwikikusuma/fixshop/internal/user/infra/postgres"

	"github.com/dwikikusuma/fixshop/pkg/config"
	"github.com/dwikikusuma/fixshop/pkg/logger"
	"github.com/dwikikusuma/fixshop/pkg/postgres"
	"github.com/dwikikusuma/fixshop/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "api", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db := mustDB(log, cfg.Postgres)

	// Catalog
	productRepo := catalogpg.NewProductRepo(db)
	catalogSvc := catalogapp.NewService(productRepo)

	// Users
	userRepo := userpg.NewUserRepo(db)
	userSvc := userapp.NewService(userRepo)

	// Cart
	cartRepo := cartpg.NewCartRepo(db)
	cartSvc := cartapp.NewService(
		cartRepo,
		cartadapter.NewCatalogServiceReader(catalogSvc),
		cartadapter.NewUserServiceReader(userSvc),
		log,
	)

	// Checkout
	orderRepo := checkoutpg.NewOrderRepo(db)
	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartServiceReader(cartSvc),
		checkoutadapter.NewCatalogServiceReader(catalogSvc),
		orderRepo,
		10,
	)

	// Recommendations
	engine := recommendapp.NewEngine(
		recommendadapter.NewCatalogServiceReader(catalogSvc),
		recommendadapter.NewCartServiceReader(cartSvc),
		log,
	)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/readyz", func(c *gin.Context) { c.Status(http.StatusOK) })

	v1 := router.Group("/v1")
	carthttp.NewHandler(cartSvc).Register(v1)
	checkouthttp.NewHandler(checkoutSvc).Register(v1)
	recommendhttp.NewHandler(engine, cfg.RecommendMaxResults).Register(v1)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

func mustDB(log *slog.Logger, pg config.Postgres) *gorm.DB {
	db, err := postgres.Open(postgres.Config{
		Host:    pg.Host,
		Port:    pg.Port,
		User:    pg.User,
		Pass:    pg.Pass,
		DB:      pg.DB,
		SSLMode: pg.SSLMode,
	})
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}

	for _, migrate := range []func(*gorm.DB) error{
		catalogpg.Migrate,
		userpg.Migrate,
		cartpg.Migrate,
		checkoutpg.Migrate,
	} {
		if err := migrate(db); err != nil {
			log.Error("migration failed", slog.Any("err", err))
			os.Exit(1)
		}
	}

	return db
}
