package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/arjunpatwa/qrmenu-backend/api/routes"
	"github.com/arjunpatwa/qrmenu-backend/internal/auth"
	"github.com/arjunpatwa/qrmenu-backend/internal/cart"
	"github.com/arjunpatwa/qrmenu-backend/internal/dishes"
	"github.com/arjunpatwa/qrmenu-backend/internal/menu"
	"github.com/arjunpatwa/qrmenu-backend/internal/restaurants"
	"github.com/arjunpatwa/qrmenu-backend/internal/taxonomy"
	"github.com/arjunpatwa/qrmenu-backend/internal/users"
	"github.com/arjunpatwa/qrmenu-backend/pkg/config"
	"github.com/arjunpatwa/qrmenu-backend/pkg/db"
	"github.com/arjunpatwa/qrmenu-backend/pkg/logger"
	"github.com/arjunpatwa/qrmenu-backend/pkg/migrate"
	"github.com/arjunpatwa/qrmenu-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	usersRepo := users.NewRepository(dbClient.DB())
	restaurantsRepo := restaurants.NewRepository(dbClient.DB())
	dishesRepo := dishes.NewRepository(dbClient.DB())
	taxonomyRepo := taxonomy.NewRepository(dbClient.DB())

	taxonomyService, err := taxonomy.NewService(taxonomyRepo, dishesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create taxonomy service", err)
		os.Exit(1)
	}

	dishesService, err := dishes.NewService(dishesRepo, taxonomyService)
	if err != nil {
		logg.Error(context.Background(), "failed to create dishes service", err)
		os.Exit(1)
	}

	restaurantsService, err := restaurants.NewService(restaurants.ServiceParams{
		Repo:        restaurantsRepo,
		Users:       usersRepo,
		Tx:          dbClient,
		PasswordCfg: cfg.Password,
		JWTCfg:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create restaurants service", err)
		os.Exit(1)
	}

	menuService, err := menu.NewService(restaurantsService, dishesService)
	if err != nil {
		logg.Error(context.Background(), "failed to create menu service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.NewRedisStorage(redisClient), restaurantsService, logg, cfg.Cart.SnapshotTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		RestaurantRepo: restaurantsRepo,
		Limiter:        redisClient,
		JWTConfig:      cfg.JWT,
		RateConfig:     cfg.AuthRateLimit,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, routes.Services{
			Auth:        authService,
			Menu:        menuService,
			Cart:        cartService,
			Dishes:      dishesService,
			Taxonomy:    taxonomyService,
			Restaurants: restaurantsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
