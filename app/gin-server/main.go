package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/devconnector/config"
	"github.com/yoockh/devconnector/internal/api/handlers"
	"github.com/yoockh/devconnector/internal/api/middleware"
	"github.com/yoockh/devconnector/internal/api/routes"
	"github.com/yoockh/devconnector/internal/cache"
	"github.com/yoockh/devconnector/internal/logger"
	"github.com/yoockh/devconnector/internal/repositories"
	mongorepo "github.com/yoockh/devconnector/internal/repositories/mongo"
	pgrepo "github.com/yoockh/devconnector/internal/repositories/postgres"
	"github.com/yoockh/devconnector/internal/services"
)

const maxBodyBytes = 10 << 10

type stores struct {
	users    repositories.UserRepository
	profiles repositories.ProfileRepository
	close    func(context.Context)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config error: %v", err)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("store init failed")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		st.close(closeCtx)
	}()

	var c cache.Cache = cache.Nop{}
	if cfg.RedisAddr != "" {
		rdb, err := config.OpenRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.WithError(err).Fatal("redis init failed")
		}
		defer rdb.Close()
		c = cache.NewRedisCache(rdb, "devconnector:")
		log.Info("redis connected")
	}

	authSvc := services.NewAuthService(st.users, cfg.JWTSecret, cfg.JWTTTL)
	profileSvc := services.NewProfileService(st.profiles, st.users, c, cfg.CacheTTL, log)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(log),
		middleware.CORS(cfg.CORSOrigins),
		middleware.BodyLimit(maxBodyBytes),
	)
	routes.RegisterRoutes(r, routes.Deps{
		Auth:      handlers.NewAuthHandler(authSvc),
		Profile:   handlers.NewProfileHandler(profileSvc),
		JWTSecret: cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

func openStores(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := config.OpenPostgres(cfg.PostgresURI)
		if err != nil {
			return nil, err
		}
		if err := pgrepo.AutoMigrate(db); err != nil {
			return nil, err
		}
		log.Info("postgres connected")

		return &stores{
			users:    pgrepo.NewUserRepo(db),
			profiles: pgrepo.NewProfileRepo(db),
			close: func(context.Context) {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil

	default:
		client, err := config.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDB)
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info("mongodb connected")

		return &stores{
			users:    mongorepo.NewUserRepo(db),
			profiles: mongorepo.NewProfileRepo(db),
			close: func(ctx context.Context) {
				_ = client.Disconnect(ctx)
			},
		}, nil
	}
}
