package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/labstack/gommon/log"
	"github.com/syncnotes/syncnotes/api"
	"github.com/syncnotes/syncnotes/api/ws"
	"github.com/syncnotes/syncnotes/auth"
	"github.com/syncnotes/syncnotes/cache"
	"github.com/syncnotes/syncnotes/cache/memory"
	"github.com/syncnotes/syncnotes/cache/redis"
	"github.com/syncnotes/syncnotes/config"
	"github.com/syncnotes/syncnotes/hub"
	"github.com/syncnotes/syncnotes/service"
	"github.com/syncnotes/syncnotes/session"
	"github.com/syncnotes/syncnotes/store/sqlstore"
)

const shutdownReason = "Server shutting down"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.SetLevel(cfg.LogLevel())
	log.SetHeader("${time_rfc3339} ${level} ${short_file}:${line}")

	shutdownCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	noteStore, err := sqlstore.Open(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.MaxOpenConns)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Database.Driver, err)
	}
	defer noteStore.Close()

	var nameCache cache.NameCache
	if cfg.Redis.Enabled {
		redisCache, err := redis.NewRedisNameCache(shutdownCtx, cfg.Redis.Addr, cfg.Redis.TLS, cfg.Cache.NameTTL)
		if err != nil {
			log.Fatalf("Failed to create redis cache: %v", err)
		}
		defer redisCache.Close()
		nameCache = redisCache
	} else {
		nameCache = memory.NewMemoryNameCache(shutdownCtx, cfg.Cache.NameTTL)
	}

	registry := hub.NewRegistry()
	svc, err := service.NewService(noteStore, nameCache, hub.NewRouter(registry), cfg.Hub.LegacyElementDeleteBroadcast)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}

	verifier := auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer, cfg.Auth.Audience)
	sessions := session.NewController(registry, svc, verifier)

	clientOptions := ws.ClientOptions{
		SendBuffer:        cfg.Hub.SendBuffer,
		MaxMessageBytes:   cfg.Hub.MaxMessageBytes,
		MessagesPerSecond: cfg.Hub.MessagesPerSecond,
		Burst:             cfg.Hub.Burst,
	}
	syncNotesAPI := api.NewSyncNotesAPI(svc, sessions, verifier, clientOptions, shutdownCtx)

	if cfg.LogLevel() != log.DEBUG {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	syncNotesAPI.RegisterRoutes(router, cfg.Server.HubPath, cfg.Server.AllowedOrigins)

	server := &http.Server{Addr: cfg.Server.Addr, Handler: router}
	go func() {
		log.Infof("Starting server on %s (hub at %s)", cfg.Server.Addr, cfg.Server.HubPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-shutdownCtx.Done()
	log.Infof("Server shutting down...")

	registry.Close(shutdownReason)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}
}
