package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/battle-arena/internal/config"
	"github.com/KirkDiggler/battle-arena/internal/handlers/discord"
	"github.com/KirkDiggler/battle-arena/internal/metrics"
	"github.com/KirkDiggler/battle-arena/internal/repositories/battles"
	"github.com/KirkDiggler/battle-arena/internal/repositories/players"
	"github.com/KirkDiggler/battle-arena/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Application ID: %s", cfg.Discord.AppID)
	if cfg.Discord.GuildID != "" {
		log.Printf("Guild ID: %s", cfg.Discord.GuildID)
	}

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	creatureCatalog, err := loadCatalog(context.Background(), &cfg.Catalog)
	if err != nil {
		log.Fatalf("Failed to load creature catalog: %v", err)
	}
	log.Printf("Loaded %d creatures from %s catalog", creatureCatalog.Len(), cfg.Catalog.Source)

	providerConfig := &services.ProviderConfig{
		Catalog:       creatureCatalog,
		Metrics:       metrics.NewBattleMetrics(nil),
		AIUsername:    cfg.Battle.AIUsername,
		ActionTimeout: cfg.Battle.ActionTimeout,
	}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	if cfg.Redis.URL != "" {
		redisClient = connectRedis(&cfg.Redis)
		if redisClient != nil {
			providerConfig.BattleRepository = battles.NewRedisRepository(&battles.RedisRepoConfig{
				Client:    redisClient,
				LockTTL:   cfg.Redis.LockTTL,
				LockRetry: cfg.Redis.LockRetry,
			})
			providerConfig.PlayerRepository = players.NewRedis(redisClient)
			log.Println("Using Redis for persistence")
		}
	} else {
		log.Println("No REDIS_URL found, using in-memory repositories")
	}

	serviceProvider := services.NewProvider(providerConfig)

	metricsServer := newMetricsServer(cfg.Metrics.Addr)
	if metricsServer != nil {
		go func() {
			log.Printf("Serving metrics on %s/metrics", cfg.Metrics.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Metrics server stopped: %v", err)
			}
		}()
	} else {
		log.Println("No METRICS_ADDR set, metrics endpoint disabled")
	}

	handler := discord.NewHandler(&discord.HandlerConfig{
		ServiceProvider: serviceProvider,
	})

	dg.AddHandler(handler.HandleInteraction)

	err = dg.Open()
	if err != nil {
		log.Printf("Failed to open Discord connection: %v", err)
		return
	}
	defer func() {
		clientErr := dg.Close()
		if clientErr != nil {
			log.Printf("Failed to close Discord connection: %v", clientErr)
		}
	}()

	// Use empty string for global commands, or set a specific guild ID for testing
	if err := handler.RegisterCommands(dg, cfg.Discord.GuildID); err != nil {
		log.Printf("Failed to register commands: %v", err)
		return
	}

	if cfg.Discord.GuildID != "" {
		log.Printf("Registered commands for guild: %s", cfg.Discord.GuildID)
	} else {
		log.Println("Registered global commands (may take up to 1 hour to propagate)")
	}

	fmt.Println("Bot is now running. Press CTRL-C to exit.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	fmt.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error stopping metrics server: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		} else {
			log.Println("Closed Redis connection")
		}
	}
}

// connectRedis returns nil when Redis is unreachable so the bot can fall back
// to in-memory repositories
func connectRedis(cfg *config.RedisConfig) *redis.Client {
	log.Printf("Connecting to Redis at: %s", cfg.URL)

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		log.Printf("Failed to parse Redis URL: %v", err)
		log.Println("Falling back to in-memory repositories")
		return nil
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		log.Println("Falling back to in-memory repositories")
		_ = client.Close()
		return nil
	}

	log.Println("Successfully connected to Redis")
	return client
}

// newMetricsServer returns nil when addr is empty
func newMetricsServer(addr string) *http.Server {
	if addr == "" {
		return nil
	}
	return &http.Server{
		Addr:              addr,
		Handler:           metricsMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
