package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	httpadapter "shepardviz/src/adapters/http"
	"shepardviz/src/helper/colorhash"
	"shepardviz/src/helper/env"
	"shepardviz/src/infra/kafka"
	"shepardviz/src/infra/keycloak"
	"shepardviz/src/infra/redis"
	"shepardviz/src/infra/shepard"
	"shepardviz/src/repositories"
	"shepardviz/src/services/events"
	"shepardviz/src/services/synthesis"

	"go.uber.org/fx"
)

func main() {
	// Configurar logger
	log.SetOutput(os.Stdout)
	log.Println("Starting API server with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newShepardClient,
			newRedisClient,
			newKafkaClient,
			newSourceRepository,
			newCachedSourceRepository,
			newColorAssigner,
			newEventPublisher,
			newSynthesisService,
			newServer,
		),

		// Invocations
		fx.Invoke(registerServerHooks),
	)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wait for app to exit gracefully
	<-app.Done()
}

func newLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// newShepardClient monta o client da fonte já autenticado via Keycloak
func newShepardClient() (*shepard.ShepardClient, error) {
	host := env.MustGetString("SHEPARD_HOST")

	keycloakClient := keycloak.NewClient(
		env.MustGetString("KEYCLOAK_URL"),
		env.MustGetString("KEYCLOAK_REALM"),
		env.MustGetString("KEYCLOAK_CLIENT_ID"),
		env.MustGetString("KEYCLOAK_USERNAME"),
		env.MustGetString("KEYCLOAK_PASSWORD"),
	)

	httpClient, err := keycloakClient.HTTPClient(context.Background())
	if err != nil {
		return nil, err
	}

	return shepard.NewShepardClient(host, httpClient), nil
}

// newRedisClient retorna nil quando não há cluster configurado; o cache
// vira passthrough.
func newRedisClient() *redis.RedisClient {
	addrs := env.GetString("REDIS_ADDRS")
	if addrs == "" {
		return nil
	}

	poolSize := env.GetInt("REDIS_POOL_SIZE", 50)
	defaultTTL := env.GetDuration("REDIS_DEFAULT_TTL", 5*time.Minute)

	return redis.NewRedisClient(addrs, poolSize, defaultTTL)
}

// newKafkaClient retorna nil quando não há broker configurado; eventos de
// domínio são simplesmente não publicados.
func newKafkaClient() (*kafka.KafkaClient, error) {
	brokers := env.GetString("KAFKA_BROKERS")
	if brokers == "" {
		return nil, nil
	}

	groupID := env.GetString("KAFKA_GROUP_ID", "shepardviz-server")
	batchSize := env.GetInt("KAFKA_BATCH_SIZE", 100)

	return kafka.NewKafkaClient(brokers, groupID, batchSize)
}

func newSourceRepository(client *shepard.ShepardClient) *repositories.SourceRepository {
	return repositories.NewSourceRepository(client)
}

func newCachedSourceRepository(
	source *repositories.SourceRepository,
	redisClient *redis.RedisClient,
) *repositories.CachedSourceRepository {
	if redisClient == nil {
		return repositories.NewCachedSourceRepository(source, nil)
	}

	return repositories.NewCachedSourceRepository(source, redisClient)
}

func newColorAssigner() *colorhash.Assigner {
	return colorhash.NewAssigner()
}

func newEventPublisher(logger *slog.Logger, kafkaClient *kafka.KafkaClient) synthesis.EventPublisher {
	if kafkaClient == nil {
		return nil
	}

	topic := env.GetString("KAFKA_EVENTS_TOPIC", "shepardviz.domain-events")
	return events.NewForestEventPublisher(logger, kafkaClient, topic)
}

func newSynthesisService(
	logger *slog.Logger,
	cachedSource *repositories.CachedSourceRepository,
	colors *colorhash.Assigner,
	publisher synthesis.EventPublisher,
) *synthesis.SynthesisService {
	return synthesis.NewSynthesisService(logger, cachedSource, colors, publisher)
}

func newServer(
	logger *slog.Logger,
	synthesisService *synthesis.SynthesisService,
	cachedSource *repositories.CachedSourceRepository,
) *httpadapter.Server {

	port := 8888 // default value
	if portStr := os.Getenv("SERVER_ADDR"); portStr != "" {
		if val, err := strconv.Atoi(portStr); err == nil {
			port = val
		}
	}

	return httpadapter.NewServer(logger, port, synthesisService, cachedSource)
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, srv *httpadapter.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Start server in a separate goroutine
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Create timeout context for graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			log.Println("Shutting down server...")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server forced to shutdown: %v", err)
				return err
			}
			log.Println("Server exited gracefully")
			return nil
		},
	})
}
