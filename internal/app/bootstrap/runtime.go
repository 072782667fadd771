package bootstrap

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/evindia/evbot/internal/catalog"
	appconfig "github.com/evindia/evbot/internal/config"
	"github.com/evindia/evbot/internal/conversation"
	"github.com/evindia/evbot/internal/llm"
	"github.com/evindia/evbot/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		return nil
	}
	return client
}

// BuildConversationStore picks the persistence backend: Redis when a client
// is available, an in-process store otherwise.
func BuildConversationStore(redisClient *redis.Client, logger *logging.Logger) conversation.Store {
	if logger == nil {
		logger = logging.Default()
	}
	if redisClient != nil {
		logger.Info("conversation persistence enabled", "backend", "redis")
		return conversation.NewRedisStore(redisClient, nil)
	}
	logger.Warn("conversation persistence is in-memory, history will not survive restarts")
	return conversation.NewMemoryStore()
}

// BuildCatalogStore wires the scooter catalog: Postgres when DATABASE_URL is
// set, the seeded in-memory catalog otherwise. The returned *sql.DB is nil
// for the in-memory case; the caller owns closing it.
func BuildCatalogStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (catalog.Store, *sql.DB, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg == nil || strings.TrimSpace(cfg.DatabaseURL) == "" {
		logger.Info("catalog backed by seeded in-memory store")
		return catalog.NewSeededMemoryStore(), nil, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap: failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("bootstrap: database not reachable: %w", err)
	}
	logger.Info("catalog backed by postgres")
	return catalog.NewPostgresStore(db), db, nil
}

// BuildAssistant wires the Gemini-backed assistant. Without an API key the
// assistant is returned disabled and every fallback reply degrades to the
// canned response.
func BuildAssistant(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*llm.Assistant, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg == nil || strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		logger.Warn("no gemini api key configured, ai replies disabled")
		return llm.NewAssistant(nil, "", 0, 0, logger), func() {}, nil
	}

	client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap: %w", err)
	}
	logger.Info("gemini assistant enabled", "model", cfg.GeminiModelID)
	assistant := llm.NewAssistant(client, cfg.GeminiModelID, cfg.LLMTimeout, cfg.LLMMaxTokens, logger)
	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close gemini client", "error", err)
		}
	}
	return assistant, cleanup, nil
}
