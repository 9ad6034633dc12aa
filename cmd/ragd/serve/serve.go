// Package servecmder provides the serve command that runs the query API server.
package servecmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/primefold/ragd/api"
	"github.com/primefold/ragd/pkg/cache"
	cachenop "github.com/primefold/ragd/pkg/cache/nop"
	cacheredis "github.com/primefold/ragd/pkg/cache/redis"
	"github.com/primefold/ragd/pkg/config"
	embeddingutils "github.com/primefold/ragd/pkg/embeddings/utils"
	llmollama "github.com/primefold/ragd/pkg/llm/ollama"
	"github.com/primefold/ragd/pkg/logger"
	"github.com/primefold/ragd/pkg/rag"
	vectorutils "github.com/primefold/ragd/pkg/vector/utils"
)

type ServeCommander struct {
	configDir string
	listen    string
	knowledge string
	noCache   bool
	debug     bool
	logger    *zap.Logger
}

const serveLongDesc string = `Run the ragd query API server.

The server ingests the FAQ knowledge base at startup and then answers
questions on POST /v1/ask. GET /health reports "initializing" until
ingestion completes.`

const serveShortDesc string = "Run the query API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.configDir, "config", "c", "", "Directory containing config.toml")
	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address for the API server to listen on")
	cmd.Flags().StringVarP(&cmder.knowledge, "knowledge", "k", "", "Path to the FAQ knowledge file")
	cmd.Flags().BoolVar(&cmder.noCache, "no-cache", false, "Disable the answer cache")

	return cmd
}

func (c *ServeCommander) run(cmd *cobra.Command) error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	v, err := config.InitViper(c.configDir)
	if err != nil {
		return err
	}
	cfg := c.applyFlags(cmd, config.FromViper(v))

	embedder, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
		ProviderType: cfg.Embedding.Provider,
		TargetURL:    cfg.Embedding.Target,
		Model:        cfg.Embedding.Model,
	})
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	defer embedder.Close()

	vectors, err := vectorutils.NewDriver(&vectorutils.NewDriverOpts{
		ProviderType: cfg.VectorStore.Provider,
		TargetURL:    cfg.VectorStore.Target,
		Collection:   cfg.VectorStore.Collection,
		Dimensions:   uint64(cfg.Embedding.Dimensions),
		Logger:       c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating vector driver: %w", err)
	}
	defer vectors.Close()

	chat, err := llmollama.NewClient(llmollama.Config{
		BaseURL:     cfg.Generation.Target,
		Model:       cfg.Generation.Model,
		Temperature: cfg.Generation.Temperature,
	})
	if err != nil {
		return fmt.Errorf("creating chat client: %w", err)
	}
	defer chat.Close()

	store := c.newCacheStore(cfg)
	defer store.Close()

	engine := rag.NewEngine(
		rag.Config{CacheTTL: time.Duration(cfg.Cache.TTLSeconds) * time.Second},
		embedder,
		vectors,
		chat,
		store,
		c.logger,
	)

	server := api.NewServer(api.Config{ListenAddr: cfg.Server.Listen}, engine, c.logger)

	// Channel to capture errors from goroutines
	errChan := make(chan error, 2)

	// Ingest the knowledge base behind the readiness gate; the server
	// answers 503 until this completes.
	go func() {
		if err := engine.LoadKnowledgeFile(context.Background(), cfg.Knowledge.Path); err != nil {
			errChan <- fmt.Errorf("loading knowledge base: %w", err)
		}
	}()

	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		server.Shutdown()
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	}
}

// applyFlags overlays explicitly set CLI flags onto the resolved config.
func (c *ServeCommander) applyFlags(cmd *cobra.Command, cfg *config.Config) *config.Config {
	if cmd.Flags().Changed("listen") {
		cfg.Server.Listen = c.listen
	}
	if cmd.Flags().Changed("knowledge") {
		cfg.Knowledge.Path = c.knowledge
	}
	if c.noCache {
		cfg.Cache.Enabled = false
	}
	return cfg
}

// newCacheStore connects to Redis when caching is enabled, degrading to
// the nop store when the backend is unreachable. Cache absence never
// blocks startup; it only disables persistence for the process lifetime.
func (c *ServeCommander) newCacheStore(cfg *config.Config) cache.Store {
	if !cfg.Cache.Enabled {
		c.logger.Info("answer cache disabled")
		return cachenop.NewStore()
	}

	store, err := cacheredis.NewStore(cacheredis.Config{Addr: cfg.Cache.Addr}, c.logger)
	if err != nil {
		c.logger.Warn("Redis not available, caching disabled",
			zap.Error(err),
		)
		return cachenop.NewStore()
	}
	return store
}
