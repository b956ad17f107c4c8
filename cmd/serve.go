package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/omarzayed/supportdesk/internal/archive"
	"github.com/omarzayed/supportdesk/internal/assistant"
	"github.com/omarzayed/supportdesk/internal/config"
	"github.com/omarzayed/supportdesk/internal/conversation"
	"github.com/omarzayed/supportdesk/internal/entities"
	"github.com/omarzayed/supportdesk/internal/faq"
	"github.com/omarzayed/supportdesk/internal/intent"
	"github.com/omarzayed/supportdesk/internal/llm"
	"github.com/omarzayed/supportdesk/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the support desk HTTP server",
	Long: `Starts the HTTP and WebSocket server. Conversations, FAQ search and
intent classification are served even without model credentials; the
generative fallback then degrades to a canned apology.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		a, catalog, classifier, archiveStore, cleanup, err := buildAssistant(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		}, a, catalog, classifier, archiveStore, log)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a.Store().StartReaper(ctx, cfg.EvictInterval)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case err := <-errCh:
			return fmt.Errorf("server: %w", err)
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// buildAssistant wires the full assistant stack from configuration. The
// returned cleanup closes the archive database.
func buildAssistant(cfg *config.Config) (*assistant.Assistant, *faq.Catalog, *intent.Classifier, *archive.Store, func(), error) {
	log := newLogger()

	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		log.Warn().Err(err).Msg("model provider unavailable, running degraded")
		provider = nil
	}
	if provider != nil && cfg.RequestsPerMinute > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RequestsPerMinute)
	}

	catalog, err := faq.Load(cfg.FAQFile, cfg.FAQThreshold, log)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("loading FAQ catalog: %w", err)
	}

	classifier, err := intent.Load(cfg.IntentFile, provider, cfg.Model, cfg.LLMTimeout, log)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("loading intent definitions: %w", err)
	}

	db, err := archive.Open(filepath.Join(cfg.DataDir, "archive.db"))
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("opening archive: %w", err)
	}

	store := conversation.NewStore(cfg.MaxConversationAge, log)
	extractor := entities.New(provider, cfg.Model, cfg.LLMTimeout, log)

	a := assistant.New(store, extractor, classifier, catalog, provider, assistant.Options{
		Model:         cfg.Model,
		HistoryWindow: cfg.HistoryWindow,
		Timeout:       cfg.LLMTimeout,
		SupportEmail:  cfg.Support.Email,
		SupportPhone:  cfg.Support.Phone,
	}, log)

	return a, catalog, classifier, archive.NewStore(db), func() { db.Close() }, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
