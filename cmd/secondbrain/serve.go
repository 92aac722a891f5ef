package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"secondbrain/internal/api"
	"secondbrain/internal/bot"
	"secondbrain/internal/config"
	"secondbrain/internal/service"
	"secondbrain/internal/storage"
	"secondbrain/internal/summary"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the Telegram bot and background maintenance",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg, log)
	},
}

func newSummarizer(cfg config.Config, log logrus.FieldLogger) *summary.Summarizer {
	client := summary.NewClient(cfg.SummaryTimeout, cfg.SummaryRateInterval)
	return summary.NewSummarizer(
		summary.NewOllama(client, cfg.LLMHost, cfg.LLMModel),
		log,
		summary.NewYouTube(client, cfg.YouTubeAPIURL, cfg.YouTubeAPIKey),
		summary.NewTwitter(client, cfg.TwitterAPIURL, cfg.TwitterBearerToken),
		summary.NewGitHub(client, cfg.GitHubAPIURL, cfg.GitHubToken),
	)
}

func serve(parent context.Context, cfg config.Config, log *logrus.Logger) error {
	log.Info("Initializing components...")

	repo, err := storage.NewBadgerRepository(cfg.BadgerDBPath, log)
	if err != nil {
		return err
	}
	defer func() {
		log.Info("Closing database...")
		if err := repo.Close(); err != nil {
			log.WithError(err).Error("Error closing database")
		}
	}()

	sources := service.NewSourceRegistry(repo, log)
	content := service.NewContentService(repo, repo, sources, newSummarizer(cfg, log), log)
	shares := service.NewShareGateway(repo, repo, content, cfg.PublicBaseURL, log)
	users := service.NewUserService(repo, service.NewTokenManager(service.TokenConfig{
		SecretKey: cfg.JWTSecret,
		Expiry:    cfg.JWTExpiry,
	}), log)
	tags := service.NewTagService(repo)

	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewHandler(content, sources, shares, users, tags, log).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var botHandler *bot.Handler
	if cfg.TelegramBotToken != "" {
		botHandler, err = bot.NewHandler(cfg.TelegramBotToken, users, content, shares, log)
		if err != nil {
			return err
		}
	} else {
		log.Info("TELEGRAM_BOT_TOKEN not set, Telegram bot disabled")
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", srv.Addr).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		repo.RunGC(ctx, cfg.BadgerGCInterval)
		return nil
	})
	if botHandler != nil {
		g.Go(func() error {
			botHandler.Start(ctx)
			return nil
		})
	}

	log.Info("secondbrain is running. Press Ctrl+C to exit.")
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("secondbrain stopped with an error")
		return err
	}
	log.Info("secondbrain shut down gracefully.")
	return nil
}
