package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/najahiiii/gh-weebhooks/pkg/cli/config"
	controller "github.com/najahiiii/gh-weebhooks/pkg/controller/http"
	"github.com/najahiiii/gh-weebhooks/pkg/infra/storage"
	"github.com/najahiiii/gh-weebhooks/pkg/infra/telegram"
	"github.com/najahiiii/gh-weebhooks/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		dbCfg       config.Database
		telegramCfg config.Telegram
		sentryCfg   config.Sentry
	)

	flags := append(serverCfg.Flags(), dbCfg.Flags()...)
	flags = append(flags, telegramCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			sentryEnabled, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			if sentryEnabled {
				defer sentry.Flush(2 * time.Second)
				logger.Info("Sentry error tracking enabled")
			}

			repo, err := storage.New(dbCfg.Path)
			if err != nil {
				return goerr.Wrap(err, "failed to open database")
			}
			defer repo.Close()

			notifier := telegram.NewClient(
				telegram.WithAPIBase(telegramCfg.APIBase),
			)

			webhookUC := usecase.NewWebhook(repo, notifier)

			server, err := controller.NewServer(
				ctx,
				repo,
				webhookUC,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
					if sentryEnabled {
						sentry.CaptureException(err)
					}
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
