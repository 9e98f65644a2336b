package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teteukt/daynight/charmlog"
	"github.com/teteukt/daynight/internal/app"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "daynightd",
		Short:        "Serve Day, Dawn and Night schedules over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	flags := app.BindFlags(cmd)
	var addr string
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		conf, err := flags.LoadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			conf.Addr = addr
		}

		logger := charmlog.NewLogger(charmlog.Options{
			Writer: os.Stderr,
			Level:  conf.LogLevel,
			Prefix: "daynightd",
		})

		repo, closeRepo, err := app.OpenRepository(conf, logger)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			return err
		}
		defer closeRepo() //nolint:errcheck

		c := &controller{
			repo: repo,
			l:    logger,
			now:  time.Now,
		}
		srv := &http.Server{
			Addr:              conf.Addr,
			Handler:           c.routes(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		logger.Info("starting server", "addr", conf.Addr, "backend", conf.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			return err
		}
		return nil
	}

	return cmd
}
