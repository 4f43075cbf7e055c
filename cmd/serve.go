package cmd

import (
	"context"
	"fmt"
	"net"
	"time"

	"autocatalog/auth"
	"autocatalog/db"
	"autocatalog/metrics"
	"autocatalog/queue"
	"autocatalog/routes"
	"autocatalog/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// newReceiver connects the poller to its queue. Replaced in tests.
var newReceiver = func(ctx context.Context, queueURL string) (queue.Receiver, error) {
	return queue.NewSQSReceiver(ctx, queueURL)
}

func newServeCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the queue poller",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *envFile)
		},
	}
}

func runServe(ctx context.Context, envFile string) error {
	cfg, log, err := setup(envFile)
	if err != nil {
		return err
	}
	defer log.Sync()

	gdb, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer closeDatabase(gdb, log)

	store := db.NewStore(gdb)
	users := services.NewUserService(store, log)
	if cfg.UserEmail != "" {
		if err := users.EnsureUser(ctx, cfg.UserEmail, cfg.UserPassword, false); err != nil {
			return fmt.Errorf("create bootstrap user: %w", err)
		}
	}

	m := metrics.New()
	catalog := services.NewCatalogService(store, log, m)
	handler := routes.NewHandler(catalog, users, auth.NewTokens(cfg.JWTSecret, cfg.JWTLifetime), log)
	app := routes.NewApp(handler, m, true)

	var poller *queue.Poller
	if cfg.SQSQueueURL != "" {
		receiver, err := newReceiver(ctx, cfg.SQSQueueURL)
		if err != nil {
			return err
		}
		poller = queue.NewPoller(receiver, log, cfg.SQSMaxMessages, cfg.SQSWaitSeconds,
			queue.WithCounter(m.QueueMessages))
	} else {
		log.Info("SQS_QUEUE_URL not set, queue poller disabled")
	}

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.ListenAddr, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := app.Listener(ln); err != nil && gctx.Err() == nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown..")
		err := app.ShutdownWithTimeout(shutdownTimeout)
		// a no-op if the server already closed it
		_ = ln.Close()
		return err
	})

	if poller != nil {
		g.Go(func() error {
			log.Info("queue poller started", zap.String("queue", cfg.SQSQueueURL))
			return poller.Run(gctx)
		})
	}

	err = g.Wait()
	log.Info("shutdown done")
	return err
}
