package app

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/library-catalog/catalog/config"
	"github.com/Astemirdum/library-catalog/catalog/internal/handler"
	"github.com/Astemirdum/library-catalog/catalog/internal/repository"
	"github.com/Astemirdum/library-catalog/catalog/internal/server"
	"github.com/Astemirdum/library-catalog/catalog/internal/service"
	"github.com/Astemirdum/library-catalog/catalog/migrations"
	"github.com/Astemirdum/library-catalog/pkg/circuit_breaker"
	"github.com/Astemirdum/library-catalog/pkg/kafka"
	"github.com/Astemirdum/library-catalog/pkg/logger"
	"github.com/Astemirdum/library-catalog/pkg/postgres"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Run serves the catalog over HTTP (and Kafka when brokers are configured)
// until SIGINT or SIGTERM.
func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "catalog")
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	now, err := cfg.Clock()
	if err != nil {
		return err
	}
	repo, closeRepo, err := NewRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	catalog, err := service.LoadCatalog(ctx, repo, now)
	if err != nil {
		return err
	}
	log.Info("catalog loaded",
		zap.Int("books", catalog.Len()),
		zap.Int("users", len(catalog.Users())))

	var enqueuer kafka.Enqueuer = kafka.NopEnqueuer{}
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return errors.Wrap(err, "kafka.NewProducer")
		}
		defer producer.Close() //nolint:errcheck
		enqueuer = kafka.NewEnqueuer(producer, circuit_breaker.New(cfg.CircuitBreaker), log)
	}

	svc := service.NewService(catalog, repo, enqueuer, service.Options{
		ReportPath: cfg.Report.Path,
		Now:        now,
	}, log)

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())

	var group sarama.ConsumerGroup
	if cfg.Kafka.Enabled() {
		if group, err = kafka.NewConsumer(cfg.Kafka, kafka.CatalogConsumerGroup); err != nil {
			return errors.Wrap(err, "kafka.NewConsumer")
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server start ON: ",
			zap.String("addr", net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
		return srv.Run()
	})

	if group != nil {
		g.Go(func() error {
			return kafka.Consume(gctx, group, handler.NewConsumer(svc.Apply, log), kafka.CatalogCommandsTopic)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Debug("Graceful shutdown", zap.Error(context.Cause(gctx)))

		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Stop(closeCtx); err != nil {
			log.Error("srv.Stop", zap.Error(err))
		}
		if group != nil {
			if err := group.Close(); err != nil {
				log.Error("consumer.Close", zap.Error(err))
			}
		}
		if cfg.SaveOnShutdown {
			if err := svc.Save(closeCtx); err != nil {
				return err
			}
			log.Info("catalog saved")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Graceful shutdown finished")
	return nil
}

// Report loads the catalog once, writes the report file and prints the
// report to w.
func Report(ctx context.Context, cfg *config.Config, w io.Writer) error {
	log := logger.NewLogger(cfg.Log, "report")
	defer log.Sync() //nolint:errcheck

	now, err := cfg.Clock()
	if err != nil {
		return err
	}
	repo, closeRepo, err := NewRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	catalog, err := service.LoadCatalog(ctx, repo, now)
	if err != nil {
		return err
	}
	svc := service.NewService(catalog, repo, nil, service.Options{
		ReportPath: cfg.Report.Path,
		Now:        now,
	}, log)

	text, err := svc.GenerateReport(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, text)
	return err
}

// NewRepository opens the record storage selected by cfg.Storage.Driver.
// The returned func releases it.
func NewRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Repository, func(), error) {
	switch cfg.Storage.Driver {
	case repository.DriverCSV, "":
		return repository.NewCSVRepository(cfg.Storage.BooksPath, cfg.Storage.UsersPath, log), func() {}, nil
	case repository.DriverPostgres:
		db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			return nil, nil, errors.Wrap(err, "db init")
		}
		return repository.NewPostgresRepository(db, log), func() { _ = db.Close() }, nil
	}
	return nil, nil, errors.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
