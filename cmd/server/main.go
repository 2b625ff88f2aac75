package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"tradegate/internal/document"
	"tradegate/internal/exporter"
	exporterhandler "tradegate/internal/exporter/handler"
	"tradegate/internal/faq"
	faqhandler "tradegate/internal/faq/handler"
	"tradegate/internal/invoice"
	invoicehandler "tradegate/internal/invoice/handler"
	"tradegate/internal/license"
	licensehandler "tradegate/internal/license/handler"
	"tradegate/internal/platform/config"
	"tradegate/internal/platform/httpserver"
	"tradegate/internal/platform/kafka"
	"tradegate/internal/platform/logger"
	"tradegate/internal/platform/metrics"
	"tradegate/internal/platform/middleware"
	"tradegate/internal/platform/postgres"
	"tradegate/internal/platform/redis"
	"tradegate/internal/reminder"
	reminderhandler "tradegate/internal/reminder/handler"
	"tradegate/internal/shipment"
	shipmenthandler "tradegate/internal/shipment/handler"
)

func main() {
	if err := run(); err != nil {
		logger.New().Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	var (
		exporterStore exporter.Store
		licenseStore  license.Store
		shipmentStore shipment.Store
		shipmentTx    shipment.StoreTx
		invoiceStore  invoice.Store
		faqStore      faq.Store
	)

	if cfg.DatabaseURL != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			return err
		}
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		exporterStore = exporter.NewPostgres(db)
		licenseStore = license.NewPostgres(db)
		shipmentStore = shipment.NewPostgres(db)
		shipmentTx = postgres.NewTxRunner(db, cfg.StoreTimeout)
		invoiceStore = invoice.NewPostgres(db)
		faqStore = faq.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		memShipments := shipment.NewInMemoryStore()
		exporterStore = exporter.NewInMemoryStore()
		licenseStore = license.NewInMemoryStore()
		shipmentStore = memShipments
		shipmentTx = shipment.NewInMemoryTx(memShipments)
		invoiceStore = invoice.NewInMemoryStore()
		faqStore = faq.NewInMemoryStore()
		log.Warn("TRADEGATE_DATABASE_URL not set; using in-memory stores")
	}

	exporterSvc := exporter.NewService(exporterStore)
	licenseSvc := license.NewService(licenseStore, exporterStore, license.WithMetrics(m))
	shipmentSvc := shipment.NewService(shipmentStore, shipmentTx, licenseStore, shipment.WithMetrics(m))
	invoiceSvc := invoice.NewService(invoiceStore, shipmentStore)
	assembler := document.NewAssembler(licenseStore, exporterStore)
	scanner := reminder.NewScanner(licenseStore)

	faqOpts := []faq.Option{faq.WithMetrics(m)}
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		faqOpts = append(faqOpts, faq.WithCache(faq.NewRedisCache(redisClient, cfg.Redis.AnswerTTL)))
		log.Info("FAQ answer cache enabled")
	}
	faqSvc := faq.NewService(faqStore, faqOpts...)

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return err
	}
	defer producer.Close()

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	exporterhandler.New(exporterSvc, log).Register(r)
	licensehandler.New(licenseSvc, assembler, log).Register(r)
	shipmenthandler.New(shipmentSvc, log).Register(r)
	invoicehandler.New(invoiceSvc, log).Register(r)
	faqhandler.New(faqSvc, log).Register(r)
	reminderhandler.New(scanner, log, cfg.RenewalHorizonDays).Register(r)

	server := httpserver.New(cfg.Addr, r)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if producer != nil {
		advisor := reminder.NewAdvisor(
			scanner,
			reminder.NewKafkaPublisher(producer),
			log,
			cfg.RenewalHorizonDays,
			cfg.RenewalScanInterval,
			reminder.WithMetrics(m),
		)
		g.Go(func() error {
			log.Info("renewal advisor running",
				"horizon_days", cfg.RenewalHorizonDays,
				"interval", cfg.RenewalScanInterval.String(),
			)
			return advisor.Run(gCtx)
		})
	} else {
		log.Warn("TRADEGATE_KAFKA_BROKERS not set; renewal reminders are not published")
	}

	return g.Wait()
}
