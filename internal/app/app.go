package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/shop-backend/internal/cfg"
	v1Http "github.com/DRSN-tech/shop-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/shop-backend/internal/infrastructure/kafka"
	"github.com/DRSN-tech/shop-backend/internal/repository/memory"
	"github.com/DRSN-tech/shop-backend/internal/repository/pgdb"
	redisRepo "github.com/DRSN-tech/shop-backend/internal/repository/redis"
	"github.com/DRSN-tech/shop-backend/internal/repository/seed"
	"github.com/DRSN-tech/shop-backend/internal/usecase"
	"github.com/DRSN-tech/shop-backend/pkg/clients"
	"github.com/DRSN-tech/shop-backend/pkg/closer"
	"github.com/DRSN-tech/shop-backend/pkg/e"
	"github.com/DRSN-tech/shop-backend/pkg/logger"
	"github.com/DRSN-tech/shop-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"golang.org/x/text/language"
)

// Run собирает зависимости по конфигурации и запускает приложение.
// Блокируется до сигнала остановки или фатальной ошибки сервера.
func Run(cfg *config.Config, log logger.Logger) error {
	cl := closer.New()

	catalogRepo := memory.NewCatalogRepo()

	source, err := initCatalogSource(cfg, log, cl)
	if err != nil {
		log.Errorf(err, "failed to initialize catalog source")
		return err
	}

	cartRepo, err := initCartRepo(cfg, log, cl)
	if err != nil {
		log.Errorf(err, "failed to initialize cart store")
		return err
	}

	producer, err := initProducer(cfg, log, cl)
	if err != nil {
		log.Errorf(err, "failed to initialize kafka producer")
		return err
	}

	engine := usecase.NewQueryEngine(language.Make(cfg.Catalog.Locale))

	catalogUC := usecase.NewCatalogUC(catalogRepo, source, engine, log)
	cartUC := usecase.NewCartUC(cartRepo, catalogRepo, log)
	checkoutUC := usecase.NewCheckoutUC(cartRepo, catalogRepo, producerOrNil(producer), log)

	// Первая загрузка каталога. Ошибка не фатальна: приложение поднимается
	// в деградированном состоянии, цикл обновления продолжит попытки.
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := catalogUC.LoadCatalog(loadCtx); err != nil {
		log.Warnf("initial catalog load failed, serving degraded state: %v", err)
	}
	loadCancel()

	refreshCtx, refreshCancel := context.WithCancel(context.Background())
	go catalogUC.StartRefreshLoop(refreshCtx, cfg.Catalog.RefreshInterval)
	cl.Add(func(ctx context.Context) error {
		refreshCancel()
		return nil
	})

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(catalogUC, cartUC, checkoutUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	cl.Add(httpSrv.Stop)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		log.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		log.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := cl.Close(shutdownCtx); err != nil {
		log.Warnf("shutdown finished with errors: %v", err)
	} else {
		log.Infof("Application shutdown complete")
	}

	return appErr
}

// initCatalogSource выбирает поставщика каталога согласно конфигурации.
func initCatalogSource(cfg *config.Config, log logger.Logger, cl *closer.Closer) (usecase.CatalogSource, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		db, err := postgres.Connect(cfg.Db)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		if err := db.RunMigrations(log); err != nil {
			db.Close()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		cl.Add(func(ctx context.Context) error {
			db.Close()
			return nil
		})

		return pgdb.NewCatalogSource(db.Pool), nil
	default:
		return seed.NewCatalogSource(cfg.Catalog.SeedCount), nil
	}
}

// initCartRepo выбирает хранилище корзин согласно конфигурации.
func initCartRepo(cfg *config.Config, log logger.Logger, cl *closer.Closer) (usecase.CartRepository, error) {
	if cfg.Cart.Store != config.CartStoreRedis {
		return memory.NewCartRepo(), nil
	}

	redisClient := clients.NewRedisClient(cfg.Redis)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	return redisRepo.NewCartRepo(redisClient, cfg.Redis, log), nil
}

// initProducer создаёт Kafka-продюсер событий checkout, если он включён.
func initProducer(cfg *config.Config, log logger.Logger, cl *closer.Closer) (*kafka.Producer, error) {
	if cfg.Kafka == nil {
		return nil, nil
	}

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	return producer, nil
}

// producerOrNil разворачивает типизированный nil в нулевой интерфейс,
// чтобы usecase видел отсутствие продюсера как nil.
func producerOrNil(p *kafka.Producer) usecase.CheckoutEventProducer {
	if p == nil {
		return nil
	}
	return p
}
