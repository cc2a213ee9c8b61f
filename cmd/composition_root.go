package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpin "shipment/internal/adapters/in/http"
	"shipment/internal/adapters/out/kafka"
	"shipment/internal/adapters/out/ledger/chain"
	"shipment/internal/adapters/out/ledger/ethereum"
	"shipment/internal/adapters/out/pebblestore"
	"shipment/internal/adapters/out/postgres"
	"shipment/internal/core/application/usecases/commands"
	"shipment/internal/core/application/usecases/queries"
	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/ports"
	"shipment/internal/jobs"
	"shipment/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// headWatchInterval is how often a remote ledger's head is sampled for metrics.
const headWatchInterval = 5 * time.Second

// CompositionRoot owns every long-lived dependency of the process.
type CompositionRoot struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	ledger     ports.Ledger
	chain      *chain.Chain
	head       jobs.HeadReader
	transactor *commands.Transactor
	cache      *queries.OrderCache

	closers []func() error
}

// NewCompositionRoot opens the ledger selected by cfg.LedgerDriver. Call Close
// when done, also after an error.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(),
		cache:   queries.NewOrderCache(cfg.OrderCacheTTL),
	}

	key, err := kernel.ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return c, fmt.Errorf("PRIVATE_KEY: %w", err)
	}

	switch cfg.LedgerDriver {
	case DriverPebble:
		store, err := pebblestore.Open(cfg.PebbleDir)
		if err != nil {
			return c, err
		}
		c.closers = append(c.closers, store.Close)
		c.connectChain(pebblestore.NewUnitOfWorkFactory(store), kernel.AddressFromPrivateKey(key))

	case DriverPostgres:
		db, sqlDB, err := postgres.OpenAndMigrate(cfg.Postgres().DSN())
		if err != nil {
			return c, err
		}
		c.closers = append(c.closers, sqlDB.Close)
		c.connectChain(postgres.NewGormUnitOfWorkFactory(db), kernel.AddressFromPrivateKey(key))

	case DriverEthereum:
		contract, err := kernel.AddressFromHex(cfg.ContractAddress)
		if err != nil {
			return c, fmt.Errorf("CONTRACT_ADDRESS: %w", err)
		}
		client, err := ethereum.Dial(ctx, cfg.EthRPCURL, ethereum.Config{
			Contract:     contract.Common(),
			PrivateKey:   key,
			PollInterval: cfg.LedgerPollInterval,
			Logger:       logger,
		})
		if err != nil {
			return c, err
		}
		c.closers = append(c.closers, client.Close)
		c.ledger = client
		c.head = client.Head

	default:
		return c, fmt.Errorf("unknown ledger driver %q", cfg.LedgerDriver)
	}

	txCfg := commands.TransactorConfig{
		Confirmations: cfg.LedgerConfirmations,
		Timeout:       cfg.LedgerTimeout,
		Recorder:      c.metrics,
		Logger:        logger,
	}
	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		publisher, err := kafka.NewOrderChangedPublisher(brokers, cfg.KafkaOrderChangedTopic)
		if err != nil {
			return c, err
		}
		c.closers = append(c.closers, publisher.Close)
		txCfg.Publisher = publisher
	}

	c.transactor, err = commands.NewTransactor(c.ledger, txCfg)
	if err != nil {
		return c, err
	}

	logger.InfoContext(ctx, "Ledger connected",
		"driver", cfg.LedgerDriver,
		"confirmations", cfg.LedgerConfirmations)
	return c, nil
}

func (c *CompositionRoot) connectChain(uowFactory ports.UnitOfWorkFactory, sender kernel.Address) {
	c.chain = chain.New(uowFactory, chain.Config{
		PollInterval: c.cfg.LedgerPollInterval,
		Observer:     c.metrics,
		Logger:       c.logger,
	})
	c.ledger = c.chain.Connect(sender)
	c.head = c.chain.Head
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.transactor)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.transactor)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.transactor)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.ledger, c.cache)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.ledger, c.cache)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateDeliverOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetAllOrdersQueryHandler(),
	)
	return httpin.NewRouter(server, httpin.RouterConfig{
		Metrics: c.metrics,
		Logger:  c.logger,
	})
}

// CreateJobManager schedules block production for local ledgers when
// BLOCK_INTERVAL is set, and head sampling for remote ones.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var producer *jobs.BlockProducerJob
	var watcher *jobs.HeadWatcherJob

	if c.chain != nil {
		if c.cfg.BlockInterval > 0 {
			producer = jobs.NewBlockProducerJob(c.chain, c.cfg.BlockInterval, c.logger)
		}
	} else {
		watcher = jobs.NewHeadWatcherJob(c.head, c.metrics, headWatchInterval, c.logger)
	}

	return jobs.NewJobManager(producer, watcher)
}

// Close releases everything in reverse order of acquisition.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errList = append(errList, err)
		}
	}
	c.closers = nil
	return errors.Join(errList...)
}
