package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/sweetslice/storefront/api/controllers"
	"github.com/sweetslice/storefront/api/routes"
	"github.com/sweetslice/storefront/internal/cart"
	"github.com/sweetslice/storefront/internal/catalog"
	"github.com/sweetslice/storefront/internal/checkout"
	"github.com/sweetslice/storefront/internal/cron"
	"github.com/sweetslice/storefront/internal/inquiries"
	"github.com/sweetslice/storefront/internal/orders"
	"github.com/sweetslice/storefront/pkg/config"
	"github.com/sweetslice/storefront/pkg/db"
	"github.com/sweetslice/storefront/pkg/instance"
	"github.com/sweetslice/storefront/pkg/logger"
	"github.com/sweetslice/storefront/pkg/metrics"
	"github.com/sweetslice/storefront/pkg/migrate"
	"github.com/sweetslice/storefront/pkg/redis"
)

const (
	housekeepingLockName = "housekeeping"

	// HousekeepingRunner names the scheduler loop in Runners.
	HousekeepingRunner = "housekeeping"
)

// Runner is a long-lived background loop that stops when its context is done.
type Runner struct {
	Name string
	Run  func(ctx context.Context) error
}

// Container owns every storefront dependency built from one Config.
type Container struct {
	Config *config.Config
	Logger *logger.Logger

	Registry    *prometheus.Registry
	Metrics     *metrics.StorefrontMetrics
	HTTPMetrics *metrics.HTTPMetrics

	DB    *db.Client
	Redis *redis.Client

	Catalog   catalog.Service
	Notifier  *cart.Notifier
	Carts     cart.Service
	Orders    orders.Service
	Checkout  checkout.Service
	Inquiries inquiries.Service

	fileStore    *cart.FileStore
	bridge       *cart.Bridge
	housekeeping *cron.Service
}

// New wires the storefront. Anything opened before a failure is closed again.
func New(ctx context.Context, cfg *config.Config, logg *logger.Logger) (c *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	if logg == nil {
		logg = logger.Nop()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	c = &Container{
		Config:      cfg,
		Logger:      logg,
		Registry:    reg,
		Metrics:     metrics.NewStorefrontMetrics(reg),
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, c.Close())
			c = nil
		}
	}()

	if cfg.Redis.Enabled() {
		if c.Redis, err = redis.New(ctx, cfg.Redis, logg); err != nil {
			return c, fmt.Errorf("redis: %w", err)
		}
	}
	if cfg.DB.Enabled() {
		if c.DB, err = db.New(ctx, cfg.DB, logg); err != nil {
			return c, fmt.Errorf("database: %w", err)
		}
		if err = migrate.MaybeAutoRun(ctx, cfg.DB, logg, c.DB); err != nil {
			return c, err
		}
	}

	if err = c.buildCatalog(); err != nil {
		return c, err
	}
	if err = c.buildCarts(); err != nil {
		return c, err
	}
	if err = c.buildOrders(); err != nil {
		return c, err
	}
	if c.Checkout, err = checkout.NewService(c.Carts, c.Orders, logg, time.Now); err != nil {
		return c, fmt.Errorf("checkout: %w", err)
	}
	if c.Inquiries, err = inquiries.NewService(logg, c.Metrics, time.Now); err != nil {
		return c, fmt.Errorf("inquiries: %w", err)
	}
	if err = c.buildHousekeeping(); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Container) buildCatalog() error {
	products, err := catalog.LoadSeed(c.Config.Catalog.ProductsFile)
	if err != nil {
		return fmt.Errorf("catalog seed: %w", err)
	}
	c.Catalog, err = catalog.NewService(catalog.NewMemoryRepository(products), catalog.Options{
		SimulatedLatency: c.Config.Catalog.SimulatedLatency,
		FeaturedLimit:    c.Config.Catalog.FeaturedLimit,
	})
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	return nil
}

func (c *Container) buildCarts() error {
	cfg := c.Config
	var store cart.Store
	switch strings.ToLower(cfg.Store.Backend) {
	case config.CartBackendFile:
		fs, err := cart.NewFileStore(cfg.Store.FileDir, c.Logger)
		if err != nil {
			return fmt.Errorf("cart file store: %w", err)
		}
		c.fileStore = fs
		store = fs
	case config.CartBackendRedis:
		store = cart.NewRedisStore(c.Redis, cfg.Redis.CartTTL)
	default:
		store = cart.NewMemoryStore()
	}

	c.Notifier = cart.NewNotifier(c.Metrics)
	publishers := cart.Publishers{c.Notifier}
	if c.Redis != nil {
		bridge, err := cart.NewBridge(c.Redis, cfg.Redis.EventsChannel, instance.GetID(), c.Notifier, c.Logger.Component("cart-bridge"))
		if err != nil {
			return fmt.Errorf("cart event bridge: %w", err)
		}
		c.bridge = bridge
		publishers = append(publishers, bridge)
	}

	var err error
	c.Carts, err = cart.NewService(store, c.Catalog, publishers, c.Logger, c.Metrics, cart.Options{
		MessageMaxLength: cfg.Checkout.MessageMaxLength,
		MaxLineQuantity:  cfg.Checkout.MaxLineQuantity,
	})
	if err != nil {
		return fmt.Errorf("cart: %w", err)
	}
	return nil
}

func (c *Container) buildOrders() error {
	fee, err := c.Config.Checkout.Fee()
	if err != nil {
		return err
	}
	var repo orders.Repository
	if c.DB != nil {
		repo = orders.NewGormRepository(c.DB)
	} else {
		seeded, err := orders.LoadSeed(c.Config.Catalog.OrdersFile)
		if err != nil {
			return fmt.Errorf("orders seed: %w", err)
		}
		repo = orders.NewMemoryRepository(seeded)
	}
	c.Orders, err = orders.NewService(repo, c.Logger, c.Metrics, orders.Options{DeliveryFee: fee})
	if err != nil {
		return fmt.Errorf("orders: %w", err)
	}
	return nil
}

func (c *Container) buildHousekeeping() error {
	jobsCfg := c.Config.Jobs
	if !jobsCfg.Enabled {
		return nil
	}
	registry := cron.NewRegistry()
	if c.fileStore != nil {
		job, err := cron.NewStaleCartJob(c.fileStore, jobsCfg.CartFileTTL)
		if err != nil {
			return err
		}
		registry.Register(job)
	}
	job, err := cron.NewInquiryRetentionJob(c.Inquiries, jobsCfg.InquiryRetention)
	if err != nil {
		return err
	}
	registry.Register(job)

	var lock cron.Lock = &cron.LocalLock{}
	if c.Redis != nil {
		if lock, err = cron.NewRedisLock(c.Redis, c.Redis.LockKey(housekeepingLockName), 0); err != nil {
			return err
		}
	}
	c.housekeeping, err = cron.NewService(cron.ServiceParams{
		Logger:     c.Logger.Component(HousekeepingRunner),
		Registry:   registry,
		Lock:       lock,
		Metrics:    metrics.NewJobMetrics(c.Registry),
		Interval:   jobsCfg.Interval,
		JobTimeout: jobsCfg.JobTimeout,
	})
	return err
}

// Handler builds the HTTP router over the container's services.
func (c *Container) Handler() http.Handler {
	var dbP, redisP controllers.Pinger
	if c.DB != nil {
		dbP = c.DB
	}
	if c.Redis != nil {
		redisP = c.Redis
	}
	return routes.NewRouter(
		c.Config, c.Logger, c.Registry, c.HTTPMetrics,
		dbP, redisP,
		c.Catalog, c.Carts, c.Notifier, c.Checkout, c.Orders, c.Inquiries,
	)
}

// Runners lists the background loops the API process should run next to the server.
func (c *Container) Runners() []Runner {
	var runners []Runner
	if c.fileStore != nil && c.Config.Store.WatchFile {
		runners = append(runners, Runner{Name: "cart-file-watcher", Run: c.watchCartFiles})
	}
	if c.bridge != nil {
		runners = append(runners, Runner{Name: "cart-event-bridge", Run: c.bridge.Run})
	}
	if c.housekeeping != nil {
		runners = append(runners, Runner{Name: HousekeepingRunner, Run: c.housekeeping.Run})
	}
	return runners
}

// RunHousekeepingOnce runs every housekeeping job a single time. It is a no-op when jobs are disabled.
func (c *Container) RunHousekeepingOnce(ctx context.Context) error {
	if c.housekeeping == nil {
		return nil
	}
	return c.housekeeping.RunOnce(ctx)
}

func (c *Container) watchCartFiles(ctx context.Context) error {
	return c.fileStore.Watch(ctx, func(session string) {
		if err := c.Carts.NotifyExternal(ctx, session); err != nil {
			c.Logger.Error(c.Logger.WithCartSession(ctx, session), "announce external cart change", err)
		}
	})
}

// Close releases the database and redis connections.
func (c *Container) Close() error {
	var err error
	if c.DB != nil {
		err = multierr.Append(err, c.DB.Close())
	}
	if c.Redis != nil {
		err = multierr.Append(err, c.Redis.Close())
	}
	return err
}
