package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Redis    RedisConfig
	DB       DBConfig
	Catalog  CatalogConfig
	Checkout CheckoutConfig
	Admin    AdminConfig
	CORS     CORSConfig
	Jobs     JobsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Store.Backend) {
	case CartBackendMemory, CartBackendFile, CartBackendRedis:
	default:
		return fmt.Errorf("%s must be one of memory, file, redis; got %q", EnvCartBackend, c.Store.Backend)
	}
	if strings.EqualFold(c.Store.Backend, CartBackendRedis) && c.Redis.URL == "" && c.Redis.Address == "" {
		return fmt.Errorf("%s or %s is required when the cart backend is redis", EnvRedisURL, EnvRedisAddr)
	}

	switch strings.ToLower(c.DB.Driver) {
	case DBDriverNone, DBDriverSQLite, DBDriverPostgres:
	default:
		return fmt.Errorf("%s must be one of none, sqlite, postgres; got %q", EnvDBDriver, c.DB.Driver)
	}

	if _, err := c.Checkout.Fee(); err != nil {
		return err
	}
	if c.Checkout.MessageMaxLength <= 0 {
		return fmt.Errorf("%s must be positive", EnvMessageMaxLength)
	}
	if c.Checkout.MaxLineQuantity <= 0 {
		return fmt.Errorf("%s must be positive", EnvMaxLineQuantity)
	}
	if c.Jobs.Interval <= 0 {
		return fmt.Errorf("%s must be positive", EnvJobsInterval)
	}
	if c.Jobs.JobTimeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvJobsTimeout)
	}
	if c.Catalog.SimulatedLatency < 0 {
		return fmt.Errorf("%s must not be negative", EnvSimulatedLatency)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"SWEETSLICE_APP_ENV" default:"dev"`
	Port         string `envconfig:"SWEETSLICE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SWEETSLICE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SWEETSLICE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig selects where cart line lists are persisted.
type StoreConfig struct {
	Backend   string `envconfig:"SWEETSLICE_CART_BACKEND" default:"memory"`
	FileDir   string `envconfig:"SWEETSLICE_CART_FILE_DIR" default:".sweetslice/carts"`
	WatchFile bool   `envconfig:"SWEETSLICE_CART_FILE_WATCH" default:"true"`
}

type RedisConfig struct {
	URL           string        `envconfig:"SWEETSLICE_REDIS_URL"`
	Address       string        `envconfig:"SWEETSLICE_REDIS_ADDR"`
	Password      string        `envconfig:"SWEETSLICE_REDIS_PASSWORD"`
	DB            int           `envconfig:"SWEETSLICE_REDIS_DB" default:"0"`
	PoolSize      int           `envconfig:"SWEETSLICE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns  int           `envconfig:"SWEETSLICE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout   time.Duration `envconfig:"SWEETSLICE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout   time.Duration `envconfig:"SWEETSLICE_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout  time.Duration `envconfig:"SWEETSLICE_REDIS_WRITE_TIMEOUT" default:"3s"`
	CartTTL       time.Duration `envconfig:"SWEETSLICE_REDIS_CART_TTL" default:"0s"`
	EventsChannel string        `envconfig:"SWEETSLICE_REDIS_EVENTS_CHANNEL" default:"sweetslice:cart-events"`
}

// Enabled reports whether any redis endpoint has been configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type DBConfig struct {
	Driver string `envconfig:"SWEETSLICE_DB_DRIVER" default:"none"`
	DSN    string `envconfig:"SWEETSLICE_DB_DSN"`

	Host     string `envconfig:"SWEETSLICE_DB_HOST"`
	Port     int    `envconfig:"SWEETSLICE_DB_PORT" default:"5432"`
	User     string `envconfig:"SWEETSLICE_DB_USER"`
	Password string `envconfig:"SWEETSLICE_DB_PASSWORD"`
	Name     string `envconfig:"SWEETSLICE_DB_NAME"`
	SSLMode  string `envconfig:"SWEETSLICE_DB_SSLMODE" default:"disable"`

	AutoMigrate     bool          `envconfig:"SWEETSLICE_DB_AUTO_MIGRATE" default:"false"`
	MaxOpenConns    int           `envconfig:"SWEETSLICE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SWEETSLICE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SWEETSLICE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SWEETSLICE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	// SlowQuery logs statements slower than this at warn; zero turns it off.
	SlowQuery time.Duration `envconfig:"SWEETSLICE_DB_SLOW_QUERY" default:"200ms"`
}

// Enabled reports whether orders should be kept in a SQL database.
func (db DBConfig) Enabled() bool {
	return db.Driver != "" && !strings.EqualFold(db.Driver, DBDriverNone)
}

type CatalogConfig struct {
	ProductsFile     string        `envconfig:"SWEETSLICE_PRODUCTS_FILE"`
	OrdersFile       string        `envconfig:"SWEETSLICE_ORDERS_FILE"`
	SimulatedLatency time.Duration `envconfig:"SWEETSLICE_SIMULATED_LATENCY" default:"0s"`
	FeaturedLimit    int           `envconfig:"SWEETSLICE_FEATURED_LIMIT" default:"6"`
}

type CheckoutConfig struct {
	DeliveryFee      string `envconfig:"SWEETSLICE_DELIVERY_FEE" default:"8.99"`
	MessageMaxLength int    `envconfig:"SWEETSLICE_MESSAGE_MAX_LENGTH" default:"100"`
	MaxLineQuantity  int    `envconfig:"SWEETSLICE_MAX_LINE_QUANTITY" default:"99"`
}

// Fee parses the configured flat delivery fee.
func (c CheckoutConfig) Fee() (decimal.Decimal, error) {
	fee, err := decimal.NewFromString(strings.TrimSpace(c.DeliveryFee))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", EnvDeliveryFee, err)
	}
	if fee.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative", EnvDeliveryFee)
	}
	return fee, nil
}

type AdminConfig struct {
	Token string `envconfig:"SWEETSLICE_ADMIN_TOKEN"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SWEETSLICE_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

// JobsConfig drives the housekeeping scheduler that expires file carts and old inquiries.
type JobsConfig struct {
	Enabled          bool          `envconfig:"SWEETSLICE_JOBS_ENABLED" default:"true"`
	Interval         time.Duration `envconfig:"SWEETSLICE_JOBS_INTERVAL" default:"1h"`
	JobTimeout       time.Duration `envconfig:"SWEETSLICE_JOBS_TIMEOUT" default:"5m"`
	CartFileTTL      time.Duration `envconfig:"SWEETSLICE_JOBS_CART_FILE_TTL" default:"168h"`
	InquiryRetention time.Duration `envconfig:"SWEETSLICE_JOBS_INQUIRY_RETENTION" default:"2160h"`
}

func (db *DBConfig) ensureDSN() error {
	if !strings.EqualFold(db.Driver, DBDriverPostgres) {
		if strings.EqualFold(db.Driver, DBDriverSQLite) && db.DSN == "" {
			db.DSN = DefaultSQLiteDSN
		}
		return nil
	}
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range discreteDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
