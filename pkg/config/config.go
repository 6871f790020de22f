package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Items         ItemsConfig
	Notify        NotifyConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
	Cron          CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ATELIERQ_APP_ENV" required:"true"`
	Port         string `envconfig:"ATELIERQ_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ATELIERQ_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ATELIERQ_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"ATELIERQ_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"ATELIERQ_DB_DSN"`
	Driver string `envconfig:"ATELIERQ_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ATELIERQ_DB_HOST"`
	LegacyPort     int    `envconfig:"ATELIERQ_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ATELIERQ_DB_USER"`
	LegacyPassword string `envconfig:"ATELIERQ_DB_PASSWORD"`
	LegacyName     string `envconfig:"ATELIERQ_DB_NAME"`
	LegacySSLMode  string `envconfig:"ATELIERQ_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ATELIERQ_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ATELIERQ_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ATELIERQ_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ATELIERQ_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ATELIERQ_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ATELIERQ_REDIS_ADDR"`
	Password     string        `envconfig:"ATELIERQ_REDIS_PASSWORD"`
	DB           int           `envconfig:"ATELIERQ_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ATELIERQ_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ATELIERQ_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ATELIERQ_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ATELIERQ_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ATELIERQ_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"ATELIERQ_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"ATELIERQ_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"ATELIERQ_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"ATELIERQ_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ATELIERQ_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ATELIERQ_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ATELIERQ_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ATELIERQ_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ATELIERQ_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"ATELIERQ_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"ATELIERQ_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"ATELIERQ_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"ATELIERQ_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"ATELIERQ_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"ATELIERQ_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"ATELIERQ_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"ATELIERQ_AUTO_MIGRATE" default:"false"`
}

// ItemsConfig tunes the item intelligence pipeline.
type ItemsConfig struct {
	MaxDimensionCM float64 `envconfig:"ATELIERQ_ITEMS_MAX_DIMENSION_CM" default:"5000"`
	MaxTitleLength int     `envconfig:"ATELIERQ_ITEMS_MAX_TITLE_LENGTH" default:"500"`
}

// NotifyConfig bounds the supplier notification fan-out.
type NotifyConfig struct {
	SupplierTimeout time.Duration `envconfig:"ATELIERQ_NOTIFY_SUPPLIER_TIMEOUT" default:"2s"`
	RetentionDays   int           `envconfig:"ATELIERQ_NOTIFY_RETENTION_DAYS" default:"90"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"ATELIERQ_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"ATELIERQ_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"ATELIERQ_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	DomainTopic              string `envconfig:"ATELIERQ_PUBSUB_DOMAIN_TOPIC" default:"aq-domain-events"`
	NotificationSubscription string `envconfig:"ATELIERQ_PUBSUB_NOTIFICATION_SUBSCRIPTION"`
	DeliverySubscription     string `envconfig:"ATELIERQ_PUBSUB_DELIVERY_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"ATELIERQ_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"ATELIERQ_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"ATELIERQ_OUTBOX_MAX_ATTEMPTS" default:"10"`
	RetentionDays  int `envconfig:"ATELIERQ_OUTBOX_RETENTION_DAYS" default:"30"`
}

type CronConfig struct {
	LockTTL time.Duration `envconfig:"ATELIERQ_CRON_LOCK_TTL" default:"25h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
