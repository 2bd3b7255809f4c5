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
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Cart          CartConfig
	Media         MediaConfig
	GCP           GCPConfig
	GCS           GCSConfig
	CORS          CORSConfig
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
	Env          string `envconfig:"LUMINA_APP_ENV" required:"true"`
	Port         string `envconfig:"LUMINA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LUMINA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LUMINA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LUMINA_DB_DSN"`
	Driver string `envconfig:"LUMINA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LUMINA_DB_HOST"`
	LegacyPort     int    `envconfig:"LUMINA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LUMINA_DB_USER"`
	LegacyPassword string `envconfig:"LUMINA_DB_PASSWORD"`
	LegacyName     string `envconfig:"LUMINA_DB_NAME"`
	LegacySSLMode  string `envconfig:"LUMINA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LUMINA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LUMINA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LUMINA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LUMINA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LUMINA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LUMINA_REDIS_ADDR"`
	Password     string        `envconfig:"LUMINA_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUMINA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUMINA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUMINA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUMINA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUMINA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LUMINA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"LUMINA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LUMINA_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"LUMINA_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"LUMINA_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LUMINA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LUMINA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LUMINA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LUMINA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LUMINA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"LUMINA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"LUMINA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"LUMINA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"LUMINA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"LUMINA_AUTO_MIGRATE" default:"false"`
}

// CartConfig carries the shipping rule and cart slot parameters. Amounts are
// integer COP.
type CartConfig struct {
	FreeShippingThreshold int           `envconfig:"LUMINA_CART_FREE_SHIPPING_THRESHOLD" default:"150000"`
	FlatShippingFee       int           `envconfig:"LUMINA_CART_FLAT_SHIPPING_FEE" default:"12000"`
	MaxQuantity           int           `envconfig:"LUMINA_CART_MAX_QUANTITY" default:"99"`
	SessionTTL            time.Duration `envconfig:"LUMINA_CART_SESSION_TTL" default:"720h"`
}

type MediaConfig struct {
	MaxUploadMB      int `envconfig:"LUMINA_MEDIA_MAX_UPLOAD_MB" default:"20"`
	ImageMaxWidth    int `envconfig:"LUMINA_MEDIA_IMAGE_MAX_WIDTH" default:"1200"`
	ImageTargetKB    int `envconfig:"LUMINA_MEDIA_IMAGE_TARGET_KB" default:"300"`
	ImageStartQ      int `envconfig:"LUMINA_MEDIA_IMAGE_START_QUALITY" default:"75"`
	ImageMinQ        int `envconfig:"LUMINA_MEDIA_IMAGE_MIN_QUALITY" default:"55"`
	ImageQualityStep int `envconfig:"LUMINA_MEDIA_IMAGE_QUALITY_STEP" default:"7"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"LUMINA_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"LUMINA_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"LUMINA_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName    string `envconfig:"LUMINA_GCS_BUCKET_NAME" required:"true"`
	PublicBaseURL string `envconfig:"LUMINA_GCS_PUBLIC_BASE_URL"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"LUMINA_CORS_ALLOWED_ORIGINS" default:"*"`
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
