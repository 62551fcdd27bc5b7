package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv" // optional .env file for local runs
)

// Store backends accepted by STORE_BACKEND.
const (
	BackendJSON     = "json"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
)

const devJWTSecret = "dev-only-hostel-secret"

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable; unset variables fall back to the defaults used
// by the console and the API server alike.
type Config struct {
	Env  string // application environment (dev, test, prod)
	Port string // HTTP port to listen on

	DataDir         string // directory of the JSON record files
	ExportDir       string // directory receiving CSV exports and reports
	StoreBackend    string // json | mysql | postgres
	StoreStrictLoad bool   // a corrupt backing store aborts startup

	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	AdminUsername string // default SuperAdmin created on an empty store
	AdminPassword string
	SeedDemo      bool // seed demonstration data when no student exists

	EventsEnabled   bool   // publish booking events to RabbitMQ
	SequenceBackend string // store | redis numbering of receipts and passes
	OverdueCron     string // schedule of the overdue sweep, empty disables it

	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// Load reads an optional .env file and then the environment. Values that
// are mandatory in production are reported as one error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: .env ignored: %v", err)
	}
	cfg := Config{
		Env:  envStr("APP_ENV", "dev"),
		Port: envStr("APP_PORT", "8080"),

		DataDir:         envStr("DATA_DIR", "hostel_data"),
		ExportDir:       envStr("EXPORT_DIR", "hostel_exports"),
		StoreBackend:    strings.ToLower(envStr("STORE_BACKEND", BackendJSON)),
		StoreStrictLoad: envBool("STORE_STRICT_LOAD", true),

		DBUser: os.Getenv("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: envStr("DB_HOST", "localhost"),
		DBPort: os.Getenv("DB_PORT"),
		DBName: os.Getenv("DB_NAME"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTTLMin:   envInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays: envInt("REFRESH_TOKEN_TTL_DAYS", 7),
		BcryptCost:     envInt("BCRYPT_COST", 10),

		AdminUsername: envStr("ADMIN_USERNAME", "admin"),
		AdminPassword: envStr("ADMIN_PASSWORD", "admin123"),
		SeedDemo:      envBool("SEED_DEMO", false),

		EventsEnabled:   envBool("EVENTS_ENABLED", false),
		SequenceBackend: strings.ToLower(envStr("SEQUENCE_BACKEND", "store")),
		OverdueCron:     envStr("OVERDUE_CRON", "15 2 * * *"),

		Redis:     LoadRedisConfig(),
		Cache:     LoadCacheConfig(),
		RateLimit: LoadRateLimitConfig(),
	}
	if cfg.DBPort == "" {
		cfg.DBPort = defaultPort(cfg.StoreBackend)
	}
	if v, ok := os.LookupEnv("OVERDUE_CRON"); ok && v == "" {
		cfg.OverdueCron = ""
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	var problems []string
	switch c.StoreBackend {
	case BackendJSON:
	case BackendMySQL, BackendPostgres:
		if c.DBUser == "" || c.DBName == "" {
			problems = append(problems, "DB_USER and DB_NAME are required for STORE_BACKEND="+c.StoreBackend)
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown STORE_BACKEND %q", c.StoreBackend))
	}
	if c.SequenceBackend != "store" && c.SequenceBackend != "redis" {
		problems = append(problems, fmt.Sprintf("unknown SEQUENCE_BACKEND %q", c.SequenceBackend))
	}
	if c.JWTSecret == "" {
		if c.IsProd() {
			problems = append(problems, "JWT_SECRET is required when APP_ENV=prod")
		} else {
			log.Printf("config: JWT_SECRET not set, using a development secret")
			c.JWTSecret = devJWTSecret
		}
	}
	if len(problems) > 0 {
		return errors.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

func (c Config) IsProd() bool { return strings.EqualFold(c.Env, "prod") }

// UsesSQL reports whether records live in a database.
func (c Config) UsesSQL() bool {
	return c.StoreBackend == BackendMySQL || c.StoreBackend == BackendPostgres
}

func defaultPort(backend string) string {
	if backend == BackendPostgres {
		return "5432"
	}
	return "3306"
}
