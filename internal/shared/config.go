package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	CacheTTL     time.Duration
	DB           DBConfig
	PhotonBase   string
	WeatherBase  string
	WeatherKey   string
	UserAgent    string
	HTTPTimeout  time.Duration
	RPS          int
	Workers      int
	Timezone     string
	OutputDir    string
	PipelinePath string
	TaxiURL      string
	TaxiFile     string

	dotenvErr error
}

type DBConfig struct {
	Driver     string // postgres | mysql | sqlite | mongo
	User       string
	Password   string
	Host       string
	Port       string
	Name       string
	SSLMode    string
	SQLitePath string
	MongoURI   string
}

// NeedsCredentials reports whether the driver authenticates with PGUID/PGPASS.
func (d DBConfig) NeedsCredentials() bool {
	switch d.Driver {
	case "sqlite":
		return false
	case "mongo":
		return d.MongoURI == ""
	}
	return true
}

func (d DBConfig) HasCredentials() bool { return d.User != "" && d.Password != "" }

// Load reads the process environment. A .env file in the working directory,
// when present, fills variables that are not already set. Load does not log;
// call LogWarnings once the logger is configured.
func Load() Config {
	dotenvErr := godotenv.Load()
	if os.IsNotExist(dotenvErr) {
		dotenvErr = nil
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	driver := env("DB_DRIVER", "postgres")
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		DB: DBConfig{
			Driver:     driver,
			User:       os.Getenv("PGUID"),
			Password:   os.Getenv("PGPASS"),
			Host:       env("PGHOST", "localhost"),
			Port:       env("PGPORT", defaultPort(driver)),
			Name:       env("PGDATABASE", "vienna_data"),
			SSLMode:    env("PGSSLMODE", "disable"),
			SQLitePath: env("SQLITE_PATH", "vienna_data.db"),
			MongoURI:   os.Getenv("MONGO_URI"),
		},
		PhotonBase:   env("PHOTON_BASE_URL", "https://photon.komoot.io"),
		WeatherBase:  env("OPENWEATHER_BASE_URL", "https://history.openweathermap.org"),
		WeatherKey:   env("OPENWEATHER_API_KEY", os.Getenv("api_key")),
		UserAgent:    env("ETL_USER_AGENT", "geoapiExercises"),
		HTTPTimeout:  time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		RPS:          atoi("ETL_RPS", 1),
		Workers:      atoi("ETL_WORKERS", 1),
		Timezone:     env("ETL_TZ", "Local"),
		OutputDir:    env("ETL_OUTPUT_DIR", "./data/output"),
		PipelinePath: env("ETL_CONFIG", "pipeline.yaml"),
		TaxiURL:      env("TAXI_URL", "https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_2024-01.parquet"),
		TaxiFile:     env("TAXI_FILE", "nyc_taxi_data.parquet"),
		dotenvErr:    dotenvErr,
	}
	return c
}

// LogWarnings reports configuration problems found by Load.
func (c Config) LogWarnings() {
	if c.dotenvErr != nil {
		log.Warn().Err(c.dotenvErr).Msg("could not parse .env")
	}
	if c.WeatherKey == "" {
		log.Warn().Msg("OPENWEATHER_API_KEY is empty")
	}
}

// Location resolves Timezone; unknown names fall back to the process zone.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("tz", c.Timezone).Msg("unknown timezone, using local")
		return time.Local
	}
	return loc
}

func defaultPort(driver string) string {
	switch driver {
	case "mysql":
		return "3306"
	case "mongo":
		return "27017"
	}
	return "5432"
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
