package shared

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Constraint sources selectable via CONSTRAINT_SOURCE.
const (
	SourceMySQL = "mysql"
	SourceCMS   = "cms"
	SourceFile  = "file"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string
	HTTPTimeout time.Duration

	MySQLDSN  string
	RedisAddr string
	RedisDB   int
	RedisPass string

	ConstraintSource string
	CMSBase          string
	CMSKey           string
	CMSRPS           int
	ConstraintsFile  string

	SolveTimeLimit   time.Duration
	SolveMaxTime     time.Duration
	SolveMaxIter     int
	SolveWorkers     int
	ResultTTL        time.Duration
	TenantSolveRPS   float64
	TenantSolveBurst int
}

// Load reads the environment, after a best-effort .env in the working directory.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg(".env loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not a number, using default")
		}
		return def
	}
	secs := func(k string, def int) time.Duration {
		return time.Duration(atoi(k, def)) * time.Second
	}

	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		HTTPTimeout: secs("HTTP_TIMEOUT_SECONDS", 150),

		MySQLDSN:  env("MYSQL_DSN", "root:root@tcp(localhost:3306)/allocation?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr: env("REDIS_ADDR", "localhost:6379"),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),

		ConstraintSource: env("CONSTRAINT_SOURCE", SourceMySQL),
		CMSBase:          env("CMS_BASE_URL", ""),
		CMSKey:           env("CMS_API_KEY", ""),
		CMSRPS:           atoi("CMS_RPS", 5),
		ConstraintsFile:  env("CONSTRAINTS_FILE", "constraints.yaml"),

		SolveTimeLimit:   secs("SOLVE_TIME_LIMIT_SECONDS", 30),
		SolveMaxTime:     secs("SOLVE_MAX_SECONDS", 120),
		SolveMaxIter:     atoi("SOLVE_MAX_ITERATIONS", 1000),
		SolveWorkers:     atoi("SOLVE_CONCURRENCY", 8),
		ResultTTL:        secs("RESULT_TTL_SECONDS", 86400),
		TenantSolveRPS:   atof("TENANT_SOLVE_RPS", 2),
		TenantSolveBurst: atoi("TENANT_SOLVE_BURST", 4),
	}
	if c.ConstraintSource == SourceCMS && c.CMSKey == "" {
		log.Warn().Msg("CMS_API_KEY is empty")
	}
	return c
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.ConstraintSource {
	case SourceMySQL, SourceFile:
	case SourceCMS:
		if c.CMSBase == "" {
			return fmt.Errorf("CONSTRAINT_SOURCE=cms requires CMS_BASE_URL")
		}
	default:
		return fmt.Errorf("unknown CONSTRAINT_SOURCE %q (want mysql, cms or file)", c.ConstraintSource)
	}
	if c.SolveMaxTime < c.SolveTimeLimit {
		return fmt.Errorf("SOLVE_MAX_SECONDS (%s) is below SOLVE_TIME_LIMIT_SECONDS (%s)", c.SolveMaxTime, c.SolveTimeLimit)
	}
	if c.HTTPTimeout <= c.SolveMaxTime {
		log.Warn().Dur("http_timeout", c.HTTPTimeout).Dur("solve_max", c.SolveMaxTime).
			Msg("HTTP timeout does not exceed the longest solve")
	}
	return nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
