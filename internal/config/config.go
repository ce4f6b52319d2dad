package config // package config loads application configuration from environment variables

import (
	"fmt"     // fmt builds the DSN from discrete DB_* variables
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings splits list-valued variables
	"time"    // time converts minute counts to durations

	"golang.org/x/crypto/bcrypt"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable (see LoadFromEnv for names and defaults).
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	DatabaseURL    string        // go-sql-driver DSN for the ledger database
	Migrate        bool          // apply embedded migrations on startup
	SecretKey      string        // secret used to sign access tokens
	Algorithm      string        // HMAC signing algorithm name (HS256, HS384, HS512)
	AccessTTL      time.Duration // access token lifetime
	BcryptCost     int           // bcrypt cost for password hashing
	UserAdminRoles []string      // roles allowed to manage users; empty means any active user
	RabbitMQURL    string        // broker URL for supply status events; empty disables publishing
	Redis          RedisConfig   // optional Redis used for the token denylist
}

// Load reads configuration values from environment variables and returns a
// Config.  Missing required values cause the program to exit with a fatal
// log message.
func Load() Config {
	cfg, err := LoadFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// LoadFromEnv is Load without the fatal exit.
func LoadFromEnv() (Config, error) {
	secret, ok := lookup("SECRET_KEY")
	if !ok {
		secret, ok = lookup("JWT_SECRET")
	}
	if !ok {
		return Config{}, fmt.Errorf("missing required env var: SECRET_KEY")
	}

	dsn, ok := lookup("DATABASE_URL")
	if !ok {
		var err error
		if dsn, err = dsnFromParts(); err != nil {
			return Config{}, err
		}
	}

	ttlMin := envInt("ACCESS_TOKEN_TTL_MIN", 30)
	if ttlMin < 1 {
		return Config{}, fmt.Errorf("invalid ACCESS_TOKEN_TTL_MIN: %d", ttlMin)
	}
	cost := envInt("BCRYPT_COST", bcrypt.DefaultCost)
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("invalid BCRYPT_COST: %d", cost)
	}

	return Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           envStr("APP_PORT", "8000"),
		DatabaseURL:    dsn,
		Migrate:        envBool("DB_MIGRATE", true),
		SecretKey:      secret,
		Algorithm:      strings.ToUpper(envStr("ALGORITHM", "HS256")),
		AccessTTL:      time.Duration(ttlMin) * time.Minute,
		BcryptCost:     cost,
		UserAdminRoles: envList("USER_ADMIN_ROLES"),
		RabbitMQURL:    firstEnv("RABBITMQ_URL", "AMQP_URL"),
		Redis:          LoadRedisConfig(),
	}, nil
}

// dsnFromParts assembles a MySQL DSN from DB_USER, DB_PASS, DB_HOST, DB_PORT
// and DB_NAME when DATABASE_URL is not provided.
func dsnFromParts() (string, error) {
	var missing []string
	get := func(k string) string {
		v, ok := lookup(k)
		if !ok {
			missing = append(missing, k)
		}
		return v
	}
	user, host, port, name := get("DB_USER"), get("DB_HOST"), get("DB_PORT"), get("DB_NAME")
	if len(missing) > 0 {
		return "", fmt.Errorf("missing required env var: DATABASE_URL or %s", strings.Join(missing, ", "))
	}
	auth := user
	if pass := os.Getenv("DB_PASS"); pass != "" {
		auth = user + ":" + pass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s", auth, host, port, name), nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v, ok := lookup(k); ok {
			return v
		}
	}
	return ""
}

func envStr(k, d string) string {
	if v, ok := lookup(k); ok {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v, ok := lookup(k)
	if !ok {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v, ok := lookup(k)
	if !ok {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envList(k string) []string {
	v, ok := lookup(k)
	if !ok {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
