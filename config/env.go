package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort       = "5000"
	defaultAppEnv        = "local"
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDB       = "bistroDb"
	defaultTokenSecret   = "change-me-in-production"
	defaultTokenTTL      = time.Hour
	defaultCurrency      = "usd"
	defaultRedisAddr     = "localhost:6379"
	defaultCacheTTL      = 5 * time.Minute
	defaultMaxBodyBytes  = 4 << 20
	defaultAllowedOrigin = "*"
	defaultRatePerMinute = 60
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load merges config/app.json and .env over the built-in defaults.
// Process environment variables always win over both files.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":              defaultAppEnv,
		"MONGO_DB":             defaultMongoDB,
		"ACCESS_TOKEN_SECRET":  defaultTokenSecret,
		"TOKEN_TTL":            defaultTokenTTL.String(),
		"PAYMENT_CURRENCY":     defaultCurrency,
		"REDIS_ADDR":           defaultRedisAddr,
		"CACHE_TTL":            defaultCacheTTL.String(),
		"CORS_ALLOWED_ORIGINS": defaultAllowedOrigin,
	}
}

// AppPort prefers APP_PORT and falls back to PORT, which hosting platforms
// set for the process.
func AppPort() string {
	_ = Load()
	if port := get("APP_PORT", ""); port != "" {
		return port
	}
	return get("PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// IsProduction reports whether APP_ENV names a production deployment.
func IsProduction() bool {
	switch strings.ToLower(AppEnv()) {
	case "production", "prod":
		return true
	}
	return false
}

func LogLevel() string {
	_ = Load()
	return strings.ToLower(get("LOG_LEVEL", ""))
}

// LogMongoCollection names the collection that receives a copy of every log
// record. Empty disables the Mongo sink.
func LogMongoCollection() string {
	_ = Load()
	return get("LOG_MONGO_COLLECTION", "")
}

// ── Database ─────────────────────────────────────────────────────────────────

// MongoURI returns MONGO_URI when set. Otherwise, if DB_USER and DB_PASS are
// present, it builds an Atlas SRV URI against DB_HOST.
func MongoURI() string {
	_ = Load()
	if uri := get("MONGO_URI", ""); uri != "" {
		return uri
	}

	user, pass := get("DB_USER", ""), get("DB_PASS", "")
	if user == "" || pass == "" {
		return defaultMongoURI
	}

	host := get("DB_HOST", "cluster0.6ygkpv0.mongodb.net")
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=Cluster0",
		url.QueryEscape(user), url.QueryEscape(pass), host)
}

func MongoDatabase() string {
	_ = Load()
	return get("MONGO_DB", defaultMongoDB)
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func TokenSecret() string {
	_ = Load()
	return get("ACCESS_TOKEN_SECRET", defaultTokenSecret)
}

// UsingDefaultSecret reports whether no ACCESS_TOKEN_SECRET was configured.
func UsingDefaultSecret() bool {
	return TokenSecret() == defaultTokenSecret
}

// DefaultSecretAllowed reports whether the built-in signing key may be used.
// Only a local environment qualifies.
func DefaultSecretAllowed() bool {
	return strings.EqualFold(AppEnv(), defaultAppEnv)
}

func TokenTTL() time.Duration {
	_ = Load()
	return getDuration("TOKEN_TTL", defaultTokenTTL)
}

// ── Payments ─────────────────────────────────────────────────────────────────

func StripeSecretKey() string {
	_ = Load()
	return get("STRIPE_SECRET_KEY", "")
}

func PaymentCurrency() string {
	_ = Load()
	return strings.ToLower(get("PAYMENT_CURRENCY", defaultCurrency))
}

// ── Cache ────────────────────────────────────────────────────────────────────

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

func CacheTTL() time.Duration {
	_ = Load()
	return getDuration("CACHE_TTL", defaultCacheTTL)
}

// ── HTTP ─────────────────────────────────────────────────────────────────────

func MaxBodyBytes() int64 {
	_ = Load()
	n, err := strconv.ParseInt(get("MAX_BODY_BYTES", ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultMaxBodyBytes
	}
	return n
}

// RateLimitPerMinute caps POST /jwt and POST /create-payment-intent per client
// IP. 0 disables the limiter.
func RateLimitPerMinute() int {
	_ = Load()
	n, err := strconv.Atoi(get("RATE_LIMIT_PER_MINUTE", ""))
	if err != nil || n < 0 {
		return defaultRatePerMinute
	}
	return n
}

func CORSAllowedOrigins() []string {
	_ = Load()
	return splitList(get("CORS_ALLOWED_ORIGINS", defaultAllowedOrigin))
}

// TrustedProxies lists the CIDRs or IPs of reverse proxies whose
// X-Forwarded-For header the rate limiter believes. Empty by default.
func TrustedProxies() []string {
	_ = Load()
	return splitList(get("TRUSTED_PROXIES", ""))
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ── Loading ──────────────────────────────────────────────────────────────────

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	for key, value := range env {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}
	return nil
}

func get(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}

	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(get(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
