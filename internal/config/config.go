package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvDBUser          = "DB_USER"
	EnvDBPass          = "DB_PASS"
	EnvMongoURI        = "MONGO_URI"
	EnvMongoDatabase   = "MONGO_DATABASE"
	EnvTokenSecret     = "ACCESS_TOKEN_SECRET"
	EnvStripeSecretKey = "STRIPE_SECRET_KEY"
	EnvPort            = "PORT"
	EnvRedisAddr       = "REDIS_ADDR"
	EnvRedisPassword   = "REDIS_PASSWORD"
	EnvRedisDB         = "REDIS_DB"
	EnvCacheTTLSeconds = "CACHE_TTL_SECONDS"
	EnvAllowedOrigins  = "ALLOWED_ORIGINS"
)

type Config struct {
	MongoURI        string
	MongoDatabase   string
	TokenSecret     string
	StripeSecretKey string
	Port            string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheTTLSeconds int
	AllowedOrigins  []string
}

// Load reads configuration from the environment. The database
// credentials, token secret, Stripe key and port are all required;
// a missing one is a startup error rather than a silent default.
func Load() (*Config, error) {
	cfg := &Config{
		MongoDatabase:   getEnv(EnvMongoDatabase, "doctor_portal"),
		TokenSecret:     os.Getenv(EnvTokenSecret),
		StripeSecretKey: os.Getenv(EnvStripeSecretKey),
		Port:            os.Getenv(EnvPort),
		RedisAddr:       os.Getenv(EnvRedisAddr),
		RedisPassword:   os.Getenv(EnvRedisPassword),
		RedisDB:         getEnvInt(EnvRedisDB, 0),
		CacheTTLSeconds: getEnvInt(EnvCacheTTLSeconds, 60),
		AllowedOrigins:  splitOrigins(getEnv(EnvAllowedOrigins, "http://localhost:3000")),
	}

	uri, err := mongoURI()
	if err != nil {
		return nil, err
	}
	cfg.MongoURI = uri

	var missing []string
	if cfg.TokenSecret == "" {
		missing = append(missing, EnvTokenSecret)
	}
	if cfg.StripeSecretKey == "" {
		missing = append(missing, EnvStripeSecretKey)
	}
	if cfg.Port == "" {
		missing = append(missing, EnvPort)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// mongoURI prefers a full MONGO_URI; otherwise it is assembled from
// DB_USER and DB_PASS, both of which must then be present.
func mongoURI() (string, error) {
	if uri := os.Getenv(EnvMongoURI); uri != "" {
		return uri, nil
	}
	user := os.Getenv(EnvDBUser)
	pass := os.Getenv(EnvDBPass)
	if user == "" || pass == "" {
		return "", fmt.Errorf("either %s or both %s and %s must be set", EnvMongoURI, EnvDBUser, EnvDBPass)
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@cluster0.f4jstaa.mongodb.net/?retryWrites=true&w=majority", user, pass), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
