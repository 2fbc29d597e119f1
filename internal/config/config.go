package config

import "os"

// Config holds the server's runtime configuration, read from the environment
type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	Port          string

	// PolicyPath points at the optional YAML scoring policy file
	PolicyPath string
}

// Load reads configuration from the environment with development defaults
func Load() *Config {
	return &Config{
		MongoURI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "govmaturity"),
		RedisAddr:     normalizeRedisAddr(getEnvOrDefault("REDIS_URI", "localhost:6379")),
		Port:          getEnvOrDefault("PORT", "8080"),
		PolicyPath:    os.Getenv("SCORING_POLICY_PATH"),
	}
}

// normalizeRedisAddr strips a redis:// prefix if present
func normalizeRedisAddr(addr string) string {
	if len(addr) > 8 && addr[:8] == "redis://" {
		return addr[8:]
	}
	return addr
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
