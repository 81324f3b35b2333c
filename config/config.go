package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	MongoURI      string
	MongoDB       string
	JWTSecret     string
	CloudinaryURL string
	ClientURL     string
	GinMode       string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Load reads configuration from the environment, with a best-effort
// .env load first. JWT_SECRET and MONGODB_URI have no usable defaults
// and are checked by the caller.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		Port:          getEnvAsInt("PORT", 8080),
		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDB:       getEnv("MONGO_DB", "inkwell"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
		ClientURL:     getEnv("CLIENT_URL", "http://localhost:3000"),
		GinMode:       getEnv("GIN_MODE", "debug"),
	}
}

// Production reports whether the server runs in release mode. Controls
// the Secure cookie flag and whether error detail leaks into 500 bodies.
func (c *Config) Production() bool {
	return c.GinMode == "release"
}
