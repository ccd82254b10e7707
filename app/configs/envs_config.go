package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type ENV struct {
	AppEnv string

	DBDriver   string
	DBPath     string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	DBLogLevel string

	SessionFile       string
	SessionMaxAgeDays int
	AppAuthKey        string
	AppEncKey         string

	PasswordHasher string
	BcryptCost     int

	MediaDir       string
	CurrencySymbol string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		AppEnv:            getEnv("APP_ENV", "development"),
		DBDriver:          getEnv("DB_DRIVER", DriverSQLite),
		DBPath:            getEnv("DB_PATH", "petshop.db"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            getEnv("DB_NAME", "petshop"),
		DBPort:            os.Getenv("DB_PORT"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		DBLogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		SessionFile:       getEnv("SESSION_FILE", ".petshop_session"),
		SessionMaxAgeDays: getEnvInt("SESSION_MAX_AGE_DAYS", 30),
		AppAuthKey:        os.Getenv("APP_AUTH_KEY"),
		AppEncKey:         os.Getenv("APP_ENC_KEY"),
		PasswordHasher:    getEnv("PASSWORD_HASHER", "sha256"),
		BcryptCost:        getEnvInt("BCRYPT_COST", 10),
		MediaDir:          getEnv("MEDIA_DIR", "profile_images"),
		CurrencySymbol:    getEnv("CURRENCY_SYMBOL", "$"),
	}

}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %d", key, raw, fallback)
		return fallback
	}
	return n
}
